package utils

import (
	"strings"
	"testing"
)

func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code := GenerateConfirmationCode()

		if len(code) != 8 {
			t.Fatalf("expected 8-character code, got %q", code)
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("expected uppercase code, got %q", code)
		}
		for _, c := range code {
			if !strings.ContainsRune("0123456789ABCDEF", c) {
				t.Fatalf("expected hex characters only, got %q", code)
			}
		}
		seen[code] = true
	}

	if len(seen) < 2 {
		t.Fatal("expected codes to vary across calls")
	}
}

func TestParseInt(t *testing.T) {
	if got := ParseInt("", 10); got != 10 {
		t.Fatalf("expected default for empty string, got %d", got)
	}
	if got := ParseInt("abc", 10); got != 10 {
		t.Fatalf("expected default for garbage, got %d", got)
	}
	if got := ParseInt("0", 10); got != 10 {
		t.Fatalf("expected default for non-positive value, got %d", got)
	}
	if got := ParseInt("25", 10); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestParseInt64(t *testing.T) {
	if got := ParseInt64("42"); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseInt64("not-a-number"); got != 0 {
		t.Fatalf("expected 0 for garbage, got %d", got)
	}
}
