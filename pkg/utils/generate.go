package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateConfirmationCode issues the opaque token handed to both users for
// in-person verification: the first 8 hex characters of a random UUID,
// uppercased. Uniqueness is backed by the column's unique constraint.
func GenerateConfirmationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
