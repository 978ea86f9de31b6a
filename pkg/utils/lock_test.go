package utils

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("booking-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 serialized increments, got %d", counter)
	}
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock("booking-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("booking-b")
		unlockB()
		close(done)
	}()

	// Must not deadlock while booking-a is held.
	<-done
}

func TestKeyedMutex_ReusableAfterUnlock(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("booking-1")
	unlock()

	unlock = km.Lock("booking-1")
	unlock()
}
