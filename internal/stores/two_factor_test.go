package stores

import (
	"errors"
	"testing"
)

func TestTwoFactorStoreLifecycle(t *testing.T) {
	store := NewTwoFactorStore()

	if store.Live() {
		t.Fatal("fresh store must be empty")
	}
	if _, err := store.Get(); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}

	store.Put("tok", "a1", 5)
	challenge, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if challenge.TempToken != "tok" || challenge.AccountID != "a1" || challenge.AttemptsRemaining != 5 {
		t.Fatalf("unexpected challenge %+v", challenge)
	}
	if challenge.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}

	store.Delete()
	if store.Live() {
		t.Fatal("expected empty store after Delete")
	}
	store.Delete() // idempotent
}

func TestTwoFactorStoreSingleton(t *testing.T) {
	store := NewTwoFactorStore()
	store.Put("first", "a1", 5)
	store.Put("second", "a2", 3)

	challenge, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if challenge.TempToken != "second" || challenge.AccountID != "a2" {
		t.Fatalf("the last challenge must win, got %+v", challenge)
	}
	if challenge.AttemptsRemaining != 3 {
		t.Fatalf("replacement resets the budget, got %d", challenge.AttemptsRemaining)
	}
}

func TestTwoFactorStoreAttemptBudget(t *testing.T) {
	store := NewTwoFactorStore()
	store.Put("tok", "a1", 3)

	for want := 2; want >= 1; want-- {
		remaining, err := store.RecordFailure()
		if err != nil {
			t.Fatalf("RecordFailure failed: %v", err)
		}
		if remaining != want {
			t.Fatalf("expected %d remaining, got %d", want, remaining)
		}
		if !store.Live() {
			t.Fatal("challenge must survive while budget remains")
		}
	}

	if _, err := store.RecordFailure(); !errors.Is(err, ErrChallengeExceeded) {
		t.Fatalf("expected ErrChallengeExceeded, got %v", err)
	}
	if store.Live() {
		t.Fatal("exhausted challenge must be destroyed")
	}
	if _, err := store.RecordFailure(); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound after destruction, got %v", err)
	}
}

func TestTwoFactorStoreGetReturnsCopy(t *testing.T) {
	store := NewTwoFactorStore()
	store.Put("tok", "a1", 5)

	challenge, _ := store.Get()
	challenge.AttemptsRemaining = 0

	fresh, _ := store.Get()
	if fresh.AttemptsRemaining != 5 {
		t.Fatal("Get must not expose the live challenge")
	}
}
