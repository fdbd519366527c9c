package lock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	release, err := l.Obtain(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("first obtain: %v", err)
	}
	if _, err := l.Obtain(ctx, "k", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Errorf("got %v, want %v", err, ErrNotObtained)
	}
	if _, err := l.Obtain(ctx, "other", time.Minute); err != nil {
		t.Errorf("other key: %v", err)
	}

	if err := release(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Obtain(ctx, "k", time.Minute); err != nil {
		t.Errorf("obtain after release: %v", err)
	}
}

func TestLocalLockerExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := &localLocker{held: map[string]localHold{}, clock: func() time.Time { return now }}

	staleRelease, err := l.Obtain(ctx, "k", time.Second)
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Second)
	if _, err := l.Obtain(ctx, "k", time.Minute); err != nil {
		t.Fatalf("obtain after expiry: %v", err)
	}

	// the expired holder must not release the new holder's lock
	_ = staleRelease(ctx)
	if _, err := l.Obtain(ctx, "k", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Errorf("got %v, want %v", err, ErrNotObtained)
	}
}
