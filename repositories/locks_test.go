package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func stubLocks(t *testing.T, acquire func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)) *[]string {
	t.Helper()
	origAcquire, origRelease, origWait := acquireLock, releaseLock, lockRetryWait
	t.Cleanup(func() {
		acquireLock, releaseLock, lockRetryWait = origAcquire, origRelease, origWait
	})

	var released []string
	acquireLock = acquire
	releaseLock = func(ctx context.Context, key, value string) error {
		released = append(released, key)
		return nil
	}
	lockRetryWait = time.Millisecond
	return &released
}

func TestWithLockRunsAndReleases(t *testing.T) {
	released := stubLocks(t, func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
		return true, nil
	})

	ran := false
	err := withLock(context.Background(), "bill_lock:1", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("withLock: %v", err)
	}
	if !ran {
		t.Error("expected fn to run")
	}
	if len(*released) != 1 || (*released)[0] != "bill_lock:1" {
		t.Errorf("released = %v, want one release of bill_lock:1", *released)
	}
}

func TestWithLockRetriesWhenHeld(t *testing.T) {
	attempts := 0
	stubLocks(t, func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
		attempts++
		return attempts > 1, nil
	})

	err := withLock(context.Background(), "bill_lock:2", func() error { return nil })
	if err != nil {
		t.Fatalf("withLock: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestWithLockHeldAfterRetries(t *testing.T) {
	attempts := 0
	stubLocks(t, func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
		attempts++
		return false, nil
	})

	err := withLock(context.Background(), "bill_lock:3", func() error {
		t.Fatal("fn must not run without the lock")
		return nil
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != lockRetries {
		t.Errorf("attempts = %d, want %d", attempts, lockRetries)
	}
	if !strings.Contains(err.Error(), "held by another operation") {
		t.Errorf("error = %q, want a held-lock message", err)
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Errorf("error = %q, wraps a nil error", err)
	}
}

func TestWithLockSurfacesRedisError(t *testing.T) {
	boom := errors.New("connection refused")
	stubLocks(t, func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
		return false, boom
	})

	err := withLock(context.Background(), "bill_lock:4", func() error { return nil })
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}
