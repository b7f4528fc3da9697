package repositories

import (
	"SmartHospital/database"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	lockTTL     = 10 * time.Second
	lockRetries = 3
)

var (
	lockRetryWait = 2 * time.Second

	acquireLock = database.NewLock
	releaseLock = database.ReleaseLock
)

// withLock runs fn while holding a Redis lock on key, retrying acquisition a
// few times before giving up. The lock value is fenced with a UUID so only the
// holder can release it. A lock still held by another operation after all
// retries reports that; a Redis failure is wrapped and surfaced as-is.
func withLock(ctx context.Context, key string, fn func() error) error {
	value := uuid.New().String()

	var locked bool
	var lastErr error
	for i := 0; i < lockRetries; i++ {
		var err error
		locked, err = acquireLock(ctx, key, value, lockTTL)
		if locked {
			break
		}
		lastErr = err
		if i < lockRetries-1 {
			time.Sleep(lockRetryWait)
		}
	}
	if !locked {
		if lastErr != nil {
			return fmt.Errorf("failed to acquire lock %q: %w", key, lastErr)
		}
		return fmt.Errorf("lock %q is held by another operation", key)
	}
	defer func() {
		if err := releaseLock(ctx, key, value); err != nil {
			log.Printf("Failed to release lock %q: %v", key, err)
		}
	}()

	return fn()
}
