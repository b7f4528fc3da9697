package utils

import (
	"SmartHospital/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

const resetCodeTTL = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SetResetCode stores the reset code for a given email in Redis for 15 minutes.
func SetResetCode(ctx context.Context, c *cache.Cache, email, code string) error {
	return c.Set(ctx, "reset_code:"+email, code, resetCodeTTL)
}

// GetResetCode retrieves the reset code for a given email, or "" if none is pending.
func GetResetCode(ctx context.Context, c *cache.Cache, email string) (string, error) {
	code, err := c.Get(ctx, "reset_code:"+email)
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// DeleteResetCode removes a redeemed or abandoned reset code.
func DeleteResetCode(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, "reset_code:"+email)
}
