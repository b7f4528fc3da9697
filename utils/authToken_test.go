package utils

import (
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewTokenMakerKeyLength(t *testing.T) {
	if _, err := NewTokenMaker("short"); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := NewTokenMaker(testKey); err != nil {
		t.Errorf("unexpected error for 32-byte key: %v", err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	maker, err := NewTokenMaker(testKey)
	if err != nil {
		t.Fatal(err)
	}

	token, err := maker.Generate(42, "paula@hospital.test", "Patient")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(token, "v2.local.") {
		t.Errorf("token %q does not look like a PASETO v2 local token", token)
	}

	claims, err := maker.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "paula@hospital.test" || claims.Role != "Patient" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Expiry.IsZero() {
		t.Error("expected an expiry")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	maker, _ := NewTokenMaker(testKey)
	other, _ := NewTokenMaker("fedcba9876543210fedcba9876543210")

	token, err := maker.Generate(1, "a@b.test", "Admin")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with a different key")
	}
	if _, err := maker.Verify("v2.local.garbage"); err == nil {
		t.Error("expected verification to fail for a malformed token")
	}
}
