package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", Unauthenticated("bad credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"conflict", Conflict("duplicate"), http.StatusConflict},
		{"internal", Internal(errors.New("driver exploded")), http.StatusInternalServerError},
		{"unclassified", errors.New("plain"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", NotFound("missing")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageNeverLeaksInternals(t *testing.T) {
	cause := errors.New("pq: connection refused to 10.0.0.5")
	err := Internal(cause)

	if got := Message(err); got != "internal server error" {
		t.Errorf("Message() = %q, leaked internals", got)
	}
	if got := Message(errors.New("raw driver error")); got != "internal server error" {
		t.Errorf("Message() = %q for unclassified error", got)
	}
	if got := Message(Conflict("email already registered")); got != "email already registered" {
		t.Errorf("Message() = %q, want the client-safe message", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindValidation, "bad input", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf = %v, want KindValidation", KindOf(err))
	}
}
