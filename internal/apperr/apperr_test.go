package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Unauthenticated("no token")); got != KindUnauthenticated {
		t.Fatalf("expected unauthenticated, got %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty kind for plain error, got %q", got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("post not found"))
	if got := KindOf(wrapped); got != KindNotFound {
		t.Fatalf("expected not_found through wrapping, got %q", got)
	}
}

func TestIs_MatchesByKind(t *testing.T) {
	err := Unauthorized("not the owner")
	if !errors.Is(err, Unauthorized("different message")) {
		t.Fatalf("same kind must match regardless of message")
	}
	if errors.Is(err, Unauthenticated("x")) {
		t.Fatalf("different kinds must not match")
	}
}

func TestError_Message(t *testing.T) {
	err := InvalidInput("email is required")
	if err.Error() != "invalid_input: email is required" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}
