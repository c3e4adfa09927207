package services

import "testing"

func TestNewValidationToken(t *testing.T) {
	a, err := newValidationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}

	b, err := newValidationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("two generated tokens should not collide")
	}
}
