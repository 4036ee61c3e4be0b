package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"forbidden", ErrForbidden},
		{"invalid state", ErrInvalidState},
		{"unavailable", ErrUnavailable},
		{"missing precondition", ErrMissingPrecondition},
		{"validation", ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestMissingAddressIsPrecondition(t *testing.T) {
	if !stdErrors.Is(ErrMissingAddress, ErrMissingPrecondition) {
		t.Fatal("expected missing address to wrap missing precondition")
	}
	if KindOf(ErrMissingAddress) != KindMissingPrecondition {
		t.Fatalf("unexpected kind %q", KindOf(ErrMissingAddress))
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, ""},
		{ErrNotFound, KindNotFound},
		{fmt.Errorf("load order: %w", ErrNotFound), KindNotFound},
		{ErrForbidden, KindForbidden},
		{ErrInvalidState, KindInvalidState},
		{ErrUnavailable, KindUnavailable},
		{Validation("rating must be between %d and %d", 1, 5), KindValidation},
		{ErrAlreadyExists, KindAlreadyExists},
		{ErrInvalidCredentials, KindInvalidCredentials},
		{stdErrors.New("connection refused"), KindInternal},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestValidationMessage(t *testing.T) {
	err := Validation("comment must have between %d and %d characters", 10, 500)
	if !stdErrors.Is(err, ErrValidation) {
		t.Fatal("expected validation sentinel")
	}
	want := "validation failed: comment must have between 10 and 500 characters"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
