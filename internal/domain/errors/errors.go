package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("operation not allowed in current status")
	ErrUnavailable         = errors.New("listing unavailable")
	ErrMissingPrecondition = errors.New("missing precondition")
	ErrValidation          = errors.New("validation failed")
)

// ErrMissingAddress is returned when a buyer places an order without a shipping address.
var ErrMissingAddress = fmt.Errorf("%w: no shipping address registered", ErrMissingPrecondition)

// Kind is a stable, transport independent classification of an error.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindInvalidState        Kind = "invalid_state"
	KindUnavailable         Kind = "unavailable"
	KindMissingPrecondition Kind = "missing_precondition"
	KindValidation          Kind = "validation"
	KindAlreadyExists       Kind = "already_exists"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindInternal            Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrInvalidState, KindInvalidState},
	{ErrUnavailable, KindUnavailable},
	{ErrMissingPrecondition, KindMissingPrecondition},
	{ErrValidation, KindValidation},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrInvalidCredentials, KindInvalidCredentials},
}

// KindOf classifies err. Errors outside the domain taxonomy are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Validation builds an error wrapping ErrValidation with a field specific message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
