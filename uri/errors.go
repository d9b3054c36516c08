package uri

import (
	"github.com/ghettovoice/httpuri/internal/errorutil"
	"github.com/ghettovoice/httpuri/internal/grammar"
)

// Error represents a URI error.
// See [errorutil.Error].
type Error = errorutil.Error

const (
	// ErrInvalidArgument is returned when a URI or a URI component is rejected.
	// Every error returned by this package matches it with [errors.Is].
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrMalformedInput is returned along with [ErrInvalidArgument] when a raw URI
	// does not match the generic URI grammar.
	ErrMalformedInput = grammar.ErrMalformedInput
)

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
