// Package grammar implements RFC 3986 character classes and percent-encoding
// used to filter URI components.
package grammar

//go:generate go tool errtrace -w .

import "github.com/ghettovoice/httpuri/internal/errorutil"

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

// ErrMalformedInput is returned when the input does not match the grammar.
const ErrMalformedInput Error = "malformed input"

// NewMalformedInputError creates a new error with [ErrMalformedInput] or
// wraps provided error with [ErrMalformedInput].
func NewMalformedInputError(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}
