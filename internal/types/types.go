// Package types contains common contracts implemented by the httpuri value types.
package types

import "io"

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// HideUserInfo renders the authority without the userinfo part.
	// Useful to log URIs without leaking credentials.
	HideUserInfo bool `json:"hide_user_info,omitempty"`
}

// ValidFlag is implemented by values that can report their own validity.
type ValidFlag interface {
	IsValid() bool
}

type Equalable interface {
	Equal(val any) bool
}

type Cloneable[T any] interface {
	Clone() T
}
