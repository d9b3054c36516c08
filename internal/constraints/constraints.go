// Package constraints provides generic type constraints shared by httpuri packages.
package constraints

// Byteseq is a raw text input: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
