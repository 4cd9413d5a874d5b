// Package ident provides phantom-typed integer identifiers. The type
// parameter is a compile-time tag with no runtime representation, so
// ID[Product](1) and ID[Cart](1) are distinct, non-substitutable types.
package ident

import (
	"strconv"

	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// ID names one entity of kind T.
type ID[T any] int64

// Parse reads an identifier from its string form. Non-numeric input fails
// with an InvalidArgument status.
func Parse[T any](s string) (ID[T], error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, status.InvalidArgument("id", s, "a decimal integer").WithCause(err)
	}
	return ID[T](v), nil
}

func (id ID[T]) Int64() int64 { return int64(id) }

func (id ID[T]) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ID[T]) IsZero() bool { return id == 0 }

// MarshalJSON encodes the raw integer, matching the storage representation.
func (id ID[T]) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(id), 10)), nil
}

func (id *ID[T]) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*id = ID[T](v)
	return nil
}
