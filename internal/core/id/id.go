// Package id provides the identifier type shared by every backend entity.
// Identifiers are assigned by the server; the client never mints them.
package id

import (
	"strconv"
)

// ID is a server-assigned entity identifier.
type ID int64

// Nil is the zero value, never assigned by the server.
const Nil ID = 0

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Nil, err
	}
	return ID(v), nil
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the ID in base 10, as used in REST paths.
func (i ID) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// IsNil checks if ID is zero-value.
func IsNil(i ID) bool {
	return i == Nil
}

// Ptr returns a pointer to a copy of i, for optional references such as parent_id.
func Ptr(i ID) *ID {
	return &i
}
