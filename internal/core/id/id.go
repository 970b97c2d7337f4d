// Package id generates the identifiers used by every platform entity.
// Identifiers are UUIDv7, so sorting by id follows creation time.
package id

import (
	"github.com/google/uuid"
)

// ID identifies one entity.
type ID = uuid.UUID

// New returns a fresh time-ordered identifier. uuid.NewV7 only fails
// when the random source does; a random v4 stands in for that case.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse validates and converts a string identifier.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a known-good string identifier, panicking on
// garbage. For constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero identifier.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether v is the zero identifier.
func IsNil(v ID) bool {
	return v == uuid.Nil
}
