// Package store holds the repositories over the club database. Every
// repository is constructed over an explicit *sql.DB and passed around by
// value, never imported ambiently.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the requested entity does not exist (or is not public).
	ErrNotFound = errors.New("not found")
	// ErrNoCapacity: the course has no seats left.
	ErrNoCapacity = errors.New("no seats available")
	// ErrValidation: the input is malformed. The wrapped message is safe to
	// show to the end user.
	ErrValidation = errors.New("invalid input")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
