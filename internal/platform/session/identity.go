// Package session owns identity: token issuing and validation, the session
// provider that tracks who is signed in, and the gate that decides which
// part of the application is reachable.
package session

import (
	"errors"

	"github.com/google/uuid"
)

// Identity is the authenticated principal. Its ID is the stable key every
// stored record is namespaced by.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// ErrNoSession is returned when no identity is currently signed in
var ErrNoSession = errors.New("no active session")
