package port

import (
	"context"
	"errors"
)

var ErrSessionKeyNotFound = errors.New("session key not found")

// Session is an opaque key-value container scoped to one client session.
type Session interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SessionStore interface {
	Session(id string) Session
	Close() error
}
