package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned for absent, unknown, undecodable or expired
// sessions. Callers cannot and should not tell these apart.
var ErrNoSession = errors.New("session: no session")

// Backend is the shared session table. Keys are already fingerprinted.
type Backend interface {
	// Get returns ErrNoSession when the key is missing or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	// Purge drops expired entries and reports how many were removed.
	Purge(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}
