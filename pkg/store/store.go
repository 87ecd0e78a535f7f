// Package store provides the key-value persistence collaborator the board
// container saves through. A store holds opaque byte values (serialized
// board sets) under string keys scoped per project.
//
// Backends:
//   - memory: in-process map, for tests and ephemeral sessions
//   - diskv: local-device files, the default for the CLI editor
//   - redis: Redis-backed, for shared workstations
//   - mongo: MongoDB-backed, for networked deployments
//
// All backends implement the same small contract; the engine never knows
// which one it is writing to.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value exists under the key.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract consumed by the board container.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the value under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the value under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// Scoped wraps a Store with a key prefix, isolating one project's board
// sets from another's in a shared backend.
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped creates a store whose keys are all prefixed with prefix.
func NewScoped(inner Store, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Load(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Load(ctx, s.prefix+key)
}

func (s *Scoped) Save(ctx context.Context, key string, data []byte) error {
	return s.inner.Save(ctx, s.prefix+key, data)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *Scoped) Close() error { return s.inner.Close() }

var _ Store = (*Scoped)(nil)
