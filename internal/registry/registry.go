// Package registry implements the server's shared client registry: a
// mutex-guarded mapping from a client's identifier to its session,
// snapshotted once per tick so the task pool can be handed a consistent
// batch of work without holding the registry lock across the dispatch.
package registry

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps identifiers to values of type T (in practice, *session.
// Session; kept generic so this package has no dependency on the session
// package and cannot form an import cycle with it).
type Registry[T any] struct {
	mu sync.Mutex
	m  map[uuid.UUID]T
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{m: make(map[uuid.UUID]T)}
}

// Insert adds id -> v. Per spec, a given session calls this at most once,
// exactly after a successful login-acknowledge.
func (r *Registry[T]) Insert(id uuid.UUID, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[id] = v
}

// Remove deletes id, if present. Per spec, a given session calls this at
// most once, exactly on disconnect.
func (r *Registry[T]) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
}

// Get returns the value for id, and whether it was present.
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.m[id]
	return v, ok
}

// Len reports the number of registered clients.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

// Snapshot returns a copy of every currently-registered value, taken under
// the registry mutex in one pass. The returned slice is safe to range over
// without holding any lock.
func (r *Registry[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.m))
	for _, v := range r.m {
		out = append(out, v)
	}
	return out
}
