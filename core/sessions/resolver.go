// Package sessions correlates conversational turns with the agent backend's
// session identifiers: one resolver per conversation, backed by a durable
// store so a conversation survives the process.
package sessions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// DefaultKey is the store key used when no other is configured. It matches
// the key the original web client used for its session entry.
const DefaultKey = "auphere-agent-session-id"

// Resolver owns the current session id for one conversation. Get creates an
// id lazily, Set pins an externally supplied one, and Reconcile folds in the
// id the backend confirms at the end of a run. All methods are safe for
// concurrent use, though runs against the same conversation are expected to
// mutate one at a time.
type Resolver struct {
	mu sync.Mutex

	store Store
	key   string

	current string
	// pinned is set once the hosting context supplied an explicit id; while
	// pinned, server reconciliation still persists but is not announced, so
	// the host's id is never clobbered.
	pinned bool

	onReconcile func(sessionID string)
}

type ResolverOption func(*Resolver)

// WithKey overrides the store key, allowing several conversations to share
// one store.
func WithKey(key string) ResolverOption {
	return func(r *Resolver) {
		r.key = key
	}
}

// WithReconcileCallback registers a callback invoked when the backend
// confirms a different session id than the one the run was issued with,
// e.g. so the host can rewrite an addressable locator.
func WithReconcileCallback(callback func(sessionID string)) ResolverOption {
	return func(r *Resolver) {
		r.onReconcile = callback
	}
}

func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store: store,
		key:   DefaultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the current session id, looking up memory, then the store,
// then generating a fresh opaque id that is written back to both. Store
// failures fall through to generation so a broken store never blocks a run.
func (r *Resolver) Get(ctx context.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != "" {
		return r.current
	}

	if stored, ok, err := r.store.Get(ctx, r.key); err == nil && ok && stored != "" {
		r.current = stored
		return r.current
	}

	r.current = uuid.NewString()
	r.store.Set(ctx, r.key, r.current)
	return r.current
}

// Set pins an externally supplied session id, overwriting memory and store.
func (r *Resolver) Set(ctx context.Context, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = sessionID
	r.pinned = true
	r.store.Set(ctx, r.key, sessionID)
}

// Reconcile folds in a server-confirmed session id. A differing id becomes
// the current one (memory and store); the reconcile callback fires unless an
// externally supplied id is pinned.
func (r *Resolver) Reconcile(ctx context.Context, serverID string) {
	if serverID == "" {
		return
	}

	r.mu.Lock()
	if serverID == r.current {
		r.mu.Unlock()
		return
	}

	r.current = serverID
	r.store.Set(ctx, r.key, serverID)
	announce := !r.pinned && r.onReconcile != nil
	callback := r.onReconcile
	r.mu.Unlock()

	if announce {
		callback(serverID)
	}
}

// Clear forgets the current session in memory and store, starting the next
// run on a fresh conversation.
func (r *Resolver) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = ""
	r.pinned = false
	r.store.Delete(ctx, r.key)
}
