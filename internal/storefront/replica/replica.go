// Package replica keeps an in-memory list consistent with exactly one
// authoritative store: local persistence while the shopper is anonymous, the
// per-user remote store once a session identity is known.
package replica

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"golang-storefront/internal/storefront/session"
	"golang-storefront/internal/storefront/state"
)

type Phase int

const (
	Uninitialized Phase = iota
	Anonymous
	LoadingRemote
	SyncedRemote
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case LoadingRemote:
		return "loading-remote"
	case SyncedRemote:
		return "synced-remote"
	default:
		return "uninitialized"
	}
}

// Remote is the per-user authoritative store. Replace has whole-list
// (put-style) semantics.
type Remote[T any] interface {
	Fetch(ctx context.Context, email string) ([]T, error)
	Replace(ctx context.Context, email string, items []T) error
	Clear(ctx context.Context, email string) error
}

// Local persists the anonymous list on the device.
type Local[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

type Options struct {
	// Name labels log lines ("cart", "wishlist").
	Name string
	// RequireIdentity rejects mutations while anonymous.
	RequireIdentity bool
	// SyncTimeout bounds every remote push. Zero means no timeout.
	SyncTimeout time.Duration
	Logger      *log.Logger
}

// Replica is the reconciliation controller for one list. Subscribers are
// notified while the controller lock is held and must not call mutating
// methods.
type Replica[T any] struct {
	opts   Options
	local  Local[T]
	remote Remote[T]
	items  *state.Store[[]T]

	mu     sync.Mutex
	phase  Phase
	email  string
	gen    uint64
	syncer *syncer[T]
}

// New builds a controller. local may be nil, in which case anonymous
// mutations live only in memory.
func New[T any](local Local[T], remote Remote[T], opts Options) *Replica[T] {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Name == "" {
		opts.Name = "list"
	}
	return &Replica[T]{
		opts:   opts,
		local:  local,
		remote: remote,
		items:  state.New[[]T](nil),
	}
}

// Start performs the Uninitialized -> Anonymous transition and loads the
// locally persisted list. A load failure leaves the list empty.
func (r *Replica[T]) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != Uninitialized {
		return nil
	}
	r.phase = Anonymous

	if r.local == nil {
		return nil
	}
	items, err := r.local.Load(ctx)
	if err != nil {
		return fmt.Errorf("load local %s: %w", r.opts.Name, err)
	}
	r.items.Set(items)
	return nil
}

// SetSession reconciles against a session identity. A nil or anonymous
// session signs out. Delivering the same identity again is a no-op.
func (r *Replica[T]) SetSession(ctx context.Context, s *session.Session) {
	email := s.Key()

	r.mu.Lock()
	if r.phase == Uninitialized {
		r.phase = Anonymous
	}
	if email == r.email {
		r.mu.Unlock()
		return
	}

	old := r.syncer
	r.syncer = nil
	previous := r.email
	r.gen++
	gen := r.gen
	r.email = email

	if email == "" {
		r.phase = Anonymous
		r.items.Set(nil)
		r.mu.Unlock()

		if old != nil {
			old.stop()
		}
		if r.local != nil {
			if err := r.local.Save(ctx, nil); err != nil {
				r.opts.Logger.Printf("Error resetting local %s: %v", r.opts.Name, err)
			}
		}
		return
	}

	r.phase = LoadingRemote
	if previous != "" {
		// Never show one user's list under another identity.
		r.items.Set(nil)
	}
	r.mu.Unlock()

	if old != nil {
		old.stop()
	}

	items, err := r.remote.Fetch(ctx, email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return
	}
	if err != nil {
		r.opts.Logger.Printf("Error fetching %s for %s: %v", r.opts.Name, email, err)
	} else {
		r.items.Set(items)
	}
	r.phase = SyncedRemote
	r.syncer = newSyncer(r.remote, email, r.opts)
}

// Update applies fn to a copy of the current list. While synced the new list
// is pushed in the background; while anonymous it is persisted locally
// before Update returns.
func (r *Replica[T]) Update(ctx context.Context, fn func([]T) []T) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opts.RequireIdentity && r.email == "" {
		return nil, session.ErrSignInRequired
	}

	next := r.items.Update(func(cur []T) []T {
		return fn(slices.Clone(cur))
	})

	switch r.phase {
	case SyncedRemote:
		if r.syncer != nil {
			r.syncer.push(next)
		}
	case LoadingRemote:
		// The fetched list replaces this once loading completes.
	default:
		if r.local != nil {
			if err := r.local.Save(ctx, next); err != nil {
				return slices.Clone(next), fmt.Errorf("persist local %s: %w", r.opts.Name, err)
			}
		}
	}
	return slices.Clone(next), nil
}

// Clear empties the list. While synced an explicit remote clear is queued
// ahead of any pending push so the push cannot resurrect the items.
func (r *Replica[T]) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items.Set(nil)

	switch r.phase {
	case SyncedRemote:
		if r.syncer != nil {
			r.syncer.clear()
		}
	case LoadingRemote:
	default:
		if r.local != nil {
			if err := r.local.Save(ctx, nil); err != nil {
				return fmt.Errorf("persist local %s: %w", r.opts.Name, err)
			}
		}
	}
	return nil
}

// Snapshot returns a copy of the current list.
func (r *Replica[T]) Snapshot() []T {
	return slices.Clone(r.items.Snapshot())
}

// Subscribe registers fn for list changes and returns the unsubscribe func.
func (r *Replica[T]) Subscribe(fn func([]T)) func() {
	return r.items.Subscribe(fn)
}

// Phase returns the current phase and the identity it is bound to.
func (r *Replica[T]) Phase() (Phase, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.email
}

// Flush blocks until every push queued so far has been attempted.
func (r *Replica[T]) Flush(ctx context.Context) error {
	r.mu.Lock()
	s := r.syncer
	r.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.flush(ctx)
}

// Close stops background synchronisation. Queued pushes are dropped.
func (r *Replica[T]) Close() {
	r.mu.Lock()
	s := r.syncer
	r.syncer = nil
	r.mu.Unlock()

	if s != nil {
		s.stop()
	}
}
