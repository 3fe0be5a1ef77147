package replica

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

type syncOp[T any] struct {
	items []T
	clear bool
	seq   uint64
}

// syncer pushes whole lists for one identity, strictly in order. At most one
// operation waits behind the one in flight; a newer operation replaces it.
type syncer[T any] struct {
	remote  Remote[T]
	email   string
	name    string
	timeout time.Duration
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	pending  *syncOp[T]
	queued   uint64
	acked    uint64
	progress chan struct{}
}

func newSyncer[T any](remote Remote[T], email string, opts Options) *syncer[T] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &syncer[T]{
		remote:   remote,
		email:    email,
		name:     opts.Name,
		timeout:  opts.SyncTimeout,
		logger:   opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		progress: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *syncer[T]) push(items []T) {
	s.enqueue(syncOp[T]{items: items})
}

func (s *syncer[T]) clear() {
	s.enqueue(syncOp[T]{clear: true})
}

func (s *syncer[T]) enqueue(op syncOp[T]) {
	s.mu.Lock()
	s.queued++
	op.seq = s.queued
	s.pending = &op
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *syncer[T]) run() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			op := s.pending
			s.pending = nil
			s.mu.Unlock()
			if op == nil {
				break
			}

			s.apply(op)

			s.mu.Lock()
			s.acked = op.seq
			close(s.progress)
			s.progress = make(chan struct{})
			s.mu.Unlock()

			if s.ctx.Err() != nil {
				return
			}
		}
	}
}

func (s *syncer[T]) apply(op *syncOp[T]) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var err error
	if op.clear {
		err = s.remote.Clear(ctx, s.email)
	} else {
		err = s.remote.Replace(ctx, s.email, op.items)
	}

	// Failures are only logged; the next mutation pushes the full list again.
	if err != nil && !errors.Is(s.ctx.Err(), context.Canceled) {
		s.logger.Printf("Error syncing %s for %s: %v", s.name, s.email, err)
	}
}

func (s *syncer[T]) flush(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.acked >= s.queued {
			s.mu.Unlock()
			return nil
		}
		ch := s.progress
		s.mu.Unlock()

		select {
		case <-ch:
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *syncer[T]) stop() {
	s.cancel()
	<-s.done
}
