package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var errAbandoned = errors.New("history database was abandoned after a timeout")

// Pending is a store that is still being opened in the background, so a slow
// database does not delay the program it records.
type Pending struct {
	done chan struct{}

	mu        sync.Mutex
	completed bool
	abandoned bool
	store     *Store
	err       error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// OpenAsync starts opening the store named by dsn and returns at once.
func OpenAsync(ctx context.Context, dsn string) *Pending {
	p := newPending()
	go func() {
		store, err := Open(ctx, dsn)
		p.complete(store, err)
	}()
	return p
}

// complete publishes the result of the open. A store that arrives after a
// waiter gave up is closed, since nobody will use it.
func (p *Pending) complete(store *Store, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		return
	}
	p.completed = true

	if p.abandoned {
		if store != nil {
			if cerr := store.Close(); cerr != nil {
				slog.Warn("failed to close late history store", slog.Any("error", cerr))
			}
		}
		store, err = nil, errAbandoned
	}
	p.store, p.err = store, err
	close(p.done)
}

// Wait blocks until the store is open or timeout elapses. After a timeout
// the store is given up for good.
func (p *Pending) Wait(timeout time.Duration) (*Store, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.done:
		return p.store, p.err
	case <-timer.C:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		// the open finished while the timer fired
		return p.store, p.err
	}
	p.abandoned = true
	return nil, fmt.Errorf("history database not ready after %s", timeout)
}
