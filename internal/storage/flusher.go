package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	flushRetryBase = 100 * time.Millisecond
	flushRetryCap  = 3 * time.Second
)

// Flusher is the write-behind half of the persistence gateway. Mutations
// enqueue the latest snapshot per key and return immediately; a worker
// goroutine writes it out, retrying failures with capped backoff. In-memory
// state stays authoritative the whole time. Close drains what is still
// pending so the last mutations survive shutdown.
type Flusher struct {
	gw Gateway

	mu      sync.Mutex
	pending map[string][]byte

	wake      chan struct{}
	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewFlusher(gw Gateway) *Flusher {
	f := &Flusher{
		gw:      gw,
		pending: make(map[string][]byte),
		wake:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go f.run()
	return f
}

// Enqueue records the latest snapshot for key. Only the newest value per key
// is kept; older unwritten snapshots are superseded.
func (f *Flusher) Enqueue(key string, value []byte) {
	f.mu.Lock()
	f.pending[key] = value
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Flusher) run() {
	defer close(f.done)
	for {
		select {
		case <-f.closed:
			return
		case <-f.wake:
		}
		for {
			key, value, ok := f.take()
			if !ok {
				break
			}
			if aborted := f.writeWithRetry(key, value); aborted {
				return
			}
		}
	}
}

func (f *Flusher) take() (string, []byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, value := range f.pending {
		delete(f.pending, key)
		return key, value, true
	}
	return "", nil, false
}

// writeWithRetry reports true when it gave up because the flusher is
// closing; the snapshot is handed back for the shutdown drain.
func (f *Flusher) writeWithRetry(key string, value []byte) bool {
	backoff := flushRetryBase
	for {
		err := f.gw.Save(context.Background(), key, value)
		if err == nil {
			return false
		}
		log.Printf("[STORAGE] [WARN] flush %s failed, retrying in %s: %v", key, backoff, err)

		select {
		case <-f.closed:
			// Hand the snapshot back so the shutdown drain gets a last try,
			// unless a newer one has been enqueued meanwhile.
			f.mu.Lock()
			if _, newer := f.pending[key]; !newer {
				f.pending[key] = value
			}
			f.mu.Unlock()
			return true
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > flushRetryCap {
			backoff = flushRetryCap
		}
	}
}

// Close stops the worker and writes out anything still pending. Returns the
// first write error; unwritten snapshots are lost at that point.
func (f *Flusher) Close(ctx context.Context) error {
	f.closeOnce.Do(func() { close(f.closed) })

	select {
	case <-f.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	var firstErr error
	for {
		key, value, ok := f.take()
		if !ok {
			break
		}
		if err := f.gw.Save(ctx, key, value); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("final flush %s: %w", key, err)
		}
	}
	return firstErr
}
