package storage

import (
	"context"
	"errors"
	"sync"
)

// State blob keys the engine persists under.
const (
	KeyProducts = "products"
	KeyOrders   = "orders"
)

// ErrKeyMissing is returned by Load when nothing has been stored under the
// key yet. Callers fall back to their defaults instead of failing startup.
var ErrKeyMissing = errors.New("storage: key missing")

// Gateway is the durability contract the engine requires: opaque JSON blobs
// behind get/set. Implementations must be safe for concurrent use.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// MemoryGateway keeps blobs in a map. Used by tests and by the memory
// storage driver for running the till without a database.
type MemoryGateway struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{blobs: make(map[string][]byte)}
}

func (g *MemoryGateway) Load(_ context.Context, key string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	blob, ok := g.blobs[key]
	if !ok {
		return nil, ErrKeyMissing
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (g *MemoryGateway) Save(_ context.Context, key string, value []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	blob := make([]byte, len(value))
	copy(blob, value)
	g.blobs[key] = blob
	return nil
}
