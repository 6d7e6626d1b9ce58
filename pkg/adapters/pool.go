package adapters

import (
	"sync"

	"github.com/go-drift/piet/pkg/metrics"
)

// KeyedRecyclerPool holds released values by key. It keeps at most
// maxPerKey values per key and at most maxKeys keys; when a new key
// would exceed maxKeys the oldest key is evicted. Values dropped by the
// pool are passed to the evict callback.
type KeyedRecyclerPool[K comparable, V any] struct {
	name      string
	maxKeys   int
	maxPerKey int
	evict     func(V)
	metrics   *metrics.Recorder

	mu    sync.Mutex
	items map[K][]V
	order []K
}

// NewKeyedRecyclerPool returns an empty pool. evict and rec may be nil.
func NewKeyedRecyclerPool[K comparable, V any](name string, maxKeys, maxPerKey int, evict func(V), rec *metrics.Recorder) *KeyedRecyclerPool[K, V] {
	if maxKeys <= 0 {
		maxKeys = 1
	}
	if maxPerKey <= 0 {
		maxPerKey = 1
	}
	return &KeyedRecyclerPool[K, V]{
		name:      name,
		maxKeys:   maxKeys,
		maxPerKey: maxPerKey,
		evict:     evict,
		metrics:   rec,
		items:     make(map[K][]V),
	}
}

// Get removes and returns a value stored under key.
func (p *KeyedRecyclerPool[K, V]) Get(key K) (V, bool) {
	p.mu.Lock()
	values := p.items[key]
	var v V
	ok := len(values) > 0
	if ok {
		v = values[len(values)-1]
		p.items[key] = values[:len(values)-1]
	}
	p.mu.Unlock()
	p.metrics.PoolLookup(p.name, ok)
	return v, ok
}

// Put stores v under key, evicting v itself when the key is full.
func (p *KeyedRecyclerPool[K, V]) Put(key K, v V) {
	var dropped []V
	p.mu.Lock()
	values, known := p.items[key]
	switch {
	case len(values) >= p.maxPerKey:
		dropped = append(dropped, v)
	default:
		if !known {
			if len(p.order) >= p.maxKeys {
				oldest := p.order[0]
				p.order = p.order[1:]
				dropped = append(dropped, p.items[oldest]...)
				delete(p.items, oldest)
			}
			p.order = append(p.order, key)
		}
		p.items[key] = append(values, v)
	}
	p.mu.Unlock()
	p.drop(dropped)
}

// Len returns the number of pooled values.
func (p *KeyedRecyclerPool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, values := range p.items {
		n += len(values)
	}
	return n
}

// Clear evicts every pooled value.
func (p *KeyedRecyclerPool[K, V]) Clear() {
	var dropped []V
	p.mu.Lock()
	for _, key := range p.order {
		dropped = append(dropped, p.items[key]...)
	}
	p.items = make(map[K][]V)
	p.order = nil
	p.mu.Unlock()
	p.drop(dropped)
}

func (p *KeyedRecyclerPool[K, V]) drop(values []V) {
	if p.evict == nil {
		return
	}
	for _, v := range values {
		p.evict(v)
	}
}
