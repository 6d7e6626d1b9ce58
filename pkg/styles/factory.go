package styles

import (
	"reflect"
	"sync"

	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/metrics"
	"github.com/go-drift/piet/pkg/model"
)

// Factory caches Helpers by the value of their shared states and media
// query environment. Lookups hash the inputs and confirm candidates with a
// deep comparison.
type Factory struct {
	env     Env
	metrics *metrics.Recorder

	mu      sync.Mutex
	entries map[uint64][]*factoryEntry
}

type factoryEntry struct {
	shared []*model.SharedState
	mq     mediaquery.Helper
	helper *Helper
}

// NewFactory returns an empty factory. rec may be nil.
func NewFactory(env Env, rec *metrics.Recorder) *Factory {
	return &Factory{env: env, metrics: rec, entries: make(map[uint64][]*factoryEntry)}
}

// Get returns the cached Helper for (shared, mq), building it on a miss.
func (f *Factory) Get(shared []*model.SharedState, mq mediaquery.Helper) (*Helper, error) {
	key, cacheable := Fingerprint(struct {
		Shared []*model.SharedState
		MQ     mediaquery.Helper
	}{shared, mq})

	if cacheable {
		f.mu.Lock()
		for _, e := range f.entries[key] {
			if e.mq == mq && reflect.DeepEqual(e.shared, shared) {
				f.mu.Unlock()
				f.metrics.StyleCacheLookup(true)
				return e.helper, nil
			}
		}
		f.mu.Unlock()
	}
	f.metrics.StyleCacheLookup(false)

	h, err := NewHelper(shared, mq, f.env)
	if err != nil {
		return nil, err
	}
	if cacheable {
		f.mu.Lock()
		f.entries[key] = append(f.entries[key], &factoryEntry{shared: shared, mq: mq, helper: h})
		f.mu.Unlock()
	}
	return h, nil
}

// Len returns the number of cached helpers.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, es := range f.entries {
		n += len(es)
	}
	return n
}

// Purge drops every cached helper.
func (f *Factory) Purge() {
	f.mu.Lock()
	f.entries = make(map[uint64][]*factoryEntry)
	f.mu.Unlock()
}
