package platform

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrViewTypeNotFound is returned when no factory is registered for a type.
var ErrViewTypeNotFound = errors.New("platform: view type not registered")

// ViewFactory creates views of a specific type.
type ViewFactory interface {
	// Create creates a new view instance.
	Create(viewID int64) (View, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// Registry manages view factories and tracks live views.
type Registry struct {
	factories map[string]ViewFactory
	views     map[int64]View
	nextID    atomic.Int64
	mu        sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ViewFactory),
		views:     make(map[int64]View),
	}
}

// RegisterFactory registers a factory for a view type, replacing any
// previous one.
func (r *Registry) RegisterFactory(factory ViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create creates a new view of the given type.
func (r *Registry) Create(viewType string) (View, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)
	view, err := factory.Create(viewID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()
	return view, nil
}

// Dispose forgets a view. Disposing an unknown id is a no-op.
func (r *Registry) Dispose(viewID int64) {
	r.mu.Lock()
	delete(r.views, viewID)
	r.mu.Unlock()
}

// View returns a live view by ID.
func (r *Registry) View(viewID int64) View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[viewID]
}

// LiveViews returns the number of views created and not yet disposed.
func (r *Registry) LiveViews() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// FactoryFunc adapts a function to ViewFactory.
type FactoryFunc struct {
	Type string
	New  func(viewID int64) (View, error)
}

func (f FactoryFunc) Create(viewID int64) (View, error) { return f.New(viewID) }
func (f FactoryFunc) ViewType() string                  { return f.Type }
