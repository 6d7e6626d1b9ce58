// Package piet binds declarative frames to platform views.
//
// A Manager holds the state shared by every frame in a session: host
// providers, the view registry, the adapter factory with its recycler
// pools and the styles helper cache. Frame adapters created by a Manager
// bind one frame at a time into a root view:
//
//	m := piet.NewManager(piet.Parameters{Providers: providers, Registry: registry})
//	fa, err := m.NewFrameAdapter(actions, events)
//	if err != nil {
//	    return err
//	}
//	if err := fa.BindModel(frame, shared, widthPx); err != nil {
//	    // The frame could not be bound at all; fa.View() shows the error
//	    // when the debug behavior allows it.
//	}
//	defer fa.UnbindModel()
//
// Fatal errors inside one content slot of a frame are reported through the
// debug logger and the event logger; sibling slots still bind.
package piet

import (
	"github.com/go-drift/piet/pkg/adapters"
	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/metrics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// Parameters configures a Manager.
type Parameters struct {
	// Providers are the host collaborators. Nil members use no-op defaults.
	Providers host.Providers
	// Registry creates platform views. Nil uses in-memory views.
	Registry *platform.Registry
	// DebugBehavior selects how recorded problems are surfaced.
	DebugBehavior debug.Behavior
	// Density is the display density in px per dp. Zero means 1.
	Density     float32
	Orientation model.Orientation

	Logger  *logging.Logger
	Metrics *metrics.Recorder
	// ErrorHandler receives every fatal error and recovered panic.
	ErrorHandler pieterrors.ErrorHandler

	// MaxPoolKeys and MaxPoolPerKey bound the recycler pools; zero uses
	// the adapters package defaults.
	MaxPoolKeys   int
	MaxPoolPerKey int
}

// Manager owns the session-scoped caches. It is not safe for concurrent
// use; bind frames from one goroutine.
type Manager struct {
	params  Parameters
	env     styles.Env
	factory *adapters.Factory
	styles  *styles.Factory
}

// NewManager returns a Manager for params.
func NewManager(params Parameters) *Manager {
	params.Providers = params.Providers.WithDefaults()
	if params.Registry == nil {
		params.Registry = platform.NewMemoryRegistry()
	}
	if params.Density <= 0 {
		params.Density = 1
	}
	env := styles.Env{
		Density:               params.Density,
		DefaultCornerRadiusDp: params.Providers.Assets.DefaultCornerRadius(),
	}
	return &Manager{
		params: params,
		env:    env,
		factory: adapters.NewFactory(params.Registry, adapters.Options{
			Logger:        params.Logger,
			Metrics:       params.Metrics,
			MaxPoolKeys:   params.MaxPoolKeys,
			MaxPoolPerKey: params.MaxPoolPerKey,
		}),
		styles: styles.NewFactory(env, params.Metrics),
	}
}

// Parameters returns the parameters with defaults applied.
func (m *Manager) Parameters() Parameters { return m.params }

// Factory returns the adapter factory.
func (m *Manager) Factory() *adapters.Factory { return m.factory }

// StylesFactory returns the styles helper cache.
func (m *Manager) StylesFactory() *styles.Factory { return m.styles }

// NewFrameAdapter returns an adapter binding frames into a new root view.
// Nil collaborators fall back to the providers' defaults.
func (m *Manager) NewFrameAdapter(actions host.ActionHandler, events host.EventLogger) (*FrameAdapter, error) {
	view, err := m.params.Registry.Create(platform.ViewTypeList)
	if err != nil {
		return nil, err
	}
	group, ok := view.(platform.ViewGroup)
	if !ok {
		m.params.Registry.Dispose(view.ViewID())
		return nil, errNotAGroup(view)
	}
	if actions == nil {
		actions = m.params.Providers.DefaultActions
	}
	if events == nil {
		events = m.params.Providers.DefaultEventLog
	}
	return &FrameAdapter{
		manager:     m,
		actions:     actions,
		events:      events,
		view:        group,
		debugLogger: debug.NewLogger(m.params.Logger),
		log:         m.params.Logger.With("component", "frame"),
	}, nil
}

// PurgeRecyclerPools drops every pooled adapter and cached styles helper.
func (m *Manager) PurgeRecyclerPools() {
	helpers := m.styles.Len()
	m.factory.PurgeRecyclerPools()
	m.styles.Purge()
	m.params.Logger.WithFields(map[string]any{"helpers": helpers}).Debug("styles cache purged")
}
