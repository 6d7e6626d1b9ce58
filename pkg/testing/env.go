package testing

import (
	"github.com/go-drift/piet/pkg/debug"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// TestingT is the subset of *testing.T used by the helpers in this
// package, allowing test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Env bundles fake host collaborators and the display parameters used to
// build frame contexts.
type Env struct {
	Assets   *FakeAssets
	Actions  *ActionRecorder
	LogData  *LogDataRecorder
	Events   *EventRecorder
	Custom   *FakeCustomElements
	Bindings host.BindingProvider

	Registry    *platform.Registry
	DebugLogger *debug.Logger
	Behavior    debug.Behavior

	FrameWidthPx int
	Density      float32
	Orientation  model.Orientation
}

// NewEnv returns an environment with fresh fakes, an in-memory view
// registry and a 400px wide frame at density 1.
func NewEnv() *Env {
	return &Env{
		Assets:       NewFakeAssets(),
		Actions:      &ActionRecorder{},
		LogData:      &LogDataRecorder{},
		Events:       &EventRecorder{},
		Custom:       &FakeCustomElements{},
		Registry:     platform.NewMemoryRegistry(),
		DebugLogger:  debug.NewLogger(nil),
		FrameWidthPx: 400,
		Density:      1,
	}
}

// Providers returns the fakes as host providers.
func (e *Env) Providers() host.Providers {
	return host.Providers{
		Assets:          e.Assets,
		CustomElements:  e.Custom,
		Bindings:        e.Bindings,
		LogData:         e.LogData,
		DefaultActions:  e.Actions,
		DefaultEventLog: e.Events,
	}.WithDefaults()
}

// StylesEnv returns the display parameters for style providers.
func (e *Env) StylesEnv() styles.Env {
	return styles.Env{Density: e.Density, DefaultCornerRadiusDp: e.Assets.CornerRadius}
}

// MediaQuery returns the media query environment of the configured frame.
func (e *Env) MediaQuery() mediaquery.Helper {
	return mediaquery.New(e.FrameWidthPx, e.Density, e.Orientation, e.Assets.DarkTheme)
}

// FrameContext builds the root context for f, failing the test on error.
func (e *Env) FrameContext(t TestingT, f *model.Frame, shared ...*model.SharedState) *frame.FrameContext {
	t.Helper()
	helper, err := styles.NewHelper(shared, e.MediaQuery(), e.StylesEnv())
	if err != nil {
		t.Fatalf("styles helper: %v", err)
		return nil
	}
	fc, err := frame.New(f, helper, frame.Options{
		DebugBehavior: e.Behavior,
		DebugLogger:   e.DebugLogger,
		ActionHandler: e.Actions,
		Providers:     e.Providers(),
	})
	if err != nil {
		t.Fatalf("frame context: %v", err)
		return nil
	}
	return fc
}

// TemplateContext derives the context for one instance of tmpl bound to
// values, failing the test on error.
func (e *Env) TemplateContext(t TestingT, fc *frame.FrameContext, tmpl *model.Template, values ...*model.BindingValue) *frame.FrameContext {
	t.Helper()
	tc, err := fc.CreateTemplateContext(tmpl, &model.BindingContext{BindingValues: values})
	if err != nil {
		t.Fatalf("template context: %v", err)
		return nil
	}
	return tc
}
