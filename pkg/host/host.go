// Package host declares the collaborators an embedding application
// provides to the engine: asset loading, action handling, event logging,
// custom elements and host-supplied binding values.
package host

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// Cancelable is returned by asynchronous requests. Cancel must be safe to
// call more than once and after the request completed.
type Cancelable interface {
	Cancel()
}

// CancelFunc adapts a function to Cancelable.
type CancelFunc func()

func (f CancelFunc) Cancel() {
	if f != nil {
		f()
	}
}

// NoopCancel is a Cancelable that does nothing.
var NoopCancel Cancelable = CancelFunc(nil)

// AssetProvider loads images and typefaces and reports display settings.
// Consumers run on the goroutine that binds frames, either synchronously
// before the request returns or later. A consumer may receive nil when the
// asset could not be loaded. Image dimensions of zero are unbounded.
type AssetProvider interface {
	GetImage(img *model.Image, widthPx, heightPx int, consumer func(*platform.Drawable)) Cancelable
	GetTypeface(name string, italic bool, consumer func(*platform.Typeface)) Cancelable
	DefaultCornerRadius() int
	IsDarkTheme() bool
	IsRtL() bool
}

// ActionHandler receives fired actions.
type ActionHandler interface {
	HandleAction(action *model.Action, actionType model.ActionType, frame *model.Frame, view platform.View, logData *model.LogData)
}

// ActionHandlerFunc adapts a function to ActionHandler.
type ActionHandlerFunc func(action *model.Action, actionType model.ActionType, frame *model.Frame, view platform.View, logData *model.LogData)

func (f ActionHandlerFunc) HandleAction(action *model.Action, actionType model.ActionType, frame *model.Frame, view platform.View, logData *model.LogData) {
	f(action, actionType, frame, view, logData)
}

// EventLogger receives the error codes recorded while binding a frame.
type EventLogger interface {
	LogEvents(codes []pieterrors.ErrorCode)
}

// LogDataCallback is notified when elements carrying log data are bound
// and unbound.
type LogDataCallback interface {
	OnBind(logData *model.LogData, view platform.View)
	OnUnbind(logData *model.LogData, view platform.View)
}

// CustomElementProvider renders custom elements.
type CustomElementProvider interface {
	CreateCustomElement(data *model.CustomElementData) (platform.View, error)
	ReleaseCustomView(view platform.View, data *model.CustomElementData)
}

// Providers bundles the host collaborators used by one manager.
type Providers struct {
	Assets          AssetProvider
	CustomElements  CustomElementProvider
	Bindings        BindingProvider
	LogData         LogDataCallback
	DefaultActions  ActionHandler
	DefaultEventLog EventLogger
}

// WithDefaults returns a copy of p with nil collaborators replaced by
// no-op implementations.
func (p Providers) WithDefaults() Providers {
	if p.Assets == nil {
		p.Assets = NoAssets{}
	}
	if p.CustomElements == nil {
		p.CustomElements = NoCustomElements{}
	}
	if p.Bindings == nil {
		p.Bindings = DefaultBindingProvider{}
	}
	if p.LogData == nil {
		p.LogData = noLogData{}
	}
	if p.DefaultActions == nil {
		p.DefaultActions = ActionHandlerFunc(func(*model.Action, model.ActionType, *model.Frame, platform.View, *model.LogData) {})
	}
	if p.DefaultEventLog == nil {
		p.DefaultEventLog = noEvents{}
	}
	return p
}

// NoAssets never delivers images or typefaces.
type NoAssets struct{}

func (NoAssets) GetImage(*model.Image, int, int, func(*platform.Drawable)) Cancelable {
	return NoopCancel
}

func (NoAssets) GetTypeface(string, bool, func(*platform.Typeface)) Cancelable {
	return NoopCancel
}

func (NoAssets) DefaultCornerRadius() int { return 0 }
func (NoAssets) IsDarkTheme() bool        { return false }
func (NoAssets) IsRtL() bool              { return false }

// NoCustomElements renders every custom element as an empty container.
type NoCustomElements struct{}

func (NoCustomElements) CreateCustomElement(*model.CustomElementData) (platform.View, error) {
	return platform.NewBaseView(0, platform.ViewTypeContainer), nil
}

func (NoCustomElements) ReleaseCustomView(platform.View, *model.CustomElementData) {}

type noLogData struct{}

func (noLogData) OnBind(*model.LogData, platform.View)   {}
func (noLogData) OnUnbind(*model.LogData, platform.View) {}

type noEvents struct{}

func (noEvents) LogEvents([]pieterrors.ErrorCode) {}
