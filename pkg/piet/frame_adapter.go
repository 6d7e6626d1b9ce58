package piet

import (
	"fmt"
	"time"

	"github.com/go-drift/piet/pkg/adapters"
	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

func errNotAGroup(v platform.View) error {
	return pieterrors.Fatalf(pieterrors.ErrUnsupportedFeature, "frame view %s is not a view group", v.ViewType())
}

// FrameAdapter binds frames into one root view. Each top-level content
// slot of a frame binds independently.
type FrameAdapter struct {
	manager     *Manager
	actions     host.ActionHandler
	events      host.EventLogger
	view        platform.ViewGroup
	debugLogger *debug.Logger
	log         *logging.Logger

	bound      bool
	frame      *model.Frame
	fc         *frame.FrameContext
	children   []adapters.Adapter
	slotErrors int
	debugView  *debugView
}

// View returns the root view.
func (a *FrameAdapter) View() platform.ViewGroup { return a.view }

// Children returns the top-level adapters in view order.
func (a *FrameAdapter) Children() []adapters.Adapter { return a.children }

// IsBound reports whether a frame is bound.
func (a *FrameAdapter) IsBound() bool { return a.bound }

// FrameContext returns the root context of the bound frame, or nil.
func (a *FrameAdapter) FrameContext() *frame.FrameContext { return a.fc }

// DebugLogger returns the messages recorded by the last bind.
func (a *FrameAdapter) DebugLogger() *debug.Logger { return a.debugLogger }

// BindModel binds f with the given shared states at frameWidthPx. A
// previously bound frame is unbound first.
//
// The returned error is non-nil only when the frame as a whole could not be
// bound, for example because of a template id collision. Errors within a
// content slot are recorded and the remaining slots still bind. Panics in
// host code are recovered here and returned as *errors.PanicError.
func (a *FrameAdapter) BindModel(f *model.Frame, shared []*model.SharedState, frameWidthPx int) (err error) {
	start := time.Now()
	a.UnbindModel()
	a.debugLogger.Clear()
	a.slotErrors = 0
	a.bound = true
	a.frame = f

	defer func() { a.finishBind(err, time.Since(start)) }()
	defer pieterrors.RecoverInto("piet.FrameAdapter.BindModel", &err)
	return a.bind(f, shared, frameWidthPx)
}

func (a *FrameAdapter) bind(f *model.Frame, shared []*model.SharedState, frameWidthPx int) error {
	params := a.manager.params
	assets := params.Providers.Assets
	mq := mediaquery.New(frameWidthPx, params.Density, params.Orientation, assets.IsDarkTheme())
	helper, err := a.manager.styles.Get(shared, mq)
	if err != nil {
		return err
	}
	fc, err := frame.New(f, helper, frame.Options{
		DebugBehavior: params.DebugBehavior,
		DebugLogger:   a.debugLogger,
		ActionHandler: a.actions,
		Providers:     params.Providers,
		FrameView:     a.view,
	})
	if err != nil {
		return err
	}
	a.fc = fc

	style, err := fc.MakeStyleFor(f.StyleReferences)
	if err != nil {
		return err
	}
	style.ApplyElementStyles(a.view)
	a.bindFrameActions(f)

	for i, content := range f.Contents {
		children, err := a.bindSlot(content, fc)
		if err != nil {
			a.slotFailed(i, err, children)
			continue
		}
		for _, child := range children {
			child.View().SetLayoutParams(topLevelLayoutParams(child))
			a.view.AddView(child.View())
		}
		a.children = append(a.children, children...)
	}
	return nil
}

// bindSlot creates and binds the adapters of one content slot. On error
// the adapters created so far are returned for release.
func (a *FrameAdapter) bindSlot(content model.Content, fc *frame.FrameContext) (children []adapters.Adapter, err error) {
	defer pieterrors.RecoverInto("piet.FrameAdapter.bindSlot", &err)
	factory := a.manager.factory

	switch v := content.Value.(type) {
	case model.ElementContent:
		child, err := factory.CreateAdapterForElement(v.Element, fc)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		return children, child.BindModel(v.Element, fc)

	case model.TemplateInvocationContent:
		return a.bindInvocation(v.Invocation, fc)

	case model.BoundElementContent:
		bv, err := fc.ElementBindingValue(v.Binding)
		if err != nil {
			return nil, err
		}
		el := bv.Element()
		if el == nil || bv.IsGone() {
			return nil, nil
		}
		child, err := factory.CreateAdapterForElement(el, fc)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		return children, child.BindModel(el, fc)

	case model.TemplateBindingContent:
		bv, err := fc.TemplateInvocationBindingValue(v.Binding)
		if err != nil {
			return nil, err
		}
		if bv.IsGone() {
			return nil, nil
		}
		return a.bindInvocation(bv.TemplateInvocation(), fc)
	}
	return nil, pieterrors.Fatalf(pieterrors.ErrUnhandledContentType, "Unhandled content type: %s", content.Kind())
}

func (a *FrameAdapter) bindInvocation(inv *model.TemplateInvocation, fc *frame.FrameContext) ([]adapters.Adapter, error) {
	if inv == nil {
		return nil, nil
	}
	tmpl, ok := fc.Template(inv.TemplateID)
	if !ok {
		return nil, fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingTemplate,
			fmt.Sprintf("Template not found: %s", inv.TemplateID))
	}
	var children []adapters.Adapter
	for _, bc := range inv.BindingContexts {
		child, err := a.manager.factory.Templates().CreateAndBindTemplateAdapter(tmpl, bc, fc)
		if err != nil {
			return children, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (a *FrameAdapter) slotFailed(slot int, err error, partial []adapters.Adapter) {
	for _, child := range partial {
		a.manager.factory.ReleaseAdapter(child)
	}
	a.slotErrors++
	a.reportFatal(err)
	a.log.WithFields(map[string]any{
		"slot": slot,
		"code": pieterrors.CodeOf(err).String(),
	}).Error(err, "content slot failed to bind")
}

func (a *FrameAdapter) reportFatal(err error) {
	a.debugLogger.RecordMessage(debug.SeverityError, pieterrors.CodeOf(err), pieterrors.MessageOf(err))
	a.manager.params.Metrics.FatalError(pieterrors.CodeOf(err))
	pieterrors.Report(a.manager.params.ErrorHandler, err)
}

// finishBind surfaces the messages of a bind and records its outcome.
func (a *FrameAdapter) finishBind(err error, elapsed time.Duration) {
	if err != nil {
		a.reportFatal(err)
		a.log.With("code", pieterrors.CodeOf(err).String()).Error(err, "frame failed to bind")
	}
	if a.manager.params.DebugBehavior.ShowsDebugViews() {
		a.showDebugView()
	}
	if codes := a.debugLogger.ErrorCodes(); len(codes) > 0 {
		a.events.LogEvents(codes)
	}
	a.manager.params.Metrics.FrameBind(err == nil && a.slotErrors == 0, elapsed.Seconds())
}

func (a *FrameAdapter) bindFrameActions(f *model.Frame) {
	if f.Actions == nil {
		return
	}
	if click := f.Actions.OnClickAction; click != nil {
		a.view.SetOnClickListener(func() {
			a.actions.HandleAction(click, model.ActionTypeClick, f, a.view, nil)
		})
	}
	if long := f.Actions.OnLongClickAction; long != nil {
		a.view.SetOnLongClickListener(func() {
			a.actions.HandleAction(long, model.ActionTypeLongClick, f, a.view, nil)
		})
	}
}

func topLevelLayoutParams(child adapters.Adapter) platform.LayoutParams {
	lp := platform.LayoutParams{
		Width:   platform.MatchParent,
		Height:  platform.WrapContent,
		Gravity: child.HorizontalGravity(platform.GravityStart),
	}
	if w := child.ComputedWidthPx(); w != styles.DimensionNotSet {
		lp.Width = w
	}
	if h := child.ComputedHeightPx(); h != styles.DimensionNotSet {
		lp.Height = h
	}
	if s := child.ElementStyle(); s != nil {
		s.ApplyMargins(&lp)
	}
	return lp
}

// TriggerViewActions fires view and hide actions of the bound tree for
// the visible viewport.
func (a *FrameAdapter) TriggerViewActions(viewport graphics.Rect) {
	if !a.bound || a.fc == nil {
		return
	}
	for _, child := range a.children {
		child.TriggerViewActions(viewport, a.fc)
	}
}

// UnbindModel fires hide actions, releases the top-level adapters and
// resets the root view.
func (a *FrameAdapter) UnbindModel() {
	if !a.bound {
		return
	}
	for _, child := range a.children {
		if a.fc != nil {
			child.TriggerHideActions(a.fc)
		}
		a.manager.factory.ReleaseAdapter(child)
	}
	a.children = nil
	a.removeDebugView()
	a.view.RemoveAllViews()
	a.view.SetOnClickListener(nil)
	a.view.SetOnLongClickListener(nil)
	styles.DefaultProvider(a.manager.env).ApplyElementStyles(a.view)

	a.fc = nil
	a.frame = nil
	a.bound = false
}

// Release unbinds and disposes the root view. The adapter must not be used
// afterwards.
func (a *FrameAdapter) Release() {
	a.UnbindModel()
	a.manager.params.Registry.Dispose(a.view.ViewID())
}
