package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// kindHooks is implemented by each adapter kind. The lifecycle calls the
// hooks at fixed points; the hooks never drive the lifecycle themselves.
type kindHooks interface {
	// checkModel rejects elements of the wrong kind.
	checkModel(el *model.Element) error
	onCreate(el *model.Element, fc *frame.FrameContext) error
	onBind(el *model.Element, fc *frame.FrameContext) error
	onUnbind()
	onRelease()
}

// lifecycle is the state machine shared by every adapter kind.
type lifecycle struct {
	factory *Factory
	hooks   kindHooks
	kind    Kind
	view    platform.View

	recyclerKey RecyclerKey
	templateKey *TemplateKey

	created bool
	bound   bool
	element *model.Element
	fc      *frame.FrameContext
	style   *styles.Provider

	widthPx  int
	heightPx int

	actions       *model.Actions
	logData       *model.LogData
	activeActions map[*model.VisibilityAction]struct{}

	// createStamp and bindStamp advance whenever work issued by the
	// previous create or bind becomes stale.
	createStamp uint64
	bindStamp   uint64
}

func newLifecycle(f *Factory, kind Kind, view platform.View, hooks kindHooks) lifecycle {
	return lifecycle{
		factory:  f,
		hooks:    hooks,
		kind:     kind,
		view:     view,
		widthPx:  styles.DimensionNotSet,
		heightPx: styles.DimensionNotSet,
	}
}

func (l *lifecycle) core() *lifecycle { return l }

func (l *lifecycle) View() platform.View            { return l.view }
func (l *lifecycle) Kind() Kind                     { return l.kind }
func (l *lifecycle) RecyclerKey() RecyclerKey       { return l.recyclerKey }
func (l *lifecycle) TemplateKey() *TemplateKey      { return l.templateKey }
func (l *lifecycle) ComputedWidthPx() int           { return l.widthPx }
func (l *lifecycle) ComputedHeightPx() int          { return l.heightPx }
func (l *lifecycle) RawModel() *model.Element       { return l.element }
func (l *lifecycle) IsCreated() bool                { return l.created }
func (l *lifecycle) IsBound() bool                  { return l.bound }
func (l *lifecycle) ElementStyle() *styles.Provider { return l.style }

func (l *lifecycle) HorizontalGravity(def platform.Gravity) platform.Gravity {
	if l.style == nil {
		return def
	}
	return l.style.GravityHorizontal(def)
}

func (l *lifecycle) VerticalGravity(def platform.Gravity) platform.Gravity {
	if l.style == nil {
		return def
	}
	return l.style.GravityVertical(def)
}

func (l *lifecycle) Gravity(defH, defV platform.Gravity) platform.Gravity {
	return l.HorizontalGravity(defH) | l.VerticalGravity(defV)
}

func (l *lifecycle) CreateAdapter(el *model.Element, fc *frame.FrameContext) error {
	if err := l.hooks.checkModel(el); err != nil {
		return err
	}
	vis, err := l.visibilityFor(el, fc)
	if err != nil {
		return err
	}
	return l.create(el, fc, vis)
}

// create runs creation for a resolved visibility. A GONE element only
// hides the view.
func (l *lifecycle) create(el *model.Element, fc *frame.FrameContext, vis model.Visibility) error {
	if l.created {
		return pieterrors.Fatalf(pieterrors.ErrAdapterState, "release adapter before creating")
	}
	l.view.SetVisibility(platformVisibility(vis))
	if vis == model.VisibilityGone {
		return nil
	}

	style, err := fc.MakeStyleFor(el.StyleReferences)
	if err != nil {
		return err
	}
	l.applyStyle(style)
	l.created = true
	l.createStamp++
	return l.hooks.onCreate(el, fc)
}

func (l *lifecycle) applyStyle(style *styles.Provider) {
	l.style = style
	style.ApplyElementStyles(l.view)
	l.widthPx = style.WidthPx()
	l.heightPx = style.HeightPx()
}

func (l *lifecycle) BindModel(el *model.Element, fc *frame.FrameContext) error {
	if err := l.hooks.checkModel(el); err != nil {
		return err
	}
	if l.bound {
		l.UnbindModel()
	}

	// The visibility binding is only consulted while bound.
	l.bound = true
	vis, err := l.visibilityFor(el, fc)
	if err != nil {
		l.bound = false
		return err
	}
	l.view.SetVisibility(platformVisibility(vis))
	if vis == model.VisibilityGone {
		l.bound = false
		return nil
	}
	if !l.created {
		if err := l.create(el, fc, vis); err != nil {
			l.bound = false
			return err
		}
	}

	l.element = el
	l.fc = fc
	l.bindStamp++

	if el.StyleReferences.HasStyleBinding() {
		style, err := fc.MakeStyleFor(el.StyleReferences)
		if err != nil {
			return err
		}
		l.applyStyle(style)
	}
	if err := l.bindActions(el, fc); err != nil {
		return err
	}
	if err := l.bindAccessibility(el, fc); err != nil {
		return err
	}
	if err := l.bindLogData(el, fc); err != nil {
		return err
	}
	return l.hooks.onBind(el, fc)
}

func (l *lifecycle) UnbindModel() {
	if !l.bound {
		return
	}
	l.view.SetOnClickListener(nil)
	l.view.SetOnLongClickListener(nil)
	l.view.SetContentDescription("")
	l.view.SetAccessibilityHeading(false)
	if l.logData != nil && l.fc != nil {
		l.fc.Providers().LogData.OnUnbind(l.logData, l.view)
	}
	l.hooks.onUnbind()

	l.logData = nil
	l.actions = nil
	l.activeActions = nil
	l.element = nil
	l.fc = nil
	l.bound = false
	l.bindStamp++
}

func (l *lifecycle) ReleaseAdapter() {
	l.UnbindModel()
	if l.created {
		l.hooks.onRelease()
	}
	l.created = false
	l.createStamp++
	l.style = nil
	l.widthPx = styles.DimensionNotSet
	l.heightPx = styles.DimensionNotSet
	l.view.SetVisibility(platform.Visible)
}

// visibilityFor resolves the element's visibility. A visibility binding
// is used only while bound; an absent binding falls back to the default.
func (l *lifecycle) visibilityFor(el *model.Element, fc *frame.FrameContext) (model.Visibility, error) {
	vis := el.Visibility.DefaultVisibility
	if ref := el.Visibility.OverridingBoundVisibility; ref != nil && l.bound {
		bound, err := fc.VisibilityFromBinding(*ref)
		if err != nil {
			return vis, err
		}
		if bound != nil {
			vis = *bound
		}
	}
	return vis, nil
}

func platformVisibility(v model.Visibility) platform.Visibility {
	switch v {
	case model.VisibilityInvisible:
		return platform.Invisible
	case model.VisibilityGone:
		return platform.Gone
	default:
		return platform.Visible
	}
}

func (l *lifecycle) bindAccessibility(el *model.Element, fc *frame.FrameContext) error {
	acc := el.Accessibility
	if acc == nil {
		return nil
	}
	var desc string
	switch {
	case acc.Description != nil:
		desc = acc.Description.Text
	case acc.DescriptionBinding != nil:
		v, err := fc.ParameterizedTextBindingValue(*acc.DescriptionBinding)
		if err != nil {
			return err
		}
		if t := v.ParameterizedText(); t != nil {
			desc = t.Text
		}
	}
	if desc != "" {
		l.view.SetContentDescription(desc)
	}
	for _, role := range acc.Roles {
		if role == model.AccessibilityRoleHeader {
			l.view.SetAccessibilityHeading(true)
		}
	}
	return nil
}

func (l *lifecycle) bindLogData(el *model.Element, fc *frame.FrameContext) error {
	logData := el.LogData
	if el.LogDataBinding != nil {
		bound, err := fc.LogDataFromBinding(*el.LogDataBinding)
		if err != nil {
			return err
		}
		if bound != nil {
			logData = bound
		}
	}
	if logData == nil {
		return nil
	}
	l.logData = logData
	fc.Providers().LogData.OnBind(logData, l.view)
	return nil
}

// TriggerViewActions fires this adapter's visibility actions. Containers
// extend it to their children.
func (l *lifecycle) TriggerViewActions(viewport graphics.Rect, fc *frame.FrameContext) {
	if !l.bound || !l.actions.HasVisibilityActions() {
		return
	}
	var proportion float32
	if l.view.IsShown() {
		proportion = l.view.Bounds().VisibleProportion(viewport)
	}
	l.updateVisibilityActions(proportion, fc)
}

func (l *lifecycle) TriggerHideActions(fc *frame.FrameContext) {
	if !l.bound || !l.actions.HasVisibilityActions() {
		return
	}
	l.updateVisibilityActions(0, fc)
}
