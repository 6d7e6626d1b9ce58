// Package frame resolves bindings, templates and styles for one frame.
//
// A FrameContext is created per frame bind and derived once per template
// instantiation. It holds no mutable state after construction.
package frame

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// Options carries the per-frame collaborators shared by a root context and
// every template context derived from it.
type Options struct {
	DebugBehavior debug.Behavior
	DebugLogger   *debug.Logger
	ActionHandler host.ActionHandler
	Providers     host.Providers
	FrameView     platform.View
}

// FrameContext is the binding and style environment for a frame or a
// template instance within it.
type FrameContext struct {
	frame    *model.Frame
	styles   *styles.Helper
	styleMap styles.StyleMap
	// templates holds shared-state templates followed by the frame's own.
	templates map[string]*model.Template
	// templatesKey fingerprints the frame's own active templates.
	templatesKey uint64
	// bindings is nil for the root context, which has no binding values.
	bindings map[string]*model.BindingValue
	opts     *Options
}

// New creates the root context for frame. Frame templates and active
// shared-state templates share one namespace; a collision is fatal.
func New(frame *model.Frame, helper *styles.Helper, opts Options) (*FrameContext, error) {
	if frame == nil {
		return nil, pieterrors.Fatalf(pieterrors.ErrInvalidDocument, "no frame to bind")
	}
	opts.Providers = opts.Providers.WithDefaults()
	if opts.ActionHandler == nil {
		opts.ActionHandler = opts.Providers.DefaultActions
	}
	if opts.DebugLogger == nil {
		opts.DebugLogger = debug.NewLogger(nil)
	}

	templates := make(map[string]*model.Template)
	var own []*model.Template
	for _, id := range helper.TemplateIDs() {
		t, _ := helper.Template(id)
		templates[id] = t
	}
	for _, t := range frame.Templates {
		if t == nil || !helper.MediaQuery().AreMediaQueriesMet(t.Conditions) {
			continue
		}
		if _, dup := templates[t.TemplateID]; dup {
			return nil, pieterrors.Fatalf(pieterrors.ErrDuplicateTemplate,
				"Template key '%s' already defined", t.TemplateID)
		}
		templates[t.TemplateID] = t
		own = append(own, t)
	}

	fc := &FrameContext{
		frame:        frame,
		styles:       helper,
		templates:    templates,
		templatesKey: templatesKey(own),
		opts:         &opts,
	}
	m, err := fc.styleMapFor(frame.Stylesheets)
	if err != nil {
		return nil, err
	}
	fc.styleMap = m
	return fc, nil
}

// CreateTemplateContext derives the context for one instantiation of
// template with bindingContext. Values marked as transcluded take the
// parent's value with the named id; a missing parent value leaves the id
// unbound so the usual lookup policy applies when it is read.
func (fc *FrameContext) CreateTemplateContext(template *model.Template, bindingContext *model.BindingContext) (*FrameContext, error) {
	if template == nil {
		return nil, pieterrors.Fatalf(pieterrors.ErrMissingTemplate, "no template to instantiate")
	}
	declared, err := bindingContext.Index()
	if err != nil {
		return nil, err
	}
	bindings := make(map[string]*model.BindingValue, len(declared))
	for id, v := range declared {
		if parentID := v.FromTranscludingTemplate; parentID != "" {
			parent := fc.bindings[parentID]
			if parent == nil {
				continue
			}
			bindings[id] = parent.WithID(id)
			continue
		}
		bindings[id] = v
	}

	m, err := fc.styleMapFor(template.Stylesheets)
	if err != nil {
		return nil, err
	}
	return &FrameContext{
		frame:        fc.frame,
		styles:       fc.styles,
		styleMap:     m,
		templates:    fc.templates,
		templatesKey: fc.templatesKey,
		bindings:     bindings,
		opts:         fc.opts,
	}, nil
}

// unhashedTemplates numbers frames whose templates cannot be fingerprinted.
var unhashedTemplates atomic.Uint64

func templatesKey(own []*model.Template) uint64 {
	if len(own) == 0 {
		return 0
	}
	if key, ok := styles.Fingerprint(own); ok {
		return key
	}
	// Never equal to another frame's key.
	return unhashedTemplates.Add(1)
}

func (fc *FrameContext) styleMapFor(sheets model.Stylesheets) (styles.StyleMap, error) {
	for _, id := range fc.styles.MissingStylesheetIDs(sheets) {
		// Warnings never escalate, so the error is always nil.
		_ = fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingStylesheet,
			fmt.Sprintf("Stylesheet not found: %s", id))
	}
	return fc.styles.StyleMap(sheets)
}

// Frame returns the frame being bound.
func (fc *FrameContext) Frame() *model.Frame { return fc.frame }

// TemplatesKey identifies the frame's own templates. Contexts of frames
// declaring equal templates share a key.
func (fc *FrameContext) TemplatesKey() uint64 { return fc.templatesKey }

// StylesHelper returns the helper for the frame's shared states.
func (fc *FrameContext) StylesHelper() *styles.Helper { return fc.styles }

// Env returns the display parameters.
func (fc *FrameContext) Env() styles.Env { return fc.styles.Env() }

// ActionHandler returns the handler for fired actions.
func (fc *FrameContext) ActionHandler() host.ActionHandler { return fc.opts.ActionHandler }

// Providers returns the host collaborators.
func (fc *FrameContext) Providers() host.Providers { return fc.opts.Providers }

// DebugLogger returns the logger collecting messages for this bind.
func (fc *FrameContext) DebugLogger() *debug.Logger { return fc.opts.DebugLogger }

// DebugBehavior returns the configured debug behavior.
func (fc *FrameContext) DebugBehavior() debug.Behavior { return fc.opts.DebugBehavior }

// FrameView returns the root view of the frame, if any.
func (fc *FrameContext) FrameView() platform.View { return fc.opts.FrameView }

// HasBindingValues reports whether the context was derived for a template
// instance.
func (fc *FrameContext) HasBindingValues() bool { return fc.bindings != nil }

// Template returns the template with id.
func (fc *FrameContext) Template(id string) (*model.Template, bool) {
	t, ok := fc.templates[id]
	return t, ok
}

// MakeStyleFor resolves stack against this context's styles on top of the
// default style.
func (fc *FrameContext) MakeStyleFor(stack model.StyleIdsStack) (*styles.Provider, error) {
	return fc.styles.ProviderFor(stack, fc.styleMap, fc)
}

// MediaQueryStylesheets returns the shared-state stylesheets template
// references by id that carry media query conditions. Inline stylesheets
// and unknown ids are ignored.
func (fc *FrameContext) MediaQueryStylesheets(template *model.Template) []*model.Stylesheet {
	var out []*model.Stylesheet
	for _, id := range template.Stylesheets.StylesheetIDs {
		if sheet, ok := fc.styles.DeclaredStylesheet(id); ok && len(sheet.Conditions) > 0 {
			out = append(out, sheet)
		}
	}
	return out
}

// FilterImageSourcesByMediaQueryCondition returns a copy of img keeping,
// in order, the sources without conditions or whose conditions hold.
func (fc *FrameContext) FilterImageSourcesByMediaQueryCondition(img *model.Image) *model.Image {
	if img == nil {
		return nil
	}
	out := *img
	out.Sources = nil
	mq := fc.styles.MediaQuery()
	for _, src := range img.Sources {
		if src != nil && mq.AreMediaQueriesMet(src.Conditions) {
			out.Sources = append(out.Sources, src)
		}
	}
	return &out
}

// ReportMessage records a message in the debug logger. In strict mode an
// ERROR message is returned as a fatal error.
func (fc *FrameContext) ReportMessage(sev debug.Severity, code pieterrors.ErrorCode, msg string) error {
	fc.opts.DebugLogger.RecordMessage(sev, code, msg)
	if sev == debug.SeverityError && fc.opts.DebugBehavior == debug.BehaviorStrict {
		return pieterrors.Fatalf(code, "%s", msg)
	}
	return nil
}

// ReportError records err as an ERROR message with its code.
func (fc *FrameContext) ReportError(err error) {
	fc.opts.DebugLogger.RecordMessage(debug.SeverityError, pieterrors.CodeOf(err), pieterrors.MessageOf(err))
}
