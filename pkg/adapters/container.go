package adapters

import (
	"fmt"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// containerLayout is implemented by the container kinds.
type containerLayout interface {
	contentsOf(el *model.Element) []model.Content
	// childLayoutParams lays out a child contributed by content slot.
	childLayoutParams(slot int, child Adapter, fc *frame.FrameContext) (platform.LayoutParams, error)
}

// container holds the child adapters of a list, stack or grid row.
//
// Children are stored flat in content order. adaptersPerContent records
// how many children each content slot contributed. Inline slots are
// populated at creation and keep their count across binds; bound slots
// are populated on every bind and emptied on unbind.
type container struct {
	lifecycle
	group  platform.ViewGroup
	layout containerLayout

	children           []Adapter
	adaptersPerContent []int
	boundSlots         []bool
}

func errAdaptersPerContent() error {
	return pieterrors.Fatalf(pieterrors.ErrAdaptersPerContent, "Internal error in adapters per content")
}

// Children returns the child adapters in view order.
func (c *container) Children() []Adapter { return c.children }

// AdaptersPerContent returns the number of children per content slot.
func (c *container) AdaptersPerContent() []int { return c.adaptersPerContent }

func (c *container) onCreate(el *model.Element, fc *frame.FrameContext) error {
	if len(c.children) > 0 {
		return pieterrors.Fatalf(pieterrors.ErrAdapterState, "release adapter before creating")
	}
	contents := c.layout.contentsOf(el)
	c.adaptersPerContent = make([]int, len(contents))
	c.boundSlots = make([]bool, len(contents))

	for i, content := range contents {
		c.boundSlots[i] = content.IsBound()
		switch v := content.Value.(type) {
		case model.ElementContent:
			child, err := c.factory.CreateAdapterForElement(v.Element, fc)
			if err != nil {
				return err
			}
			c.children = append(c.children, child)
			c.adaptersPerContent[i] = 1
		case model.TemplateInvocationContent:
			tmpl, ok := c.template(v.Invocation, fc)
			if !ok {
				continue
			}
			for _, bc := range v.Invocation.BindingContexts {
				child, err := c.factory.Templates().CreateTemplateAdapter(tmpl, bc, fc)
				if err != nil {
					return err
				}
				c.children = append(c.children, child)
				c.adaptersPerContent[i]++
			}
		case model.BoundElementContent, model.TemplateBindingContent:
			// Resolved at bind time.
		default:
			return pieterrors.Fatalf(pieterrors.ErrUnhandledContentType, "Unhandled content type: %s", content.Kind())
		}
	}
	return c.syncViews(fc)
}

// template looks up the invoked template, reporting a missing one.
func (c *container) template(inv *model.TemplateInvocation, fc *frame.FrameContext) (*model.Template, bool) {
	if inv == nil {
		return nil, false
	}
	tmpl, ok := fc.Template(inv.TemplateID)
	if !ok {
		_ = fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingTemplate,
			fmt.Sprintf("Template not found: %s", inv.TemplateID))
	}
	return tmpl, ok
}

func (c *container) onBind(el *model.Element, fc *frame.FrameContext) error {
	contents := c.layout.contentsOf(el)
	if len(contents) != len(c.adaptersPerContent) {
		return errAdaptersPerContent()
	}

	children := make([]Adapter, 0, len(c.children))
	var fresh []Adapter
	fail := func(err error) error {
		for _, a := range fresh {
			c.factory.ReleaseAdapter(a)
		}
		for i, bound := range c.boundSlots {
			if bound {
				c.adaptersPerContent[i] = 0
			}
		}
		return err
	}

	next := 0
	for i, content := range contents {
		if content.IsBound() != c.boundSlots[i] {
			return fail(errAdaptersPerContent())
		}
		switch v := content.Value.(type) {
		case model.ElementContent:
			if c.adaptersPerContent[i] != 1 {
				return fail(errAdaptersPerContent())
			}
			child := c.children[next]
			next++
			if err := child.BindModel(v.Element, fc); err != nil {
				return fail(err)
			}
			children = append(children, child)

		case model.TemplateInvocationContent:
			var tmpl *model.Template
			n := 0
			if v.Invocation != nil {
				if t, ok := fc.Template(v.Invocation.TemplateID); ok {
					tmpl, n = t, len(v.Invocation.BindingContexts)
				}
			}
			if n != c.adaptersPerContent[i] {
				return fail(errAdaptersPerContent())
			}
			for j := 0; j < n; j++ {
				child := c.children[next]
				next++
				childFC, err := fc.CreateTemplateContext(tmpl, v.Invocation.BindingContexts[j])
				if err != nil {
					return fail(err)
				}
				if err := child.BindModel(tmpl.Element, childFC); err != nil {
					return fail(err)
				}
				children = append(children, child)
			}

		case model.BoundElementContent:
			bound, err := c.bindBoundElement(v.Binding, fc)
			if bound != nil {
				fresh = append(fresh, bound)
				children = append(children, bound)
				c.adaptersPerContent[i] = 1
			}
			if err != nil {
				return fail(err)
			}

		case model.TemplateBindingContent:
			bound, err := c.bindBoundTemplate(v.Binding, fc)
			fresh = append(fresh, bound...)
			children = append(children, bound...)
			c.adaptersPerContent[i] = len(bound)
			if err != nil {
				return fail(err)
			}
		}
	}
	c.children = children
	return c.syncViews(fc)
}

func (c *container) bindBoundElement(ref model.BindingRef, fc *frame.FrameContext) (Adapter, error) {
	v, err := fc.ElementBindingValue(ref)
	if err != nil {
		return nil, err
	}
	el := v.Element()
	if el == nil || v.IsGone() {
		return nil, nil
	}
	child, err := c.factory.CreateAdapterForElement(el, fc)
	if err != nil {
		return nil, err
	}
	if err := child.BindModel(el, fc); err != nil {
		c.factory.ReleaseAdapter(child)
		return nil, err
	}
	return child, nil
}

func (c *container) bindBoundTemplate(ref model.BindingRef, fc *frame.FrameContext) ([]Adapter, error) {
	v, err := fc.TemplateInvocationBindingValue(ref)
	if err != nil {
		return nil, err
	}
	inv := v.TemplateInvocation()
	if inv == nil || v.IsGone() {
		return nil, nil
	}
	tmpl, ok := c.template(inv, fc)
	if !ok {
		return nil, nil
	}
	var out []Adapter
	for _, bc := range inv.BindingContexts {
		child, err := c.factory.Templates().CreateAndBindTemplateAdapter(tmpl, bc, fc)
		if err != nil {
			return out, err
		}
		out = append(out, child)
	}
	return out, nil
}

// syncViews lays out the children and attaches their views in order.
func (c *container) syncViews(fc *frame.FrameContext) error {
	c.group.RemoveAllViews()
	next := 0
	for slot, n := range c.adaptersPerContent {
		for j := 0; j < n; j++ {
			child := c.children[next]
			next++
			lp, err := c.layout.childLayoutParams(slot, child, fc)
			if err != nil {
				return err
			}
			child.View().SetLayoutParams(lp)
			c.group.AddView(child.View())
		}
	}
	return nil
}

func (c *container) onUnbind() {
	kept := make([]Adapter, 0, len(c.children))
	next := 0
	for slot, n := range c.adaptersPerContent {
		for j := 0; j < n; j++ {
			child := c.children[next]
			next++
			if c.boundSlots[slot] {
				c.group.RemoveView(child.View())
				c.factory.ReleaseAdapter(child)
				continue
			}
			child.UnbindModel()
			kept = append(kept, child)
		}
		if c.boundSlots[slot] {
			c.adaptersPerContent[slot] = 0
		}
	}
	c.children = kept
}

func (c *container) onRelease() {
	for _, child := range c.children {
		c.factory.ReleaseAdapter(child)
	}
	c.children = nil
	c.adaptersPerContent = nil
	c.boundSlots = nil
	c.group.RemoveAllViews()
}

func (c *container) TriggerViewActions(viewport graphics.Rect, fc *frame.FrameContext) {
	c.lifecycle.TriggerViewActions(viewport, fc)
	for _, child := range c.children {
		child.TriggerViewActions(viewport, fc)
	}
}

func (c *container) TriggerHideActions(fc *frame.FrameContext) {
	c.lifecycle.TriggerHideActions(fc)
	for _, child := range c.children {
		child.TriggerHideActions(fc)
	}
}

// childSize returns the computed size or def when the child has none.
func childSize(px, def int) int {
	if px == styles.DimensionNotSet {
		return def
	}
	return px
}

func applyChildMargins(child Adapter, lp *platform.LayoutParams) {
	if s := child.ElementStyle(); s != nil {
		s.ApplyMargins(lp)
	}
}
