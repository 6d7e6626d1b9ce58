package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// listAdapter stacks its children vertically. Children fill the width
// unless they declare one.
type listAdapter struct {
	container
}

func newListAdapter(f *Factory, view platform.ViewGroup) *listAdapter {
	a := &listAdapter{}
	a.group = view
	a.layout = a
	a.lifecycle = newLifecycle(f, KindList, view, a)
	return a
}

func (a *listAdapter) checkModel(el *model.Element) error {
	if el.ElementList() == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing ElementList; has %s", el.Kind())
	}
	return nil
}

func (a *listAdapter) contentsOf(el *model.Element) []model.Content {
	return el.ElementList().Contents
}

func (a *listAdapter) childLayoutParams(_ int, child Adapter, _ *frame.FrameContext) (platform.LayoutParams, error) {
	lp := platform.LayoutParams{
		Width:   childSize(child.ComputedWidthPx(), platform.MatchParent),
		Height:  childSize(child.ComputedHeightPx(), platform.WrapContent),
		Gravity: child.HorizontalGravity(platform.GravityStart),
	}
	applyChildMargins(child, &lp)
	return lp, nil
}

// stackAdapter overlays its children in content order, the last on top.
type stackAdapter struct {
	container
}

func newStackAdapter(f *Factory, view platform.ViewGroup) *stackAdapter {
	a := &stackAdapter{}
	a.group = view
	a.layout = a
	a.lifecycle = newLifecycle(f, KindStack, view, a)
	return a
}

func (a *stackAdapter) checkModel(el *model.Element) error {
	if el.ElementStack() == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing ElementStack; has %s", el.Kind())
	}
	return nil
}

func (a *stackAdapter) contentsOf(el *model.Element) []model.Content {
	return el.ElementStack().Contents
}

func (a *stackAdapter) childLayoutParams(_ int, child Adapter, _ *frame.FrameContext) (platform.LayoutParams, error) {
	lp := platform.LayoutParams{
		Width:   childSize(child.ComputedWidthPx(), platform.WrapContent),
		Height:  childSize(child.ComputedHeightPx(), platform.WrapContent),
		Gravity: child.Gravity(platform.GravityStart, platform.GravityTop),
	}
	applyChildMargins(child, &lp)
	return lp, nil
}
