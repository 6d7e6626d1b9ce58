package piet

import (
	"fmt"

	"github.com/go-drift/piet/pkg/debug"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/platform"
)

// Debug view colors.
const (
	debugErrorBackground   graphics.Color = 0xFFFFCDD2
	debugWarningBackground graphics.Color = 0xFFFFF9C4
	debugTextColor         graphics.Color = 0xFF212121
)

// debugView lists the messages of a bind above the frame's content.
type debugView struct {
	group platform.ViewGroup
	views []platform.View
}

// showDebugView renders the messages the debug behavior shows. Nothing is
// added when there are none.
func (a *FrameAdapter) showDebugView() {
	behavior := a.manager.params.DebugBehavior
	var shown []debug.Message
	hasError := false
	for _, sev := range []debug.Severity{debug.SeverityError, debug.SeverityWarning} {
		if !behavior.Shows(sev) {
			continue
		}
		for _, m := range a.debugLogger.Messages(sev) {
			shown = append(shown, m)
			hasError = hasError || sev == debug.SeverityError
		}
	}
	if len(shown) == 0 {
		return
	}

	dv, err := a.newDebugView(shown, hasError)
	if err != nil {
		a.log.Error(err, "debug view could not be created")
		return
	}
	a.debugView = dv
	children := make([]platform.View, 0, a.view.ChildCount())
	for i := 0; i < a.view.ChildCount(); i++ {
		children = append(children, a.view.ChildAt(i))
	}
	a.view.RemoveAllViews()
	a.view.AddView(dv.group)
	for _, c := range children {
		a.view.AddView(c)
	}
}

func (a *FrameAdapter) newDebugView(messages []debug.Message, hasError bool) (*debugView, error) {
	registry := a.manager.params.Registry
	dv := &debugView{}
	v, err := registry.Create(platform.ViewTypeList)
	if err != nil {
		return nil, err
	}
	dv.views = append(dv.views, v)
	group, ok := v.(platform.ViewGroup)
	if !ok {
		dv.dispose(registry)
		return nil, errNotAGroup(v)
	}
	dv.group = group

	bg := debugWarningBackground
	if hasError {
		bg = debugErrorBackground
	}
	group.SetBackground(platform.Background{Color: &bg})
	group.SetLayoutParams(platform.LayoutParams{Width: platform.MatchParent, Height: platform.WrapContent})
	group.SetContentDescription("Piet debug messages")

	for _, m := range messages {
		v, err := registry.Create(platform.ViewTypeText)
		if err != nil {
			dv.dispose(registry)
			return nil, err
		}
		dv.views = append(dv.views, v)
		tv, ok := v.(platform.TextView)
		if !ok {
			dv.dispose(registry)
			return nil, fmt.Errorf("debug view: %s is not a text view", v.ViewType())
		}
		tv.SetText(fmt.Sprintf("%s %s: %s", m.Severity, m.Code, m.Text))
		tv.SetTextColor(debugTextColor)
		tv.SetLayoutParams(platform.LayoutParams{Width: platform.MatchParent, Height: platform.WrapContent})
		group.AddView(tv)
	}
	return dv, nil
}

func (dv *debugView) dispose(registry *platform.Registry) {
	if dv.group != nil {
		dv.group.RemoveAllViews()
	}
	for _, v := range dv.views {
		registry.Dispose(v.ViewID())
	}
	dv.views = nil
}

func (a *FrameAdapter) removeDebugView() {
	if a.debugView == nil {
		return
	}
	a.view.RemoveView(a.debugView.group)
	a.debugView.dispose(a.manager.params.Registry)
	a.debugView = nil
}
