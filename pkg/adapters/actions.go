package adapters

import (
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// bindActions resolves inline or bound actions and wires click listeners.
// An absent actions binding leaves the view without listeners.
func (l *lifecycle) bindActions(el *model.Element, fc *frame.FrameContext) error {
	actions := el.Actions
	if el.ActionsBinding != nil {
		bound, err := fc.ActionsFromBinding(*el.ActionsBinding)
		if err != nil {
			return err
		}
		actions = bound
	}
	l.actions = actions
	l.activeActions = nil
	if actions == nil {
		l.view.SetOnClickListener(nil)
		l.view.SetOnLongClickListener(nil)
		return nil
	}
	l.view.SetOnClickListener(actionListener(actions.OnClickAction, model.ActionTypeClick, fc, l.view, l.currentLogData))
	l.view.SetOnLongClickListener(actionListener(actions.OnLongClickAction, model.ActionTypeLongClick, fc, l.view, l.currentLogData))
	return nil
}

func (l *lifecycle) currentLogData() *model.LogData { return l.logData }

// actionListener returns a listener dispatching action, or nil when there
// is no action. Log data is read when the listener fires.
func actionListener(action *model.Action, actionType model.ActionType, fc *frame.FrameContext, view platform.View, logData func() *model.LogData) func() {
	if action == nil {
		return nil
	}
	return func() {
		var ld *model.LogData
		if logData != nil {
			ld = logData()
		}
		fc.ActionHandler().HandleAction(action, actionType, fc.Frame(), view, ld)
	}
}

// updateVisibilityActions fires view actions whose threshold the
// proportion reaches and hide actions whose threshold it falls below. Each
// action fires once while its condition holds and re-arms when it stops
// holding.
func (l *lifecycle) updateVisibilityActions(proportion float32, fc *frame.FrameContext) {
	if l.activeActions == nil {
		l.activeActions = make(map[*model.VisibilityAction]struct{})
	}
	for _, va := range l.actions.OnViewActions {
		l.updateVisibilityAction(va, proportion >= va.ProportionVisible, model.ActionTypeView, fc)
	}
	for _, va := range l.actions.OnHideActions {
		l.updateVisibilityAction(va, proportion < va.ProportionVisible, model.ActionTypeHide, fc)
	}
}

func (l *lifecycle) updateVisibilityAction(va *model.VisibilityAction, holds bool, actionType model.ActionType, fc *frame.FrameContext) {
	if va == nil {
		return
	}
	if !holds {
		delete(l.activeActions, va)
		return
	}
	if _, active := l.activeActions[va]; active {
		return
	}
	l.activeActions[va] = struct{}{}
	if va.Action != nil {
		fc.ActionHandler().HandleAction(va.Action, actionType, fc.Frame(), l.view, l.logData)
	}
}
