package model

// ActionType identifies which trigger fired an action.
type ActionType int

const (
	ActionTypeClick ActionType = iota
	ActionTypeLongClick
	ActionTypeView
	ActionTypeHide
)

func (t ActionType) String() string {
	switch t {
	case ActionTypeLongClick:
		return "LONG_CLICK"
	case ActionTypeView:
		return "VIEW"
	case ActionTypeHide:
		return "HIDE"
	default:
		return "CLICK"
	}
}

// Action is an opaque host payload.
type Action struct {
	Name    string
	Payload map[string]string
}

// VisibilityAction fires when the visible proportion of an element crosses
// ProportionVisible.
type VisibilityAction struct {
	ProportionVisible float32
	Action            *Action
}

// Actions are the interactions attached to an element.
type Actions struct {
	OnClickAction     *Action
	OnLongClickAction *Action
	OnViewActions     []*VisibilityAction
	OnHideActions     []*VisibilityAction
}

// IsEmpty reports whether no action of any kind is configured.
func (a *Actions) IsEmpty() bool {
	return a == nil || (a.OnClickAction == nil && a.OnLongClickAction == nil &&
		len(a.OnViewActions) == 0 && len(a.OnHideActions) == 0)
}

// HasVisibilityActions reports whether view or hide actions are present.
func (a *Actions) HasVisibilityActions() bool {
	return a != nil && (len(a.OnViewActions) > 0 || len(a.OnHideActions) > 0)
}
