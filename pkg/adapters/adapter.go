// Package adapters turns bound elements into platform views.
//
// Every element kind has an adapter that owns one platform view and moves
// through a four-phase lifecycle:
//
//	CreateAdapter -> BindModel <-> UnbindModel -> ReleaseAdapter
//
// Creation builds the structure that depends only on the element and its
// styles. Binding applies the values that change per binding context.
// Released adapters return to recycler pools owned by the Factory and are
// reused for later elements with the same recycler key.
//
// Adapters are driven from a single goroutine. Asynchronous image and
// typeface loads complete on that goroutine and are discarded when the
// adapter has been unbound or rebound since the request was issued.
package adapters

import (
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// Kind identifies an adapter implementation.
type Kind int

const (
	KindUnknown Kind = iota
	KindParameterizedText
	KindChunkedText
	KindImage
	KindCustom
	KindList
	KindStack
	KindGridRow
)

func (k Kind) String() string {
	switch k {
	case KindParameterizedText:
		return "parameterized_text"
	case KindChunkedText:
		return "chunked_text"
	case KindImage:
		return "image"
	case KindCustom:
		return "custom"
	case KindList:
		return "list"
	case KindStack:
		return "stack"
	case KindGridRow:
		return "grid_row"
	default:
		return "unknown"
	}
}

// Adapter renders one element into one platform view.
type Adapter interface {
	// CreateAdapter builds the view structure for el. It fails when the
	// adapter was already created and not released since.
	CreateAdapter(el *model.Element, fc *frame.FrameContext) error
	// BindModel applies el's bound values, creating the adapter first if
	// needed. A GONE element is not bound.
	BindModel(el *model.Element, fc *frame.FrameContext) error
	// UnbindModel clears bound values. It is a no-op when not bound.
	UnbindModel()
	// ReleaseAdapter unbinds and resets the adapter for reuse.
	ReleaseAdapter()

	// TriggerViewActions fires view and hide actions for the visible
	// proportion of the view within viewport.
	TriggerViewActions(viewport graphics.Rect, fc *frame.FrameContext)
	// TriggerHideActions fires hide actions as if the view left the screen.
	TriggerHideActions(fc *frame.FrameContext)

	View() platform.View
	Kind() Kind
	RecyclerKey() RecyclerKey
	// TemplateKey is non-nil for the root adapter of a template instance.
	TemplateKey() *TemplateKey

	ComputedWidthPx() int
	ComputedHeightPx() int
	HorizontalGravity(def platform.Gravity) platform.Gravity
	VerticalGravity(def platform.Gravity) platform.Gravity
	Gravity(defH, defV platform.Gravity) platform.Gravity
	ElementStyle() *styles.Provider
	// RawModel is the bound element, nil when unbound.
	RawModel() *model.Element

	IsCreated() bool
	IsBound() bool

	core() *lifecycle
}

// RecyclerKey matches released adapters to later creation requests.
// Values are comparable.
type RecyclerKey any

type kindKey struct {
	kind Kind
}

type textRecyclerKey struct {
	kind Kind
	font styles.TextKey
}
