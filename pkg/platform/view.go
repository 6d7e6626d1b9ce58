// Package platform abstracts the host's native view toolkit.
//
// The engine only talks to views through these interfaces. Hosts register a
// factory per view type; the in-memory implementation in this package backs
// tests and the command line renderer.
package platform

import "github.com/go-drift/piet/pkg/graphics"

// View types created through the Registry.
const (
	ViewTypeText      = "piet/text"
	ViewTypeImage     = "piet/image"
	ViewTypeList      = "piet/linear_vertical"
	ViewTypeRow       = "piet/linear_horizontal"
	ViewTypeStack     = "piet/frame"
	ViewTypeContainer = "piet/container"
)

// Layout size sentinels understood by LayoutParams.
const (
	MatchParent = -1
	WrapContent = -2
)

// Visibility of a native view.
type Visibility int

const (
	Visible Visibility = iota
	Invisible
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return "visible"
	}
}

// Gravity bits, combinable with |.
type Gravity int

const (
	GravityNone             Gravity = 0
	GravityStart            Gravity = 1 << 0
	GravityCenterHorizontal Gravity = 1 << 1
	GravityEnd              Gravity = 1 << 2
	GravityTop              Gravity = 1 << 3
	GravityCenterVertical   Gravity = 1 << 4
	GravityBottom           Gravity = 1 << 5
)

// LayoutParams describe how a parent lays out a child.
type LayoutParams struct {
	Width       int
	Height      int
	Weight      float32
	Gravity     Gravity
	Margins     graphics.EdgeInsets
	Collapsible bool
}

// DefaultLayoutParams wraps content in both directions.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{Width: WrapContent, Height: WrapContent}
}

// GradientStop is one stop of a linear gradient.
type GradientStop struct {
	Color    graphics.Color
	Position float32
}

// Background is a solid color or a linear gradient.
type Background struct {
	Color    *graphics.Color
	Stops    []GradientStop
	AngleDeg int
}

// IsEmpty reports whether nothing is drawn.
func (b Background) IsEmpty() bool {
	return b.Color == nil && len(b.Stops) == 0
}

// Border is a stroke drawn over selected edges. Edges 0 means all.
type Border struct {
	WidthPx int
	Color   graphics.Color
	Edges   uint32
}

// Drawable is a decoded image ready for display.
type Drawable struct {
	URI      string
	WidthPx  int
	HeightPx int
}

// Typeface is a loaded font face.
type Typeface struct {
	Name   string
	Italic bool
}

// Font describes text rendering for a text view.
type Font struct {
	SizePx          float32
	Weight          int
	Italic          bool
	LineHeightPx    float32
	LetterSpacingPx float32
}

// Span is a styled range of a text view's text. Image spans replace the
// range with a drawable.
type Span struct {
	Start   int
	End     int
	Color   *graphics.Color
	Font    *Font
	Image   *Drawable
	OnClick func()
}

// View is a native view.
type View interface {
	ViewID() int64
	ViewType() string

	SetVisibility(v Visibility)
	Visibility() Visibility
	SetLayoutParams(lp LayoutParams)
	LayoutParams() LayoutParams
	SetMinimumHeight(px int)
	SetPadding(p graphics.EdgeInsets)
	Padding() graphics.EdgeInsets
	SetBackground(bg Background)
	Background() Background
	SetBorder(b Border)
	Border() Border
	SetCornerRadius(px int, corners uint32)
	CornerRadius() int
	SetElevation(px int)
	Elevation() int
	SetAlpha(alpha float32)
	Alpha() float32

	SetOnClickListener(fn func())
	SetOnLongClickListener(fn func())
	HasOnClickListener() bool
	HasOnLongClickListener() bool
	PerformClick() bool
	PerformLongClick() bool

	SetContentDescription(desc string)
	ContentDescription() string
	SetAccessibilityHeading(heading bool)
	IsAccessibilityHeading() bool

	// Bounds is the view rectangle in screen coordinates as last laid out
	// by the host.
	Bounds() graphics.Rect
	SetBounds(r graphics.Rect)
	Parent() ViewGroup
	// IsShown reports whether the view and all its ancestors are visible.
	IsShown() bool

	setParent(p ViewGroup)
}

// ViewGroup is a view holding ordered children.
type ViewGroup interface {
	View
	AddView(child View)
	RemoveView(child View)
	RemoveAllViews()
	ChildCount() int
	ChildAt(i int) View
	IndexOfChild(child View) int
}

// TextView displays text with optional spans.
type TextView interface {
	View
	SetText(text string)
	Text() string
	SetSpans(spans []Span)
	Spans() []Span
	SetTextColor(c graphics.Color)
	TextColor() graphics.Color
	SetFont(f Font)
	Font() Font
	SetTypeface(tf *Typeface)
	Typeface() *Typeface
	SetMaxLines(n int)
	MaxLines() int
	SetGravity(g Gravity)
	Gravity() Gravity
}

// ImageView displays a drawable.
type ImageView interface {
	View
	SetDrawable(d *Drawable)
	Drawable() *Drawable
	SetPlaceholder(bg Background)
	Placeholder() Background
	SetScaleType(s string)
	ScaleType() string
}
