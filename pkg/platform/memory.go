package platform

import (
	"fmt"
	"strings"

	"github.com/go-drift/piet/pkg/graphics"
)

// BaseView is an in-memory View. Host view types embed it to satisfy the
// View interface and override what they render natively.
type BaseView struct {
	viewID       int64
	viewType     string
	visibility   Visibility
	layout       LayoutParams
	minHeight    int
	padding      graphics.EdgeInsets
	background   Background
	border       Border
	cornerRadius int
	corners      uint32
	elevation    int
	alpha        float32
	onClick      func()
	onLongClick  func()
	description  string
	heading      bool
	bounds       graphics.Rect
	parent       ViewGroup
}

// NewBaseView returns a visible view with default layout params.
func NewBaseView(viewID int64, viewType string) *BaseView {
	v := &BaseView{}
	v.Init(viewID, viewType)
	return v
}

// Init resets v to a visible view with default layout params.
func (v *BaseView) Init(viewID int64, viewType string) {
	*v = BaseView{viewID: viewID, viewType: viewType, layout: DefaultLayoutParams(), alpha: 1}
}

func (v *BaseView) ViewID() int64                     { return v.viewID }
func (v *BaseView) ViewType() string                  { return v.viewType }
func (v *BaseView) SetVisibility(vis Visibility)      { v.visibility = vis }
func (v *BaseView) Visibility() Visibility            { return v.visibility }
func (v *BaseView) SetLayoutParams(lp LayoutParams)   { v.layout = lp }
func (v *BaseView) LayoutParams() LayoutParams        { return v.layout }
func (v *BaseView) SetMinimumHeight(px int)           { v.minHeight = px }
func (v *BaseView) SetPadding(p graphics.EdgeInsets)  { v.padding = p }
func (v *BaseView) Padding() graphics.EdgeInsets      { return v.padding }
func (v *BaseView) SetBackground(bg Background)       { v.background = bg }
func (v *BaseView) Background() Background            { return v.background }
func (v *BaseView) SetBorder(b Border)                { v.border = b }
func (v *BaseView) Border() Border                    { return v.border }
func (v *BaseView) CornerRadius() int                 { return v.cornerRadius }
func (v *BaseView) SetElevation(px int)               { v.elevation = px }
func (v *BaseView) Elevation() int                    { return v.elevation }
func (v *BaseView) SetAlpha(alpha float32)            { v.alpha = alpha }
func (v *BaseView) Alpha() float32                    { return v.alpha }
func (v *BaseView) SetOnClickListener(fn func())      { v.onClick = fn }
func (v *BaseView) SetOnLongClickListener(fn func())  { v.onLongClick = fn }
func (v *BaseView) HasOnClickListener() bool          { return v.onClick != nil }
func (v *BaseView) HasOnLongClickListener() bool      { return v.onLongClick != nil }
func (v *BaseView) SetContentDescription(desc string) { v.description = desc }
func (v *BaseView) ContentDescription() string        { return v.description }
func (v *BaseView) SetAccessibilityHeading(h bool)    { v.heading = h }
func (v *BaseView) IsAccessibilityHeading() bool      { return v.heading }
func (v *BaseView) Bounds() graphics.Rect             { return v.bounds }
func (v *BaseView) SetBounds(r graphics.Rect)         { v.bounds = r }
func (v *BaseView) Parent() ViewGroup                 { return v.parent }
func (v *BaseView) setParent(p ViewGroup)             { v.parent = p }

// MinimumHeight returns the minimum height set by SetMinimumHeight.
func (v *BaseView) MinimumHeight() int { return v.minHeight }

func (v *BaseView) SetCornerRadius(px int, corners uint32) {
	v.cornerRadius = px
	v.corners = corners
}

func (v *BaseView) PerformClick() bool {
	if v.onClick == nil {
		return false
	}
	v.onClick()
	return true
}

func (v *BaseView) PerformLongClick() bool {
	if v.onLongClick == nil {
		return false
	}
	v.onLongClick()
	return true
}

func (v *BaseView) IsShown() bool {
	if v.visibility != Visible {
		return false
	}
	if v.parent == nil {
		return true
	}
	return v.parent.IsShown()
}

// GroupView is an in-memory ViewGroup.
type GroupView struct {
	BaseView
	children []View
}

// NewGroupView returns an empty group of the given type.
func NewGroupView(viewID int64, viewType string) *GroupView {
	g := &GroupView{}
	g.Init(viewID, viewType)
	return g
}

func (g *GroupView) AddView(child View) {
	child.setParent(g)
	g.children = append(g.children, child)
}

func (g *GroupView) RemoveView(child View) {
	i := g.IndexOfChild(child)
	if i < 0 {
		return
	}
	g.children = append(g.children[:i], g.children[i+1:]...)
	child.setParent(nil)
}

func (g *GroupView) RemoveAllViews() {
	for _, c := range g.children {
		c.setParent(nil)
	}
	g.children = nil
}

func (g *GroupView) ChildCount() int    { return len(g.children) }
func (g *GroupView) ChildAt(i int) View { return g.children[i] }

func (g *GroupView) IndexOfChild(child View) int {
	for i, c := range g.children {
		if c == child {
			return i
		}
	}
	return -1
}

// MemoryTextView is an in-memory TextView.
type MemoryTextView struct {
	BaseView
	text      string
	spans     []Span
	textColor graphics.Color
	font      Font
	typeface  *Typeface
	maxLines  int
	gravity   Gravity
}

func (t *MemoryTextView) SetText(text string)           { t.text = text }
func (t *MemoryTextView) Text() string                  { return t.text }
func (t *MemoryTextView) SetSpans(spans []Span)         { t.spans = spans }
func (t *MemoryTextView) Spans() []Span                 { return t.spans }
func (t *MemoryTextView) SetTextColor(c graphics.Color) { t.textColor = c }
func (t *MemoryTextView) TextColor() graphics.Color     { return t.textColor }
func (t *MemoryTextView) SetFont(f Font)                { t.font = f }
func (t *MemoryTextView) Font() Font                    { return t.font }
func (t *MemoryTextView) SetTypeface(tf *Typeface)      { t.typeface = tf }
func (t *MemoryTextView) Typeface() *Typeface           { return t.typeface }
func (t *MemoryTextView) SetMaxLines(n int)             { t.maxLines = n }
func (t *MemoryTextView) MaxLines() int                 { return t.maxLines }
func (t *MemoryTextView) SetGravity(g Gravity)          { t.gravity = g }
func (t *MemoryTextView) Gravity() Gravity              { return t.gravity }

// MemoryImageView is an in-memory ImageView.
type MemoryImageView struct {
	BaseView
	drawable    *Drawable
	placeholder Background
	scaleType   string
}

func (i *MemoryImageView) SetDrawable(d *Drawable)      { i.drawable = d }
func (i *MemoryImageView) Drawable() *Drawable          { return i.drawable }
func (i *MemoryImageView) SetPlaceholder(bg Background) { i.placeholder = bg }
func (i *MemoryImageView) Placeholder() Background      { return i.placeholder }
func (i *MemoryImageView) SetScaleType(s string)        { i.scaleType = s }
func (i *MemoryImageView) ScaleType() string            { return i.scaleType }

// NewMemoryRegistry returns a registry whose factories create in-memory
// views for every engine view type.
func NewMemoryRegistry() *Registry {
	r := NewRegistry()
	for _, viewType := range []string{ViewTypeList, ViewTypeRow, ViewTypeStack, ViewTypeContainer} {
		r.RegisterFactory(FactoryFunc{Type: viewType, New: func(id int64) (View, error) {
			return NewGroupView(id, viewType), nil
		}})
	}
	r.RegisterFactory(FactoryFunc{Type: ViewTypeText, New: func(id int64) (View, error) {
		t := &MemoryTextView{}
		t.Init(id, ViewTypeText)
		return t, nil
	}})
	r.RegisterFactory(FactoryFunc{Type: ViewTypeImage, New: func(id int64) (View, error) {
		i := &MemoryImageView{}
		i.Init(id, ViewTypeImage)
		return i, nil
	}})
	return r
}

// Dump renders a view tree as indented text, one view per line.
func Dump(v View) string {
	var sb strings.Builder
	dump(&sb, v, 0)
	return sb.String()
}

func dump(sb *strings.Builder, v View, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(Describe(v))
	sb.WriteString("\n")
	if g, ok := v.(ViewGroup); ok {
		for i := 0; i < g.ChildCount(); i++ {
			dump(sb, g.ChildAt(i), depth+1)
		}
	}
}

// Describe returns a one-line summary of v.
func Describe(v View) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s#%d", strings.TrimPrefix(v.ViewType(), "piet/"), v.ViewID()))
	if v.Visibility() != Visible {
		parts = append(parts, v.Visibility().String())
	}
	lp := v.LayoutParams()
	parts = append(parts, fmt.Sprintf("w=%s h=%s", sizeString(lp.Width), sizeString(lp.Height)))
	if lp.Weight > 0 {
		parts = append(parts, fmt.Sprintf("weight=%g", lp.Weight))
	}
	if bg := v.Background(); bg.Color != nil {
		parts = append(parts, "bg="+bg.Color.String())
	}
	if d := v.ContentDescription(); d != "" {
		parts = append(parts, fmt.Sprintf("desc=%q", d))
	}
	if v.HasOnClickListener() {
		parts = append(parts, "clickable")
	}
	switch tv := v.(type) {
	case TextView:
		parts = append(parts, fmt.Sprintf("text=%q", tv.Text()))
	case ImageView:
		if d := tv.Drawable(); d != nil {
			parts = append(parts, "src="+d.URI)
		}
	}
	return strings.Join(parts, " ")
}

func sizeString(px int) string {
	switch px {
	case MatchParent:
		return "match"
	case WrapContent:
		return "wrap"
	default:
		return fmt.Sprint(px)
	}
}
