package model

// Visibility controls whether an element is shown and whether it takes
// space.
type Visibility int

const (
	VisibilityUnspecified Visibility = iota
	VisibilityVisible
	VisibilityInvisible
	VisibilityGone
)

func (v Visibility) String() string {
	switch v {
	case VisibilityVisible:
		return "VISIBLE"
	case VisibilityInvisible:
		return "INVISIBLE"
	case VisibilityGone:
		return "GONE"
	default:
		return "UNSPECIFIED"
	}
}

// VisibilityState is an element's default visibility plus an optional
// binding that overrides it while the element is bound.
type VisibilityState struct {
	DefaultVisibility         Visibility
	OverridingBoundVisibility *BindingRef
}

// AccessibilityRole describes the semantic role of an element.
type AccessibilityRole int

const (
	AccessibilityRoleUnspecified AccessibilityRole = iota
	AccessibilityRoleHeader
)

// Accessibility carries an element's description and roles.
type Accessibility struct {
	Description        *ParameterizedText
	DescriptionBinding *BindingRef
	Roles              []AccessibilityRole
}

// LogData is opaque host data forwarded to the log-data callback.
type LogData struct {
	Fields map[string]string
}

// ElementKind identifies the variant held by an Element.
type ElementKind int

const (
	ElementKindNotSet ElementKind = iota
	ElementKindCustom
	ElementKindText
	ElementKindImage
	ElementKindGridRow
	ElementKindList
	ElementKindStack
)

func (k ElementKind) String() string {
	switch k {
	case ElementKindCustom:
		return "CUSTOM_ELEMENT"
	case ElementKindText:
		return "TEXT_ELEMENT"
	case ElementKindImage:
		return "IMAGE_ELEMENT"
	case ElementKindGridRow:
		return "GRID_ROW"
	case ElementKindList:
		return "ELEMENT_LIST"
	case ElementKindStack:
		return "ELEMENT_STACK"
	default:
		return "ELEMENTS_NOT_SET"
	}
}

// Element is a node in the declarative UI tree.
type Element struct {
	StyleReferences StyleIdsStack
	Visibility      VisibilityState
	Actions         *Actions
	ActionsBinding  *BindingRef
	Accessibility   *Accessibility
	LogData         *LogData
	LogDataBinding  *BindingRef
	Body            ElementBody
}

// ElementBody is implemented by the element variants.
type ElementBody interface {
	elementKind() ElementKind
}

// Kind returns the variant held by e. A nil element reports NotSet.
func (e *Element) Kind() ElementKind {
	if e == nil || e.Body == nil {
		return ElementKindNotSet
	}
	return e.Body.elementKind()
}

// CustomElement is rendered by the host's custom element provider.
type CustomElement struct {
	Data    *CustomElementData
	Binding *BindingRef
}

// TextElement holds one of the text content variants.
type TextElement struct {
	Content TextContent
}

// ImageElement shows an inline or bound image.
type ImageElement struct {
	Image   *Image
	Binding *BindingRef
}

// GridRow lays out cells horizontally.
type GridRow struct {
	Cells []*GridCell
}

// ElementList stacks its contents vertically.
type ElementList struct {
	Contents []Content
}

// ElementStack overlays its contents in z-order.
type ElementStack struct {
	Contents []Content
}

func (*CustomElement) elementKind() ElementKind { return ElementKindCustom }
func (*TextElement) elementKind() ElementKind   { return ElementKindText }
func (*ImageElement) elementKind() ElementKind  { return ElementKindImage }
func (*GridRow) elementKind() ElementKind       { return ElementKindGridRow }
func (*ElementList) elementKind() ElementKind   { return ElementKindList }
func (*ElementStack) elementKind() ElementKind  { return ElementKindStack }

// CustomElement returns the body if it is a custom element.
func (e *Element) CustomElement() *CustomElement {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*CustomElement)
	return b
}

// TextElement returns the body if it is a text element.
func (e *Element) TextElement() *TextElement {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*TextElement)
	return b
}

// ImageElement returns the body if it is an image element.
func (e *Element) ImageElement() *ImageElement {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*ImageElement)
	return b
}

// GridRow returns the body if it is a grid row.
func (e *Element) GridRow() *GridRow {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*GridRow)
	return b
}

// ElementList returns the body if it is an element list.
func (e *Element) ElementList() *ElementList {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*ElementList)
	return b
}

// ElementStack returns the body if it is an element stack.
func (e *Element) ElementStack() *ElementStack {
	if e == nil {
		return nil
	}
	b, _ := e.Body.(*ElementStack)
	return b
}

// ContentWidth is the width policy of a grid cell sized by its content.
type ContentWidth int

const (
	ContentWidthInvalid ContentWidth = iota
	ContentWidthContentWidth
)

func (c ContentWidth) String() string {
	if c == ContentWidthContentWidth {
		return "CONTENT_WIDTH"
	}
	return "INVALID_CONTENT_WIDTH"
}

// GridCellWidthKind identifies how a cell width is expressed.
type GridCellWidthKind int

const (
	GridCellWidthNotSet GridCellWidthKind = iota
	GridCellWidthDp
	GridCellWidthWeight
	GridCellWidthContent
)

// GridCellWidth sizes a grid cell by dp, weight or content.
type GridCellWidth struct {
	Kind          GridCellWidthKind
	Dp            int
	Weight        int
	ContentWidth  ContentWidth
	IsCollapsible bool
}

// GridCell is one cell in a grid row.
type GridCell struct {
	Content      Content
	Width        *GridCellWidth
	WidthBinding *BindingRef
}
