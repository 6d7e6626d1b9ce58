// Package model defines the declarative Piet document: frames, templates,
// elements, stylesheets and the binding values that parameterize them.
//
// Union-typed fields follow the generated-protobuf shape: a struct carries a
// sealed interface field and exposes a Kind method whose zero value means
// "not set". A nil body is therefore distinguishable from a body of the
// wrong kind.
package model

// Ptr returns a pointer to v. It is used to populate optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// Frame is the top-level renderable unit.
type Frame struct {
	Tag             string
	Contents        []Content
	StyleReferences StyleIdsStack
	Stylesheets     Stylesheets
	Templates       []*Template
	Actions         *Actions
}

// SharedState is a bundle of stylesheets and templates shared across frames.
type SharedState struct {
	Stylesheets []*Stylesheet
	Templates   []*Template
}

// Template is a reusable element tree with its own styles and conditions.
type Template struct {
	TemplateID  string
	Stylesheets Stylesheets
	Element     *Element
	Conditions  []MediaQueryCondition
}

// Stylesheet is a named list of styles that applies when all of its
// conditions hold.
type Stylesheet struct {
	StylesheetID string
	Styles       []*Style
	Conditions   []MediaQueryCondition
}

// Stylesheets references shared stylesheets by id and carries inline ones.
type Stylesheets struct {
	StylesheetIDs []string
	Stylesheets   []*Stylesheet
}

// IsEmpty reports whether neither ids nor inline stylesheets are present.
func (s Stylesheets) IsEmpty() bool {
	return len(s.StylesheetIDs) == 0 && len(s.Stylesheets) == 0
}

// StyleIdsStack is an ordered list of style ids plus an optional style
// binding merged last.
type StyleIdsStack struct {
	StyleIDs     []string
	StyleBinding *BindingRef
}

// HasStyleBinding reports whether the stack carries a style binding.
func (s StyleIdsStack) HasStyleBinding() bool {
	return s.StyleBinding != nil
}

// IsEmpty reports whether the stack has neither ids nor a binding.
func (s StyleIdsStack) IsEmpty() bool {
	return len(s.StyleIDs) == 0 && s.StyleBinding == nil
}

// TemplateInvocation instantiates a template once per binding context.
type TemplateInvocation struct {
	TemplateID      string
	BindingContexts []*BindingContext
}

// ContentKind identifies the variant held by a Content.
type ContentKind int

const (
	ContentKindNotSet ContentKind = iota
	ContentKindElement
	ContentKindTemplateInvocation
	ContentKindBoundElement
	ContentKindTemplateBinding
)

func (k ContentKind) String() string {
	switch k {
	case ContentKindElement:
		return "ELEMENT"
	case ContentKindTemplateInvocation:
		return "TEMPLATE_INVOCATION"
	case ContentKindBoundElement:
		return "BOUND_ELEMENT"
	case ContentKindTemplateBinding:
		return "TEMPLATE_BINDING"
	default:
		return "CONTENTTYPE_NOT_SET"
	}
}

// Content is one child slot of a container or frame.
type Content struct {
	Value ContentValue
}

// ContentValue is implemented by the variants a Content may hold.
type ContentValue interface {
	contentKind() ContentKind
}

// ElementContent is an inline element.
type ElementContent struct{ Element *Element }

// TemplateInvocationContent is an inline template invocation.
type TemplateInvocationContent struct{ Invocation *TemplateInvocation }

// BoundElementContent resolves an element through a binding.
type BoundElementContent struct{ Binding BindingRef }

// TemplateBindingContent resolves a template invocation through a binding.
type TemplateBindingContent struct{ Binding BindingRef }

func (ElementContent) contentKind() ContentKind            { return ContentKindElement }
func (TemplateInvocationContent) contentKind() ContentKind { return ContentKindTemplateInvocation }
func (BoundElementContent) contentKind() ContentKind       { return ContentKindBoundElement }
func (TemplateBindingContent) contentKind() ContentKind    { return ContentKindTemplateBinding }

// Kind returns the variant held by c.
func (c Content) Kind() ContentKind {
	if c.Value == nil {
		return ContentKindNotSet
	}
	return c.Value.contentKind()
}

// IsBound reports whether the slot is resolved at bind time.
func (c Content) IsBound() bool {
	k := c.Kind()
	return k == ContentKindBoundElement || k == ContentKindTemplateBinding
}

// ElementContentOf wraps an element as inline content.
func ElementContentOf(e *Element) Content {
	return Content{Value: ElementContent{Element: e}}
}

// TemplateContentOf wraps an invocation as inline content.
func TemplateContentOf(inv *TemplateInvocation) Content {
	return Content{Value: TemplateInvocationContent{Invocation: inv}}
}

// BoundElementOf returns content that resolves an element binding.
func BoundElementOf(ref BindingRef) Content {
	return Content{Value: BoundElementContent{Binding: ref}}
}

// TemplateBindingOf returns content that resolves a template binding.
func TemplateBindingOf(ref BindingRef) Content {
	return Content{Value: TemplateBindingContent{Binding: ref}}
}
