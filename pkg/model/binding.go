package model

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
)

// BindingRef names a binding value and whether its absence is tolerated.
type BindingRef struct {
	BindingID  string
	IsOptional bool
}

// Ref returns a required binding reference.
func Ref(id string) *BindingRef {
	return &BindingRef{BindingID: id}
}

// OptionalRef returns an optional binding reference.
func OptionalRef(id string) *BindingRef {
	return &BindingRef{BindingID: id, IsOptional: true}
}

// HostBindingData marks a binding value whose content the host supplies
// at resolution time.
type HostBindingData struct {
	Data map[string]string
}

// BindingKind identifies the payload carried by a BindingValue.
type BindingKind int

const (
	BindingKindNotSet BindingKind = iota
	BindingKindParameterizedText
	BindingKindChunkedText
	BindingKindImage
	BindingKindElement
	BindingKindActions
	BindingKindStyle
	BindingKindCellWidth
	BindingKindLogData
	BindingKindCustomElement
	BindingKindTemplateInvocation
)

// BindingPayload is implemented by the binding value payload variants.
type BindingPayload interface {
	bindingKind() BindingKind
}

// ParameterizedTextValue is a parameterized text payload.
type ParameterizedTextValue struct{ Text *ParameterizedText }

// ChunkedTextValue is a chunked text payload.
type ChunkedTextValue struct{ Text *ChunkedText }

// ImageValue is an image payload.
type ImageValue struct{ Image *Image }

// ElementValue is an element payload.
type ElementValue struct{ Element *Element }

// ActionsValue is an actions payload.
type ActionsValue struct{ Actions *Actions }

// BoundStyleValue is a style override payload.
type BoundStyleValue struct{ Style *BoundStyle }

// CellWidthValue is a grid cell width payload.
type CellWidthValue struct{ Width *GridCellWidth }

// LogDataValue is a log data payload.
type LogDataValue struct{ LogData *LogData }

// CustomElementValue is a custom element payload.
type CustomElementValue struct{ Data *CustomElementData }

// TemplateInvocationValue is a template invocation payload.
type TemplateInvocationValue struct{ Invocation *TemplateInvocation }

func (ParameterizedTextValue) bindingKind() BindingKind  { return BindingKindParameterizedText }
func (ChunkedTextValue) bindingKind() BindingKind        { return BindingKindChunkedText }
func (ImageValue) bindingKind() BindingKind              { return BindingKindImage }
func (ElementValue) bindingKind() BindingKind            { return BindingKindElement }
func (ActionsValue) bindingKind() BindingKind            { return BindingKindActions }
func (BoundStyleValue) bindingKind() BindingKind         { return BindingKindStyle }
func (CellWidthValue) bindingKind() BindingKind          { return BindingKindCellWidth }
func (LogDataValue) bindingKind() BindingKind            { return BindingKindLogData }
func (CustomElementValue) bindingKind() BindingKind      { return BindingKindCustomElement }
func (TemplateInvocationValue) bindingKind() BindingKind { return BindingKindTemplateInvocation }

// BindingValue is a single id-to-content entry of a binding context.
//
// Visibility is carried alongside the payload, so a value may hide its
// slot without providing content. FromTranscludingTemplate forwards the
// parent context's value with that id when a template context is built.
type BindingValue struct {
	BindingID                string
	Visibility               *Visibility
	HostBindingData          *HostBindingData
	FromTranscludingTemplate string
	Value                    BindingPayload
}

// Kind returns the payload kind of v.
func (v *BindingValue) Kind() BindingKind {
	if v == nil || v.Value == nil {
		return BindingKindNotSet
	}
	return v.Value.bindingKind()
}

// IsGone reports whether the value hides its content entirely. Bound
// elements and template invocations that are gone are not bound at all.
func (v *BindingValue) IsGone() bool {
	return v != nil && v.Visibility != nil && *v.Visibility == VisibilityGone
}

// WithID returns a shallow copy of v carrying id.
func (v *BindingValue) WithID(id string) *BindingValue {
	if v == nil {
		return &BindingValue{BindingID: id}
	}
	c := *v
	c.BindingID = id
	return &c
}

// ParameterizedText returns the payload if it is parameterized text.
func (v *BindingValue) ParameterizedText() *ParameterizedText {
	if p, ok := v.payload().(ParameterizedTextValue); ok {
		return p.Text
	}
	return nil
}

// ChunkedText returns the payload if it is chunked text.
func (v *BindingValue) ChunkedText() *ChunkedText {
	if p, ok := v.payload().(ChunkedTextValue); ok {
		return p.Text
	}
	return nil
}

// Image returns the payload if it is an image.
func (v *BindingValue) Image() *Image {
	if p, ok := v.payload().(ImageValue); ok {
		return p.Image
	}
	return nil
}

// Element returns the payload if it is an element.
func (v *BindingValue) Element() *Element {
	if p, ok := v.payload().(ElementValue); ok {
		return p.Element
	}
	return nil
}

// Actions returns the payload if it is actions.
func (v *BindingValue) Actions() *Actions {
	if p, ok := v.payload().(ActionsValue); ok {
		return p.Actions
	}
	return nil
}

// BoundStyle returns the payload if it is a bound style.
func (v *BindingValue) BoundStyle() *BoundStyle {
	if p, ok := v.payload().(BoundStyleValue); ok {
		return p.Style
	}
	return nil
}

// CellWidth returns the payload if it is a grid cell width.
func (v *BindingValue) CellWidth() *GridCellWidth {
	if p, ok := v.payload().(CellWidthValue); ok {
		return p.Width
	}
	return nil
}

// LogData returns the payload if it is log data.
func (v *BindingValue) LogData() *LogData {
	if p, ok := v.payload().(LogDataValue); ok {
		return p.LogData
	}
	return nil
}

// CustomElementData returns the payload if it is custom element data.
func (v *BindingValue) CustomElementData() *CustomElementData {
	if p, ok := v.payload().(CustomElementValue); ok {
		return p.Data
	}
	return nil
}

// TemplateInvocation returns the payload if it is a template invocation.
func (v *BindingValue) TemplateInvocation() *TemplateInvocation {
	if p, ok := v.payload().(TemplateInvocationValue); ok {
		return p.Invocation
	}
	return nil
}

func (v *BindingValue) payload() BindingPayload {
	if v == nil {
		return nil
	}
	return v.Value
}

// BindingContext is the set of values used to instantiate a template once.
type BindingContext struct {
	BindingValues []*BindingValue
}

// Index builds the id-to-value map for c, rejecting duplicate ids.
func (c *BindingContext) Index() (map[string]*BindingValue, error) {
	index := make(map[string]*BindingValue)
	if c == nil {
		return index, nil
	}
	for _, v := range c.BindingValues {
		if v == nil {
			continue
		}
		if _, dup := index[v.BindingID]; dup {
			return nil, pieterrors.Fatalf(pieterrors.ErrDuplicateBindingValue,
				"BindingValue key '%s' already defined", v.BindingID)
		}
		index[v.BindingID] = v
	}
	return index, nil
}

// Validate reports a duplicate binding id in c.
func (c *BindingContext) Validate() error {
	_, err := c.Index()
	return err
}

// BoundStyle is the subset of Style a style binding may override.
type BoundStyle struct {
	Color      *Color
	Background *Fill
	Opacity    *float32
	ScaleType  *ScaleType
}
