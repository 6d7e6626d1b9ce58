package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ParameterizedText is a display string. Parameter substitution happens on
// the host side before the value reaches the engine.
type ParameterizedText struct {
	Text string
}

// TextContentKind identifies the variant held by a TextElement.
type TextContentKind int

const (
	TextContentNotSet TextContentKind = iota
	TextContentParameterizedText
	TextContentParameterizedTextBinding
	TextContentChunkedText
	TextContentChunkedTextBinding
)

func (k TextContentKind) String() string {
	switch k {
	case TextContentParameterizedText:
		return "PARAMETERIZED_TEXT"
	case TextContentParameterizedTextBinding:
		return "PARAMETERIZED_TEXT_BINDING"
	case TextContentChunkedText:
		return "CHUNKED_TEXT"
	case TextContentChunkedTextBinding:
		return "CHUNKED_TEXT_BINDING"
	default:
		return "CONTENT_NOT_SET"
	}
}

// TextContent is implemented by the text element variants.
type TextContent interface {
	textContentKind() TextContentKind
}

// ParameterizedTextContent is inline parameterized text.
type ParameterizedTextContent struct{ Text *ParameterizedText }

// ParameterizedTextBindingContent resolves parameterized text by binding.
type ParameterizedTextBindingContent struct{ Binding BindingRef }

// ChunkedTextContent is inline chunked text.
type ChunkedTextContent struct{ Text *ChunkedText }

// ChunkedTextBindingContent resolves chunked text by binding.
type ChunkedTextBindingContent struct{ Binding BindingRef }

func (ParameterizedTextContent) textContentKind() TextContentKind {
	return TextContentParameterizedText
}

func (ParameterizedTextBindingContent) textContentKind() TextContentKind {
	return TextContentParameterizedTextBinding
}

func (ChunkedTextContent) textContentKind() TextContentKind { return TextContentChunkedText }

func (ChunkedTextBindingContent) textContentKind() TextContentKind {
	return TextContentChunkedTextBinding
}

// Kind returns the variant held by t.
func (t *TextElement) Kind() TextContentKind {
	if t == nil || t.Content == nil {
		return TextContentNotSet
	}
	return t.Content.textContentKind()
}

// IsChunked reports whether t holds chunked text, inline or bound.
func (t *TextElement) IsChunked() bool {
	k := t.Kind()
	return k == TextContentChunkedText || k == TextContentChunkedTextBinding
}

// ChunkedText is a run of styled text and image chunks.
type ChunkedText struct {
	Chunks []*TextChunk
}

// TextChunk is either a styled text run or an inline image. Actions apply
// to the chunk's span.
type TextChunk struct {
	Text    *StyledTextChunk
	Image   *StyledImageChunk
	Actions *Actions
}

// StyledTextChunk is a text run with its own style references.
type StyledTextChunk struct {
	ParameterizedText *ParameterizedText
	StyleReferences   StyleIdsStack
}

// StyledImageChunk is an inline image sized in dp.
type StyledImageChunk struct {
	Image           *Image
	ImageBinding    *BindingRef
	StyleReferences StyleIdsStack
}

// ImageSource is one candidate rendition of an image.
type ImageSource struct {
	URL        string
	WidthPx    int
	HeightPx   int
	Conditions []MediaQueryCondition
}

// Image is an ordered list of candidate sources.
type Image struct {
	Sources            []*ImageSource
	ContentDescription string
}

// CustomElementData is a free-form payload for host-rendered elements.
type CustomElementData struct {
	Kind string
	Data map[string]any
}

// Decode copies the payload into out, which must be a pointer to a struct
// or map. Field names match mapstructure tags or are matched case
// insensitively.
func (c *CustomElementData) Decode(out any) error {
	if c == nil {
		return fmt.Errorf("decode custom element: no data")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return fmt.Errorf("decode custom element %q: %w", c.Kind, err)
	}
	if err := decoder.Decode(c.Data); err != nil {
		return fmt.Errorf("decode custom element %q: %w", c.Kind, err)
	}
	return nil
}
