package adapters

import (
	"strings"

	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// imageSpanText stands in for an inline image in the view's text.
const imageSpanText = "\uFFFC"

// chunkedTextAdapter renders styled text runs and inline images as one
// text view with spans. Span offsets are byte offsets into the text.
type chunkedTextAdapter struct {
	textBase
	spans []platform.Span
	loads []host.Cancelable
}

func newChunkedTextAdapter(f *Factory, view platform.TextView) *chunkedTextAdapter {
	a := &chunkedTextAdapter{}
	a.text = view
	a.lifecycle = newLifecycle(f, KindChunkedText, view, a)
	return a
}

func (a *chunkedTextAdapter) checkModel(el *model.Element) error {
	return a.checkText(el, true)
}

func (a *chunkedTextAdapter) onCreate(_ *model.Element, fc *frame.FrameContext) error {
	a.createText(fc)
	return nil
}

func (a *chunkedTextAdapter) onBind(el *model.Element, fc *frame.FrameContext) error {
	a.restyleText(el, fc)
	var chunked *model.ChunkedText
	switch c := el.TextElement().Content.(type) {
	case model.ChunkedTextContent:
		chunked = c.Text
	case model.ChunkedTextBindingContent:
		v, err := fc.ChunkedTextBindingValue(c.Binding)
		if err != nil {
			return err
		}
		chunked = v.ChunkedText()
	}
	if chunked == nil {
		return nil
	}

	var sb strings.Builder
	for _, chunk := range chunked.Chunks {
		if chunk == nil {
			continue
		}
		var onClick func()
		if chunk.Actions != nil {
			onClick = actionListener(chunk.Actions.OnClickAction, model.ActionTypeClick, fc, a.view, a.currentLogData)
		}
		switch {
		case chunk.Text != nil:
			if err := a.addTextChunk(&sb, chunk.Text, onClick, fc); err != nil {
				return err
			}
		case chunk.Image != nil:
			if err := a.addImageChunk(&sb, chunk.Image, onClick, fc); err != nil {
				return err
			}
		}
	}
	a.text.SetText(sb.String())
	a.text.SetSpans(a.spanSnapshot())
	return nil
}

func (a *chunkedTextAdapter) addTextChunk(sb *strings.Builder, chunk *model.StyledTextChunk, onClick func(), fc *frame.FrameContext) error {
	style, err := fc.MakeStyleFor(chunk.StyleReferences)
	if err != nil {
		return err
	}
	start := sb.Len()
	if chunk.ParameterizedText != nil {
		sb.WriteString(chunk.ParameterizedText.Text)
	}
	span := platform.Span{Start: start, End: sb.Len(), OnClick: onClick}
	if style.HasColor() {
		c := style.Color()
		span.Color = &c
	}
	if style.FontSize() > 0 {
		f := style.PlatformFont()
		span.Font = &f
	}
	a.spans = append(a.spans, span)
	return nil
}

func (a *chunkedTextAdapter) addImageChunk(sb *strings.Builder, chunk *model.StyledImageChunk, onClick func(), fc *frame.FrameContext) error {
	img := chunk.Image
	if chunk.ImageBinding != nil {
		v, err := fc.ImageBindingValue(*chunk.ImageBinding)
		if err != nil {
			return err
		}
		img = v.Image()
	}
	style, err := fc.MakeStyleFor(chunk.StyleReferences)
	if err != nil {
		return err
	}

	start := sb.Len()
	sb.WriteString(imageSpanText)
	a.spans = append(a.spans, platform.Span{Start: start, End: sb.Len(), OnClick: onClick})
	if img == nil {
		return nil
	}

	// Images without explicit dimensions are sized to the line.
	lineHeight := int(a.style.PlatformFont().SizePx)
	width, height := style.WidthPx(), style.HeightPx()
	if width == styles.DimensionNotSet {
		width = lineHeight
	}
	if height == styles.DimensionNotSet {
		height = lineHeight
	}

	index := len(a.spans) - 1
	stamp := a.bindStamp
	filtered := fc.FilterImageSourcesByMediaQueryCondition(img)
	load := fc.Providers().Assets.GetImage(filtered, width, height, func(d *platform.Drawable) {
		if stamp != a.bindStamp || d == nil {
			return
		}
		a.spans[index].Image = d
		a.text.SetSpans(a.spanSnapshot())
	})
	a.loads = append(a.loads, load)
	return nil
}

func (a *chunkedTextAdapter) spanSnapshot() []platform.Span {
	out := make([]platform.Span, len(a.spans))
	copy(out, a.spans)
	return out
}

func (a *chunkedTextAdapter) onUnbind() {
	for _, l := range a.loads {
		cancel(l)
	}
	a.loads = nil
	a.spans = nil
	a.text.SetText("")
	a.text.SetSpans(nil)
}

func (a *chunkedTextAdapter) onRelease() {
	a.releaseText()
}
