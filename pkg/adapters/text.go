package adapters

import (
	"fmt"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// textBase holds the behavior shared by both text kinds: font styling at
// creation and asynchronous typeface loading.
type textBase struct {
	lifecycle
	text     platform.TextView
	typeface host.Cancelable
	// fontKey is the font the current typeface request was made for.
	fontKey       styles.TextKey
	typefaceStamp uint64
}

func (t *textBase) checkText(el *model.Element, chunked bool) error {
	te := el.TextElement()
	if te == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing TextElement; has %s", el.Kind())
	}
	if te.Kind() == model.TextContentNotSet {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "TextElement missing content")
	}
	if te.IsChunked() != chunked {
		want := "parameterized text"
		if chunked {
			want = "chunked text"
		}
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing %s; has %s", want, te.Kind())
	}
	return nil
}

func (t *textBase) createText(fc *frame.FrameContext) {
	t.applyTextStyle()
	t.fontKey = t.style.TextRecyclerKey()
	t.loadTypeface(fc)
}

func (t *textBase) applyTextStyle() {
	style := t.style
	t.text.SetTextColor(style.Color())
	t.text.SetFont(style.PlatformFont())
	t.text.SetMaxLines(style.MaxLines())
	t.text.SetGravity(style.TextAlignment())
}

// restyleText applies a style resolved at bind time through a style
// binding. Typefaces are requested again only when the font changed.
func (t *textBase) restyleText(el *model.Element, fc *frame.FrameContext) {
	if !el.StyleReferences.HasStyleBinding() {
		return
	}
	t.applyTextStyle()
	if key := t.style.TextRecyclerKey(); key != t.fontKey {
		t.fontKey = key
		cancel(t.typeface)
		t.typeface = nil
		t.text.SetTypeface(nil)
		t.loadTypeface(fc)
	}
}

// loadTypeface requests the style's typefaces in order and applies the
// first one the host delivers. When none loads the platform default stays
// and a warning is reported.
func (t *textBase) loadTypeface(fc *frame.FrameContext) {
	faces := t.style.Font().Typeface
	if len(faces) == 0 {
		return
	}
	italic := t.style.PlatformFont().Italic
	t.typefaceStamp++
	stamp := t.typefaceStamp
	assets := fc.Providers().Assets

	var request func(i int)
	request = func(i int) {
		if i >= len(faces) {
			_ = fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingFont,
				fmt.Sprintf("Typeface not found: %s", faces[0].Name()))
			return
		}
		t.typeface = assets.GetTypeface(faces[i].Name(), italic, func(tf *platform.Typeface) {
			if stamp != t.typefaceStamp {
				return
			}
			if tf == nil {
				request(i + 1)
				return
			}
			t.text.SetTypeface(tf)
		})
	}
	request(0)
}

func (t *textBase) releaseText() {
	cancel(t.typeface)
	t.typeface = nil
	t.typefaceStamp++
	t.fontKey = styles.TextKey{}
	t.text.SetTypeface(nil)
	t.text.SetText("")
	t.text.SetSpans(nil)
}

func cancel(c host.Cancelable) {
	if c != nil {
		c.Cancel()
	}
}

// parameterizedTextAdapter renders a plain string.
type parameterizedTextAdapter struct {
	textBase
}

func newParameterizedTextAdapter(f *Factory, view platform.TextView) *parameterizedTextAdapter {
	a := &parameterizedTextAdapter{}
	a.text = view
	a.lifecycle = newLifecycle(f, KindParameterizedText, view, a)
	return a
}

func (a *parameterizedTextAdapter) checkModel(el *model.Element) error {
	return a.checkText(el, false)
}

func (a *parameterizedTextAdapter) onCreate(_ *model.Element, fc *frame.FrameContext) error {
	a.createText(fc)
	return nil
}

func (a *parameterizedTextAdapter) onBind(el *model.Element, fc *frame.FrameContext) error {
	a.restyleText(el, fc)
	var text *model.ParameterizedText
	switch c := el.TextElement().Content.(type) {
	case model.ParameterizedTextContent:
		text = c.Text
	case model.ParameterizedTextBindingContent:
		v, err := fc.ParameterizedTextBindingValue(c.Binding)
		if err != nil {
			return err
		}
		text = v.ParameterizedText()
	}
	if text == nil {
		a.text.SetText("")
		return nil
	}
	a.text.SetText(text.Text)
	return nil
}

func (a *parameterizedTextAdapter) onUnbind() {
	a.text.SetText("")
}

func (a *parameterizedTextAdapter) onRelease() {
	a.releaseText()
}
