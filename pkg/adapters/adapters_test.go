package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
	piettest "github.com/go-drift/piet/pkg/testing"
)

type harness struct {
	t       *testing.T
	env     *piettest.Env
	factory *Factory
}

func newHarness(t *testing.T) *harness {
	env := piettest.NewEnv()
	return &harness{
		t:       t,
		env:     env,
		factory: NewFactory(env.Registry, Options{Logger: logging.Nop()}),
	}
}

// root returns the root context for f, or for an empty frame.
func (h *harness) root(f *model.Frame, shared ...*model.SharedState) *frame.FrameContext {
	h.t.Helper()
	if f == nil {
		f = &model.Frame{}
	}
	return h.env.FrameContext(h.t, f, shared...)
}

// withValues returns a template context holding values.
func (h *harness) withValues(values ...*model.BindingValue) *frame.FrameContext {
	h.t.Helper()
	return h.env.TemplateContext(h.t, h.root(nil), &model.Template{TemplateID: "test"}, values...)
}

func (h *harness) create(el *model.Element, fc *frame.FrameContext) Adapter {
	h.t.Helper()
	a, err := h.factory.CreateAdapterForElement(el, fc)
	require.NoError(h.t, err)
	return a
}

func (h *harness) bind(el *model.Element, fc *frame.FrameContext) Adapter {
	h.t.Helper()
	a := h.create(el, fc)
	require.NoError(h.t, a.BindModel(el, fc))
	return a
}

func sheet(ss ...*model.Style) model.Stylesheets {
	return model.Stylesheets{Stylesheets: []*model.Stylesheet{{StylesheetID: "inline", Styles: ss}}}
}

func styleIDs(ids ...string) model.StyleIdsStack {
	return model.StyleIdsStack{StyleIDs: ids}
}

func textEl(s string) *model.Element {
	return &model.Element{Body: &model.TextElement{Content: model.ParameterizedTextContent{Text: &model.ParameterizedText{Text: s}}}}
}

func boundTextEl(id string) *model.Element {
	return &model.Element{Body: &model.TextElement{Content: model.ParameterizedTextBindingContent{Binding: model.BindingRef{BindingID: id}}}}
}

func imageEl(url string) *model.Element {
	return &model.Element{Body: &model.ImageElement{Image: &model.Image{Sources: []*model.ImageSource{{URL: url}}}}}
}

func listEl(contents ...model.Content) *model.Element {
	return &model.Element{Body: &model.ElementList{Contents: contents}}
}

func textValue(id, s string) *model.BindingValue {
	return &model.BindingValue{BindingID: id, Value: model.ParameterizedTextValue{Text: &model.ParameterizedText{Text: s}}}
}

func visibilityValue(id string, v model.Visibility) *model.BindingValue {
	return &model.BindingValue{BindingID: id, Visibility: &v}
}

func texts(a Adapter) []string {
	return piettest.Find(a.View(), piettest.ByViewType(platform.ViewTypeText)).Texts()
}

func TestLifecycleRoundTrip(t *testing.T) {
	h := newHarness(t)
	fc := h.root(&model.Frame{Stylesheets: sheet(&model.Style{StyleID: "s", Width: model.Ptr(30), Height: model.Ptr(12)})})
	el := textEl("hello")
	el.StyleReferences = styleIDs("s")

	a := h.create(el, fc)
	assert.True(t, a.IsCreated())
	assert.False(t, a.IsBound())
	assert.Equal(t, KindParameterizedText, a.Kind())
	assert.Equal(t, 30, a.ComputedWidthPx())
	assert.Equal(t, 12, a.ComputedHeightPx())
	assert.Nil(t, a.RawModel())

	require.NoError(t, a.BindModel(el, fc))
	assert.True(t, a.IsBound())
	assert.Same(t, el, a.RawModel())
	assert.Equal(t, "hello", a.View().(platform.TextView).Text())

	a.UnbindModel()
	assert.False(t, a.IsBound())
	assert.Nil(t, a.RawModel())
	assert.Empty(t, a.View().(platform.TextView).Text())

	a.ReleaseAdapter()
	assert.False(t, a.IsCreated())
	assert.Equal(t, styles.DimensionNotSet, a.ComputedWidthPx())
	assert.Equal(t, styles.DimensionNotSet, a.ComputedHeightPx())
	assert.Nil(t, a.ElementStyle())
}

func TestCreateTwiceIsFatal(t *testing.T) {
	h := newHarness(t)
	fc := h.root(nil)
	a := h.create(textEl("x"), fc)

	err := a.CreateAdapter(textEl("x"), fc)
	require.Error(t, err)
	assert.Equal(t, pieterrors.ErrAdapterState, pieterrors.CodeOf(err))
}

func TestRebindUnbindsFirst(t *testing.T) {
	h := newHarness(t)
	fc := h.root(nil)
	first := textEl("one")
	first.LogData = &model.LogData{Fields: map[string]string{"n": "1"}}
	a := h.bind(first, fc)

	require.NoError(t, a.BindModel(textEl("two"), fc))
	assert.Equal(t, "two", a.View().(platform.TextView).Text())
	assert.Equal(t, []*model.LogData{first.LogData}, h.env.LogData.Unbound())
	assert.Equal(t, 0, h.env.LogData.Live())
}

func TestWrongElementKindIsFatal(t *testing.T) {
	h := newHarness(t)
	fc := h.root(nil)
	a := h.create(textEl("x"), fc)

	err := a.BindModel(imageEl("a.png"), fc)
	require.Error(t, err)
	assert.Equal(t, pieterrors.ErrMissingElementContents, pieterrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Missing TextElement; has IMAGE_ELEMENT")

	err = a.BindModel(&model.Element{Body: &model.TextElement{}}, fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TextElement missing content")

	chunked := &model.Element{Body: &model.TextElement{Content: model.ChunkedTextContent{Text: &model.ChunkedText{}}}}
	err = a.BindModel(chunked, fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing parameterized text; has CHUNKED_TEXT")
}

func TestGoneAtCreateDefersCreation(t *testing.T) {
	h := newHarness(t)
	el := boundTextEl("text")
	el.Visibility = model.VisibilityState{
		DefaultVisibility:         model.VisibilityGone,
		OverridingBoundVisibility: &model.BindingRef{BindingID: "vis"},
	}

	fc := h.withValues(textValue("text", "shown"), visibilityValue("vis", model.VisibilityVisible))
	a := h.create(el, fc)
	assert.False(t, a.IsCreated())
	assert.Equal(t, platform.Gone, a.View().Visibility())

	// The visibility binding applies once bound, creating the adapter.
	require.NoError(t, a.BindModel(el, fc))
	assert.True(t, a.IsCreated())
	assert.True(t, a.IsBound())
	assert.Equal(t, platform.Visible, a.View().Visibility())
	assert.Equal(t, "shown", a.View().(platform.TextView).Text())
}

func TestGoneAtBindSkipsBinding(t *testing.T) {
	h := newHarness(t)
	el := boundTextEl("text")
	el.Visibility.OverridingBoundVisibility = &model.BindingRef{BindingID: "vis"}

	// The text binding is absent, which would be fatal if the bind ran.
	fc := h.withValues(visibilityValue("vis", model.VisibilityGone))
	a := h.create(el, fc)
	assert.True(t, a.IsCreated())

	require.NoError(t, a.BindModel(el, fc))
	assert.False(t, a.IsBound())
	assert.Equal(t, platform.Gone, a.View().Visibility())
}

func TestInvisibleKeepsSpace(t *testing.T) {
	h := newHarness(t)
	el := textEl("x")
	el.Visibility.DefaultVisibility = model.VisibilityInvisible
	a := h.bind(el, h.root(nil))
	assert.True(t, a.IsBound())
	assert.Equal(t, platform.Invisible, a.View().Visibility())

	a.ReleaseAdapter()
	assert.Equal(t, platform.Visible, a.View().Visibility())
}

func TestStyleBindingAppliedAtBind(t *testing.T) {
	h := newHarness(t)
	red := model.Color(0xFFFF0000)
	el := textEl("x")
	el.StyleReferences = model.StyleIdsStack{StyleBinding: &model.BindingRef{BindingID: "style"}}

	fc := h.withValues(&model.BindingValue{BindingID: "style", Value: model.BoundStyleValue{Style: &model.BoundStyle{
		Background: &model.Fill{Color: &red},
		Opacity:    model.Ptr(float32(0.5)),
	}}})
	a := h.bind(el, fc)
	require.NotNil(t, a.View().Background().Color)
	assert.Equal(t, red, *a.View().Background().Color)
	assert.InDelta(t, 0.5, a.View().Alpha(), 1e-6)

	// Without a value the binding resolves to an empty style.
	require.NoError(t, a.BindModel(el, h.withValues()))
	assert.True(t, a.View().Background().IsEmpty())
	assert.InDelta(t, 1, a.View().Alpha(), 1e-6)
}

func TestAccessibility(t *testing.T) {
	h := newHarness(t)
	el := textEl("x")
	el.Accessibility = &model.Accessibility{
		DescriptionBinding: &model.BindingRef{BindingID: "desc"},
		Roles:              []model.AccessibilityRole{model.AccessibilityRoleHeader},
	}
	a := h.bind(el, h.withValues(textValue("desc", "Section")))
	assert.Equal(t, "Section", a.View().ContentDescription())
	assert.True(t, a.View().IsAccessibilityHeading())

	a.UnbindModel()
	assert.Empty(t, a.View().ContentDescription())
	assert.False(t, a.View().IsAccessibilityHeading())
}

func TestLogDataBinding(t *testing.T) {
	h := newHarness(t)
	bound := &model.LogData{Fields: map[string]string{"id": "7"}}
	el := textEl("x")
	el.LogData = &model.LogData{Fields: map[string]string{"id": "inline"}}
	el.LogDataBinding = &model.BindingRef{BindingID: "log"}

	a := h.bind(el, h.withValues(&model.BindingValue{BindingID: "log", Value: model.LogDataValue{LogData: bound}}))
	assert.Equal(t, []*model.LogData{bound}, h.env.LogData.Bound())

	// An absent binding falls back to the inline log data.
	require.NoError(t, a.BindModel(el, h.withValues()))
	assert.Equal(t, []*model.LogData{bound, el.LogData}, h.env.LogData.Bound())
	assert.Equal(t, []*model.LogData{bound}, h.env.LogData.Unbound())
}
