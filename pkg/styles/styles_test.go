package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

var (
	colorRed  = graphics.Color(0xFFFF0000)
	colorBlue = graphics.Color(0xFF0000FF)
)

func sheetOf(id string, styles ...*model.Style) *model.Stylesheet {
	return &model.Stylesheet{StylesheetID: id, Styles: styles}
}

func newHelper(t *testing.T, shared ...*model.SharedState) *Helper {
	t.Helper()
	h, err := NewHelper(shared, mediaquery.Helper{FrameWidthDp: 400}, Env{Density: 1})
	require.NoError(t, err)
	return h
}

func TestMergeStylePaddingIsFieldWise(t *testing.T) {
	base := model.Style{
		StyleID: "base",
		Color:   model.Ptr(colorRed),
		Width:   model.Ptr(100),
		Padding: &model.EdgeWidths{Start: model.Ptr(1), Top: model.Ptr(1)},
	}
	override := model.Style{
		StyleID:  "override",
		MaxLines: model.Ptr(3),
		Padding:  &model.EdgeWidths{End: model.Ptr(2), Top: model.Ptr(2)},
	}

	got := NewProvider(MergeStyle(base, override), Env{Density: 1})
	assert.Equal(t, colorRed, got.Color())
	assert.Equal(t, 100, got.WidthPx())
	assert.Equal(t, 3, got.MaxLines())
	assert.Equal(t, graphics.EdgeInsets{Start: 1, Top: 2, End: 2, Bottom: 0}, got.Padding())

	// Inputs are untouched.
	assert.Equal(t, 1, *base.Padding.Top)
	assert.Nil(t, base.MaxLines)
}

func TestMergeStyleFontAndGradient(t *testing.T) {
	a := model.Style{
		Font: &model.Font{Size: model.Ptr(float32(12)), Italic: model.Ptr(true)},
		Background: &model.Fill{LinearGradient: &model.LinearGradient{
			Stops: []model.ColorStop{{Color: 1234, Position: 0}},
		}},
	}
	b := model.Style{
		Font: &model.Font{Weight: model.Ptr(model.FontWeightBold)},
		Background: &model.Fill{LinearGradient: &model.LinearGradient{
			DirectionDeg: model.Ptr(321),
		}},
	}
	merged := MergeStyle(a, b)

	require.NotNil(t, merged.Font)
	assert.Equal(t, float32(12), *merged.Font.Size)
	assert.True(t, *merged.Font.Italic)
	assert.Equal(t, model.FontWeightBold, *merged.Font.Weight)

	g := merged.Background.LinearGradient
	require.NotNil(t, g)
	assert.Equal(t, []model.ColorStop{{Color: 1234}}, g.Stops)
	assert.Equal(t, 321, *g.DirectionDeg)
}

func TestMergeBoundStyle(t *testing.T) {
	base := model.Style{Color: model.Ptr(colorRed), MaxLines: model.Ptr(2)}
	merged := MergeBoundStyle(base, &model.BoundStyle{
		Color:      model.Ptr(colorBlue),
		Background: &model.Fill{Color: model.Ptr(colorRed)},
	})
	assert.Equal(t, colorBlue, *merged.Color)
	assert.Equal(t, colorRed, *merged.Background.Color)
	assert.Equal(t, 2, *merged.MaxLines)
	assert.Equal(t, base, MergeBoundStyle(base, nil))
}

type fakeResolver struct {
	bound *model.BoundStyle
	err   error
	calls int
}

func (f *fakeResolver) StyleFromBinding(model.BindingRef) (*model.BoundStyle, error) {
	f.calls++
	return f.bound, f.err
}

func TestMergeStyleIdsStack(t *testing.T) {
	h := newHelper(t)
	m, err := h.StyleMap(model.Stylesheets{Stylesheets: []*model.Stylesheet{sheetOf("s",
		&model.Style{StyleID: "one", Color: model.Ptr(colorRed), MaxLines: model.Ptr(1)},
		&model.Style{StyleID: "two", MaxLines: model.Ptr(2)},
	)}})
	require.NoError(t, err)

	merged, err := MergeStyleIdsStack(model.Style{}, model.StyleIdsStack{StyleIDs: []string{"one", "missing", "two"}}, m, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, *merged.MaxLines)
	assert.Equal(t, colorRed, *merged.Color)

	r := &fakeResolver{bound: &model.BoundStyle{Color: model.Ptr(colorBlue)}}
	merged, err = MergeStyleIdsStack(model.Style{}, model.StyleIdsStack{
		StyleIDs:     []string{"one"},
		StyleBinding: model.Ref("style"),
	}, m, r)
	require.NoError(t, err)
	assert.Equal(t, colorBlue, *merged.Color)
	assert.Equal(t, 1, r.calls)
}

func TestMergeStyleIdsStackBindingWithoutFrameContext(t *testing.T) {
	_, err := MergeStyleIdsStack(model.Style{}, model.StyleIdsStack{StyleBinding: model.Ref("style")}, StyleMap{}, nil)
	require.Error(t, err)
	assert.True(t, pieterrors.IsFatal(err))
	assert.Equal(t, pieterrors.ErrMissingFrameContext, pieterrors.CodeOf(err))
}

func TestStyleMapCombinesSharedAndInline(t *testing.T) {
	h := newHelper(t, &model.SharedState{Stylesheets: []*model.Stylesheet{
		sheetOf("shared", &model.Style{StyleID: "a", MaxLines: model.Ptr(1)}),
		{
			StylesheetID: "wide",
			Styles:       []*model.Style{{StyleID: "b"}},
			Conditions: []model.MediaQueryCondition{
				model.FrameWidthCondition{Width: 800, Condition: model.ComparisonGreaterThan},
			},
		},
	}})

	m, err := h.StyleMap(model.Stylesheets{
		StylesheetIDs: []string{"shared", "wide", "unknown"},
		Stylesheets:   []*model.Stylesheet{sheetOf("inline", &model.Style{StyleID: "c"})},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Style("b")
	assert.False(t, ok)

	assert.Equal(t, []string{"unknown"}, h.MissingStylesheetIDs(model.Stylesheets{StylesheetIDs: []string{"wide", "unknown"}}))
	_, active := h.Stylesheet("wide")
	assert.False(t, active)
	_, declared := h.DeclaredStylesheet("wide")
	assert.True(t, declared)
}

func TestStyleMapDuplicateStyleIsFatal(t *testing.T) {
	h := newHelper(t)
	_, err := h.StyleMap(model.Stylesheets{Stylesheets: []*model.Stylesheet{
		sheetOf("x", &model.Style{StyleID: "dup"}),
		sheetOf("y", &model.Style{StyleID: "dup"}),
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Style key 'dup' already defined")
}

func TestStyleMapIsCached(t *testing.T) {
	h := newHelper(t)
	sheets := model.Stylesheets{Stylesheets: []*model.Stylesheet{sheetOf("x", &model.Style{StyleID: "a"})}}
	m1, err := h.StyleMap(sheets)
	require.NoError(t, err)
	m2, err := h.StyleMap(sheets)
	require.NoError(t, err)
	assert.Equal(t, m1.key, m2.key)

	p1, err := h.ProviderFor(model.StyleIdsStack{StyleIDs: []string{"a"}}, m1, nil)
	require.NoError(t, err)
	p2, err := h.ProviderFor(model.StyleIdsStack{StyleIDs: []string{"a"}}, m2, nil)
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	def, err := h.ProviderFor(model.StyleIdsStack{}, m1, nil)
	require.NoError(t, err)
	assert.Same(t, h.DefaultProvider(), def)
}

func TestHelperTemplates(t *testing.T) {
	narrowOnly := []model.MediaQueryCondition{model.FrameWidthCondition{Width: 300, Condition: model.ComparisonLessThan}}
	h := newHelper(t, &model.SharedState{Templates: []*model.Template{
		{TemplateID: "card"},
		{TemplateID: "card", Conditions: narrowOnly},
		{TemplateID: "row"},
	}})
	_, ok := h.Template("card")
	assert.True(t, ok)
	assert.Equal(t, []string{"card", "row"}, h.TemplateIDs())

	_, err := NewHelper([]*model.SharedState{
		{Templates: []*model.Template{{TemplateID: "t"}}},
		{Templates: []*model.Template{{TemplateID: "t"}}},
	}, mediaquery.Helper{}, Env{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template key 't' already defined")
}

func TestFactoryCachesByValue(t *testing.T) {
	f := NewFactory(Env{Density: 2}, nil)
	mq := mediaquery.Helper{FrameWidthDp: 360}

	build := func() []*model.SharedState {
		return []*model.SharedState{{Stylesheets: []*model.Stylesheet{sheetOf("s", &model.Style{StyleID: "a"})}}}
	}
	h1, err := f.Get(build(), mq)
	require.NoError(t, err)
	h2, err := f.Get(build(), mq)
	require.NoError(t, err)
	assert.Same(t, h1, h2)

	h3, err := f.Get(build(), mediaquery.Helper{FrameWidthDp: 720})
	require.NoError(t, err)
	assert.NotSame(t, h1, h3)
	assert.Equal(t, 2, f.Len())

	f.Purge()
	assert.Equal(t, 0, f.Len())
	h4, err := f.Get(build(), mq)
	require.NoError(t, err)
	assert.NotSame(t, h1, h4)
}

func TestProviderDefaults(t *testing.T) {
	p := DefaultProvider(Env{Density: 2})
	assert.Equal(t, DimensionNotSet, p.WidthPx())
	assert.Equal(t, DimensionNotSet, p.HeightPx())
	assert.False(t, p.HasBorders())
	assert.Equal(t, float32(1), p.Opacity())
	assert.Equal(t, platform.GravityStart|platform.GravityTop, p.TextAlignment())
	assert.Equal(t, platform.GravityEnd|platform.GravityBottom, p.Gravity(platform.GravityEnd, platform.GravityBottom))
	assert.Equal(t, TextKey{}, p.TextRecyclerKey())
}

func TestProviderApplyElementStyles(t *testing.T) {
	p := NewProvider(model.Style{
		Padding:        &model.EdgeWidths{Start: model.Ptr(4)},
		Background:     &model.Fill{Color: model.Ptr(colorRed)},
		Borders:        &model.Borders{Width: model.Ptr(1), Color: model.Ptr(colorBlue)},
		RoundedCorners: &model.RoundedCorners{},
		Shadow:         &model.Shadow{Elevation: model.Ptr(3)},
		Opacity:        model.Ptr(float32(0.5)),
		Height:         model.Ptr(10),
	}, Env{Density: 2, DefaultCornerRadiusDp: 8})

	v := platform.NewBaseView(1, platform.ViewTypeContainer)
	p.ApplyElementStyles(v)

	assert.Equal(t, graphics.EdgeInsets{Start: 8}, v.Padding())
	assert.Equal(t, colorRed, *v.Background().Color)
	assert.Equal(t, platform.Border{WidthPx: 2, Color: colorBlue}, v.Border())
	assert.Equal(t, 16, v.CornerRadius())
	assert.Equal(t, 6, v.Elevation())
	assert.Equal(t, float32(0.5), v.Alpha())
	assert.Equal(t, 20, p.HeightPx())
}

func TestTextRecyclerKey(t *testing.T) {
	p := NewProvider(model.Style{Font: &model.Font{
		Size:     model.Ptr(float32(14)),
		Typeface: []model.Typeface{{CommonTypeface: "sans"}, {CustomTypeface: "brand"}},
	}}, Env{})
	key := p.TextRecyclerKey()
	assert.Equal(t, float32(14), key.SizeSp)
	assert.Equal(t, "sans,brand", key.Typefaces)
}
