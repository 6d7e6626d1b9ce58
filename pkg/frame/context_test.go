package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/mediaquery"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/styles"
)

const (
	parentID = "PARENT"
	childID  = "CHILD"
)

func newContext(t *testing.T, frame *model.Frame, opts Options, shared ...*model.SharedState) *FrameContext {
	t.Helper()
	helper, err := styles.NewHelper(shared, mediaquery.Helper{FrameWidthDp: 400}, styles.Env{Density: 1})
	require.NoError(t, err)
	fc, err := New(frame, helper, opts)
	require.NoError(t, err)
	return fc
}

func textValue(id, text string) *model.BindingValue {
	return &model.BindingValue{BindingID: id, Value: model.ParameterizedTextValue{Text: &model.ParameterizedText{Text: text}}}
}

func templateContext(t *testing.T, fc *FrameContext, values ...*model.BindingValue) *FrameContext {
	t.Helper()
	tc, err := fc.CreateTemplateContext(&model.Template{TemplateID: "t"}, &model.BindingContext{BindingValues: values})
	require.NoError(t, err)
	return tc
}

func TestNewRejectsTemplateCollision(t *testing.T) {
	helper, err := styles.NewHelper([]*model.SharedState{{Templates: []*model.Template{{TemplateID: "card"}}}},
		mediaquery.Helper{}, styles.Env{})
	require.NoError(t, err)

	_, err = New(&model.Frame{Templates: []*model.Template{{TemplateID: "card"}}}, helper, Options{})
	require.Error(t, err)
	assert.Equal(t, pieterrors.ErrDuplicateTemplate, pieterrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Template key 'card' already defined")
}

func TestTemplateLookupSpansFrameAndSharedState(t *testing.T) {
	fc := newContext(t, &model.Frame{Templates: []*model.Template{{TemplateID: "frame"}}}, Options{},
		&model.SharedState{Templates: []*model.Template{{TemplateID: "shared"}}})

	_, ok := fc.Template("frame")
	assert.True(t, ok)
	_, ok = fc.Template("shared")
	assert.True(t, ok)
	_, ok = fc.Template("other")
	assert.False(t, ok)
}

func TestRootContextHasNoBindingValues(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	assert.False(t, fc.HasBindingValues())

	_, err := fc.ActionsFromBinding(model.BindingRef{BindingID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no BindingValues defined")

	_, err = fc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "a", IsOptional: true})
	assert.Equal(t, pieterrors.ErrNoBindingValues, pieterrors.CodeOf(err))
}

func TestContentBindingPolicy(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	tc := templateContext(t, fc,
		textValue("title", "Hello"),
		&model.BindingValue{BindingID: "empty"},
	)

	got, err := tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "title"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.ParameterizedText().Text)

	_, err = tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "missing"})
	require.Error(t, err)
	assert.Equal(t, pieterrors.ErrMissingBindingValue, pieterrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Parameterized text binding not found for missing")

	got, err = tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "missing", IsOptional: true})
	require.NoError(t, err)
	assert.Equal(t, &model.BindingValue{}, got)

	_, err = tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parameterized text binding empty had no content")

	got, err = tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "empty", IsOptional: true})
	require.NoError(t, err)
	assert.Equal(t, &model.BindingValue{}, got)

	// A text value is not an image.
	_, err = tc.ImageBindingValue(model.BindingRef{BindingID: "title"})
	assert.Contains(t, err.Error(), "Image binding title had no content")
}

func TestElementBindingHiddenCountsAsContent(t *testing.T) {
	gone := model.VisibilityGone
	tc := templateContext(t, newContext(t, &model.Frame{}, Options{}),
		&model.BindingValue{BindingID: "hidden", Visibility: &gone},
		&model.BindingValue{BindingID: "tmpl", Visibility: &gone},
	)
	v, err := tc.ElementBindingValue(model.BindingRef{BindingID: "hidden"})
	require.NoError(t, err)
	assert.Nil(t, v.Element())

	_, err = tc.TemplateInvocationBindingValue(model.BindingRef{BindingID: "tmpl"})
	require.NoError(t, err)
}

type recordingBindings struct {
	host.DefaultBindingProvider
	seen []*model.BindingValue
}

func (r *recordingBindings) ParameterizedTextBindingValue(v *model.BindingValue) *model.BindingValue {
	r.seen = append(r.seen, v)
	return textValue(v.BindingID, "from host")
}

func TestHostBindingOverride(t *testing.T) {
	bindings := &recordingBindings{}
	fc := newContext(t, &model.Frame{}, Options{Providers: host.Providers{Bindings: bindings}})
	declared := &model.BindingValue{
		BindingID:       "title",
		HostBindingData: &model.HostBindingData{Data: map[string]string{"key": "headline"}},
	}
	tc := templateContext(t, fc, declared)

	got, err := tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "title"})
	require.NoError(t, err)
	assert.Equal(t, "from host", got.ParameterizedText().Text)
	assert.Equal(t, "title", got.BindingID)
	require.Len(t, bindings.seen, 1)
	assert.Same(t, declared, bindings.seen[0])
}

func TestDefaultHostBindingStripsMarker(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	plain := textValue("title", "Hi")
	hosted := *plain
	hosted.HostBindingData = &model.HostBindingData{}
	tc := templateContext(t, fc, &hosted)

	got, err := tc.ParameterizedTextBindingValue(model.BindingRef{BindingID: "title"})
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestNonContentBindingsOnAbsence(t *testing.T) {
	tc := templateContext(t, newContext(t, &model.Frame{}, Options{}))
	ref := model.BindingRef{BindingID: "absent"}

	vis, err := tc.VisibilityFromBinding(ref)
	require.NoError(t, err)
	assert.Nil(t, vis)

	actions, err := tc.ActionsFromBinding(ref)
	require.NoError(t, err)
	assert.Equal(t, &model.Actions{}, actions)

	style, err := tc.StyleFromBinding(ref)
	require.NoError(t, err)
	assert.Equal(t, &model.BoundStyle{}, style)

	width, err := tc.GridCellWidthFromBinding(ref)
	require.NoError(t, err)
	assert.Nil(t, width)

	logData, err := tc.LogDataFromBinding(ref)
	require.NoError(t, err)
	assert.Nil(t, logData)
}

func TestNonContentBindingsWhenPresent(t *testing.T) {
	invisible := model.VisibilityInvisible
	clicked := &model.Actions{OnClickAction: &model.Action{Name: "open"}}
	tc := templateContext(t, newContext(t, &model.Frame{}, Options{}),
		&model.BindingValue{BindingID: "vis", Visibility: &invisible},
		&model.BindingValue{BindingID: "actions", Value: model.ActionsValue{Actions: clicked}},
		&model.BindingValue{BindingID: "width", Value: model.CellWidthValue{Width: &model.GridCellWidth{Kind: model.GridCellWidthDp, Dp: 20}}},
		&model.BindingValue{BindingID: "log", Value: model.LogDataValue{LogData: &model.LogData{Fields: map[string]string{"a": "b"}}}},
	)

	vis, err := tc.VisibilityFromBinding(model.BindingRef{BindingID: "vis"})
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityInvisible, *vis)

	actions, err := tc.ActionsFromBinding(model.BindingRef{BindingID: "actions"})
	require.NoError(t, err)
	assert.Same(t, clicked, actions)

	width, err := tc.GridCellWidthFromBinding(model.BindingRef{BindingID: "width"})
	require.NoError(t, err)
	assert.Equal(t, 20, width.Dp)

	logData, err := tc.LogDataFromBinding(model.BindingRef{BindingID: "log"})
	require.NoError(t, err)
	assert.Equal(t, "b", logData.Fields["a"])
}

func TestCreateTemplateContextDuplicateBinding(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	_, err := fc.CreateTemplateContext(&model.Template{TemplateID: "t"}, &model.BindingContext{
		BindingValues: []*model.BindingValue{textValue("x", "1"), textValue("x", "2")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BindingValue key 'x' already defined")
}

func TestTransclusion(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	parent := templateContext(t, fc, textValue(parentID, "from parent"))

	child := templateContext(t, parent, &model.BindingValue{BindingID: childID, FromTranscludingTemplate: parentID})
	got, err := child.ParameterizedTextBindingValue(model.BindingRef{BindingID: childID})
	require.NoError(t, err)
	assert.Equal(t, "from parent", got.ParameterizedText().Text)
	assert.Equal(t, childID, got.BindingID)
}

func TestTransclusionMissingParent(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	parent := templateContext(t, fc)

	child, err := parent.CreateTemplateContext(&model.Template{TemplateID: "t"}, &model.BindingContext{
		BindingValues: []*model.BindingValue{{BindingID: childID, FromTranscludingTemplate: parentID}},
	})
	require.NoError(t, err)

	_, err = child.ParameterizedTextBindingValue(model.BindingRef{BindingID: childID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding not found for CHILD")

	got, err := child.ParameterizedTextBindingValue(model.BindingRef{BindingID: childID, IsOptional: true})
	require.NoError(t, err)
	assert.Equal(t, &model.BindingValue{}, got)
}

func TestFrameStylesDoNotApplyToChildren(t *testing.T) {
	red := graphics.Color(0xFFFF0000)
	frame := &model.Frame{
		StyleReferences: model.StyleIdsStack{StyleIDs: []string{"frame"}},
		Stylesheets: model.Stylesheets{Stylesheets: []*model.Stylesheet{{
			StylesheetID: "s",
			Styles:       []*model.Style{{StyleID: "frame", Color: &red}},
		}}},
	}
	fc := newContext(t, frame, Options{})

	def, err := fc.MakeStyleFor(model.StyleIdsStack{})
	require.NoError(t, err)
	assert.False(t, def.HasColor())

	framed, err := fc.MakeStyleFor(frame.StyleReferences)
	require.NoError(t, err)
	assert.Equal(t, red, framed.Color())
}

func TestTemplateContextMergesTemplateStylesheets(t *testing.T) {
	shared := &model.SharedState{Stylesheets: []*model.Stylesheet{{
		StylesheetID: "shared",
		Styles:       []*model.Style{{StyleID: "a", MaxLines: model.Ptr(1)}},
	}}}
	fc := newContext(t, &model.Frame{}, Options{}, shared)

	tmpl := &model.Template{TemplateID: "t", Stylesheets: model.Stylesheets{
		StylesheetIDs: []string{"shared"},
		Stylesheets: []*model.Stylesheet{{
			StylesheetID: "inline",
			Styles:       []*model.Style{{StyleID: "b", MaxLines: model.Ptr(2)}},
		}},
	}}
	tc, err := fc.CreateTemplateContext(tmpl, nil)
	require.NoError(t, err)

	p, err := tc.MakeStyleFor(model.StyleIdsStack{StyleIDs: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, p.MaxLines())
	p, err = tc.MakeStyleFor(model.StyleIdsStack{StyleIDs: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.MaxLines())

	// The root context does not see template styles.
	p, err = fc.MakeStyleFor(model.StyleIdsStack{StyleIDs: []string{"b"}})
	require.NoError(t, err)
	assert.Equal(t, 0, p.MaxLines())
}

func TestStyleBindingResolvesInTemplateContext(t *testing.T) {
	blue := graphics.Color(0xFF0000FF)
	tc := templateContext(t, newContext(t, &model.Frame{}, Options{}),
		&model.BindingValue{BindingID: "style", Value: model.BoundStyleValue{Style: &model.BoundStyle{Color: &blue}}})

	p, err := tc.MakeStyleFor(model.StyleIdsStack{StyleBinding: model.Ref("style")})
	require.NoError(t, err)
	assert.Equal(t, blue, p.Color())
}

func TestMediaQueryStylesheets(t *testing.T) {
	cond := []model.MediaQueryCondition{model.DarkLightCondition{Mode: model.DarkLightDark}}
	shared := &model.SharedState{Stylesheets: []*model.Stylesheet{
		{StylesheetID: "plain"},
		{StylesheetID: "dark", Conditions: cond},
	}}
	fc := newContext(t, &model.Frame{}, Options{}, shared)

	got := fc.MediaQueryStylesheets(&model.Template{Stylesheets: model.Stylesheets{
		StylesheetIDs: []string{"plain", "dark", "unknown"},
		Stylesheets:   []*model.Stylesheet{{StylesheetID: "inline", Conditions: cond}},
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "dark", got[0].StylesheetID)
}

func TestFilterImageSources(t *testing.T) {
	fc := newContext(t, &model.Frame{}, Options{})
	wide := []model.MediaQueryCondition{model.FrameWidthCondition{Width: 600, Condition: model.ComparisonGreaterThan}}
	narrow := []model.MediaQueryCondition{model.FrameWidthCondition{Width: 600, Condition: model.ComparisonLessThan}}
	img := &model.Image{Sources: []*model.ImageSource{
		{URL: "always"},
		{URL: "wide", Conditions: wide},
		{URL: "narrow", Conditions: narrow},
	}}

	got := fc.FilterImageSourcesByMediaQueryCondition(img)
	require.Len(t, got.Sources, 2)
	assert.Equal(t, "always", got.Sources[0].URL)
	assert.Equal(t, "narrow", got.Sources[1].URL)
	assert.Len(t, img.Sources, 3)
	assert.Nil(t, fc.FilterImageSourcesByMediaQueryCondition(nil))
}

func TestReportMessageStrictEscalatesErrors(t *testing.T) {
	logger := debug.NewLogger(nil)
	fc := newContext(t, &model.Frame{}, Options{DebugBehavior: debug.BehaviorStrict, DebugLogger: logger})

	assert.NoError(t, fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingStylesheet, "warn"))
	err := fc.ReportMessage(debug.SeverityError, pieterrors.ErrMissingTemplate, "Template not found")
	require.Error(t, err)
	assert.True(t, pieterrors.IsFatal(err))
	assert.Len(t, logger.ErrorCodes(), 2)
}

func TestMissingStylesheetIsReported(t *testing.T) {
	logger := debug.NewLogger(nil)
	newContext(t, &model.Frame{Stylesheets: model.Stylesheets{StylesheetIDs: []string{"nope"}}}, Options{DebugLogger: logger})

	msgs := logger.Messages(debug.SeverityWarning)
	require.Len(t, msgs, 1)
	assert.Equal(t, pieterrors.ErrMissingStylesheet, msgs[0].Code)
	assert.Equal(t, "Stylesheet not found: nope", msgs[0].Text)
}
