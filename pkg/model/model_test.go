package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pieterrors "github.com/go-drift/piet/pkg/errors"
)

func TestContentKind(t *testing.T) {
	assert.Equal(t, ContentKindNotSet, Content{}.Kind())
	assert.Equal(t, "CONTENTTYPE_NOT_SET", Content{}.Kind().String())
	assert.Equal(t, ContentKindElement, ElementContentOf(&Element{}).Kind())
	assert.Equal(t, ContentKindTemplateInvocation, TemplateContentOf(&TemplateInvocation{}).Kind())
	assert.True(t, BoundElementOf(BindingRef{BindingID: "e"}).IsBound())
	assert.True(t, TemplateBindingOf(BindingRef{BindingID: "t"}).IsBound())
	assert.False(t, ElementContentOf(&Element{}).IsBound())
}

func TestElementKindAccessors(t *testing.T) {
	var nilElement *Element
	assert.Equal(t, ElementKindNotSet, nilElement.Kind())
	assert.Nil(t, nilElement.GridRow())

	e := &Element{Body: &ElementList{}}
	assert.Equal(t, ElementKindList, e.Kind())
	assert.NotNil(t, e.ElementList())
	assert.Nil(t, e.ElementStack())

	text := &TextElement{Content: ChunkedTextBindingContent{Binding: BindingRef{BindingID: "c"}}}
	assert.True(t, text.IsChunked())
	assert.Equal(t, TextContentNotSet, (&TextElement{}).Kind())
}

func TestBindingValueAccessors(t *testing.T) {
	v := &BindingValue{BindingID: "img", Value: ImageValue{Image: &Image{}}}
	assert.Equal(t, BindingKindImage, v.Kind())
	assert.NotNil(t, v.Image())
	assert.Nil(t, v.Element())

	var nilValue *BindingValue
	assert.Equal(t, BindingKindNotSet, nilValue.Kind())
	assert.Nil(t, nilValue.Actions())

	assert.False(t, v.IsGone())
	assert.False(t, nilValue.IsGone())
	gone := VisibilityGone
	assert.True(t, (&BindingValue{Visibility: &gone}).IsGone())

	renamed := v.WithID("other")
	assert.Equal(t, "other", renamed.BindingID)
	assert.Equal(t, "img", v.BindingID)
}

func TestBindingContextIndexRejectsDuplicates(t *testing.T) {
	ctx := &BindingContext{BindingValues: []*BindingValue{
		{BindingID: "a"},
		{BindingID: "b"},
		{BindingID: "a"},
	}}
	_, err := ctx.Index()
	require.Error(t, err)
	assert.Equal(t, pieterrors.ErrDuplicateBindingValue, pieterrors.CodeOf(err))
	assert.Contains(t, err.Error(), "BindingValue key 'a' already defined")
	assert.Error(t, ctx.Validate())

	var empty *BindingContext
	idx, err := empty.Index()
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestCustomElementDataDecode(t *testing.T) {
	data := &CustomElementData{Kind: "rating", Data: map[string]any{
		"stars": "4",
		"label": "Great",
	}}
	var out struct {
		Stars int
		Label string
	}
	require.NoError(t, data.Decode(&out))
	assert.Equal(t, 4, out.Stars)
	assert.Equal(t, "Great", out.Label)

	var nilData *CustomElementData
	assert.Error(t, nilData.Decode(&out))
}

func TestActionsHelpers(t *testing.T) {
	var none *Actions
	assert.True(t, none.IsEmpty())
	assert.True(t, (&Actions{}).IsEmpty())
	assert.False(t, (&Actions{OnClickAction: &Action{}}).IsEmpty())
	assert.True(t, (&Actions{OnHideActions: []*VisibilityAction{{}}}).HasVisibilityActions())
}
