package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

func TestImageLoadsAfterBind(t *testing.T) {
	h := newHarness(t)
	gray := model.Color(0xFF888888)
	crop := model.ScaleTypeCropCenter
	fc := h.root(&model.Frame{Stylesheets: sheet(&model.Style{
		StyleID:     "thumb",
		Width:       model.Ptr(48),
		Height:      model.Ptr(32),
		PreLoadFill: &model.Fill{Color: &gray},
		ScaleType:   &crop,
	})})
	el := imageEl("cat.png")
	el.ImageElement().Image.ContentDescription = "A cat"
	el.StyleReferences = styleIDs("thumb")

	a := h.bind(el, fc)
	iv := a.View().(platform.ImageView)
	assert.Nil(t, iv.Drawable())
	assert.Equal(t, ScaleCenterCrop, iv.ScaleType())
	assert.Equal(t, "A cat", a.View().ContentDescription())
	require.NotNil(t, iv.Placeholder().Color)
	assert.EqualValues(t, 0xFF888888, uint32(*iv.Placeholder().Color))

	reqs := h.env.Assets.ImageRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 48, reqs[0].WidthPx)
	assert.Equal(t, 32, reqs[0].HeightPx)

	h.env.Assets.DeliverImages()
	require.NotNil(t, iv.Drawable())
	assert.Equal(t, "cat.png", iv.Drawable().URI)

	a.UnbindModel()
	assert.Nil(t, iv.Drawable())
}

func TestUnsizedImageRequestUnbounded(t *testing.T) {
	h := newHarness(t)
	h.bind(imageEl("cat.png"), h.root(nil))

	reqs := h.env.Assets.ImageRequests()
	require.Len(t, reqs, 1)
	assert.Zero(t, reqs[0].WidthPx)
	assert.Zero(t, reqs[0].HeightPx)
}

func TestImageStaleCallbackIgnored(t *testing.T) {
	h := newHarness(t)
	a := h.bind(imageEl("old.png"), h.root(nil))
	old := h.env.Assets.ImageRequests()[0]

	require.NoError(t, a.BindModel(imageEl("new.png"), h.root(nil)))
	assert.True(t, old.Canceled())

	// A host racing the cancel must not overwrite the newer bind.
	old.Deliver(old.Drawable())
	assert.Nil(t, a.View().(platform.ImageView).Drawable())

	h.env.Assets.DeliverImages()
	assert.Equal(t, "new.png", a.View().(platform.ImageView).Drawable().URI)
}

func TestImageSourcesFilteredByMediaQuery(t *testing.T) {
	h := newHarness(t)
	el := &model.Element{Body: &model.ImageElement{Image: &model.Image{Sources: []*model.ImageSource{
		{URL: "wide.png", Conditions: []model.MediaQueryCondition{model.FrameWidthCondition{Width: 600, Condition: model.ComparisonGreaterThan}}},
		{URL: "narrow.png"},
	}}}}

	h.bind(el, h.root(nil))
	reqs := h.env.Assets.ImageRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "narrow.png", reqs[0].URL())
	require.Len(t, reqs[0].Image.Sources, 1)
}

func TestBoundImage(t *testing.T) {
	h := newHarness(t)
	el := &model.Element{Body: &model.ImageElement{Binding: &model.BindingRef{BindingID: "img"}}}
	fc := h.withValues(&model.BindingValue{BindingID: "img", Value: model.ImageValue{
		Image: &model.Image{Sources: []*model.ImageSource{{URL: "bound.png"}}},
	}})

	h.env.Assets.Sync = true
	a := h.bind(el, fc)
	assert.Equal(t, "bound.png", a.View().(platform.ImageView).Drawable().URI)
	assert.Equal(t, ScaleFitCenter, a.View().(platform.ImageView).ScaleType())
}
