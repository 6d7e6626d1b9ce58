package adapters

import (
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/host"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
	"github.com/go-drift/piet/pkg/styles"
)

// Scale types understood by platform image views.
const (
	ScaleFitCenter  = "fit_center"
	ScaleCenterCrop = "center_crop"
	ScaleFitXY      = "fit_xy"
)

func platformScaleType(s model.ScaleType) string {
	switch s {
	case model.ScaleTypeCropCenter:
		return ScaleCenterCrop
	case model.ScaleTypeStretch:
		return ScaleFitXY
	default:
		return ScaleFitCenter
	}
}

// imageAdapter shows an inline or bound image loaded through the host.
type imageAdapter struct {
	lifecycle
	image platform.ImageView
	load  host.Cancelable
}

func newImageAdapter(f *Factory, view platform.ImageView) *imageAdapter {
	a := &imageAdapter{image: view}
	a.lifecycle = newLifecycle(f, KindImage, view, a)
	return a
}

func (a *imageAdapter) checkModel(el *model.Element) error {
	if el.ImageElement() == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing ImageElement; has %s", el.Kind())
	}
	return nil
}

func (a *imageAdapter) onCreate(*model.Element, *frame.FrameContext) error {
	a.image.SetScaleType(platformScaleType(a.style.ScaleType()))
	a.image.SetPlaceholder(styles.PlatformBackground(a.style.PreLoadFill()))
	return nil
}

func (a *imageAdapter) onBind(el *model.Element, fc *frame.FrameContext) error {
	ie := el.ImageElement()
	img := ie.Image
	if ie.Binding != nil {
		v, err := fc.ImageBindingValue(*ie.Binding)
		if err != nil {
			return err
		}
		img = v.Image()
	}
	// A style binding may have changed the scale type.
	a.image.SetScaleType(platformScaleType(a.style.ScaleType()))
	if img == nil {
		return nil
	}
	if img.ContentDescription != "" && a.view.ContentDescription() == "" {
		a.view.SetContentDescription(img.ContentDescription)
	}

	stamp := a.bindStamp
	a.load = fc.Providers().Assets.GetImage(fc.FilterImageSourcesByMediaQueryCondition(img),
		requestDimension(a.widthPx), requestDimension(a.heightPx), func(d *platform.Drawable) {
			if stamp != a.bindStamp || d == nil {
				return
			}
			a.image.SetDrawable(d)
		})
	return nil
}

// requestDimension maps an unset style dimension to zero, which asset
// providers read as unbounded.
func requestDimension(px int) int {
	if px == styles.DimensionNotSet {
		return 0
	}
	return px
}

func (a *imageAdapter) onUnbind() {
	cancel(a.load)
	a.load = nil
	a.image.SetDrawable(nil)
}

func (a *imageAdapter) onRelease() {
	a.image.SetPlaceholder(platform.Background{})
}
