package styles

import (
	"math"
	"strings"

	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// DimensionNotSet is returned for width and height when the style does not
// specify them. It is distinct from zero and from the platform's
// MatchParent and WrapContent sentinels.
const DimensionNotSet = -3

// Env carries the display parameters providers need to convert dp to px.
type Env struct {
	Density               float32
	DefaultCornerRadiusDp int
}

func (e Env) density() float32 {
	if e.Density <= 0 {
		return 1
	}
	return e.Density
}

// ToPx converts dp to px, rounding to the nearest pixel.
func (e Env) ToPx(dp float32) int {
	return int(math.Round(float64(dp * e.density())))
}

// Provider is an immutable, fully merged style with typed accessors.
type Provider struct {
	style model.Style
	env   Env
}

// NewProvider wraps a merged style.
func NewProvider(style model.Style, env Env) *Provider {
	return &Provider{style: style, env: env}
}

// DefaultProvider returns the provider for the empty style.
func DefaultProvider(env Env) *Provider {
	return NewProvider(model.Style{}, env)
}

// Style returns the merged style.
func (p *Provider) Style() model.Style { return p.style }

// Env returns the display parameters.
func (p *Provider) Env() Env { return p.env }

// StyleID returns the id of the style, if any.
func (p *Provider) StyleID() string { return p.style.StyleID }

// HasColor reports whether a foreground color is set.
func (p *Provider) HasColor() bool { return p.style.Color != nil }

// Color returns the foreground color, or opaque black.
func (p *Provider) Color() graphics.Color {
	if p.style.Color == nil {
		return graphics.ColorBlack
	}
	return *p.style.Color
}

// HasBackground reports whether a background fill is set.
func (p *Provider) HasBackground() bool { return p.style.Background != nil }

// Background returns the background fill, or nil.
func (p *Provider) Background() *model.Fill { return p.style.Background }

// PreLoadFill returns the fill shown while an image loads, or nil.
func (p *Provider) PreLoadFill() *model.Fill { return p.style.PreLoadFill }

// Padding returns padding in dp with unset edges as zero.
func (p *Provider) Padding() graphics.EdgeInsets { return edges(p.style.Padding) }

// Margins returns margins in dp with unset edges as zero.
func (p *Provider) Margins() graphics.EdgeInsets { return edges(p.style.Margins) }

// PaddingPx returns padding in px.
func (p *Provider) PaddingPx() graphics.EdgeInsets { return p.scaleEdges(p.Padding()) }

// MarginsPx returns margins in px.
func (p *Provider) MarginsPx() graphics.EdgeInsets { return p.scaleEdges(p.Margins()) }

func (p *Provider) scaleEdges(e graphics.EdgeInsets) graphics.EdgeInsets {
	return graphics.EdgeInsets{
		Start:  p.env.ToPx(float32(e.Start)),
		Top:    p.env.ToPx(float32(e.Top)),
		End:    p.env.ToPx(float32(e.End)),
		Bottom: p.env.ToPx(float32(e.Bottom)),
	}
}

func edges(w *model.EdgeWidths) graphics.EdgeInsets {
	if w == nil {
		return graphics.EdgeInsets{}
	}
	return graphics.EdgeInsets{Start: deref(w.Start), Top: deref(w.Top), End: deref(w.End), Bottom: deref(w.Bottom)}
}

// HasBorders reports whether a border with positive width is set.
func (p *Provider) HasBorders() bool {
	return p.style.Borders != nil && deref(p.style.Borders.Width) > 0
}

// Borders returns the borders, or the zero value.
func (p *Provider) Borders() model.Borders {
	if p.style.Borders == nil {
		return model.Borders{}
	}
	return *p.style.Borders
}

// HasRoundedCorners reports whether corner rounding applies.
func (p *Provider) HasRoundedCorners() bool {
	return p.style.RoundedCorners != nil
}

// CornerRadiusPx returns the corner radius in px. Rounded corners without
// an explicit radius use the host's default radius.
func (p *Provider) CornerRadiusPx() int {
	rc := p.style.RoundedCorners
	if rc == nil {
		return 0
	}
	if rc.Radius == nil {
		return p.env.ToPx(float32(p.env.DefaultCornerRadiusDp))
	}
	return p.env.ToPx(float32(*rc.Radius))
}

// Font returns the font with unset fields zeroed.
func (p *Provider) Font() model.Font {
	if p.style.Font == nil {
		return model.Font{}
	}
	return *p.style.Font
}

// FontSize returns the font size in sp, or 0 when unset.
func (p *Provider) FontSize() float32 {
	if p.style.Font == nil {
		return 0
	}
	return deref(p.style.Font.Size)
}

// PlatformFont converts the font to its platform description in px.
func (p *Provider) PlatformFont() platform.Font {
	f := p.Font()
	weight := 400
	switch deref(f.Weight) {
	case model.FontWeightLight:
		weight = 300
	case model.FontWeightMedium:
		weight = 500
	case model.FontWeightBold:
		weight = 700
	}
	return platform.Font{
		SizePx:          deref(f.Size) * p.env.density(),
		Weight:          weight,
		Italic:          deref(f.Italic),
		LineHeightPx:    deref(f.LineHeight) * p.env.density(),
		LetterSpacingPx: deref(f.LetterSpacingDp) * p.env.density(),
	}
}

// MaxLines returns the line limit, 0 meaning unlimited.
func (p *Provider) MaxLines() int { return deref(p.style.MaxLines) }

// MinHeightPx returns the minimum height in px.
func (p *Provider) MinHeightPx() int { return p.env.ToPx(float32(deref(p.style.MinHeight))) }

// HasWidth reports whether a width is set.
func (p *Provider) HasWidth() bool { return p.style.Width != nil }

// HasHeight reports whether a height is set.
func (p *Provider) HasHeight() bool { return p.style.Height != nil }

// WidthPx returns the width in px or DimensionNotSet.
func (p *Provider) WidthPx() int {
	if p.style.Width == nil {
		return DimensionNotSet
	}
	return p.env.ToPx(float32(*p.style.Width))
}

// HeightPx returns the height in px or DimensionNotSet.
func (p *Provider) HeightPx() int {
	if p.style.Height == nil {
		return DimensionNotSet
	}
	return p.env.ToPx(float32(*p.style.Height))
}

// GravityHorizontal returns the horizontal gravity or def when unset.
func (p *Provider) GravityHorizontal(def platform.Gravity) platform.Gravity {
	if p.style.GravityHorizontal == nil {
		return def
	}
	switch *p.style.GravityHorizontal {
	case model.GravityStart:
		return platform.GravityStart
	case model.GravityCenter:
		return platform.GravityCenterHorizontal
	case model.GravityEnd:
		return platform.GravityEnd
	}
	return def
}

// GravityVertical returns the vertical gravity or def when unset.
func (p *Provider) GravityVertical(def platform.Gravity) platform.Gravity {
	if p.style.GravityVertical == nil {
		return def
	}
	switch *p.style.GravityVertical {
	case model.GravityTop:
		return platform.GravityTop
	case model.GravityMiddle:
		return platform.GravityCenterVertical
	case model.GravityBottom:
		return platform.GravityBottom
	}
	return def
}

// Gravity combines both axes with their defaults.
func (p *Provider) Gravity(defH, defV platform.Gravity) platform.Gravity {
	return p.GravityHorizontal(defH) | p.GravityVertical(defV)
}

// TextAlignment returns text gravity for a text view. Unset axes default
// to start and top.
func (p *Provider) TextAlignment() platform.Gravity {
	g := platform.GravityStart
	if a := p.style.TextAlignmentHorizontal; a != nil {
		switch *a {
		case model.TextAlignmentCenter:
			g = platform.GravityCenterHorizontal
		case model.TextAlignmentEnd:
			g = platform.GravityEnd
		}
	}
	v := platform.GravityTop
	if a := p.style.TextAlignmentVertical; a != nil {
		switch *a {
		case model.TextAlignmentMiddle:
			v = platform.GravityCenterVertical
		case model.TextAlignmentBottom:
			v = platform.GravityBottom
		}
	}
	return g | v
}

// ElevationPx returns the shadow elevation in px.
func (p *Provider) ElevationPx() int {
	if p.style.Shadow == nil {
		return 0
	}
	return p.env.ToPx(float32(deref(p.style.Shadow.Elevation)))
}

// Opacity returns the opacity, 1 when unset.
func (p *Provider) Opacity() float32 {
	if p.style.Opacity == nil {
		return 1
	}
	return *p.style.Opacity
}

// ScaleType returns the image scale type.
func (p *Provider) ScaleType() model.ScaleType { return deref(p.style.ScaleType) }

// PlatformBackground converts a fill to its platform form.
func PlatformBackground(f *model.Fill) platform.Background {
	if f == nil {
		return platform.Background{}
	}
	var bg platform.Background
	if f.Color != nil {
		c := *f.Color
		bg.Color = &c
	}
	if g := f.LinearGradient; g != nil {
		for _, s := range g.Stops {
			bg.Stops = append(bg.Stops, platform.GradientStop{Color: s.Color, Position: s.Position})
		}
		bg.AngleDeg = deref(g.DirectionDeg)
	}
	return bg
}

// ApplyElementStyles applies the box styling shared by every element kind:
// padding, background, borders, corners, elevation, opacity and minimum
// height.
func (p *Provider) ApplyElementStyles(v platform.View) {
	v.SetPadding(p.PaddingPx())
	v.SetBackground(PlatformBackground(p.style.Background))
	if p.HasBorders() {
		b := p.Borders()
		v.SetBorder(platform.Border{
			WidthPx: p.env.ToPx(float32(deref(b.Width))),
			Color:   deref(b.Color),
			Edges:   deref(b.Bitmask),
		})
	} else {
		v.SetBorder(platform.Border{})
	}
	var corners uint32
	if p.style.RoundedCorners != nil {
		corners = deref(p.style.RoundedCorners.Bitmask)
	}
	v.SetCornerRadius(p.CornerRadiusPx(), corners)
	v.SetElevation(p.ElevationPx())
	v.SetAlpha(p.Opacity())
	v.SetMinimumHeight(p.MinHeightPx())
}

// ApplyMargins copies the margins into lp.
func (p *Provider) ApplyMargins(lp *platform.LayoutParams) {
	lp.Margins = p.MarginsPx()
}

// TextKey identifies text views that share a font configuration.
type TextKey struct {
	SizeSp        float32
	Weight        model.FontWeight
	Italic        bool
	LineHeight    float32
	LetterSpacing float32
	Typefaces     string
}

// TextRecyclerKey returns the pooling key for text views using this style.
func (p *Provider) TextRecyclerKey() TextKey {
	f := p.Font()
	names := make([]string, 0, len(f.Typeface))
	for _, tf := range f.Typeface {
		names = append(names, tf.Name())
	}
	return TextKey{
		SizeSp:        deref(f.Size),
		Weight:        deref(f.Weight),
		Italic:        deref(f.Italic),
		LineHeight:    deref(f.LineHeight),
		LetterSpacing: deref(f.LetterSpacingDp),
		Typefaces:     strings.Join(names, ","),
	}
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
