package model

import "github.com/go-drift/piet/pkg/graphics"

// Color is an ARGB color.
type Color = graphics.Color

// GravityHorizontal aligns content horizontally.
type GravityHorizontal int

const (
	GravityHorizontalUnspecified GravityHorizontal = iota
	GravityStart
	GravityCenter
	GravityEnd
)

// GravityVertical aligns content vertically.
type GravityVertical int

const (
	GravityVerticalUnspecified GravityVertical = iota
	GravityTop
	GravityMiddle
	GravityBottom
)

// TextAlignmentHorizontal aligns text within its box.
type TextAlignmentHorizontal int

const (
	TextAlignmentHorizontalUnspecified TextAlignmentHorizontal = iota
	TextAlignmentStart
	TextAlignmentCenter
	TextAlignmentEnd
)

// TextAlignmentVertical aligns text vertically within its box.
type TextAlignmentVertical int

const (
	TextAlignmentVerticalUnspecified TextAlignmentVertical = iota
	TextAlignmentTop
	TextAlignmentMiddle
	TextAlignmentBottom
)

// ScaleType controls how images fill their bounds.
type ScaleType int

const (
	ScaleTypeUnspecified ScaleType = iota
	ScaleTypeFit
	ScaleTypeCropCenter
	ScaleTypeStretch
)

func (s ScaleType) String() string {
	switch s {
	case ScaleTypeFit:
		return "FIT"
	case ScaleTypeCropCenter:
		return "CROP_CENTER"
	case ScaleTypeStretch:
		return "STRETCH"
	default:
		return "UNSPECIFIED"
	}
}

// FontWeight is the weight of a font.
type FontWeight int

const (
	FontWeightUnspecified FontWeight = iota
	FontWeightLight
	FontWeightRegular
	FontWeightMedium
	FontWeightBold
)

func (w FontWeight) String() string {
	switch w {
	case FontWeightLight:
		return "LIGHT"
	case FontWeightRegular:
		return "REGULAR"
	case FontWeightMedium:
		return "MEDIUM"
	case FontWeightBold:
		return "BOLD"
	default:
		return "UNSPECIFIED"
	}
}

// Typeface is a named font family the host may provide.
type Typeface struct {
	CommonTypeface string
	CustomTypeface string
}

// Name returns whichever typeface name is set.
func (t Typeface) Name() string {
	if t.CustomTypeface != "" {
		return t.CustomTypeface
	}
	return t.CommonTypeface
}

// Font describes text rendering.
type Font struct {
	Size            *float32
	Weight          *FontWeight
	Italic          *bool
	LineHeight      *float32
	LetterSpacingDp *float32
	Typeface        []Typeface
}

// ColorStop is a gradient stop.
type ColorStop struct {
	Color    Color
	Position float32
}

// LinearGradient fills along an angle in degrees.
type LinearGradient struct {
	Stops        []ColorStop
	DirectionDeg *int
}

// Fill is a solid color or a gradient.
type Fill struct {
	Color          *Color
	LinearGradient *LinearGradient
}

// EdgeWidths are per-edge insets in dp.
type EdgeWidths struct {
	Start  *int
	Top    *int
	End    *int
	Bottom *int
}

// Borders describes a stroke around an element. Bitmask selects edges
// (1=start, 2=top, 4=end, 8=bottom); 0 means all.
type Borders struct {
	Width   *int
	Color   *Color
	Bitmask *uint32
}

// RoundedCorners rounds the element bounds. Bitmask selects corners
// (1=top-start, 2=top-end, 4=bottom-end, 8=bottom-start); 0 means all.
type RoundedCorners struct {
	Radius  *int
	Bitmask *uint32
}

// Shadow is an elevation shadow.
type Shadow struct {
	Elevation *int
	Color     *Color
}

// Style is a partial style: every field is optional so styles can be
// layered. Merging keeps the last value that is set.
type Style struct {
	StyleID                 string
	Color                   *Color
	Background              *Fill
	PreLoadFill             *Fill
	Borders                 *Borders
	RoundedCorners          *RoundedCorners
	Padding                 *EdgeWidths
	Margins                 *EdgeWidths
	Font                    *Font
	MaxLines                *int
	MinHeight               *int
	Height                  *int
	Width                   *int
	GravityHorizontal       *GravityHorizontal
	GravityVertical         *GravityVertical
	TextAlignmentHorizontal *TextAlignmentHorizontal
	TextAlignmentVertical   *TextAlignmentVertical
	Shadow                  *Shadow
	Opacity                 *float32
	ScaleType               *ScaleType
}
