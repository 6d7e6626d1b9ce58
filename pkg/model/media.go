package model

// Comparison is the operator of a frame width condition.
type Comparison int

const (
	ComparisonEquals Comparison = iota
	ComparisonNotEquals
	ComparisonGreaterThan
	ComparisonLessThan
)

func (c Comparison) String() string {
	switch c {
	case ComparisonNotEquals:
		return "NOT_EQUALS"
	case ComparisonGreaterThan:
		return "GREATER_THAN"
	case ComparisonLessThan:
		return "LESS_THAN"
	default:
		return "EQUALS"
	}
}

// Orientation is the device orientation.
type Orientation int

const (
	OrientationUnspecified Orientation = iota
	OrientationPortrait
	OrientationLandscape
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "PORTRAIT"
	case OrientationLandscape:
		return "LANDSCAPE"
	default:
		return "UNSPECIFIED"
	}
}

// DarkLightMode selects styles for the host theme.
type DarkLightMode int

const (
	DarkLightUnspecified DarkLightMode = iota
	DarkLightDark
	DarkLightLight
)

// MediaQueryCondition is implemented by the condition variants. All
// variants are comparable values.
type MediaQueryCondition interface {
	mediaQueryCondition()
}

// FrameWidthCondition compares the frame width in dp.
type FrameWidthCondition struct {
	Width     int
	Condition Comparison
}

// OrientationCondition matches the device orientation.
type OrientationCondition struct {
	Orientation Orientation
}

// DarkLightCondition matches the host theme.
type DarkLightCondition struct {
	Mode DarkLightMode
}

func (FrameWidthCondition) mediaQueryCondition()  {}
func (OrientationCondition) mediaQueryCondition() {}
func (DarkLightCondition) mediaQueryCondition()   {}
