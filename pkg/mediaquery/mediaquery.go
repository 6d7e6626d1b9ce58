// Package mediaquery evaluates media query conditions against the current
// frame width, device orientation and theme.
package mediaquery

import (
	"math"

	"github.com/go-drift/piet/pkg/model"
)

// Helper holds the environment conditions are evaluated against. It is a
// comparable value and is used as part of cache keys.
type Helper struct {
	FrameWidthDp int
	Orientation  model.Orientation
	DarkTheme    bool
}

// New derives a Helper from a frame width in px and the display density.
// A non-positive density is treated as 1.
func New(frameWidthPx int, density float32, orientation model.Orientation, darkTheme bool) Helper {
	if density <= 0 {
		density = 1
	}
	return Helper{
		FrameWidthDp: int(math.Round(float64(frameWidthPx) / float64(density))),
		Orientation:  orientation,
		DarkTheme:    darkTheme,
	}
}

// AreMediaQueriesMet reports whether every condition holds. An empty list
// always holds.
func (h Helper) AreMediaQueriesMet(conditions []model.MediaQueryCondition) bool {
	for _, c := range conditions {
		if !h.isMediaQueryMet(c) {
			return false
		}
	}
	return true
}

func (h Helper) isMediaQueryMet(c model.MediaQueryCondition) bool {
	switch cond := c.(type) {
	case model.FrameWidthCondition:
		return compare(h.FrameWidthDp, cond.Width, cond.Condition)
	case model.OrientationCondition:
		return cond.Orientation == model.OrientationUnspecified || cond.Orientation == h.Orientation
	case model.DarkLightCondition:
		switch cond.Mode {
		case model.DarkLightDark:
			return h.DarkTheme
		case model.DarkLightLight:
			return !h.DarkTheme
		}
		return true
	default:
		// Unknown or nil conditions never match.
		return false
	}
}

func compare(actual, target int, op model.Comparison) bool {
	switch op {
	case model.ComparisonNotEquals:
		return actual != target
	case model.ComparisonGreaterThan:
		return actual > target
	case model.ComparisonLessThan:
		return actual < target
	default:
		return actual == target
	}
}
