// Package styles resolves style id stacks into concrete styles and exposes
// typed accessors over the result.
package styles

import (
	"slices"

	"github.com/go-drift/piet/pkg/model"
)

// MergeStyle layers over on top of base. Every field set in over replaces
// the one in base; composite fields merge per sub-field. Repeated fields
// are replaced when over's list is non-empty. The style id is not merged.
// Neither argument is modified.
func MergeStyle(base, over model.Style) model.Style {
	out := base
	setIf(&out.Color, over.Color)
	out.Background = mergeFill(base.Background, over.Background)
	out.PreLoadFill = mergeFill(base.PreLoadFill, over.PreLoadFill)
	out.Borders = mergeBorders(base.Borders, over.Borders)
	out.RoundedCorners = mergeCorners(base.RoundedCorners, over.RoundedCorners)
	out.Padding = mergeEdges(base.Padding, over.Padding)
	out.Margins = mergeEdges(base.Margins, over.Margins)
	out.Font = mergeFont(base.Font, over.Font)
	setIf(&out.MaxLines, over.MaxLines)
	setIf(&out.MinHeight, over.MinHeight)
	setIf(&out.Height, over.Height)
	setIf(&out.Width, over.Width)
	setIf(&out.GravityHorizontal, over.GravityHorizontal)
	setIf(&out.GravityVertical, over.GravityVertical)
	setIf(&out.TextAlignmentHorizontal, over.TextAlignmentHorizontal)
	setIf(&out.TextAlignmentVertical, over.TextAlignmentVertical)
	out.Shadow = mergeShadow(base.Shadow, over.Shadow)
	setIf(&out.Opacity, over.Opacity)
	setIf(&out.ScaleType, over.ScaleType)
	return out
}

// MergeBoundStyle applies the fields a style binding may override.
func MergeBoundStyle(base model.Style, bound *model.BoundStyle) model.Style {
	if bound == nil {
		return base
	}
	out := base
	setIf(&out.Color, bound.Color)
	out.Background = mergeFill(base.Background, bound.Background)
	setIf(&out.Opacity, bound.Opacity)
	setIf(&out.ScaleType, bound.ScaleType)
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeFill(base, over *model.Fill) *model.Fill {
	if over == nil {
		return base
	}
	var out model.Fill
	if base != nil {
		out = *base
	}
	setIf(&out.Color, over.Color)
	if over.LinearGradient != nil {
		var g model.LinearGradient
		if out.LinearGradient != nil {
			g = *out.LinearGradient
		}
		if len(over.LinearGradient.Stops) > 0 {
			g.Stops = slices.Clone(over.LinearGradient.Stops)
		}
		setIf(&g.DirectionDeg, over.LinearGradient.DirectionDeg)
		out.LinearGradient = &g
	}
	return &out
}

func mergeBorders(base, over *model.Borders) *model.Borders {
	if over == nil {
		return base
	}
	var out model.Borders
	if base != nil {
		out = *base
	}
	setIf(&out.Width, over.Width)
	setIf(&out.Color, over.Color)
	setIf(&out.Bitmask, over.Bitmask)
	return &out
}

func mergeCorners(base, over *model.RoundedCorners) *model.RoundedCorners {
	if over == nil {
		return base
	}
	var out model.RoundedCorners
	if base != nil {
		out = *base
	}
	setIf(&out.Radius, over.Radius)
	setIf(&out.Bitmask, over.Bitmask)
	return &out
}

func mergeEdges(base, over *model.EdgeWidths) *model.EdgeWidths {
	if over == nil {
		return base
	}
	var out model.EdgeWidths
	if base != nil {
		out = *base
	}
	setIf(&out.Start, over.Start)
	setIf(&out.Top, over.Top)
	setIf(&out.End, over.End)
	setIf(&out.Bottom, over.Bottom)
	return &out
}

func mergeFont(base, over *model.Font) *model.Font {
	if over == nil {
		return base
	}
	var out model.Font
	if base != nil {
		out = *base
	}
	setIf(&out.Size, over.Size)
	setIf(&out.Weight, over.Weight)
	setIf(&out.Italic, over.Italic)
	setIf(&out.LineHeight, over.LineHeight)
	setIf(&out.LetterSpacingDp, over.LetterSpacingDp)
	if len(over.Typeface) > 0 {
		out.Typeface = slices.Clone(over.Typeface)
	}
	return &out
}

func mergeShadow(base, over *model.Shadow) *model.Shadow {
	if over == nil {
		return base
	}
	var out model.Shadow
	if base != nil {
		out = *base
	}
	setIf(&out.Elevation, over.Elevation)
	setIf(&out.Color, over.Color)
	return &out
}
