package testing

import (
	"fmt"

	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/platform"
)

// Tap performs a click on the first view under root matched by finder.
func Tap(root platform.View, finder Finder) error {
	result := Find(root, finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no views: %s", finder.Description())
	}
	if !result.First().PerformClick() {
		return fmt.Errorf("Tap: view has no click listener: %s", finder.Description())
	}
	return nil
}

// LongPress performs a long click on the first view under root matched by
// finder.
func LongPress(root platform.View, finder Finder) error {
	result := Find(root, finder)
	if !result.Exists() {
		return fmt.Errorf("LongPress: finder matched no views: %s", finder.Description())
	}
	if !result.First().PerformLongClick() {
		return fmt.Errorf("LongPress: view has no long click listener: %s", finder.Description())
	}
	return nil
}

// TapSpan clicks the span of a text view covering the byte offset at.
func TapSpan(view platform.View, at int) error {
	tv, ok := view.(platform.TextView)
	if !ok {
		return fmt.Errorf("TapSpan: view %s is not a text view", view.ViewType())
	}
	for _, s := range tv.Spans() {
		if at >= s.Start && at < s.End && s.OnClick != nil {
			s.OnClick()
			return nil
		}
	}
	return fmt.Errorf("TapSpan: no clickable span at %d", at)
}

// Layout assigns stacked bounds to the tree under root, as a vertical
// layout of the given width would: each view gets rowHeight px per leaf
// it contains. It lets visibility actions be tested without a platform
// layout pass. The height of root is returned.
func Layout(root platform.View, widthPx, rowHeight int) int {
	return layoutAt(root, 0, widthPx, rowHeight)
}

func layoutAt(v platform.View, top, widthPx, rowHeight int) int {
	height := rowHeight
	if g, ok := v.(platform.ViewGroup); ok && g.ChildCount() > 0 {
		height = 0
		for i := 0; i < g.ChildCount(); i++ {
			height += layoutAt(g.ChildAt(i), top+height, widthPx, rowHeight)
		}
	}
	if v.Visibility() == platform.Gone {
		height = 0
	}
	v.SetBounds(graphics.RectFromLTWH(0, top, widthPx, height))
	return height
}
