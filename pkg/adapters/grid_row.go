package adapters

import (
	"fmt"

	"github.com/go-drift/piet/pkg/debug"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
	"github.com/go-drift/piet/pkg/model"
	"github.com/go-drift/piet/pkg/platform"
)

// gridRowAdapter lays out cells horizontally. Each cell is one content
// slot; its width comes from the cell or its width binding.
type gridRowAdapter struct {
	container
	cells []*model.GridCell
}

func newGridRowAdapter(f *Factory, view platform.ViewGroup) *gridRowAdapter {
	a := &gridRowAdapter{}
	a.group = view
	a.layout = a
	a.lifecycle = newLifecycle(f, KindGridRow, view, a)
	return a
}

func (a *gridRowAdapter) checkModel(el *model.Element) error {
	if el.GridRow() == nil {
		return pieterrors.Fatalf(pieterrors.ErrMissingElementContents, "Missing GridRow; has %s", el.Kind())
	}
	return nil
}

func (a *gridRowAdapter) contentsOf(el *model.Element) []model.Content {
	a.cells = a.cells[:0]
	contents := make([]model.Content, 0, len(el.GridRow().Cells))
	for _, cell := range el.GridRow().Cells {
		if cell == nil {
			continue
		}
		a.cells = append(a.cells, cell)
		contents = append(contents, cell.Content)
	}
	return contents
}

// childLayoutParams sizes a cell. Cells default to weight 1 and fill the
// row height unless the child declares a height.
func (a *gridRowAdapter) childLayoutParams(slot int, child Adapter, fc *frame.FrameContext) (platform.LayoutParams, error) {
	cell := a.cells[slot]
	width := cell.Width
	// Width bindings only exist while bound.
	if cell.WidthBinding != nil && a.bound {
		bound, err := fc.GridCellWidthFromBinding(*cell.WidthBinding)
		if err != nil {
			return platform.LayoutParams{}, err
		}
		if bound != nil {
			width = bound
		}
	}

	lp := platform.LayoutParams{
		Width:   0,
		Weight:  1,
		Height:  childSize(child.ComputedHeightPx(), platform.MatchParent),
		Gravity: child.VerticalGravity(platform.GravityTop),
	}
	if width != nil {
		switch width.Kind {
		case model.GridCellWidthDp:
			lp.Width = fc.Env().ToPx(float32(width.Dp))
			lp.Weight = 0
		case model.GridCellWidthWeight:
			lp.Weight = float32(width.Weight)
		case model.GridCellWidthContent:
			lp.Weight = 0
			lp.Collapsible = width.IsCollapsible
			lp.Width = platform.WrapContent
			if width.ContentWidth == model.ContentWidthContentWidth {
				lp.Width = childSize(child.ComputedWidthPx(), platform.WrapContent)
			} else {
				_ = fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrGridCellWidthWithoutContents,
					fmt.Sprintf("Invalid content width: %s", width.ContentWidth))
			}
		}
	}
	applyChildMargins(child, &lp)
	return lp, nil
}
