package glide

import "math"

// Padding is space reserved inside the content around the laid-out cells.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// GridLayout arranges a scroll content's children in uniform cells.
//
// AxisHorizontal lays cells out in a single row, AxisVertical in a single
// column, and AxisBoth in rows of Columns cells. Children are positioned by
// pivot, resized to CellSize, and given sequential Index values; the content
// node is resized to fit.
type GridLayout struct {
	Axis     ScrollAxis
	CellSize Vec2
	Spacing  Vec2
	Padding  Padding
	Columns  int

	// CenterCells pads the scrolling edges by half the remaining viewport so
	// the first and last cells can be centered.
	CenterCells bool
}

// Step returns the distance between consecutive cell origins along axis
// (the X step for AxisBoth).
func (g *GridLayout) Step(axis ScrollAxis) float64 {
	if axis == AxisVertical {
		return g.CellSize.Y + g.Spacing.Y
	}
	return g.CellSize.X + g.Spacing.X
}

// Apply positions content's live children and resizes content. viewport is
// the viewport size, used for CenterCells padding.
func (g *GridLayout) Apply(content *Node, viewport Vec2) {
	pad := g.Padding
	if g.CenterCells {
		switch g.Axis {
		case AxisHorizontal:
			p := math.Round(math.Max(0, viewport.X-g.CellSize.X) / 2)
			pad.Left, pad.Right = p, p
		case AxisVertical:
			p := math.Round(math.Max(0, viewport.Y-g.CellSize.Y) / 2)
			pad.Top, pad.Bottom = p, p
		}
	}

	cols := 1
	switch g.Axis {
	case AxisHorizontal:
		cols = math.MaxInt
	case AxisBoth:
		cols = g.Columns
		if cols < 1 {
			cols = 1
		}
	}

	i := 0
	maxCol, maxRow := 0, 0
	for _, child := range content.children {
		if child.IsDisposed() {
			continue
		}
		col, row := i, 0
		if cols != math.MaxInt {
			col, row = i%cols, i/cols
		}
		x := pad.Left + float64(col)*(g.CellSize.X+g.Spacing.X)
		y := pad.Top + float64(row)*(g.CellSize.Y+g.Spacing.Y)
		child.Width = g.CellSize.X
		child.Height = g.CellSize.Y
		child.SetPosition(x+g.CellSize.X*child.PivotX, y+g.CellSize.Y*child.PivotY)
		child.Index = i
		if col > maxCol {
			maxCol = col
		}
		if row > maxRow {
			maxRow = row
		}
		i++
	}

	if i == 0 {
		content.SetSize(pad.Left+pad.Right, pad.Top+pad.Bottom)
		return
	}
	w := pad.Left + pad.Right + float64(maxCol+1)*g.CellSize.X + float64(maxCol)*g.Spacing.X
	h := pad.Top + pad.Bottom + float64(maxRow+1)*g.CellSize.Y + float64(maxRow)*g.Spacing.Y
	content.SetSize(w, h)
}
