package marginal

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// marginPad is the fixed band reserved beyond a lone marginal panel, so
// single-margin figures keep outer spacing consistent with the
// two-margin case. It is inserted before the marginal panel, which then
// lands directly against the main panel.
var marginPad = vg.Points(5)

// cellSize is one row or column extent: a proportional weight of the
// remaining space, or a fixed length. Exactly one of the two is set.
type cellSize struct {
	weight float64
	fixed  vg.Length
}

type cellContent interface{ cellContent() }

type mainPanel struct{ p *plot.Plot }

type marginPanel struct{ mp *marginalPlot }

func (mainPanel) cellContent()   {}
func (marginPanel) cellContent() {}
func (*titleBlock) cellContent() {}

type cell struct {
	row, col int
	colSpan  int
	content  cellContent
}

// ComposedLayout is a grid of renderable cells with explicit size
// weights: the main scatter panel, up to two marginal panels, and an
// optional title row. It is built once per Compose call and consumed by
// Figure.Draw.
type ComposedLayout struct {
	rows  []cellSize // top to bottom
	cols  []cellSize // left to right
	cells []cell

	// Grid position of the main panel.
	panelRow, panelCol int

	main *plot.Plot
}

// composeLayout splices the marginal panels into a grid around the main
// panel. size is the main:marginal extent ratio along the relevant
// dimension and must be a positive integer.
//
// When both margins are present the insertion order is load-bearing:
// the top row goes in first, spanning the main panel's column; the
// right column is then added spanning only the original main-panel row,
// which keeps the right panel flush with the main panel and leaves the
// corner cell empty.
func composeLayout(main *plot.Plot, top, right *marginalPlot, size int) (*ComposedLayout, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size ratio must be a positive integer, got %d", ErrConfig, size)
	}
	l := &ComposedLayout{
		rows: []cellSize{{weight: float64(size)}},
		cols: []cellSize{{weight: float64(size)}},
		main: main,
	}
	l.cells = append(l.cells, cell{row: 0, col: 0, colSpan: 1, content: mainPanel{main}})

	switch {
	case top != nil && right != nil:
		l.insertRowAbove(cellSize{weight: 1}, marginPanel{top})
		l.insertColRight(cellSize{weight: 1}, marginPanel{right})
	case top != nil:
		l.insertRowAbove(cellSize{fixed: marginPad}, nil)
		l.insertRowAbove(cellSize{weight: 1}, marginPanel{top})
	case right != nil:
		l.insertColRight(cellSize{fixed: marginPad}, nil)
		l.insertColRight(cellSize{weight: 1}, marginPanel{right})
	}
	return l, nil
}

// insertRowAbove adds a row directly above the main panel's row. A nil
// content leaves the row empty (padding).
func (l *ComposedLayout) insertRowAbove(size cellSize, content cellContent) {
	at := l.panelRow
	l.rows = append(l.rows, cellSize{})
	copy(l.rows[at+1:], l.rows[at:])
	l.rows[at] = size
	for i := range l.cells {
		if l.cells[i].row >= at {
			l.cells[i].row++
		}
	}
	if content != nil {
		l.cells = append(l.cells, cell{row: at, col: l.panelCol, colSpan: 1, content: content})
	}
	l.panelRow++
}

// insertColRight adds a column directly right of the main panel's
// column. The new cell spans only the main panel's row.
func (l *ComposedLayout) insertColRight(size cellSize, content cellContent) {
	at := l.panelCol + 1
	l.cols = append(l.cols, cellSize{})
	copy(l.cols[at+1:], l.cols[at:])
	l.cols[at] = size
	for i := range l.cells {
		if l.cells[i].col >= at {
			l.cells[i].col++
		}
	}
	if content != nil {
		l.cells = append(l.cells, cell{row: l.panelRow, col: at, colSpan: 1, content: content})
	}
}

// prependTitleRow adds a natural-height top row spanning every column.
func (l *ComposedLayout) prependTitleRow(t *titleBlock) {
	l.rows = append([]cellSize{{fixed: t.height()}}, l.rows...)
	for i := range l.cells {
		l.cells[i].row++
	}
	l.cells = append(l.cells, cell{row: 0, col: 0, colSpan: len(l.cols), content: t})
	l.panelRow++
}

// Panels reports the number of plot panels (main plus marginals).
func (l *ComposedLayout) Panels() int {
	n := 0
	for _, c := range l.cells {
		switch c.content.(type) {
		case mainPanel, marginPanel:
			n++
		}
	}
	return n
}

// resolveSizes turns row or column sizes into concrete extents: fixed
// sizes are taken off the top and the remainder is shared by weight.
func resolveSizes(sizes []cellSize, total vg.Length) []vg.Length {
	var fixed vg.Length
	wsum := 0.0
	for _, s := range sizes {
		if s.weight > 0 {
			wsum += s.weight
		} else {
			fixed += s.fixed
		}
	}
	rem := total - fixed
	if rem < 0 {
		rem = 0
	}
	out := make([]vg.Length, len(sizes))
	for i, s := range sizes {
		if s.weight > 0 {
			out[i] = vg.Length(s.weight/wsum) * rem
		} else {
			out[i] = s.fixed
		}
	}
	return out
}

// Draw renders every cell of the grid onto dc. Marginal panels are
// clamped to the main panel's data area along the shared axis, which is
// what makes the panel boundaries line up regardless of how much space
// the main plot's axis labels consume.
func (l *ComposedLayout) Draw(dc draw.Canvas) {
	rowH := resolveSizes(l.rows, dc.Rectangle.Size().Y)
	colW := resolveSizes(l.cols, dc.Rectangle.Size().X)

	// Row i's top edge, counting rows from the top of the canvas.
	rowTop := make([]vg.Length, len(rowH)+1)
	rowTop[0] = dc.Rectangle.Max.Y
	for i, h := range rowH {
		rowTop[i+1] = rowTop[i] - h
	}
	colLeft := make([]vg.Length, len(colW)+1)
	colLeft[0] = dc.Rectangle.Min.X
	for i, w := range colW {
		colLeft[i+1] = colLeft[i] + w
	}

	rect := func(c cell) vg.Rectangle {
		return vg.Rectangle{
			Min: vg.Point{X: colLeft[c.col], Y: rowTop[c.row+1]},
			Max: vg.Point{X: colLeft[c.col+c.colSpan], Y: rowTop[c.row]},
		}
	}

	// The main panel's data area drives marginal alignment.
	mainRect := rect(cell{row: l.panelRow, col: l.panelCol, colSpan: 1})
	mainCanvas := draw.Canvas{Canvas: dc.Canvas, Rectangle: mainRect}
	dataRect := l.main.DataCanvas(mainCanvas).Rectangle

	for _, c := range l.cells {
		r := rect(c)
		switch v := c.content.(type) {
		case mainPanel:
			v.p.Draw(draw.Canvas{Canvas: dc.Canvas, Rectangle: r})
		case marginPanel:
			if v.mp.axis == axisX {
				r.Min.X, r.Max.X = dataRect.Min.X, dataRect.Max.X
			} else {
				r.Min.Y, r.Max.Y = dataRect.Min.Y, dataRect.Max.Y
			}
			v.mp.plot.Draw(draw.Canvas{Canvas: dc.Canvas, Rectangle: r})
		case *titleBlock:
			v.draw(draw.Canvas{Canvas: dc.Canvas, Rectangle: r})
		}
	}
}
