package marginal

import (
	"image/color"
	"io"

	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FigureKind tags the variant of a Figure so that a generic display
// entry point can route it to the right draw routine.
type FigureKind int

const (
	// KindMarginal identifies a scatter plot composed with marginal
	// distribution panels.
	KindMarginal FigureKind = iota
)

// Figure is the composed, renderable result of Compose.
type Figure struct {
	Kind   FigureKind
	Layout *ComposedLayout
}

// Draw renders the figure onto dc. When clearFirst is set the canvas is
// filled white before drawing; callers reusing an interactive surface
// pass true, callers drawing on a fresh canvas may pass false.
func (f *Figure) Draw(dc draw.Canvas, clearFirst bool) {
	if clearFirst {
		dc.SetColor(color.White)
		dc.Fill(rectPath(dc.Rectangle))
	}
	switch f.Kind {
	case KindMarginal:
		f.Layout.Draw(dc)
	}
}

// Render draws the figure on a fresh canvas of the given size and
// writes it to out. format is one of the vg canvas formats ("png",
// "svg", "pdf", ...). The canvas lives only for this call.
func (f *Figure) Render(w, h vg.Length, format string, out io.Writer) error {
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return err
	}
	f.Draw(draw.New(c), true)
	_, err = c.WriteTo(out)
	return err
}

func rectPath(r vg.Rectangle) vg.Path {
	var p vg.Path
	p.Move(r.Min)
	p.Line(vg.Point{X: r.Max.X, Y: r.Min.Y})
	p.Line(r.Max)
	p.Line(vg.Point{X: r.Min.X, Y: r.Max.Y})
	p.Close()
	return p
}

// titleBlock carries a title and optional subtitle lifted off the main
// plot before composition, re-attached above the composed grid at its
// natural height.
type titleBlock struct {
	title, subtitle string
	style, subStyle text.Style
}

func newTitleBlock(title, subtitle string, base text.Style) *titleBlock {
	sub := base
	sub.Font.Size = base.Font.Size * 5 / 6
	return &titleBlock{title: title, subtitle: subtitle, style: base, subStyle: sub}
}

func (t *titleBlock) height() vg.Length {
	h := t.style.Height(t.title) + vg.Points(4)
	if t.subtitle != "" {
		h += t.subStyle.Height(t.subtitle) + vg.Points(2)
	}
	return h
}

func (t *titleBlock) draw(dc draw.Canvas) {
	sty := t.style
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	pt := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y}
	dc.FillText(sty, pt, t.title)
	if t.subtitle != "" {
		sub := t.subStyle
		sub.XAlign = text.XCenter
		sub.YAlign = text.YTop
		pt.Y -= t.style.Height(t.title) + vg.Points(2)
		dc.FillText(sub, pt, t.subtitle)
	}
}
