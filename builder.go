package marginal

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// axis identifies which main-plot axis a marginal plot belongs to.
type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) String() string {
	if a == axisX {
		return "x"
	}
	return "y"
}

// kdeSamples is the number of points density estimates are sampled at.
const kdeSamples = 200

// marginalPlot is a stripped single-axis distribution plot, pinned to
// the main plot's axis range and ready for composition. For axisY the
// geometry is built with coordinates swapped, so the distribution is
// drawn rotated 90° and the plot can sit to the right of the main panel.
type marginalPlot struct {
	plot   *plot.Plot
	axis   axis
	vrange AxisRange // the pinned value-axis range
}

// buildMarginal builds the distribution plot for one axis. The value
// axis is forced to the captured AxisRange after the layers are added,
// and all decoration (background, axes, labels) is stripped so the
// panel fills its composition cell edge to edge.
func buildMarginal(ax axis, typ MarginalType, spec *ScatterSpec, r AxisRange, params Params, warnf func(string, ...interface{})) (*marginalPlot, error) {
	sty, err := styleFromParams(params)
	if err != nil {
		return nil, err
	}
	col := spec.X
	if ax == axisY {
		col = spec.Y
	}
	vs, err := numericColumn(spec.Data, col)
	if err != nil {
		return nil, err
	}
	if spec.Color != "" && warnf != nil {
		warnf("no aesthetic mapping for %q on %s marginal plot; ignoring", spec.Color, ax)
	}

	p := plot.New()
	switch typ {
	case Density:
		err = addDensity(p, ax, vs, r, sty)
	case Histogram:
		err = addHistogram(p, ax, vs, r, sty)
	case Boxplot:
		err = addBoxplot(p, ax, vs, sty)
	case Violin:
		err = addViolin(p, ax, vs, sty)
	default:
		err = fmt.Errorf("%w: unknown marginal type %d", ErrConfig, typ)
	}
	if err != nil {
		return nil, err
	}

	// Pin the value axis last: adding layers expands axis ranges, and
	// the pinned limits and breaks must win.
	if ax == axisX {
		applyRange(&p.X, r)
	} else {
		applyRange(&p.Y, r)
	}
	strip(p)
	return &marginalPlot{plot: p, axis: ax, vrange: r}, nil
}

// xy places a (value, magnitude) pair according to the axis the plot is
// built for. axisY swaps the coordinates.
func xy(ax axis, value, magnitude float64) plotter.XY {
	if ax == axisX {
		return plotter.XY{X: value, Y: magnitude}
	}
	return plotter.XY{X: magnitude, Y: value}
}

func kdeFor(vs []float64, sty layerStyle) stats.KDE {
	sample := stats.Sample{Xs: vs}
	bw := sty.bandwidth
	if bw == 0 {
		bw = stats.BandwidthScott(sample)
	}
	if sty.adjust > 0 {
		bw *= sty.adjust
	}
	return stats.KDE{Sample: sample, Bandwidth: bw}
}

func addDensity(p *plot.Plot, ax axis, vs []float64, r AxisRange, sty layerStyle) error {
	kde := kdeFor(vs, sty)
	xs := vec.Linspace(r.Min, r.Max, kdeSamples)
	ds := vec.Map(kde.PDF, xs)

	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i] = xy(ax, xs[i], ds[i])
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	ln.LineStyle.Color = sty.color
	ln.LineStyle.Width = sty.lineWidth
	p.Add(ln)
	magnitudeAxis(p, ax, maxOf(ds))
	return nil
}

func addHistogram(p *plot.Plot, ax axis, vs []float64, r AxisRange, sty layerStyle) error {
	n := sty.bins
	if sty.binWidth > 0 {
		n = int(math.Ceil((r.Max - r.Min) / sty.binWidth))
		if n < 1 {
			n = 1
		}
	}
	divs := vec.Linspace(r.Min, r.Max, n+1)
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	counts := stat.Histogram(nil, divs, sorted, nil)

	for i, c := range counts {
		if c == 0 {
			continue
		}
		bar, err := plotter.NewPolygon(plotter.XYs{
			xy(ax, divs[i], 0),
			xy(ax, divs[i+1], 0),
			xy(ax, divs[i+1], c),
			xy(ax, divs[i], c),
		})
		if err != nil {
			return err
		}
		bar.Color = sty.fill
		bar.LineStyle.Color = sty.color
		bar.LineStyle.Width = sty.lineWidth
		p.Add(bar)
	}
	magnitudeAxis(p, ax, maxOf(counts))
	return nil
}

func addBoxplot(p *plot.Plot, ax axis, vs []float64, sty layerStyle) error {
	b, err := plotter.NewBoxPlot(sty.boxWidth, 0.5, plotter.Values(vs))
	if err != nil {
		return err
	}
	// The x marginal sits above the main panel, so its box runs
	// horizontally.
	b.Horizontal = ax == axisX
	styleBox(b, sty)
	p.Add(b)
	locAxis(p, ax)
	return nil
}

func styleBox(b *plotter.BoxPlot, sty layerStyle) {
	b.FillColor = sty.fill
	b.BoxStyle.Color = sty.color
	b.BoxStyle.Width = sty.lineWidth
	b.MedianStyle.Color = sty.color
	b.MedianStyle.Width = sty.lineWidth
	b.WhiskerStyle.Color = sty.color
	b.WhiskerStyle.Width = sty.lineWidth
	b.GlyphStyle.Color = sty.color
}

func addViolin(p *plot.Plot, ax axis, vs []float64, sty layerStyle) error {
	kde := kdeFor(vs, sty)
	lo, hi := kde.Sample.Bounds()
	xs := vec.Linspace(lo, hi, kdeSamples)
	ds := vec.Map(kde.PDF, xs)
	peak := maxOf(ds)
	if peak == 0 {
		return fmt.Errorf("%w: cannot estimate density for violin", ErrUnsupportedType)
	}
	// Half-breadth of the violin in location-axis units, mirrored
	// around the center line at 0.5.
	scale := 0.45 / peak

	pts := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		pts = append(pts, xy(ax, xs[i], 0.5+ds[i]*scale))
	}
	for i := len(xs) - 1; i >= 0; i-- {
		pts = append(pts, xy(ax, xs[i], 0.5-ds[i]*scale))
	}
	v, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	v.Color = sty.fill
	v.LineStyle.Color = sty.color
	v.LineStyle.Width = sty.lineWidth
	p.Add(v)
	locAxis(p, ax)
	return nil
}

// magnitudeAxis pins the count/density axis to start at zero with a
// little headroom above the tallest feature.
func magnitudeAxis(p *plot.Plot, ax axis, max float64) {
	lo, hi := 0.0, max*(1+rangeExpand)
	if ax == axisX {
		p.Y.Min, p.Y.Max = lo, hi
	} else {
		p.X.Min, p.X.Max = lo, hi
	}
}

// locAxis pins the location axis of box and violin layers, which are
// centered at 0.5 in a unit interval.
func locAxis(p *plot.Plot, ax axis) {
	if ax == axisX {
		p.Y.Min, p.Y.Max = 0, 1
	} else {
		p.X.Min, p.X.Max = 0, 1
	}
}

// strip removes every decoration from a marginal plot: transparent
// background, hidden axes, no labels. What remains is the bare panel,
// which then fills its entire composition cell and lines up with the
// main panel's data area.
func strip(p *plot.Plot) {
	p.BackgroundColor = color.Transparent
	p.X.Label.Text = ""
	p.Y.Label.Text = ""
	p.HideX()
	p.HideY()
}

func maxOf(xs []float64) float64 {
	max := 0.0
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return max
}
