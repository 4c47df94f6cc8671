package marginal

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// rangeExpand is the fraction of the data span added on each side of an
// axis so that extreme points are not drawn on the panel border. The
// marginal plots reuse the expanded range, so the expansion never breaks
// panel alignment.
const rangeExpand = 0.04

// ScatterSpec describes the main scatter plot: the dataset, the column
// bindings, and the point styling. A ScatterSpec is immutable once
// resolved; Compose works on its own copy.
type ScatterSpec struct {
	Data *table.Table

	// X and Y name the numeric columns bound to the two axes.
	X, Y string

	// Color optionally names a column whose distinct values group the
	// points into separately colored series. Marginal plots drop this
	// aesthetic.
	Color string

	Title    string
	Subtitle string

	// PointColor and PointRadius style ungrouped points. Zero values
	// select the defaults.
	PointColor  color.Color
	PointRadius vg.Length
}

// NewScatter binds the x and y columns of data to a scatter plot.
func NewScatter(data *table.Table, x, y string) *ScatterSpec {
	return &ScatterSpec{Data: data, X: x, Y: y}
}

// resolveScatter turns the Options into one concrete ScatterSpec.
// Explicit Data/X/Y arguments take precedence over the bindings carried
// by an existing spec. The dataset and both bindings must resolve to
// numeric columns before any plot layer is built.
func resolveScatter(opts Options) (*ScatterSpec, error) {
	var spec ScatterSpec
	if opts.Plot != nil {
		spec = *opts.Plot
	}
	if opts.Data != nil {
		spec.Data = opts.Data
	}
	if opts.X != "" {
		spec.X = opts.X
	}
	if opts.Y != "" {
		spec.Y = opts.Y
	}

	if spec.Data == nil {
		return nil, fmt.Errorf("%w: no dataset: pass Plot or Data", ErrConfig)
	}
	if spec.X == "" || spec.Y == "" {
		return nil, fmt.Errorf("%w: x and y column bindings are required", ErrConfig)
	}
	if _, err := numericColumn(spec.Data, spec.X); err != nil {
		return nil, err
	}
	if _, err := numericColumn(spec.Data, spec.Y); err != nil {
		return nil, err
	}
	// The color column only needs to exist; it may be categorical.
	if spec.Color != "" && spec.Data.Column(spec.Color) == nil {
		return nil, fmt.Errorf("%w: no column %q", ErrConfig, spec.Color)
	}
	if spec.PointRadius == 0 {
		spec.PointRadius = vg.Points(2)
	}
	if spec.PointColor == nil {
		spec.PointColor = color.NRGBA{A: 255}
	}
	return &spec, nil
}

// numericColumn fetches a column and coerces it to []float64. A missing
// column is a configuration error; a non-coercible one is an unsupported
// type, reported before any rendering happens.
func numericColumn(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, fmt.Errorf("%w: no column %q", ErrConfig, name)
	}
	xs, ok := floats(col)
	if !ok {
		return nil, fmt.Errorf("%w: column %q", ErrUnsupportedType, name)
	}
	return xs, nil
}

// floats converts a column slice of any numeric element type.
func floats(col interface{}) ([]float64, bool) {
	v := reflect.ValueOf(col)
	if v.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]float64, v.Len())
	for i := range out {
		e := v.Index(i)
		switch e.Kind() {
		case reflect.Float32, reflect.Float64:
			out[i] = e.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = float64(e.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out[i] = float64(e.Uint())
		default:
			return nil, false
		}
	}
	return out, true
}

// buildScatter renders the spec into a plot object with normalized axis
// padding. The title is deliberately left off: the Figure re-attaches it
// above the composed layout.
func buildScatter(spec *ScatterSpec) (*plot.Plot, error) {
	xs, err := numericColumn(spec.Data, spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := numericColumn(spec.Data, spec.Y)
	if err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: columns %q and %q have different lengths", ErrConfig, spec.X, spec.Y)
	}

	p := plot.New()
	p.X.Label.Text = spec.X
	p.Y.Label.Text = spec.Y

	if spec.Color == "" {
		s, err := newScatter(xs, ys, spec.PointColor, spec.PointRadius)
		if err != nil {
			return nil, err
		}
		p.Add(s)
	} else {
		for i, g := range groupRows(spec.Data, spec.Color) {
			gx := pick(xs, g.rows)
			gy := pick(ys, g.rows)
			s, err := newScatter(gx, gy, plotutil.Color(i), spec.PointRadius)
			if err != nil {
				return nil, err
			}
			p.Add(s)
			p.Legend.Add(g.name, s)
		}
		p.Legend.Top = true
	}

	expandAxis(&p.X)
	expandAxis(&p.Y)
	return p, nil
}

func newScatter(xs, ys []float64, c color.Color, r vg.Length) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: r, Shape: draw.CircleGlyph{}}
	return s, nil
}

func expandAxis(a *plot.Axis) {
	pad := rangeExpand * (a.Max - a.Min)
	if pad == 0 {
		// Constant column: open up a unit window so binning and
		// density sampling still have a usable domain.
		pad = 0.5
	}
	a.Min -= pad
	a.Max += pad
}

type rowGroup struct {
	name string
	rows []int
}

// groupRows splits row indices by the distinct values of a column, in
// sorted value order so series colors are stable run to run.
func groupRows(t *table.Table, col string) []rowGroup {
	v := reflect.ValueOf(t.MustColumn(col))
	byName := make(map[string][]int)
	for i := 0; i < v.Len(); i++ {
		name := fmt.Sprint(v.Index(i).Interface())
		byName[name] = append(byName[name], i)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	groups := make([]rowGroup, len(names))
	for i, name := range names {
		groups[i] = rowGroup{name: name, rows: byName[name]}
	}
	return groups
}

func pick(xs []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = xs[r]
	}
	return out
}
