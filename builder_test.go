package marginal

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func mainPlotAndRanges(t *testing.T) (*ScatterSpec, AxisRange, AxisRange) {
	t.Helper()
	spec, err := resolveScatter(Options{Data: testTable(500), X: "x", Y: "y"})
	require.NoError(t, err)
	p, err := buildScatter(spec)
	require.NoError(t, err)
	return spec, captureRange(&p.X), captureRange(&p.Y)
}

func TestMarginalValueRangeMatchesMain(t *testing.T) {
	spec, xr, yr := mainPlotAndRanges(t)

	for _, typ := range []MarginalType{Density, Histogram, Boxplot, Violin} {
		top, err := buildMarginal(axisX, typ, spec, xr, nil, nil)
		require.NoError(t, err, "type %v", typ)
		require.Equal(t, xr.Min, top.plot.X.Min, "type %v", typ)
		require.Equal(t, xr.Max, top.plot.X.Max, "type %v", typ)
		require.Equal(t, xr, top.vrange, "type %v", typ)

		right, err := buildMarginal(axisY, typ, spec, yr, nil, nil)
		require.NoError(t, err, "type %v", typ)
		require.Equal(t, yr.Min, right.plot.Y.Min, "type %v", typ)
		require.Equal(t, yr.Max, right.plot.Y.Max, "type %v", typ)
		require.Equal(t, yr, right.vrange, "type %v", typ)
	}
}

func TestMarginalYAxisIsFlipped(t *testing.T) {
	spec, _, yr := mainPlotAndRanges(t)

	// The right-hand marginal keeps the data variable on the vertical
	// axis; the distribution magnitude runs horizontally.
	mp, err := buildMarginal(axisY, Density, spec, yr, nil, nil)
	require.NoError(t, err)
	require.Equal(t, yr.Min, mp.plot.Y.Min)
	require.Equal(t, 0.0, mp.plot.X.Min, "magnitude axis starts at zero")
	require.Greater(t, mp.plot.X.Max, 0.0)
}

func TestMarginalStripped(t *testing.T) {
	spec, xr, _ := mainPlotAndRanges(t)
	mp, err := buildMarginal(axisX, Histogram, spec, xr, nil, nil)
	require.NoError(t, err)
	require.Equal(t, color.Transparent, mp.plot.BackgroundColor)
	require.Empty(t, mp.plot.X.Label.Text)
	require.Empty(t, mp.plot.Y.Label.Text)
}

func TestMarginalUnknownParam(t *testing.T) {
	spec, xr, _ := mainPlotAndRanges(t)
	_, err := buildMarginal(axisX, Density, spec, xr, Params{"wiggle": 1}, nil)
	require.ErrorIs(t, err, ErrLayerParam)
}

func TestMarginalAestheticWarning(t *testing.T) {
	spec, xr, _ := mainPlotAndRanges(t)
	spec.Color = "group"

	var msgs []string
	warnf := func(format string, args ...interface{}) { msgs = append(msgs, format) }
	_, err := buildMarginal(axisX, Density, spec, xr, nil, warnf)
	require.NoError(t, err)
	require.Len(t, msgs, 1, "dropping the color aesthetic must be reported to the sink")
}

func TestBoxplotBothMarginsRender(t *testing.T) {
	// The horizontal top box and vertical right box must survive a
	// full compose-and-draw pass, not just construction.
	fig, err := Compose(Options{Data: testTable(200), X: "x", Y: "y", Type: Boxplot})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, fig.Render(4*vg.Inch, 4*vg.Inch, "png", &buf))
	require.NotZero(t, buf.Len())
}

func TestBoxplotOrientation(t *testing.T) {
	spec, xr, yr := mainPlotAndRanges(t)

	top, err := buildMarginal(axisX, Boxplot, spec, xr, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, top.plot.Y.Min, "horizontal box centers on a unit y interval")
	require.Equal(t, 1.0, top.plot.Y.Max)

	right, err := buildMarginal(axisY, Boxplot, spec, yr, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, right.plot.X.Min)
	require.Equal(t, 1.0, right.plot.X.Max)
}

func TestHistogramBinWidthOverridesBins(t *testing.T) {
	spec, xr, _ := mainPlotAndRanges(t)
	span := xr.Max - xr.Min
	mp, err := buildMarginal(axisX, Histogram, spec, xr, Params{"bins": 7, "binwidth": span / 4}, nil)
	require.NoError(t, err)
	require.NotNil(t, mp)
}
