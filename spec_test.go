package marginal

import (
	"math/rand"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/require"
)

// testTable builds a deterministic dataset with correlated numeric
// columns "x" and "y" and a categorical column "group".
func testTable(n int) *table.Table {
	rng := rand.New(rand.NewSource(1))
	xs := make([]float64, n)
	ys := make([]float64, n)
	groups := make([]string, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()
		ys[i] = 2*xs[i] + rng.NormFloat64()
		groups[i] = string(rune('a' + i%3))
	}
	return new(table.Builder).
		Add("x", xs).
		Add("y", ys).
		Add("group", groups).
		Done()
}

func TestResolveRequiresData(t *testing.T) {
	_, err := resolveScatter(Options{})
	require.ErrorIs(t, err, ErrConfig)

	_, err = resolveScatter(Options{Data: testTable(10)})
	require.ErrorIs(t, err, ErrConfig, "missing bindings must be rejected")
}

func TestResolveInfersFromPlot(t *testing.T) {
	spec, err := resolveScatter(Options{Plot: NewScatter(testTable(10), "x", "y")})
	require.NoError(t, err)
	require.Equal(t, "x", spec.X)
	require.Equal(t, "y", spec.Y)
	require.NotNil(t, spec.Data)
}

func TestResolveExplicitArgsWin(t *testing.T) {
	// The plot binds x/y; explicit arguments rebind y to x.
	spec, err := resolveScatter(Options{
		Plot: NewScatter(testTable(10), "x", "y"),
		Y:    "x",
	})
	require.NoError(t, err)
	require.Equal(t, "x", spec.Y, "explicit binding must override the plot's own")

	other := testTable(20)
	spec, err = resolveScatter(Options{
		Plot: NewScatter(testTable(10), "x", "y"),
		Data: other,
	})
	require.NoError(t, err)
	require.Equal(t, 20, spec.Data.Len(), "explicit dataset must override the plot's own")
}

func TestResolveUnknownColumn(t *testing.T) {
	_, err := resolveScatter(Options{Data: testTable(10), X: "x", Y: "nope"})
	require.ErrorIs(t, err, ErrConfig)
}

func TestResolveUnknownColorColumn(t *testing.T) {
	_, err := resolveScatter(Options{
		Plot: &ScatterSpec{Data: testTable(10), X: "x", Y: "y", Color: "nope"},
	})
	require.ErrorIs(t, err, ErrConfig)

	// And through the public entry point: an error, not a panic.
	_, err = Compose(Options{
		Plot: &ScatterSpec{Data: testTable(10), X: "x", Y: "y", Color: "nope"},
	})
	require.ErrorIs(t, err, ErrConfig)
}

func TestResolveNonNumericColumn(t *testing.T) {
	_, err := resolveScatter(Options{Data: testTable(10), X: "x", Y: "group"})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFloatsCoercion(t *testing.T) {
	got, ok := floats([]int{1, 2, 3})
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3}, got)

	_, ok = floats([]string{"a"})
	require.False(t, ok)

	_, ok = floats(42)
	require.False(t, ok)
}

func TestBuildScatterExpandsRanges(t *testing.T) {
	spec, err := resolveScatter(Options{Data: testTable(50), X: "x", Y: "y"})
	require.NoError(t, err)
	p, err := buildScatter(spec)
	require.NoError(t, err)

	xs, _ := numericColumn(spec.Data, "x")
	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	require.Less(t, p.X.Min, lo, "axis must be padded below the data")
	require.Greater(t, p.X.Max, hi, "axis must be padded above the data")
}

func TestBuildScatterGroupsByColor(t *testing.T) {
	spec, err := resolveScatter(Options{Data: testTable(30), X: "x", Y: "y"})
	require.NoError(t, err)
	spec.Color = "group"
	p, err := buildScatter(spec)
	require.NoError(t, err)
	require.True(t, p.Legend.Top, "grouped scatter must configure its legend")
}
