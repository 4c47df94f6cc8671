package marginal

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsolidatePrecedence(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	x, y := consolidate(Histogram,
		Params{"color": red, "bins": 10},
		Params{"bins": 20},
		Params{"color": blue},
	)

	require.Equal(t, 20, x["bins"], "x-specific option must win")
	require.Equal(t, red, x["color"], "shared option must survive where not overridden")
	require.Equal(t, 10, y["bins"])
	require.Equal(t, blue, y["color"], "y-specific option must win")
}

func TestConsolidateDoesNotMutateInputs(t *testing.T) {
	shared := Params{"bins": 10}
	x, _ := consolidate(Histogram, shared, Params{"bins": 20}, nil)
	require.Equal(t, 20, x["bins"])
	require.Equal(t, 10, shared["bins"], "shared bag must not be edited in place")
}

func TestDensityDropsSharedFill(t *testing.T) {
	gray := color.Gray{Y: 128}
	x, y := consolidate(Density, Params{"fill": gray, "bandwidth": 0.5}, nil, nil)
	require.NotContains(t, x, "fill")
	require.NotContains(t, y, "fill")
	require.Equal(t, 0.5, x["bandwidth"], "other shared options must survive")
}

func TestDensityKeepsAxisLevelFill(t *testing.T) {
	gray := color.Gray{Y: 128}
	x, y := consolidate(Density, Params{"fill": gray}, Params{"fill": gray}, nil)
	require.Contains(t, x, "fill", "an explicit axis-level fill passes through")
	require.NotContains(t, y, "fill")
}

func TestStyleFromParamsUnknownKey(t *testing.T) {
	_, err := styleFromParams(Params{"wiggle": 3})
	require.ErrorIs(t, err, ErrLayerParam)
	require.Contains(t, err.Error(), "wiggle")
}

func TestStyleFromParamsBadValues(t *testing.T) {
	for _, p := range []Params{
		{"alpha": 1.5},
		{"alpha": "opaque"},
		{"bins": 0},
		{"bins": 3.7},
		{"binwidth": -1.0},
		{"color": "red"},
	} {
		_, err := styleFromParams(p)
		require.ErrorIs(t, err, ErrLayerParam, "params %v", p)
	}
}

func TestWithAlphaKeepsChannels(t *testing.T) {
	// A base color that already carries alpha must keep its channel
	// values; only the alpha scales.
	base := color.NRGBA{R: 0xff, A: 0x80}
	got := withAlpha(base, 0.5).(color.NRGBA64)
	require.Greater(t, int(got.R), 0xf000, "red channel must stay non-premultiplied")
	require.InDelta(t, 0x4040, int(got.A), 0x200, "alpha must scale from the base alpha")
}

func TestStyleFromParamsDefaults(t *testing.T) {
	s, err := styleFromParams(nil)
	require.NoError(t, err)
	require.Equal(t, 30, s.bins)
	require.Equal(t, 1.0, s.alpha)
}
