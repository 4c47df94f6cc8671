package marginal

import "gonum.org/v1/plot"

// AxisRange is the resolved numeric domain and tick positions of one
// axis of the main plot. It is captured once after the main plot's
// layers are in place and reused verbatim for the marginal plot on that
// axis: both plots seeing identical limits and breaks is what keeps the
// panels aligned.
type AxisRange struct {
	Min, Max float64
	Ticks    []plot.Tick
}

func captureRange(a *plot.Axis) AxisRange {
	return AxisRange{
		Min:   a.Min,
		Max:   a.Max,
		Ticks: a.Tick.Marker.Ticks(a.Min, a.Max),
	}
}

// applyRange pins an axis to a captured range. The tick marker is
// replaced with the captured positions so later range queries return
// the same breaks the main plot used.
func applyRange(a *plot.Axis, r AxisRange) {
	a.Min, a.Max = r.Min, r.Max
	a.Tick.Marker = plot.ConstantTicks(r.Ticks)
}
