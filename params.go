package marginal

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Params is a free-form bag of style and behavior options for marginal
// plot layers. Recognized keys:
//
//	"color"     color.Color - outline color for lines, boxes, and bars
//	"fill"      color.Color - fill color for histograms, boxplots, violins
//	"alpha"     float64     - opacity multiplier in [0, 1]
//	"linewidth" float64     - outline width in points
//	"bins"      int         - histogram bin count
//	"binwidth"  float64     - histogram bin width in data units (overrides "bins")
//	"bandwidth" float64     - kernel density bandwidth (0 means automatic)
//	"adjust"    float64     - multiplier applied to the chosen bandwidth
//	"boxwidth"  float64     - box/violin breadth in points
//
// Unrecognized keys are passed through to the layer and rejected there
// with ErrLayerParam.
type Params map[string]interface{}

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	q := make(Params, len(p))
	for k, v := range p {
		q[k] = v
	}
	return q
}

// merge layers axis-specific options over shared ones. The axis bag wins
// on key collision.
func merge(shared, axis Params) Params {
	m := shared.clone()
	for k, v := range axis {
		m[k] = v
	}
	return m
}

// consolidate resolves the three option bags into one per-axis bag each.
// For density marginals the shared "fill" option is dropped before the
// merge: density curves are outline-only and strict plot layers reject a
// fill there. An explicit axis-level "fill" still passes through.
func consolidate(typ MarginalType, shared, xp, yp Params) (x, y Params) {
	shared = shared.clone()
	if typ == Density {
		delete(shared, "fill")
	}
	return merge(shared, xp), merge(shared, yp)
}

// layerStyle is the typed form of a Params bag, with defaults filled in.
type layerStyle struct {
	color     color.Color
	fill      color.Color
	alpha     float64
	lineWidth vg.Length
	bins      int
	binWidth  float64
	bandwidth float64
	adjust    float64
	boxWidth  vg.Length
}

func defaultStyle() layerStyle {
	return layerStyle{
		color:     color.Black,
		fill:      color.Gray{Y: 0xb3},
		alpha:     1,
		lineWidth: vg.Points(1),
		bins:      30,
		adjust:    1,
		boxWidth:  vg.Points(20),
	}
}

// styleFromParams type-checks a consolidated bag. A key the layer does
// not understand, or a value of the wrong type, is reported as
// ErrLayerParam naming the offending key.
func styleFromParams(p Params) (layerStyle, error) {
	s := defaultStyle()
	for k, v := range p {
		ok := true
		switch k {
		case "color":
			s.color, ok = v.(color.Color)
		case "fill":
			s.fill, ok = v.(color.Color)
		case "alpha":
			s.alpha, ok = toFloat(v)
			if ok && (s.alpha < 0 || s.alpha > 1) {
				ok = false
			}
		case "linewidth":
			var w float64
			w, ok = toFloat(v)
			s.lineWidth = vg.Points(w)
		case "bins":
			n, isInt := v.(int)
			if !isInt || n < 1 {
				ok = false
			} else {
				s.bins = n
			}
		case "binwidth":
			s.binWidth, ok = toFloat(v)
			if ok && s.binWidth <= 0 {
				ok = false
			}
		case "bandwidth":
			s.bandwidth, ok = toFloat(v)
		case "adjust":
			s.adjust, ok = toFloat(v)
		case "boxwidth":
			var w float64
			w, ok = toFloat(v)
			s.boxWidth = vg.Points(w)
		default:
			return s, fmt.Errorf("%w: %q", ErrLayerParam, k)
		}
		if !ok {
			return s, fmt.Errorf("%w: bad value for %q: %v", ErrLayerParam, k, v)
		}
	}
	if s.alpha != 1 {
		s.color = withAlpha(s.color, s.alpha)
		s.fill = withAlpha(s.fill, s.alpha)
	}
	return s, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

// withAlpha scales a color's opacity. The conversion goes through the
// non-premultiplied model so a base color that already carries alpha
// keeps its channel values and only its alpha is scaled.
func withAlpha(c color.Color, a float64) color.Color {
	if c == nil {
		return nil
	}
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	nc.A = uint16(float64(nc.A) * a)
	return nc
}
