package cli

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/statplot/marginal"
)

// parseParams turns key=value pairs into a marginal.Params bag. Values
// are typed by shape: "#rrggbb" or "#rrggbbaa" becomes a color, digits
// become an int, anything else that parses as a float becomes a
// float64. Later pairs win on key collision, so command-line flags can
// override config-file defaults.
func parseParams(pairs []string) (marginal.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	p := marginal.Params{}
	for _, pair := range pairs {
		k, raw, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad param %q: want key=value", pair)
		}
		v, err := paramValue(raw)
		if err != nil {
			return nil, fmt.Errorf("bad param %q: %v", pair, err)
		}
		p[k] = v
	}
	return p, nil
}

func paramValue(raw string) (interface{}, error) {
	if strings.HasPrefix(raw, "#") {
		return parseHexColor(raw)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value %q", raw)
}

func parseHexColor(s string) (color.Color, error) {
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q", s)
	}
	c := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}
