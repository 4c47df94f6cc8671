package marginal

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gg/table"
)

// MarginalType selects the distribution plot drawn in the margins.
type MarginalType int

const (
	Density MarginalType = iota
	Histogram
	Boxplot
	Violin
)

var typeNames = [...]string{"density", "histogram", "boxplot", "violin"}

func (t MarginalType) String() string {
	if t < Density || t > Violin {
		return fmt.Sprintf("MarginalType(%d)", int(t))
	}
	return typeNames[t]
}

// ParseMarginalType resolves a type name as used on the command line.
func ParseMarginalType(s string) (MarginalType, error) {
	for i, name := range typeNames {
		if s == name {
			return MarginalType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown marginal type %q", ErrConfig, s)
}

// Margins selects which sides of the main panel get a marginal plot.
type Margins int

const (
	Both Margins = iota
	XOnly
	YOnly
)

var marginNames = [...]string{"both", "x", "y"}

func (m Margins) String() string {
	if m < Both || m > YOnly {
		return fmt.Sprintf("Margins(%d)", int(m))
	}
	return marginNames[m]
}

// ParseMargins resolves a margins name as used on the command line.
func ParseMargins(s string) (Margins, error) {
	for i, name := range marginNames {
		if s == name {
			return Margins(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown margins %q", ErrConfig, s)
}

// DefaultSize is the default main:marginal extent ratio.
const DefaultSize = 5

// Options configure Compose. Either Plot or Data+X+Y must supply the
// dataset and column bindings; explicit Data/X/Y values override the
// bindings a Plot carries.
type Options struct {
	Plot *ScatterSpec // optional existing scatter specification
	Data *table.Table // optional dataset
	X, Y string       // optional column bindings

	Type    MarginalType // marginal plot type, default Density
	Margins Margins      // which margins to draw, default Both
	Size    int          // main:marginal ratio, 0 means DefaultSize

	Params  Params // shared style options
	XParams Params // x-axis overrides, win over Params
	YParams Params // y-axis overrides, win over Params

	// Warnf receives non-fatal warnings. The expected "no aesthetic
	// mapping" warnings from the deliberately aesthetic-free marginal
	// layers are suppressed before this is called. Nil discards all
	// warnings.
	Warnf func(format string, args ...interface{})
}

// Compose builds the main scatter plot, one or two marginal
// distribution plots pinned to its exact axis ranges, and splices them
// into a single composed figure. All configuration is validated before
// any plot layer is built; failures are reported eagerly and the
// returned error wraps ErrConfig, ErrUnsupportedType, or ErrLayerParam.
func Compose(opts Options) (*Figure, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < 1 {
		return nil, fmt.Errorf("%w: size ratio must be a positive integer, got %d", ErrConfig, opts.Size)
	}
	if opts.Type < Density || opts.Type > Violin {
		return nil, fmt.Errorf("%w: unknown marginal type %d", ErrConfig, int(opts.Type))
	}
	if opts.Margins < Both || opts.Margins > YOnly {
		return nil, fmt.Errorf("%w: unknown margins %d", ErrConfig, int(opts.Margins))
	}

	spec, err := resolveScatter(opts)
	if err != nil {
		return nil, err
	}
	xp, yp := consolidate(opts.Type, opts.Params, opts.XParams, opts.YParams)
	// Fail on bad style options before building anything.
	if _, err := styleFromParams(xp); err != nil {
		return nil, err
	}
	if _, err := styleFromParams(yp); err != nil {
		return nil, err
	}

	main, err := buildScatter(spec)
	if err != nil {
		return nil, err
	}
	xr := captureRange(&main.X)
	yr := captureRange(&main.Y)

	warnf := suppressAestheticWarnings(opts.Warnf)

	var top, right *marginalPlot
	if opts.Margins == Both || opts.Margins == XOnly {
		top, err = buildMarginal(axisX, opts.Type, spec, xr, xp, warnf)
		if err != nil {
			return nil, err
		}
	}
	if opts.Margins == Both || opts.Margins == YOnly {
		right, err = buildMarginal(axisY, opts.Type, spec, yr, yp, warnf)
		if err != nil {
			return nil, err
		}
	}

	layout, err := composeLayout(main, top, right, opts.Size)
	if err != nil {
		return nil, err
	}
	if spec.Title != "" || spec.Subtitle != "" {
		// The title was kept off the panel plot so the marginal
		// insertion could not squeeze or duplicate it; re-attach it
		// above everything at its natural height.
		layout.prependTitleRow(newTitleBlock(spec.Title, spec.Subtitle, main.Title.TextStyle))
	}
	return &Figure{Kind: KindMarginal, Layout: layout}, nil
}

// suppressAestheticWarnings filters the expected warning raised when a
// marginal layer drops the main plot's color aesthetic. Every other
// warning passes through unmodified.
func suppressAestheticWarnings(warnf func(string, ...interface{})) func(string, ...interface{}) {
	if warnf == nil {
		return nil
	}
	return func(format string, args ...interface{}) {
		if strings.HasPrefix(format, "no aesthetic mapping") {
			return
		}
		warnf(format, args...)
	}
}
