// Package cli implements the marginalplot command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/statplot/marginal"
	"github.com/statplot/marginal/internal/csvtab"
)

var version = "devel" // overridden via ldflags at release build time

// Execute runs the marginalplot CLI and returns an error if the command
// fails. Errors are already logged when this returns.
func Execute() error {
	var (
		input      string
		output     string
		xCol, yCol string
		colorCol   string
		typeName   string
		margins    string
		size       int
		title      string
		subtitle   string
		width      float64
		height     float64
		params     []string
		xparams    []string
		yparams    []string
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:          "marginalplot",
		Short:        "marginalplot composes scatter plots with marginal distributions",
		Long:         `marginalplot reads a CSV file with a header row, draws a scatter plot of two numeric columns, and attaches density, histogram, boxplot, or violin panels showing each axis's univariate distribution.`,
		Version:      version,
		SilenceUsage: true,
		// Errors are logged in RunE; cobra should not print them again.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: false,
				Prefix:          "marginalplot",
			})
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}

			cfg := defaultConfig()
			if configPath != "" {
				var err error
				cfg, err = loadConfig(configPath)
				if err != nil {
					logger.Error("reading config", "path", configPath, "err", err)
					return err
				}
			}
			// Flags win over the config file.
			if !cmd.Flags().Changed("type") && cfg.Type != "" {
				typeName = cfg.Type
			}
			if !cmd.Flags().Changed("margins") && cfg.Margins != "" {
				margins = cfg.Margins
			}
			if !cmd.Flags().Changed("size") && cfg.Size != 0 {
				size = cfg.Size
			}
			if !cmd.Flags().Changed("width") && cfg.Width != 0 {
				width = cfg.Width
			}
			if !cmd.Flags().Changed("height") && cfg.Height != 0 {
				height = cfg.Height
			}

			err := run(logger, runArgs{
				input: input, output: output,
				x: xCol, y: yCol, color: colorCol,
				typeName: typeName, margins: margins, size: size,
				title: title, subtitle: subtitle,
				width: width, height: height,
				params:  append(mapToPairs(cfg.Params), params...),
				xparams: xparams, yparams: yparams,
			})
			if err != nil {
				logger.Error(err.Error())
			}
			return err
		},
	}

	fl := root.Flags()
	fl.StringVarP(&input, "input", "i", "-", "input CSV file (\"-\" for stdin)")
	fl.StringVarP(&output, "output", "o", "plot.png", "output file; format follows the extension (png, svg, pdf)")
	fl.StringVarP(&xCol, "x", "x", "", "column bound to the x axis (required)")
	fl.StringVarP(&yCol, "y", "y", "", "column bound to the y axis (required)")
	fl.StringVar(&colorCol, "color-by", "", "column grouping points into colored series")
	fl.StringVarP(&typeName, "type", "t", "density", "marginal type: density, histogram, boxplot, violin")
	fl.StringVarP(&margins, "margins", "m", "both", "which margins to draw: both, x, y")
	fl.IntVarP(&size, "size", "s", marginal.DefaultSize, "main:marginal panel size ratio")
	fl.StringVar(&title, "title", "", "plot title")
	fl.StringVar(&subtitle, "subtitle", "", "plot subtitle")
	fl.Float64Var(&width, "width", 6, "output width in inches")
	fl.Float64Var(&height, "height", 6, "output height in inches")
	fl.StringArrayVarP(&params, "param", "p", nil, "shared marginal style option key=value (repeatable)")
	fl.StringArrayVar(&xparams, "xparam", nil, "x-marginal style option key=value (repeatable)")
	fl.StringArrayVar(&yparams, "yparam", nil, "y-marginal style option key=value (repeatable)")
	fl.StringVarP(&configPath, "config", "c", "", "TOML file with default options")
	fl.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.MarkFlagRequired("x")
	root.MarkFlagRequired("y")

	return root.Execute()
}

type runArgs struct {
	input, output            string
	x, y, color              string
	typeName, margins        string
	size                     int
	title, subtitle          string
	width, height            float64
	params, xparams, yparams []string
}

func run(logger *charmlog.Logger, a runArgs) error {
	typ, err := marginal.ParseMarginalType(a.typeName)
	if err != nil {
		return err
	}
	marg, err := marginal.ParseMargins(a.margins)
	if err != nil {
		return err
	}
	shared, err := parseParams(a.params)
	if err != nil {
		return err
	}
	xp, err := parseParams(a.xparams)
	if err != nil {
		return err
	}
	yp, err := parseParams(a.yparams)
	if err != nil {
		return err
	}

	in := os.Stdin
	if a.input != "-" {
		in, err = os.Open(a.input)
		if err != nil {
			return err
		}
		defer in.Close()
	}
	tab, err := csvtab.Read(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.input, err)
	}
	logger.Debug("loaded dataset", "rows", tab.Len(), "cols", len(tab.Columns()))

	spec := &marginal.ScatterSpec{
		Data:     tab,
		X:        a.x,
		Y:        a.y,
		Color:    a.color,
		Title:    a.title,
		Subtitle: a.subtitle,
	}
	fig, err := marginal.Compose(marginal.Options{
		Plot:    spec,
		Type:    typ,
		Margins: marg,
		Size:    a.size,
		Params:  shared,
		XParams: xp,
		YParams: yp,
		Warnf: func(format string, args ...interface{}) {
			logger.Warnf(format, args...)
		},
	})
	if err != nil {
		return err
	}

	format := strings.TrimPrefix(filepath.Ext(a.output), ".")
	if format == "" {
		format = "png"
	}
	out, err := os.Create(a.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := fig.Render(vg.Inch*vg.Length(a.width), vg.Inch*vg.Length(a.height), format, out); err != nil {
		return err
	}
	logger.Info("wrote figure", "path", a.output, "format", format)
	return nil
}
