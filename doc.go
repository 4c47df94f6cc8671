// Package marginal composes a 2-D scatter plot with marginal
// distribution plots along one or both axes.
//
// The main entry point is Compose, which takes a scatter specification
// (or a raw dataset plus column bindings), builds density, histogram,
// boxplot, or violin panels for the requested margins, and splices
// everything into a single figure whose panels share exact axis ranges.
// The heavy lifting of scales, plotters, and canvas geometry is done by
// gonum.org/v1/plot; this package only orchestrates it.
//
// Datasets are column-oriented tables from github.com/aclements/go-gg/table.
// Density estimates use github.com/aclements/go-moremath/stats.
package marginal
