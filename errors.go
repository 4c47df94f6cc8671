package marginal

import "errors"

// Errors:
//
//	ErrConfig          - invalid argument combination or invalid size ratio.
//	ErrUnsupportedType - a bound column is not numeric.
//	ErrLayerParam      - a style option was rejected by the plot layer.
var (
	// ErrConfig indicates an invalid argument combination, such as a
	// missing dataset or a non-positive size ratio.
	ErrConfig = errors.New("marginal: invalid configuration")

	// ErrUnsupportedType indicates that a column bound to an axis does
	// not hold numeric data and cannot feed a distribution plot.
	ErrUnsupportedType = errors.New("marginal: column is not numeric")

	// ErrLayerParam indicates that a style option was not accepted by
	// the plot layer it was applied to.
	ErrLayerParam = errors.New("marginal: unsupported layer parameter")
)
