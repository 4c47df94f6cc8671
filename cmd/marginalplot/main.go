// Command marginalplot draws a scatter plot from a CSV file with
// marginal distribution plots along one or both axes.
package main

import (
	"os"

	"github.com/statplot/marginal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
