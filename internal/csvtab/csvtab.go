// Package csvtab loads CSV files into go-gg column tables.
package csvtab

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// ErrEmpty indicates an input with no header row.
var ErrEmpty = errors.New("csvtab: empty input")

// Read parses CSV with a header row into a column-oriented table.
// A column whose every value parses as a float becomes []float64;
// anything else stays []string.
func Read(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrEmpty
	}
	hdr, rows := recs[0], recs[1:]

	b := new(table.Builder)
	for j, name := range hdr {
		strs := make([]string, len(rows))
		nums := make([]float64, len(rows))
		numeric := len(rows) > 0
		for i, rec := range rows {
			strs[i] = rec[j]
			if numeric {
				v, err := strconv.ParseFloat(rec[j], 64)
				if err != nil {
					numeric = false
				} else {
					nums[i] = v
				}
			}
		}
		if numeric {
			b.Add(name, nums)
		} else {
			b.Add(name, strs)
		}
	}
	return b.Done(), nil
}
