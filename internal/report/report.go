// Package report renders allocation results for people to read.
package report

import (
	"fmt"
	"io"

	"github.com/mmynk/billsplit/internal/calculator"
)

// Report is a formatted view of one allocation.
type Report struct {
	Name      string
	TotalCost float64
	Charges   []calculator.Charge
	Total     float64
	Matches   bool
}

// Build sums the charges and checks them against totalCost within tolerance.
func Build(name string, totalCost float64, charges []calculator.Charge, tolerance float64) Report {
	return Report{
		Name:      name,
		TotalCost: totalCost,
		Charges:   charges,
		Total:     calculator.Sum(charges),
		Matches:   calculator.Conserves(charges, totalCost, tolerance),
	}
}

// WriteTo prints the report with amounts rounded to two decimals.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(format string, args ...any) error {
		c, err := fmt.Fprintf(w, format, args...)
		n += int64(c)
		return err
	}

	if err := write("=== %s ===\n", r.Name); err != nil {
		return n, err
	}
	for _, c := range r.Charges {
		if err := write("%s: %.2f\n", c.Name, c.Amount); err != nil {
			return n, err
		}
	}
	if err := write("Total: %.2f\n", r.Total); err != nil {
		return n, err
	}
	err := write("Matches totalCost: %t\n", r.Matches)
	return n, err
}
