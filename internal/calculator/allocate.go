package calculator

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTolerance is the advisory tolerance used when comparing the sum of
// charges against the total cost for display.
const DefaultTolerance = 1e-2

// ErrInvalidArgument is returned for structurally invalid input.
var ErrInvalidArgument = errors.New("invalid argument")

// Person is one member of the group sharing the bill.
type Person struct {
	Name string
	// AbsentDays lists day indexes in [0, totalDays) the person was away.
	// Values outside that range never match a day and are ignored.
	AbsentDays []int
}

// Charge is the amount owed by one person. Charges returned by Allocate are
// index-aligned with the persons passed in.
type Charge struct {
	Name   string
	Amount float64
}

// Allocate splits totalCost among persons over totalDays.
//
// The fixed cost is divided equally among everyone. The remainder is spread
// evenly across the days, and each day's share is divided among the people
// present that day. A day on which nobody is present falls back to an equal
// split across the whole group, so the charges always add up to totalCost.
//
// An empty group yields an empty result. Negative totalDays is rejected with
// ErrInvalidArgument.
func Allocate(totalCost, fixedCost float64, totalDays int, persons []Person) ([]Charge, error) {
	if totalDays < 0 {
		return nil, fmt.Errorf("%w: total days must be non-negative, got %d", ErrInvalidArgument, totalDays)
	}

	charges := make([]Charge, len(persons))
	if len(persons) == 0 {
		return charges, nil
	}

	fixedShare := fixedCost / float64(len(persons))
	for i, p := range persons {
		charges[i] = Charge{Name: p.Name, Amount: fixedShare}
	}

	if totalDays == 0 {
		return charges, nil
	}

	dailyVariableCost := (totalCost - fixedCost) / float64(totalDays)
	absences := absenceSets(persons, totalDays)

	present := make([]int, 0, len(persons))
	for day := 0; day < totalDays; day++ {
		present = present[:0]
		for i := range persons {
			if _, away := absences[i][day]; !away {
				present = append(present, i)
			}
		}

		// Nobody present: the whole group absorbs the day
		if len(present) == 0 {
			share := dailyVariableCost / float64(len(persons))
			for i := range charges {
				charges[i].Amount += share
			}
			continue
		}

		share := dailyVariableCost / float64(len(present))
		for _, i := range present {
			charges[i].Amount += share
		}
	}

	return charges, nil
}

// absenceSets builds a day-index set per person, keeping only days inside
// [0, totalDays).
func absenceSets(persons []Person, totalDays int) []map[int]struct{} {
	sets := make([]map[int]struct{}, len(persons))
	for i, p := range persons {
		set := make(map[int]struct{}, len(p.AbsentDays))
		for _, day := range p.AbsentDays {
			if day >= 0 && day < totalDays {
				set[day] = struct{}{}
			}
		}
		sets[i] = set
	}
	return sets
}

// OutOfRangeAbsences returns, per person name, the absent days that fall
// outside [0, totalDays) and therefore have no effect on the allocation.
func OutOfRangeAbsences(persons []Person, totalDays int) map[string][]int {
	out := make(map[string][]int)
	for _, p := range persons {
		for _, day := range p.AbsentDays {
			if day < 0 || day >= totalDays {
				out[p.Name] = append(out[p.Name], day)
			}
		}
	}
	return out
}

// Sum adds up the charge amounts.
func Sum(charges []Charge) float64 {
	var total float64
	for _, c := range charges {
		total += c.Amount
	}
	return total
}

// Conserves reports whether the charges add up to totalCost within tolerance.
// With no charges there is nothing to check and Conserves returns true.
func Conserves(charges []Charge, totalCost, tolerance float64) bool {
	if len(charges) == 0 {
		return true
	}
	return math.Abs(Sum(charges)-totalCost) <= tolerance
}
