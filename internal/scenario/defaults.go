package scenario

func trio(bobAbsent []int) []PersonSpec {
	return []PersonSpec{
		{Name: "Alice"},
		{Name: "Bob", AbsentDays: bobAbsent},
		{Name: "Charlie"},
	}
}

func pair() []PersonSpec {
	return []PersonSpec{{Name: "Alice"}, {Name: "Bob"}}
}

// Defaults returns the built-in verification scenarios.
func Defaults() []Scenario {
	firstTen := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	return []Scenario{
		{Name: "No absences", TotalCost: 300, TotalDays: 30, Persons: trio(nil)},
		{Name: "One person absent 10 days", TotalCost: 300, TotalDays: 30, Persons: trio(firstTen)},
		{Name: "With fixed cost", TotalCost: 300, FixedCost: 90, TotalDays: 30, Persons: trio(firstTen)},
		{Name: "Everyone absent day 0", TotalCost: 300, TotalDays: 30, Persons: []PersonSpec{
			{Name: "Alice", AbsentDays: []int{0}},
			{Name: "Bob", AbsentDays: []int{0}},
			{Name: "Charlie", AbsentDays: []int{0}},
		}},
		{Name: "Single person", TotalCost: 300, FixedCost: 50, TotalDays: 30, Persons: []PersonSpec{
			{Name: "Alice", AbsentDays: []int{0, 1, 2}},
		}},
		{Name: "Everyone absent every day", TotalCost: 300, TotalDays: 3, Persons: []PersonSpec{
			{Name: "Alice", AbsentDays: []int{0, 1, 2}},
			{Name: "Bob", AbsentDays: []int{0, 1, 2}},
		}},
		{Name: "Zero total cost", TotalCost: 0, TotalDays: 30, Persons: pair()},
		{Name: "All fixed cost", TotalCost: 100, FixedCost: 100, TotalDays: 30, Persons: []PersonSpec{
			{Name: "Alice", AbsentDays: []int{0, 1, 2, 3, 4}},
			{Name: "Bob"},
		}},
		{Name: "Single day", TotalCost: 100, FixedCost: 10, TotalDays: 1, Persons: []PersonSpec{
			{Name: "Alice"},
			{Name: "Bob", AbsentDays: []int{0}},
		}},
		{Name: "Zero days", TotalCost: 100, TotalDays: 0, Persons: pair()},
		{Name: "No persons", TotalCost: 300, TotalDays: 30, Persons: []PersonSpec{}},
		{Name: "Fixed > Total", TotalCost: 100, FixedCost: 200, TotalDays: 30, Persons: pair()},
	}
}
