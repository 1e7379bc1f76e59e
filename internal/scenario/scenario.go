// Package scenario holds named allocation fixtures used to verify the
// allocator end to end.
//
// Scenarios can be loaded from a YAML file:
//
//	- name: Weekend trip
//	  total_cost: 300
//	  fixed_cost: 90
//	  total_days: 3
//	  persons:
//	    - name: Alice
//	    - name: Bob
//	      absent_days: [0]
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/billsplit/internal/calculator"
)

// PersonSpec is a person entry in a scenario file.
type PersonSpec struct {
	Name       string `yaml:"name"`
	AbsentDays []int  `yaml:"absent_days"`
}

// Scenario is one allocation to run and check.
type Scenario struct {
	Name      string       `yaml:"name"`
	TotalCost float64      `yaml:"total_cost"`
	FixedCost float64      `yaml:"fixed_cost"`
	TotalDays int          `yaml:"total_days"`
	Persons   []PersonSpec `yaml:"persons"`
}

// CalculatorPersons converts the scenario's people for the allocator.
func (s Scenario) CalculatorPersons() []calculator.Person {
	persons := make([]calculator.Person, len(s.Persons))
	for i, p := range s.Persons {
		persons[i] = calculator.Person{Name: p.Name, AbsentDays: p.AbsentDays}
	}
	return persons
}

// Run allocates the scenario's costs.
func (s Scenario) Run() ([]calculator.Charge, error) {
	charges, err := calculator.Allocate(s.TotalCost, s.FixedCost, s.TotalDays, s.CalculatorPersons())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return charges, nil
}

// Load reads a YAML list of scenarios. Environment variables in the file
// (e.g. ${RENT}) are expanded before parsing.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes a YAML list of scenarios.
func Parse(data []byte) ([]Scenario, error) {
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	for i, s := range scenarios {
		if s.Name == "" {
			scenarios[i].Name = fmt.Sprintf("Scenario %d", i+1)
		}
	}
	return scenarios, nil
}
