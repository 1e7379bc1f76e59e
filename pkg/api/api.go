// Package api defines the billsplit.v1 wire messages.
//
// Messages are plain structs encoded as JSON over the Connect protocol.
// Clients and handlers must be built with the codec returned by Codec so
// that requests with Content-Type application/json decode into these types.
package api

// Person is one member of the group in an AllocateRequest.
type Person struct {
	Name       string `json:"name"`
	AbsentDays []int  `json:"absent_days,omitempty"`
}

// AllocateRequest asks for a total cost to be split over a number of days.
type AllocateRequest struct {
	TotalCost float64  `json:"total_cost"`
	FixedCost float64  `json:"fixed_cost"`
	TotalDays int      `json:"total_days"`
	Persons   []Person `json:"persons"`
}

// PersonCharge is the amount one person owes.
type PersonCharge struct {
	Name   string  `json:"name"`
	Charge float64 `json:"charge"`
}

// AllocateResponse lists charges in the same order as the request's persons.
type AllocateResponse struct {
	AllocationID string         `json:"allocation_id"`
	Charges      []PersonCharge `json:"charges"`
	Total        float64        `json:"total"`
	// Matches reports whether Total is within tolerance of the requested
	// total cost. It is advisory.
	Matches bool `json:"matches"`
}
