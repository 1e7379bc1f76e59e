package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// AllocationService implements the Connect AllocationService
type AllocationService struct {
	apiconnect.UnimplementedAllocationServiceHandler
	tolerance float64
}

// NewAllocationService creates an AllocationService that checks totals
// against the given tolerance.
func NewAllocationService(tolerance float64) *AllocationService {
	return &AllocationService{tolerance: tolerance}
}

// Allocate splits a shared cost among the requested people.
func (s *AllocationService) Allocate(ctx context.Context, req *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	msg := req.Msg
	slog.Debug("Allocate request received",
		"total_cost", msg.TotalCost,
		"fixed_cost", msg.FixedCost,
		"total_days", msg.TotalDays,
		"persons_count", len(msg.Persons),
	)

	// Convert api persons to calculator persons
	persons := make([]calculator.Person, len(msg.Persons))
	for i, p := range msg.Persons {
		persons[i] = calculator.Person{Name: p.Name, AbsentDays: p.AbsentDays}
	}

	for name, days := range calculator.OutOfRangeAbsences(persons, msg.TotalDays) {
		slog.Debug("Ignoring absent days outside billing period",
			"person", name,
			"days", days,
			"total_days", msg.TotalDays,
		)
	}

	charges, err := calculator.Allocate(msg.TotalCost, msg.FixedCost, msg.TotalDays, persons)
	if err != nil {
		slog.Error("Allocate failed", "error", err)
		if errors.Is(err, calculator.ErrInvalidArgument) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	// JSON cannot carry Inf or NaN, so overflowing inputs are rejected here
	// rather than failing in the codec after the call is logged as ok.
	if total := calculator.Sum(charges); math.IsInf(total, 0) || math.IsNaN(total) {
		err := fmt.Errorf("costs overflow: total %v, fixed %v over %d days", msg.TotalCost, msg.FixedCost, msg.TotalDays)
		slog.Error("Allocate failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resp := &api.AllocateResponse{
		AllocationID: uuid.New().String(),
		Charges:      make([]api.PersonCharge, len(charges)),
		Total:        calculator.Sum(charges),
		Matches:      calculator.Conserves(charges, msg.TotalCost, s.tolerance),
	}
	for i, c := range charges {
		slog.Debug("Person charge", "person", c.Name, "charge", c.Amount)
		resp.Charges[i] = api.PersonCharge{Name: c.Name, Charge: c.Amount}
	}

	if !resp.Matches && msg.TotalDays > 0 {
		slog.Warn("Charges do not add up to total cost",
			"allocation_id", resp.AllocationID,
			"total", resp.Total,
			"total_cost", msg.TotalCost,
		)
	}

	return connect.NewResponse(resp), nil
}
