package reservation

import (
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoRooms = errs.Validation("at least one room is required")

// RoomRate is the priced view of a room that a cost is computed from.
type RoomRate struct {
	RoomID      uuid.UUID
	RoomNumber  string
	NightlyRate Money
}

type RoomCostLine struct {
	RoomID      uuid.UUID
	RoomNumber  string
	NightlyRate Money
	Nights      int
	LineTotal   Money
}

type RoomCostBreakdown struct {
	Lines    []RoomCostLine
	Nights   int
	Subtotal Money
	TaxRate  Percentage
	Tax      Money
	Total    Money
}

type CostCalculator interface {
	ComputeRoomCosts(rooms []RoomRate, stay StayPeriod) (RoomCostBreakdown, error)
}

type DefaultCostCalculator struct {
	TaxRate Percentage
}

func NewDefaultCostCalculator(taxRate Percentage) *DefaultCostCalculator {
	return &DefaultCostCalculator{TaxRate: taxRate}
}

func (c *DefaultCostCalculator) ComputeRoomCosts(rooms []RoomRate, stay StayPeriod) (RoomCostBreakdown, error) {
	if len(rooms) == 0 {
		return RoomCostBreakdown{}, ErrNoRooms
	}
	nights := stay.Nights()
	if nights <= 0 {
		return RoomCostBreakdown{}, ErrCheckOutNotAfter
	}

	out := RoomCostBreakdown{
		Lines:   make([]RoomCostLine, 0, len(rooms)),
		Nights:  nights,
		TaxRate: c.TaxRate,
	}
	for _, r := range rooms {
		line := r.NightlyRate.Times(nights)
		out.Lines = append(out.Lines, RoomCostLine{
			RoomID:      r.RoomID,
			RoomNumber:  r.RoomNumber,
			NightlyRate: r.NightlyRate,
			Nights:      nights,
			LineTotal:   line,
		})
		out.Subtotal = out.Subtotal.Add(line)
	}
	out.Tax = out.Subtotal.Apply(c.TaxRate)
	out.Total = out.Subtotal.Add(out.Tax)
	return out, nil
}
