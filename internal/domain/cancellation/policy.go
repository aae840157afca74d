package cancellation

import (
	"time"

	"hotel-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// Policy prices a cancellation evaluated on any date in [EffectiveFrom, EffectiveTo].
type Policy struct {
	ID               uuid.UUID
	Description      string
	ChargePercentage reservation.Percentage
	MinimumCharge    reservation.Money
	EffectiveFrom    time.Time
	EffectiveTo      time.Time
}

func (p Policy) Covers(at time.Time) bool {
	d := reservation.DateOf(at)
	return !d.Before(reservation.DateOf(p.EffectiveFrom)) && !d.After(reservation.DateOf(p.EffectiveTo))
}

// Charge is max(totalCost × percentage, minimum charge). It is not capped at the total.
func (p Policy) Charge(totalCost reservation.Money) reservation.Money {
	return totalCost.Apply(p.ChargePercentage).Max(p.MinimumCharge)
}

// ChargeResult is the pricing snapshot stored with a cancellation request.
type ChargeResult struct {
	PolicyID          uuid.UUID
	PolicyDescription string
	ChargePercentage  reservation.Percentage
	MinimumCharge     reservation.Money
	TotalCost         reservation.Money
	Charge            reservation.Money
	EvaluatedOn       time.Time
}

// RefundAmount is what goes back to the guest, never negative.
func (c ChargeResult) RefundAmount() reservation.Money {
	return c.TotalCost.Sub(c.Charge)
}
