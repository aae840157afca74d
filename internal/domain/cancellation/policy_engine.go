package cancellation

import (
	"time"

	"hotel-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type PolicyEngine struct {
	calc reservation.CostCalculator
}

func NewPolicyEngine(calc reservation.CostCalculator) *PolicyEngine {
	return &PolicyEngine{calc: calc}
}

// SelectPolicy picks the policy covering at. If several do, the one that became effective last wins.
func (e *PolicyEngine) SelectPolicy(policies []Policy, at time.Time) (Policy, error) {
	var (
		chosen Policy
		found  bool
	)
	for _, p := range policies {
		if !p.Covers(at) {
			continue
		}
		if !found || p.EffectiveFrom.After(chosen.EffectiveFrom) {
			chosen = p
			found = true
		}
	}
	if !found {
		return Policy{}, ErrNoCoveringPolicy
	}
	return chosen, nil
}

// ComputeCancellationCharge prices cancelling roomIDs of res at the given instant.
// The original cost is recomputed from the rates and stay stored on the reservation, tax included.
func (e *PolicyEngine) ComputeCancellationCharge(
	res *reservation.Reservation,
	roomIDs []uuid.UUID,
	policies []Policy,
	at time.Time,
) (ChargeResult, error) {
	rates, err := res.ActiveRates(roomIDs)
	if err != nil {
		return ChargeResult{}, err
	}
	breakdown, err := e.calc.ComputeRoomCosts(rates, res.Stay())
	if err != nil {
		return ChargeResult{}, err
	}
	policy, err := e.SelectPolicy(policies, at)
	if err != nil {
		return ChargeResult{}, err
	}

	return ChargeResult{
		PolicyID:          policy.ID,
		PolicyDescription: policy.Description,
		ChargePercentage:  policy.ChargePercentage,
		MinimumCharge:     policy.MinimumCharge,
		TotalCost:         breakdown.Total,
		Charge:            policy.Charge(breakdown.Total),
		EvaluatedOn:       reservation.DateOf(at),
	}, nil
}
