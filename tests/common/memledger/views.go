//go:build unit

package memledger

import (
	"context"
	"sort"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	_ queries.ReservationReadStore  = ReservationViews{}
	_ queries.CancellationReadStore = CancellationViews{}
)

type ReservationViews struct{ l *Ledger }

func (l *Ledger) ReservationViews() ReservationViews { return ReservationViews{l: l} }

func (v ReservationViews) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	s := v.l.state

	rec, ok := s.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	view := &queries.ReservationView{
		ID:            rec.id,
		UserID:        rec.userID,
		CheckIn:       rec.checkIn,
		CheckOut:      rec.checkOut,
		Nights:        reservation.ReconstructStayPeriod(rec.checkIn, rec.checkOut).Nights(),
		Status:        rec.status,
		SubtotalCents: rec.subtotalCents,
		TaxRateBps:    rec.taxRateBps,
		TaxCents:      rec.taxCents,
		TotalCents:    rec.totalCents,
		Rooms:         []queries.ReservationRoomView{},
		Guests:        []queries.GuestView{},
		Payments:      []queries.PaymentView{},
		CreatedAt:     rec.createdAt,
		UpdatedAt:     rec.updatedAt,
	}
	for _, r := range rec.rooms {
		view.Rooms = append(view.Rooms, queries.ReservationRoomView{
			RoomID:           r.roomID,
			RoomNumber:       r.number,
			RoomType:         s.rooms[r.roomID].Type,
			NightlyRateCents: r.rate,
			Status:           r.status,
		})
	}
	for _, g := range s.guests {
		if g.reservationID != id {
			continue
		}
		view.Guests = append(view.Guests, queries.GuestView{
			ID:        g.id,
			RoomID:    g.roomID,
			FirstName: g.firstName,
			LastName:  g.lastName,
			Email:     optional(g.email),
			Phone:     optional(g.phone),
			AgeGroup:  g.ageGroup,
			Address:   optional(g.address),
			CountryID: g.countryID,
			StateID:   g.stateID,
		})
	}
	for _, p := range s.payments {
		if p.reservationID == id {
			view.Payments = append(view.Payments, p.toView())
		}
	}
	sort.Slice(view.Payments, func(i, j int) bool { return view.Payments[i].CreatedAt.Before(view.Payments[j].CreatedAt) })
	return view, nil
}

func (v ReservationViews) FindPaymentByID(_ context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	p, ok := v.l.state.payments[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "payment not found")
	}
	view := p.toView()
	return &view, nil
}

type CancellationViews struct{ l *Ledger }

func (l *Ledger) CancellationViews() CancellationViews { return CancellationViews{l: l} }

func (v CancellationViews) FindByID(_ context.Context, id uuid.UUID) (*queries.CancellationView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	rec, ok := v.l.state.cancellations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "cancellation request not found")
	}
	view := rec.toView()
	return &view, nil
}

func (v CancellationViews) List(_ context.Context, f queries.CancellationFilters) ([]queries.CancellationView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	out := []queries.CancellationView{}
	for _, rec := range v.l.state.cancellations {
		if f.Status != nil && rec.status != *f.Status {
			continue
		}
		day := reservation.DateOf(rec.requestedOn)
		if f.DateFrom != nil && day.Before(reservation.DateOf(*f.DateFrom)) {
			continue
		}
		if f.DateTo != nil && day.After(reservation.DateOf(*f.DateTo)) {
			continue
		}
		out = append(out, rec.toView())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedOn.After(out[j].RequestedOn) })
	return out, nil
}

func (v CancellationViews) ListForRefund(_ context.Context) ([]queries.CancellationForRefundView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	out := []queries.CancellationForRefundView{}
	for _, rec := range v.l.state.cancellations {
		if rec.status != cancellation.StatusApproved.String() && rec.status != cancellation.StatusRefundPending.String() {
			continue
		}
		item := queries.CancellationForRefundView{CancellationView: rec.toView()}
		for _, rf := range v.l.state.refunds {
			if rf.cancellationID != rec.id {
				continue
			}
			id, status := rf.id, rf.status
			item.RefundID = &id
			item.RefundStatus = &status
		}
		if item.RefundStatus != nil && *item.RefundStatus == cancellation.RefundStatusProcessed.String() {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedOn.Before(out[j].RequestedOn) })
	return out, nil
}

func (v CancellationViews) ListPolicies(_ context.Context) ([]queries.PolicyView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	out := make([]queries.PolicyView, 0, len(v.l.state.policies))
	for _, p := range v.l.state.policies {
		out = append(out, queries.PolicyView{
			ID:                  p.ID,
			Description:         p.Description,
			ChargePercentageBps: p.ChargePercentage.BasisPoints(),
			MinimumChargeCents:  p.MinimumCharge.Cents(),
			EffectiveFrom:       p.EffectiveFrom,
			EffectiveTo:         p.EffectiveTo,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EffectiveFrom.Before(out[j].EffectiveFrom) })
	return out, nil
}

func (v CancellationViews) FindRefundByID(_ context.Context, id uuid.UUID) (*queries.RefundView, error) {
	v.l.mu.Lock()
	defer v.l.mu.Unlock()
	rf, ok := v.l.state.refunds[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "refund not found")
	}
	return &queries.RefundView{
		ID:                    rf.id,
		CancellationRequestID: rf.cancellationID,
		RefundMethodID:        rf.methodID,
		RefundMethod:          v.l.state.refundMethods[rf.methodID],
		AmountCents:           rf.amountCents,
		Status:                rf.status,
		ProcessedBy:           rf.processedBy,
		CreatedAt:             rf.createdAt,
		UpdatedAt:             rf.updatedAt,
	}, nil
}

func (p *paymentRec) toView() queries.PaymentView {
	return queries.PaymentView{
		ID:            p.id,
		ReservationID: p.reservationID,
		AmountCents:   p.amountCents,
		Method:        p.method,
		Status:        p.status,
		FailureReason: p.failureReason,
		CreatedAt:     p.createdAt,
		UpdatedAt:     p.updatedAt,
	}
}

func (rec *cancellationRec) toView() queries.CancellationView {
	return queries.CancellationView{
		ID:                  rec.id,
		ReservationID:       rec.reservationID,
		UserID:              rec.userID,
		RoomIDs:             append([]uuid.UUID(nil), rec.roomIDs...),
		Reason:              rec.reason,
		Type:                rec.kind,
		Status:              rec.status,
		PolicyID:            rec.charge.PolicyID,
		PolicyDescription:   rec.charge.PolicyDescription,
		ChargePercentageBps: rec.charge.ChargePercentage.BasisPoints(),
		TotalCostCents:      rec.charge.TotalCost.Cents(),
		ChargeCents:         rec.charge.Charge.Cents(),
		RefundableCents:     rec.charge.RefundAmount().Cents(),
		RequestedOn:         rec.requestedOn,
		ReviewedBy:          rec.reviewedBy,
		ReviewedOn:          rec.reviewedOn,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
