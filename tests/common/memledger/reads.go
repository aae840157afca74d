//go:build unit

package memledger

import (
	"context"
	"sort"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// stateReads reads one state snapshot; the caller owns the mutex.
type stateReads struct{ s *state }

func (r stateReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return rec.toDomain(), nil
}

func (r stateReads) ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.ReservationByID(ctx, id)
}

func (r stateReads) RoomRatesByIDs(_ context.Context, ids []uuid.UUID) ([]reservation.RoomRate, error) {
	out := make([]reservation.RoomRate, 0, len(ids))
	for _, id := range ids {
		room, ok := r.s.rooms[id]
		if !ok {
			continue
		}
		out = append(out, reservation.RoomRate{
			RoomID:      room.ID,
			RoomNumber:  room.Number,
			NightlyRate: reservation.MustMoney(room.NightlyRate),
		})
	}
	return out, nil
}

func (r stateReads) CoveringPolicies(_ context.Context, at time.Time) ([]cancellation.Policy, error) {
	var out []cancellation.Policy
	for _, p := range r.s.policies {
		if p.Covers(at) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

func (r stateReads) CancellationByID(_ context.Context, id uuid.UUID) (*cancellation.Request, error) {
	rec, ok := r.s.cancellations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "cancellation request not found")
	}
	return rec.toDomain(), nil
}

func (r stateReads) OpenCancellationRoomIDs(_ context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, rec := range r.s.cancellations {
		if rec.reservationID == reservationID && cancellation.Status(rec.status).IsOpen() {
			out = append(out, rec.roomIDs...)
		}
	}
	return out, nil
}

func (r stateReads) RefundByID(_ context.Context, id uuid.UUID) (*cancellation.Refund, error) {
	rec, ok := r.s.refunds[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "refund not found")
	}
	return cancellation.ReconstructRefund(
		rec.id, rec.cancellationID, rec.methodID,
		reservation.MustMoney(rec.amountCents),
		cancellation.RefundStatus(rec.status),
		rec.processedBy, rec.createdAt, rec.updatedAt,
	), nil
}

func (r stateReads) RefundMethodExists(_ context.Context, id int) (bool, error) {
	_, ok := r.s.refundMethods[id]
	return ok, nil
}

func (r stateReads) PaymentByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	rec, ok := r.s.payments[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "payment not found")
	}
	return payment.ReconstructPayment(
		rec.id, rec.reservationID,
		reservation.MustMoney(rec.amountCents),
		rec.method, payment.Status(rec.status), rec.failureReason,
		rec.createdAt, rec.updatedAt,
	), nil
}

func (r stateReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.idempotency[idemKey{key: key, userID: userID}]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	return &rec, nil
}

// lockedReads serves CommandReads outside a transaction against committed state.
type lockedReads struct{ l *Ledger }

func (r lockedReads) with() (stateReads, func()) {
	r.l.mu.Lock()
	return stateReads{s: r.l.state}, r.l.mu.Unlock
}

func (r lockedReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s, unlock := r.with()
	defer unlock()
	return s.ReservationByID(ctx, id)
}

func (r lockedReads) ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s, unlock := r.with()
	defer unlock()
	return s.ReservationByIDForUpdate(ctx, id)
}

func (r lockedReads) RoomRatesByIDs(ctx context.Context, ids []uuid.UUID) ([]reservation.RoomRate, error) {
	s, unlock := r.with()
	defer unlock()
	return s.RoomRatesByIDs(ctx, ids)
}

func (r lockedReads) CoveringPolicies(ctx context.Context, at time.Time) ([]cancellation.Policy, error) {
	s, unlock := r.with()
	defer unlock()
	return s.CoveringPolicies(ctx, at)
}

func (r lockedReads) CancellationByID(ctx context.Context, id uuid.UUID) (*cancellation.Request, error) {
	s, unlock := r.with()
	defer unlock()
	return s.CancellationByID(ctx, id)
}

func (r lockedReads) OpenCancellationRoomIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	s, unlock := r.with()
	defer unlock()
	return s.OpenCancellationRoomIDs(ctx, reservationID)
}

func (r lockedReads) RefundByID(ctx context.Context, id uuid.UUID) (*cancellation.Refund, error) {
	s, unlock := r.with()
	defer unlock()
	return s.RefundByID(ctx, id)
}

func (r lockedReads) RefundMethodExists(ctx context.Context, id int) (bool, error) {
	s, unlock := r.with()
	defer unlock()
	return s.RefundMethodExists(ctx, id)
}

func (r lockedReads) PaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	s, unlock := r.with()
	defer unlock()
	return s.PaymentByID(ctx, id)
}

func (r lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	s, unlock := r.with()
	defer unlock()
	return s.IdempotencyByKey(ctx, key, userID)
}

func (rec *reservationRec) toDomain() *reservation.Reservation {
	rooms := make([]reservation.BookedRoom, len(rec.rooms))
	for i, r := range rec.rooms {
		rooms[i] = reservation.BookedRoom{
			RoomID:      r.roomID,
			RoomNumber:  r.number,
			NightlyRate: reservation.MustMoney(r.rate),
			Status:      reservation.RoomStatus(r.status),
		}
	}
	return reservation.ReconstructReservation(
		rec.id, rec.userID,
		reservation.ReconstructStayPeriod(rec.checkIn, rec.checkOut),
		rooms, reservation.Status(rec.status),
		rec.createdAt, rec.updatedAt,
	)
}

func (rec *cancellationRec) toDomain() *cancellation.Request {
	return cancellation.ReconstructRequest(
		rec.id, rec.reservationID, rec.userID,
		append([]uuid.UUID(nil), rec.roomIDs...),
		rec.reason, cancellation.Type(rec.kind), cancellation.Status(rec.status),
		rec.charge, rec.requestedOn, rec.reviewedBy, rec.reviewedOn,
	)
}
