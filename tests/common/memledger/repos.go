//go:build unit

package memledger

import (
	"context"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type reservationRepo struct{ tx *memTx }

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation, costs reservation.RoomCostBreakdown) (uuid.UUID, error) {
	s := r.tx.s
	stay := res.Stay()
	for _, booked := range res.Rooms() {
		if _, ok := s.rooms[booked.RoomID]; !ok {
			return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "room does not exist")
		}
		for _, other := range s.reservations {
			otherStay := reservation.ReconstructStayPeriod(other.checkIn, other.checkOut)
			if !stay.Overlaps(otherStay) {
				continue
			}
			for _, or := range other.rooms {
				if or.roomID == booked.RoomID && or.status == reservation.RoomStatusActive.String() {
					return uuid.Nil, infra.NewRepoErr(infra.KindConflict, "room already booked for overlapping dates")
				}
			}
		}
	}

	now := r.tx.l.clock.Now()
	rec := &reservationRec{
		id:            uuid.New(),
		userID:        res.UserID(),
		checkIn:       stay.CheckIn(),
		checkOut:      stay.CheckOut(),
		status:        res.Status().String(),
		subtotalCents: costs.Subtotal.Cents(),
		taxRateBps:    costs.TaxRate.BasisPoints(),
		taxCents:      costs.Tax.Cents(),
		totalCents:    costs.Total.Cents(),
		createdAt:     now,
		updatedAt:     now,
	}
	for _, booked := range res.Rooms() {
		rec.rooms = append(rec.rooms, bookedRoom{
			roomID: booked.RoomID,
			number: booked.RoomNumber,
			rate:   booked.NightlyRate.Cents(),
			status: booked.Status.String(),
		})
	}
	s.reservations[rec.id] = rec
	return rec.id, nil
}

func (r reservationRepo) ReleaseRooms(_ context.Context, reservationID uuid.UUID, roomIDs []uuid.UUID) error {
	rec, ok := r.tx.s.reservations[reservationID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	release := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		release[id] = struct{}{}
	}
	updated := 0
	for i := range rec.rooms {
		if _, hit := release[rec.rooms[i].roomID]; hit && rec.rooms[i].status == reservation.RoomStatusActive.String() {
			updated++
		}
	}
	if updated != len(roomIDs) {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "some rooms were not active")
	}
	for i := range rec.rooms {
		if _, hit := release[rec.rooms[i].roomID]; hit {
			rec.rooms[i].status = reservation.RoomStatusReleased.String()
		}
	}
	rec.updatedAt = r.tx.l.clock.Now()
	return nil
}

func (r reservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next reservation.Status) error {
	rec, ok := r.tx.s.reservations[id]
	if !ok || rec.status != expected.String() {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "reservation status changed concurrently")
	}
	rec.status = next.String()
	rec.updatedAt = r.tx.l.clock.Now()
	return nil
}

type guestRepo struct{ tx *memTx }

func (r guestRepo) InsertBatch(_ context.Context, guests []*reservation.Guest) (int64, error) {
	s := r.tx.s
	added := make([]guestRec, 0, len(guests))
	for _, g := range guests {
		res, ok := s.reservations[g.ReservationID()]
		if !ok {
			return 0, infra.NewRepoErr(infra.KindForeignKeyViolated, "reservation does not exist")
		}
		d := g.Detail()
		found := false
		for _, room := range res.rooms {
			if room.roomID == d.RoomID {
				found = true
				break
			}
		}
		if !found {
			return 0, infra.NewRepoErr(infra.KindForeignKeyViolated, "room is not part of the reservation")
		}
		added = append(added, guestRec{
			id:            uuid.New(),
			reservationID: g.ReservationID(),
			roomID:        d.RoomID,
			firstName:     d.FirstName,
			lastName:      d.LastName,
			email:         d.Email,
			phone:         d.Phone,
			ageGroup:      d.AgeGroup.String(),
			address:       d.Address,
			countryID:     d.CountryID,
			stateID:       d.StateID,
		})
	}
	s.guests = append(s.guests, added...)
	return int64(len(added)), nil
}

type paymentRepo struct{ tx *memTx }

func (r paymentRepo) Create(_ context.Context, p *payment.Payment) (uuid.UUID, error) {
	s := r.tx.s
	if _, ok := s.reservations[p.ReservationID()]; !ok {
		return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "reservation does not exist")
	}
	now := r.tx.l.clock.Now()
	rec := &paymentRec{
		id:            uuid.New(),
		reservationID: p.ReservationID(),
		amountCents:   p.Amount().Cents(),
		method:        p.Method(),
		status:        p.Status().String(),
		failureReason: p.FailureReason(),
		createdAt:     now,
		updatedAt:     now,
	}
	s.payments[rec.id] = rec
	return rec.id, nil
}

func (r paymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next payment.Status, failureReason *string) error {
	rec, ok := r.tx.s.payments[id]
	if !ok || rec.status != expected.String() {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "payment status changed concurrently")
	}
	rec.status = next.String()
	rec.failureReason = failureReason
	rec.updatedAt = r.tx.l.clock.Now()
	return nil
}

type cancellationRepo struct{ tx *memTx }

func (r cancellationRepo) Create(_ context.Context, req *cancellation.Request) (uuid.UUID, error) {
	s := r.tx.s
	res, ok := s.reservations[req.ReservationID()]
	if !ok {
		return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "reservation does not exist")
	}
	for _, id := range req.RoomIDs() {
		found := false
		for _, room := range res.rooms {
			if room.roomID == id {
				found = true
				break
			}
		}
		if !found {
			return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "room is not part of the reservation")
		}
	}
	rec := &cancellationRec{
		id:            uuid.New(),
		reservationID: req.ReservationID(),
		userID:        req.UserID(),
		roomIDs:       append([]uuid.UUID(nil), req.RoomIDs()...),
		reason:        req.Reason(),
		kind:          string(req.Type()),
		status:        req.Status().String(),
		charge:        req.Charge(),
		requestedOn:   req.RequestedOn(),
		reviewedBy:    req.ReviewedBy(),
		reviewedOn:    req.ReviewedOn(),
	}
	s.cancellations[rec.id] = rec
	return rec.id, nil
}

func (r cancellationRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next cancellation.Status, reviewedBy *uuid.UUID, reviewedOn *time.Time) error {
	rec, ok := r.tx.s.cancellations[id]
	if !ok || rec.status != expected.String() {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "cancellation status changed concurrently")
	}
	rec.status = next.String()
	if reviewedBy != nil {
		rec.reviewedBy = reviewedBy
	}
	if reviewedOn != nil {
		rec.reviewedOn = reviewedOn
	}
	return nil
}

type refundRepo struct{ tx *memTx }

func (r refundRepo) Create(_ context.Context, rf *cancellation.Refund) (uuid.UUID, error) {
	s := r.tx.s
	if _, ok := s.cancellations[rf.CancellationRequestID()]; !ok {
		return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "cancellation request does not exist")
	}
	if _, ok := s.refundMethods[rf.MethodID()]; !ok {
		return uuid.Nil, infra.NewRepoErr(infra.KindForeignKeyViolated, "refund method does not exist")
	}
	for _, existing := range s.refunds {
		if existing.cancellationID == rf.CancellationRequestID() {
			return uuid.Nil, infra.NewRepoErr(infra.KindDuplicateKey, "refund already exists for the cancellation request")
		}
	}
	now := r.tx.l.clock.Now()
	rec := &refundRec{
		id:             uuid.New(),
		cancellationID: rf.CancellationRequestID(),
		methodID:       rf.MethodID(),
		amountCents:    rf.Amount().Cents(),
		status:         rf.Status().String(),
		processedBy:    rf.ProcessedBy(),
		createdAt:      now,
		updatedAt:      now,
	}
	s.refunds[rec.id] = rec
	return rec.id, nil
}

func (r refundRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next cancellation.RefundStatus) error {
	rec, ok := r.tx.s.refunds[id]
	if !ok || rec.status != expected.String() {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "refund status changed concurrently")
	}
	rec.status = next.String()
	rec.updatedAt = r.tx.l.clock.Now()
	return nil
}

type idempotencyRepo struct{ tx *memTx }

func (r idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key: key, userID: userID}
	if _, exists := r.tx.s.idempotency[k]; exists {
		return false, nil
	}
	r.tx.s.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (int64, error) {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.tx.s.idempotency[k]
	if !ok || rec.ExpiresAt.After(now) {
		return 0, nil
	}
	rec.Status = shared.IdempotencyStatusProcessing
	rec.RequestHash = requestHash
	rec.ResultID = nil
	rec.ExpiresAt = expiresAt
	r.tx.s.idempotency[k] = rec
	return 1, nil
}

func (r idempotencyRepo) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, resultID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.tx.s.idempotency[k]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	id := resultID
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultID = &id
	r.tx.s.idempotency[k] = rec
	return nil
}

type outboxRepo struct{ tx *memTx }

func (r outboxRepo) Enqueue(_ context.Context, event shared.OutboxEvent) error {
	if r.tx.l.outboxErr != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", r.tx.l.outboxErr, infra.KindDBFailure)
	}
	r.tx.s.outbox = append(r.tx.s.outbox, event)
	return nil
}
