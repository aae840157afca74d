package readstore

import (
	"context"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	reservationColumns = `id, user_id, check_in, check_out, status, subtotal_cents, tax_rate_bps, tax_cents, total_cents, created_at, updated_at`

	getReservationSQL          = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	getReservationForUpdateSQL = getReservationSQL + ` FOR UPDATE`

	listReservationRoomsSQL = `
SELECT rr.room_id, rr.room_number, rt.name AS room_type, rr.nightly_rate_cents, rr.status
FROM reservation_rooms rr
JOIN rooms r ON r.id = rr.room_id
JOIN room_types rt ON rt.id = r.room_type_id
WHERE rr.reservation_id = $1
ORDER BY rr.room_number`

	listGuestsSQL = `
SELECT id, room_id, first_name, last_name, email, phone, age_group, address, country_id, state_id
FROM guests
WHERE reservation_id = $1
ORDER BY created_at, id`

	listPaymentsSQL = `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1 ORDER BY created_at, id`

	getRoomRatesSQL = `
SELECT id, room_number, nightly_rate_cents
FROM rooms
WHERE id = ANY($1::uuid[])`
)

type reservationRow struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	Status        string    `db:"status"`
	SubtotalCents int64     `db:"subtotal_cents"`
	TaxRateBps    int32     `db:"tax_rate_bps"`
	TaxCents      int64     `db:"tax_cents"`
	TotalCents    int64     `db:"total_cents"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type reservationRoomRow struct {
	RoomID           uuid.UUID `db:"room_id"`
	RoomNumber       string    `db:"room_number"`
	RoomType         string    `db:"room_type"`
	NightlyRateCents int64     `db:"nightly_rate_cents"`
	Status           string    `db:"status"`
}

type guestRow struct {
	ID        uuid.UUID   `db:"id"`
	RoomID    uuid.UUID   `db:"room_id"`
	FirstName string      `db:"first_name"`
	LastName  string      `db:"last_name"`
	Email     pgtype.Text `db:"email"`
	Phone     pgtype.Text `db:"phone"`
	AgeGroup  string      `db:"age_group"`
	Address   pgtype.Text `db:"address"`
	CountryID int32       `db:"country_id"`
	StateID   int32       `db:"state_id"`
}

type ReservationReadStore struct {
	dbtx db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{dbtx: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	head, err := r.findRow(ctx, getReservationSQL, id)
	if err != nil {
		return nil, err
	}
	rooms, err := r.listRooms(ctx, id)
	if err != nil {
		return nil, err
	}
	guests, err := r.listGuests(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := r.listPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &queries.ReservationView{
		ID:            head.ID,
		UserID:        head.UserID,
		CheckIn:       head.CheckIn,
		CheckOut:      head.CheckOut,
		Nights:        reservation.ReconstructStayPeriod(head.CheckIn, head.CheckOut).Nights(),
		Status:        head.Status,
		SubtotalCents: head.SubtotalCents,
		TaxRateBps:    int64(head.TaxRateBps),
		TaxCents:      head.TaxCents,
		TotalCents:    head.TotalCents,
		Rooms:         make([]queries.ReservationRoomView, len(rooms)),
		Guests:        make([]queries.GuestView, len(guests)),
		Payments:      payments,
		CreatedAt:     head.CreatedAt,
		UpdatedAt:     head.UpdatedAt,
	}
	for i, room := range rooms {
		view.Rooms[i] = queries.ReservationRoomView(room)
	}
	for i, g := range guests {
		view.Guests[i] = queries.GuestView{
			ID:        g.ID,
			RoomID:    g.RoomID,
			FirstName: g.FirstName,
			LastName:  g.LastName,
			Email:     pgconv.StringPtrFromPgtype(g.Email),
			Phone:     pgconv.StringPtrFromPgtype(g.Phone),
			AgeGroup:  g.AgeGroup,
			Address:   pgconv.StringPtrFromPgtype(g.Address),
			CountryID: int(g.CountryID),
			StateID:   int(g.StateID),
		}
	}
	return view, nil
}

func (r *ReservationReadStore) FindPaymentByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row, err := findPaymentRow(ctx, r.dbtx, id)
	if err != nil {
		return nil, err
	}
	view := row.toView()
	return &view, nil
}

// LoadReservation rebuilds the aggregate. With forUpdate the reservation row stays locked
// until the surrounding transaction ends.
func (r *ReservationReadStore) LoadReservation(ctx context.Context, id uuid.UUID, forUpdate bool) (*reservation.Reservation, error) {
	query := getReservationSQL
	if forUpdate {
		query = getReservationForUpdateSQL
	}
	head, err := r.findRow(ctx, query, id)
	if err != nil {
		return nil, err
	}
	rooms, err := r.listRooms(ctx, id)
	if err != nil {
		return nil, err
	}

	booked := make([]reservation.BookedRoom, len(rooms))
	for i, room := range rooms {
		booked[i] = reservation.BookedRoom{
			RoomID:      room.RoomID,
			RoomNumber:  room.RoomNumber,
			NightlyRate: reservation.MustMoney(room.NightlyRateCents),
			Status:      reservation.RoomStatus(room.Status),
		}
	}
	return reservation.ReconstructReservation(
		head.ID,
		head.UserID,
		reservation.ReconstructStayPeriod(head.CheckIn, head.CheckOut),
		booked,
		reservation.Status(head.Status),
		head.CreatedAt,
		head.UpdatedAt,
	), nil
}

func (r *ReservationReadStore) RoomRatesByIDs(ctx context.Context, ids []uuid.UUID) ([]reservation.RoomRate, error) {
	rows, err := r.dbtx.Query(ctx, getRoomRatesSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load room rates", err)
	}
	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (reservation.RoomRate, error) {
		var (
			rate  reservation.RoomRate
			cents int64
		)
		if err := row.Scan(&rate.RoomID, &rate.RoomNumber, &cents); err != nil {
			return rate, err
		}
		rate.NightlyRate = reservation.MustMoney(cents)
		return rate, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan room rates", err)
	}
	return rates, nil
}

func (r *ReservationReadStore) findRow(ctx context.Context, query string, id uuid.UUID) (reservationRow, error) {
	rows, err := r.dbtx.Query(ctx, query, id)
	if err != nil {
		return reservationRow{}, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[reservationRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return reservationRow{}, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return reservationRow{}, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return row, nil
}

func (r *ReservationReadStore) listRooms(ctx context.Context, reservationID uuid.UUID) ([]reservationRoomRow, error) {
	rows, err := r.dbtx.Query(ctx, listReservationRoomsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation rooms", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[reservationRoomRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservation rooms", err)
	}
	return out, nil
}

func (r *ReservationReadStore) listGuests(ctx context.Context, reservationID uuid.UUID) ([]guestRow, error) {
	rows, err := r.dbtx.Query(ctx, listGuestsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list guests", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[guestRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan guests", err)
	}
	return out, nil
}

func (r *ReservationReadStore) listPayments(ctx context.Context, reservationID uuid.UUID) ([]queries.PaymentView, error) {
	rows, err := r.dbtx.Query(ctx, listPaymentsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan payments", err)
	}
	out := make([]queries.PaymentView, len(records))
	for i, p := range records {
		out[i] = p.toView()
	}
	return out, nil
}
