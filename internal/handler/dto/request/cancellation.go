package request

import (
	"time"

	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CancellationChargesRequest struct {
	ReservationID uuid.UUID   `json:"reservation_id" binding:"required"`
	RoomIDs       []uuid.UUID `json:"room_ids" binding:"required,min=1"`
}

type CreateCancellationRequest struct {
	ReservationID uuid.UUID   `json:"reservation_id" binding:"required"`
	RoomIDs       []uuid.UUID `json:"room_ids" binding:"required,min=1"`
	Reason        *string     `json:"reason,omitempty"`
}

func (r CreateCancellationRequest) ToInput() commands.CreateCancellationInput {
	return commands.CreateCancellationInput{
		ReservationID: r.ReservationID,
		RoomIDs:       r.RoomIDs,
		Reason:        r.Reason,
	}
}

type ReviewCancellationRequest struct {
	ApprovalStatus string `json:"approval_status" binding:"required"`
}

type ListCancellationsQuery struct {
	Status   string `form:"status"`
	DateFrom string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

func (q ListCancellationsQuery) ToFilters() (queries.CancellationFilters, error) {
	var f queries.CancellationFilters
	if q.Status != "" {
		status := q.Status
		f.Status = &status
	}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{q.DateFrom, &f.DateFrom}, {q.DateTo, &f.DateTo}} {
		if p.raw == "" {
			continue
		}
		t, err := time.Parse(DateLayout, p.raw)
		if err != nil {
			return queries.CancellationFilters{}, errs.Mark(err, errs.ErrValidation)
		}
		*p.dst = &t
	}
	return f, nil
}
