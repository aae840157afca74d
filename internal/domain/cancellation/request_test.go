//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) (*cancellation.Request, *reservation.Reservation) {
	t.Helper()
	r1 := reservation.RoomRate{RoomID: uuid.New(), NightlyRate: reservation.MustMoney(100000)}
	r2 := reservation.RoomRate{RoomID: uuid.New(), NightlyRate: reservation.MustMoney(50000)}
	res := reservationWith(t, r1, r2)
	charge := cancellation.ChargeResult{TotalCost: reservation.MustMoney(100000), Charge: reservation.MustMoney(30000)}

	req, err := cancellation.NewRequest(res, user.Actor{ID: res.UserID(), Role: user.RoleGuest}, []uuid.UUID{r1.RoomID}, nil, charge, time.Now())
	require.NoError(t, err)
	return cancellation.ReconstructRequest(uuid.New(), req.ReservationID(), req.UserID(), req.RoomIDs(), req.Reason(),
		req.Type(), req.Status(), req.Charge(), req.RequestedOn(), nil, nil), res
}

func TestNewRequest(t *testing.T) {
	r1 := reservation.RoomRate{RoomID: uuid.New(), NightlyRate: reservation.MustMoney(100000)}
	r2 := reservation.RoomRate{RoomID: uuid.New(), NightlyRate: reservation.MustMoney(50000)}

	t.Run("一部の部屋ならPartial、全部屋ならFull", func(t *testing.T) {
		res := reservationWith(t, r1, r2)
		owner := user.Actor{ID: res.UserID(), Role: user.RoleGuest}

		partial, err := cancellation.NewRequest(res, owner, []uuid.UUID{r1.RoomID}, nil, cancellation.ChargeResult{}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, cancellation.TypePartial, partial.Type())
		assert.Equal(t, cancellation.StatusRequested, partial.Status())

		full, err := cancellation.NewRequest(res, owner, []uuid.UUID{r1.RoomID, r2.RoomID}, nil, cancellation.ChargeResult{}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, cancellation.TypeFull, full.Type())
	})

	t.Run("他人の予約NG", func(t *testing.T) {
		res := reservationWith(t, r1)
		_, err := cancellation.NewRequest(res, user.Actor{ID: uuid.New(), Role: user.RoleGuest}, []uuid.UUID{r1.RoomID}, nil, cancellation.ChargeResult{}, time.Now())
		assert.ErrorIs(t, err, reservation.ErrReservationNotOwned)
	})

	t.Run("空白の理由はnil", func(t *testing.T) {
		res := reservationWith(t, r1)
		blank := "   "
		req, err := cancellation.NewRequest(res, user.Actor{ID: res.UserID()}, []uuid.UUID{r1.RoomID}, &blank, cancellation.ChargeResult{}, time.Now())
		require.NoError(t, err)
		assert.Nil(t, req.Reason())
	})
}

func TestRequest_Review(t *testing.T) {
	admin := uuid.New()
	now := time.Now()

	t.Run("Requested → Approved", func(t *testing.T) {
		req, _ := newRequest(t)
		require.NoError(t, req.Review(admin, cancellation.DecisionApproved, now))
		assert.Equal(t, cancellation.StatusApproved, req.Status())
		assert.Equal(t, &admin, req.ReviewedBy())
	})

	t.Run("Approved済みの再レビューは不正な遷移で状態は変わらない", func(t *testing.T) {
		req, _ := newRequest(t)
		require.NoError(t, req.Review(admin, cancellation.DecisionApproved, now))

		err := req.Review(admin, cancellation.DecisionRejected, now)
		assert.ErrorIs(t, err, cancellation.ErrInvalidTransition)
		assert.Equal(t, cancellation.StatusApproved, req.Status())
	})

	t.Run("Rejectedは終端", func(t *testing.T) {
		req, _ := newRequest(t)
		require.NoError(t, req.Review(admin, cancellation.DecisionRejected, now))
		assert.ErrorIs(t, req.Review(admin, cancellation.DecisionApproved, now), cancellation.ErrInvalidTransition)
	})
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]cancellation.Status{
		{cancellation.StatusRequested, cancellation.StatusApproved},
		{cancellation.StatusRequested, cancellation.StatusRejected},
		{cancellation.StatusApproved, cancellation.StatusRefundPending},
		{cancellation.StatusRefundPending, cancellation.StatusRefundProcessed},
	}
	for _, tr := range allowed {
		assert.True(t, cancellation.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
	denied := [][2]cancellation.Status{
		{cancellation.StatusApproved, cancellation.StatusRequested},
		{cancellation.StatusRejected, cancellation.StatusApproved},
		{cancellation.StatusRequested, cancellation.StatusRefundPending},
		{cancellation.StatusRefundProcessed, cancellation.StatusRefundPending},
	}
	for _, tr := range denied {
		assert.False(t, cancellation.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestNewRefund(t *testing.T) {
	admin := uuid.New()

	t.Run("承認済みなら返金額は費用-手数料", func(t *testing.T) {
		req, _ := newRequest(t)
		require.NoError(t, req.Review(admin, cancellation.DecisionApproved, time.Now()))

		refund, err := cancellation.NewRefund(req, admin, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(70000), refund.Amount().Cents())
		assert.Equal(t, cancellation.RefundStatusPending, refund.Status())
	})

	t.Run("未承認NG", func(t *testing.T) {
		req, _ := newRequest(t)
		_, err := cancellation.NewRefund(req, admin, 1)
		assert.ErrorIs(t, err, cancellation.ErrNotApproved)
	})

	t.Run("返金処理済みは二重返金NG", func(t *testing.T) {
		req, _ := newRequest(t)
		pending := cancellation.ReconstructRequest(req.ID(), req.ReservationID(), req.UserID(), req.RoomIDs(), nil,
			req.Type(), cancellation.StatusRefundPending, req.Charge(), req.RequestedOn(), &admin, nil)
		_, err := cancellation.NewRefund(pending, admin, 1)
		assert.ErrorIs(t, err, cancellation.ErrRefundAlreadyExists)
	})
}

func TestCheckRefundTransition(t *testing.T) {
	assert.NoError(t, cancellation.CheckRefundTransition(cancellation.RefundStatusPending, cancellation.RefundStatusProcessed))
	assert.NoError(t, cancellation.CheckRefundTransition(cancellation.RefundStatusPending, cancellation.RefundStatusFailed))
	assert.ErrorIs(t, cancellation.CheckRefundTransition(cancellation.RefundStatusProcessed, cancellation.RefundStatusFailed), cancellation.ErrInvalidRefundUpdate)
	assert.ErrorIs(t, cancellation.CheckRefundTransition(cancellation.RefundStatusFailed, cancellation.RefundStatusProcessed), cancellation.ErrInvalidRefundUpdate)
	assert.ErrorIs(t, cancellation.CheckRefundTransition(cancellation.RefundStatusPending, cancellation.RefundStatusPending), cancellation.ErrInvalidRefundUpdate)
}
