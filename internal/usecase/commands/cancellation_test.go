//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCancellationRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 一部の部屋はpartialで料金が固定される", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)
		reason := "  plans changed  "

		out, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101},
			Reason:        &reason,
		}, f.guest)

		require.NoError(t, err)
		view, err := f.ledger.CancellationViews().FindByID(ctx, out.CancellationID)
		require.NoError(t, err)
		assert.Equal(t, "partial", view.Type)
		assert.Equal(t, "requested", view.Status)
		// 3泊 × 100.00 + 税10% = 330.00, 20% = 66.00 > 最低50.00
		assert.Equal(t, int64(33000), view.TotalCostCents)
		assert.Equal(t, int64(6600), view.ChargeCents)
		assert.Equal(t, int64(26400), view.RefundableCents)
		require.NotNil(t, view.Reason)
		assert.Equal(t, "plans changed", *view.Reason)
		assert.Contains(t, f.ledger.EventTypes(), shared.EventCancellationRequested)
	})

	t.Run("正常系: 全室ならfull", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)

		id := f.requestCancellation(t, resID, f.room101, f.room102)

		view, err := f.ledger.CancellationViews().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "full", view.Type)
	})

	t.Run("異常系: 同じ部屋に未完了の申請がある", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)
		f.requestCancellation(t, resID, f.room101)

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101, f.room102},
		}, f.guest)

		assert.ErrorIs(t, err, cancellation.ErrRoomsAlreadyRequested)
	})

	t.Run("正常系: 却下された申請の部屋は再申請できる", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)
		first := f.requestCancellation(t, resID, f.room101)
		require.NoError(t, f.cancellations.ReviewCancellationRequest(ctx, first,
			commands.ReviewCancellationInput{Decision: "rejected"}, f.admin))

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101},
		}, f.guest)

		require.NoError(t, err)
	})

	t.Run("異常系: 適用できるポリシーがない", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)
		f.clock.Set(date(2026, 1, 2))

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101},
		}, f.guest)

		assert.ErrorIs(t, err, cancellation.ErrNoCoveringPolicy)
		assert.True(t, errs.Is(err, errs.ErrDomainRule))
	})

	t.Run("異常系: 予約に含まれない部屋", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room102},
		}, f.guest)

		assert.ErrorIs(t, err, reservation.ErrRoomNotInReservation)
	})

	t.Run("異常系: 他人の予約", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101},
		}, user.Actor{ID: uuid.New(), Role: user.RoleGuest})

		assert.ErrorIs(t, err, reservation.ErrReservationNotOwned)
	})

	t.Run("正常系: 管理者は他人の予約も申請できる", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)

		_, err := f.cancellations.CreateCancellationRequest(ctx, commands.CreateCancellationInput{
			ReservationID: resID,
			RoomIDs:       []uuid.UUID{f.room101},
		}, f.admin)

		require.NoError(t, err)
	})
}

func TestCreateCancellationRequest_Concurrent(t *testing.T) {
	f := newFixture(t)
	resID := f.book(t, f.room101, f.room102)
	const n = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.cancellations.CreateCancellationRequest(context.Background(), commands.CreateCancellationInput{
				ReservationID: resID,
				RoomIDs:       []uuid.UUID{f.room101},
			}, f.guest)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, cancellation.ErrRoomsAlreadyRequested):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, rejected)
}

func TestReviewCancellationRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 一部承認で部屋だけ解放され予約は有効のまま", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)
		id := f.requestCancellation(t, resID, f.room101)

		f.approve(t, id)

		view, err := f.ledger.CancellationViews().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "approved", view.Status)
		require.NotNil(t, view.ReviewedBy)
		assert.Equal(t, f.admin.ID, *view.ReviewedBy)
		assert.NotNil(t, view.ReviewedOn)
		assert.Equal(t, "released", f.ledger.RoomStatus(resID, f.room101))
		assert.Equal(t, "active", f.ledger.RoomStatus(resID, f.room102))

		res, err := f.ledger.ReservationViews().FindByID(ctx, resID)
		require.NoError(t, err)
		assert.Equal(t, "active", res.Status)
	})

	t.Run("正常系: 解放された部屋は同じ日程で再予約できる", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)
		f.approve(t, f.requestCancellation(t, resID, f.room101))

		other := user.Actor{ID: uuid.New(), Role: user.RoleGuest}
		_, err := f.reservations.CreateReservation(ctx, commands.CreateReservationInput{
			RoomIDs:  []uuid.UUID{f.room101},
			CheckIn:  date(2025, 6, 2),
			CheckOut: date(2025, 6, 3),
		}, other, nil)

		require.NoError(t, err)
	})

	t.Run("正常系: 最後の部屋が解放されると予約はcancelled", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101, f.room102)
		f.approve(t, f.requestCancellation(t, resID, f.room101))
		f.approve(t, f.requestCancellation(t, resID, f.room102))

		res, err := f.ledger.ReservationViews().FindByID(ctx, resID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.Status)
	})

	t.Run("正常系: 却下では部屋は解放されない", func(t *testing.T) {
		f := newFixture(t)
		resID := f.book(t, f.room101)
		id := f.requestCancellation(t, resID, f.room101)

		err := f.cancellations.ReviewCancellationRequest(ctx, id, commands.ReviewCancellationInput{Decision: "rejected"}, f.admin)

		require.NoError(t, err)
		assert.Equal(t, "active", f.ledger.RoomStatus(resID, f.room101))
	})

	t.Run("異常系: 審査済みの申請は再審査できない", func(t *testing.T) {
		f := newFixture(t)
		id := f.requestCancellation(t, f.book(t, f.room101), f.room101)
		f.approve(t, id)

		err := f.cancellations.ReviewCancellationRequest(ctx, id, commands.ReviewCancellationInput{Decision: "rejected"}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrInvalidTransition)
	})

	t.Run("異常系: 不正な判定値", func(t *testing.T) {
		f := newFixture(t)
		id := f.requestCancellation(t, f.book(t, f.room101), f.room101)

		err := f.cancellations.ReviewCancellationRequest(ctx, id, commands.ReviewCancellationInput{Decision: "maybe"}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrInvalidDecision)
	})

	t.Run("異常系: 申請が存在しない", func(t *testing.T) {
		f := newFixture(t)

		err := f.cancellations.ReviewCancellationRequest(ctx, uuid.New(), commands.ReviewCancellationInput{Decision: "approved"}, f.admin)

		assert.ErrorIs(t, err, cancellation.ErrRequestNotFound)
	})
}
