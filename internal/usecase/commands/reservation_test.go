//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 予約と部屋・イベントが記録される", func(t *testing.T) {
		f := newFixture(t)

		id := f.book(t, f.room101, f.room102)

		view, err := f.ledger.ReservationViews().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, f.guest.ID, view.UserID)
		assert.Equal(t, "active", view.Status)
		assert.Equal(t, 3, view.Nights)
		assert.Equal(t, int64(75000), view.SubtotalCents)
		assert.Equal(t, int64(7500), view.TaxCents)
		assert.Equal(t, int64(82500), view.TotalCents)
		assert.Len(t, view.Rooms, 2)
		assert.Equal(t, []string{shared.EventReservationCreated}, f.ledger.EventTypes())
	})

	t.Run("異常系: 重複する日程で同じ部屋は予約できない", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.room101)

		_, err := f.reservations.CreateReservation(ctx, commands.CreateReservationInput{
			RoomIDs:  []uuid.UUID{f.room101},
			CheckIn:  date(2025, 6, 3),
			CheckOut: date(2025, 6, 5),
		}, f.guest, nil)

		assert.ErrorIs(t, err, reservation.ErrRoomUnavailable)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, 1, f.ledger.ReservationCount())
	})

	t.Run("正常系: チェックアウト日とチェックイン日が同じなら重ならない", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.room101)

		_, err := f.reservations.CreateReservation(ctx, commands.CreateReservationInput{
			RoomIDs:  []uuid.UUID{f.room101},
			CheckIn:  date(2025, 6, 4),
			CheckOut: date(2025, 6, 6),
		}, f.guest, nil)

		require.NoError(t, err)
	})

	t.Run("異常系: 存在しない部屋", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.CreateReservation(ctx, commands.CreateReservationInput{
			RoomIDs:  []uuid.UUID{f.room101, uuid.New()},
			CheckIn:  date(2025, 6, 1),
			CheckOut: date(2025, 6, 2),
		}, f.guest, nil)

		assert.ErrorIs(t, err, reservation.ErrRoomNotFound)
		assert.Zero(t, f.ledger.ReservationCount())
	})

	t.Run("異常系: 入力検証", func(t *testing.T) {
		f := newFixture(t)
		cases := []struct {
			name string
			in   commands.CreateReservationInput
			want error
		}{
			{"部屋なし", commands.CreateReservationInput{CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 2)}, reservation.ErrNoRooms},
			{"部屋の重複", commands.CreateReservationInput{RoomIDs: []uuid.UUID{f.room101, f.room101}, CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 2)}, reservation.ErrDuplicateRoom},
			{"チェックアウトがチェックイン以前", commands.CreateReservationInput{RoomIDs: []uuid.UUID{f.room101}, CheckIn: date(2025, 6, 2), CheckOut: date(2025, 6, 2)}, reservation.ErrCheckOutNotAfter},
			{"過去の日程", commands.CreateReservationInput{RoomIDs: []uuid.UUID{f.room101}, CheckIn: date(2025, 5, 1), CheckOut: date(2025, 5, 3)}, reservation.ErrStayNotInFuture},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.reservations.CreateReservation(ctx, tc.in, f.guest, nil)
				assert.ErrorIs(t, err, tc.want)
				assert.True(t, errs.Is(err, errs.ErrValidation))
			})
		}
		assert.Zero(t, f.ledger.ReservationCount())
	})

	t.Run("異常系: イベント書き込み失敗で予約もロールバック", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.FailOutbox(errors.New("disk full"))

		_, err := f.reservations.CreateReservation(ctx, commands.CreateReservationInput{
			RoomIDs:  []uuid.UUID{f.room101},
			CheckIn:  date(2025, 6, 1),
			CheckOut: date(2025, 6, 2),
		}, f.guest, nil)

		require.Error(t, err)
		assert.Zero(t, f.ledger.ReservationCount())
		assert.Empty(t, f.ledger.Events())
	})
}

func TestCreateReservation_Concurrent(t *testing.T) {
	f := newFixture(t)
	const n = 10

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		successes   int
		unavailable int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actor := user.Actor{ID: uuid.New(), Role: user.RoleGuest}
			_, err := f.reservations.CreateReservation(context.Background(), commands.CreateReservationInput{
				RoomIDs:  []uuid.UUID{f.room101},
				CheckIn:  date(2025, 7, 1),
				CheckOut: date(2025, 7, 3),
			}, actor, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, reservation.ErrRoomUnavailable):
				unavailable++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, unavailable)
	assert.Equal(t, 1, f.ledger.ReservationCount())
}

func TestCreateReservation_Idempotency(t *testing.T) {
	ctx := context.Background()
	in := commands.CreateReservationInput{
		RoomIDs:  []uuid.UUID{},
		CheckIn:  date(2025, 6, 1),
		CheckOut: date(2025, 6, 2),
	}

	t.Run("正常系: 同じキー・同じ内容なら最初の結果を返す", func(t *testing.T) {
		f := newFixture(t)
		in.RoomIDs = []uuid.UUID{f.room101}
		key := uuid.New()

		first, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)
		require.NoError(t, err)
		second, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.ReservationID, second.ReservationID)
		assert.Equal(t, 1, f.ledger.ReservationCount())
		assert.Len(t, f.ledger.Events(), 1)
	})

	t.Run("異常系: 同じキーで内容が違う", func(t *testing.T) {
		f := newFixture(t)
		in.RoomIDs = []uuid.UUID{f.room101}
		key := uuid.New()
		_, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)
		require.NoError(t, err)

		other := in
		other.RoomIDs = []uuid.UUID{f.room102}
		_, err = f.reservations.CreateReservation(ctx, other, f.guest, &key)

		assert.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
		assert.Equal(t, 1, f.ledger.ReservationCount())
	})

	t.Run("正常系: キーはユーザーごとに独立", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		in.RoomIDs = []uuid.UUID{f.room101}
		_, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)
		require.NoError(t, err)

		in.RoomIDs = []uuid.UUID{f.room102}
		out, err := f.reservations.CreateReservation(ctx, in, user.Actor{ID: uuid.New(), Role: user.RoleGuest}, &key)

		require.NoError(t, err)
		assert.False(t, out.IsReplayed)
		assert.Equal(t, 2, f.ledger.ReservationCount())
	})

	t.Run("正常系: 期限切れのキーは再利用できる", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		in.RoomIDs = []uuid.UUID{f.room101}
		_, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)
		require.NoError(t, err)

		f.clock.Add(idempotencyTTL + 1)
		other := in
		other.RoomIDs = []uuid.UUID{f.room102}
		out, err := f.reservations.CreateReservation(ctx, other, f.guest, &key)

		require.NoError(t, err)
		assert.False(t, out.IsReplayed)
		assert.Equal(t, 2, f.ledger.ReservationCount())
	})

	t.Run("異常系: 失敗したリクエストはキーを消費しない", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		bad := in
		bad.RoomIDs = []uuid.UUID{uuid.New()}
		_, err := f.reservations.CreateReservation(ctx, bad, f.guest, &key)
		require.Error(t, err)

		in.RoomIDs = []uuid.UUID{f.room101}
		out, err := f.reservations.CreateReservation(ctx, in, f.guest, &key)

		require.NoError(t, err)
		assert.False(t, out.IsReplayed)
	})
}

func TestAddGuests(t *testing.T) {
	ctx := context.Background()
	detail := func(room uuid.UUID) reservation.GuestDetail {
		return reservation.GuestDetail{
			RoomID:    room,
			FirstName: "Taro",
			LastName:  "Yamada",
			Email:     "taro@example.com",
			Phone:     "+81312345678",
			AgeGroup:  reservation.AgeGroupAdult,
			CountryID: 1,
			StateID:   13,
		}
	}

	t.Run("正常系: 全員追加される", func(t *testing.T) {
		f := newFixture(t)
		id := f.book(t, f.room101, f.room102)

		out, err := f.reservations.AddGuests(ctx, id, []reservation.GuestDetail{detail(f.room101), detail(f.room102)}, f.guest)

		require.NoError(t, err)
		assert.Equal(t, int64(2), out.Added)
		assert.Equal(t, 2, f.ledger.GuestCount(id))
		assert.Contains(t, f.ledger.EventTypes(), shared.EventGuestsAdded)
	})

	t.Run("異常系: 1件でも不正なら全件拒否", func(t *testing.T) {
		f := newFixture(t)
		id := f.book(t, f.room101)
		bad := detail(f.room101)
		bad.FirstName = ""

		_, err := f.reservations.AddGuests(ctx, id, []reservation.GuestDetail{detail(f.room101), bad}, f.guest)

		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Zero(t, f.ledger.GuestCount(id))
	})

	t.Run("異常系: 予約に含まれない部屋", func(t *testing.T) {
		f := newFixture(t)
		id := f.book(t, f.room101)

		_, err := f.reservations.AddGuests(ctx, id, []reservation.GuestDetail{detail(f.room102)}, f.guest)

		assert.ErrorIs(t, err, reservation.ErrRoomNotInReservation)
		assert.Zero(t, f.ledger.GuestCount(id))
	})

	t.Run("異常系: 他人の予約", func(t *testing.T) {
		f := newFixture(t)
		id := f.book(t, f.room101)
		stranger := user.Actor{ID: uuid.New(), Role: user.RoleGuest}

		_, err := f.reservations.AddGuests(ctx, id, []reservation.GuestDetail{detail(f.room101)}, stranger)

		assert.ErrorIs(t, err, reservation.ErrReservationNotOwned)
	})

	t.Run("異常系: 予約が存在しない", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservations.AddGuests(ctx, uuid.New(), []reservation.GuestDetail{detail(f.room101)}, f.guest)

		assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
	})

	t.Run("異常系: キャンセル済みの予約", func(t *testing.T) {
		f := newFixture(t)
		id := f.book(t, f.room101)
		f.approve(t, f.requestCancellation(t, id, f.room101))

		_, err := f.reservations.AddGuests(ctx, id, []reservation.GuestDetail{detail(f.room101)}, f.guest)

		assert.ErrorIs(t, err, reservation.ErrReservationNotActive)
	})
}
