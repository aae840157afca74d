//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/tests/common/memledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type env struct {
	clock        *clock.MockClock
	ledger       *memledger.Ledger
	reservations queries.ReservationQueries
	cancels      queries.CancellationQueries
	bookCmd      commands.ReservationCommands
	cancelCmd    commands.CancellationCommands
	room101      uuid.UUID
	room102      uuid.UUID
	guest        user.Actor
	admin        user.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	ledger := memledger.New(clk)
	calc := reservation.NewDefaultCostCalculator(reservation.MustPercentage(1000))
	engine := cancellation.NewPolicyEngine(calc)
	ledger.AddPolicy(cancellation.Policy{
		Description:      "early",
		ChargePercentage: reservation.MustPercentage(1000),
		MinimumCharge:    reservation.MustMoney(0),
		EffectiveFrom:    date(2025, 1, 1),
		EffectiveTo:      date(2025, 12, 31),
	})
	return &env{
		clock:        clk,
		ledger:       ledger,
		reservations: queries.NewReservationQueries(ledger.ReservationViews(), ledger, calc, clk),
		cancels:      queries.NewCancellationQueries(ledger.CancellationViews(), ledger, engine, clk),
		bookCmd:      commands.NewReservationUseCase(ledger, calc, clk, time.Hour),
		cancelCmd:    commands.NewCancellationUseCase(ledger, engine, clk),
		room101:      ledger.AddRoom("101", 12000),
		room102:      ledger.AddRoom("102", 8000),
		guest:        user.Actor{ID: uuid.New(), Role: user.RoleGuest},
		admin:        user.Actor{ID: uuid.New(), Role: user.RoleAdmin},
	}
}

func (e *env) book(t *testing.T) uuid.UUID {
	t.Helper()
	out, err := e.bookCmd.CreateReservation(context.Background(), commands.CreateReservationInput{
		RoomIDs:  []uuid.UUID{e.room101, e.room102},
		CheckIn:  date(2025, 8, 10),
		CheckOut: date(2025, 8, 12),
	}, e.guest, nil)
	require.NoError(t, err)
	return out.ReservationID
}

func TestCalculateRoomCosts(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	view, err := e.reservations.CalculateRoomCosts(ctx, []uuid.UUID{e.room101, e.room102}, date(2025, 8, 10), date(2025, 8, 12))

	require.NoError(t, err)
	assert.Equal(t, 2, view.Nights)
	require.Len(t, view.Rooms, 2)
	assert.Equal(t, e.room101, view.Rooms[0].RoomID)
	assert.Equal(t, int64(24000), view.Rooms[0].LineTotalCents)
	assert.Equal(t, int64(40000), view.SubtotalCents)
	assert.Equal(t, int64(4000), view.TaxCents)
	assert.Equal(t, int64(44000), view.TotalCents)
	assert.Zero(t, e.ledger.ReservationCount(), "見積もりは何も記録しない")

	t.Run("異常系: 存在しない部屋", func(t *testing.T) {
		_, err := e.reservations.CalculateRoomCosts(ctx, []uuid.UUID{uuid.New()}, date(2025, 8, 10), date(2025, 8, 12))
		assert.ErrorIs(t, err, reservation.ErrRoomNotFound)
	})
}

func TestReservationQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.book(t)

	t.Run("正常系: 本人", func(t *testing.T) {
		view, err := e.reservations.GetByID(ctx, e.guest, id)
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
		assert.Len(t, view.Rooms, 2)
	})

	t.Run("正常系: 管理者", func(t *testing.T) {
		_, err := e.reservations.GetByID(ctx, e.admin, id)
		require.NoError(t, err)
	})

	t.Run("異常系: 他人の予約は存在しない扱い", func(t *testing.T) {
		_, err := e.reservations.GetByID(ctx, user.Actor{ID: uuid.New(), Role: user.RoleGuest}, id)
		assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
	})

	t.Run("異常系: 存在しない予約と支払い", func(t *testing.T) {
		_, err := e.reservations.GetByID(ctx, e.guest, uuid.New())
		assert.ErrorIs(t, err, reservation.ErrReservationNotFound)

		_, err = e.reservations.GetPaymentByID(ctx, uuid.New())
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestCalculateCharges(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.book(t)

	view, err := e.cancels.CalculateCharges(ctx, e.guest, id, []uuid.UUID{e.room101})

	require.NoError(t, err)
	// 2泊 × 120.00 + 税10% = 264.00, 10% = 26.40
	assert.Equal(t, int64(26400), view.TotalCostCents)
	assert.Equal(t, int64(2640), view.ChargeCents)
	assert.Equal(t, int64(23760), view.RefundableCents)
	assert.Equal(t, "early", view.PolicyDescription)
	assert.Equal(t, date(2025, 5, 1), view.EvaluatedOn)

	_, err = e.cancels.ListAll(ctx, queries.CancellationFilters{})
	assert.ErrorIs(t, err, queries.ErrNoCancellationsFound, "試算は申請を作らない")

	t.Run("異常系: 他人の予約", func(t *testing.T) {
		_, err := e.cancels.CalculateCharges(ctx, user.Actor{ID: uuid.New(), Role: user.RoleGuest}, id, []uuid.UUID{e.room101})
		assert.ErrorIs(t, err, reservation.ErrReservationNotOwned)
	})

	t.Run("異常系: ポリシーの期間外", func(t *testing.T) {
		e.clock.Set(date(2026, 2, 1))
		defer e.clock.Set(date(2025, 5, 1))
		_, err := e.cancels.CalculateCharges(ctx, e.guest, id, []uuid.UUID{e.room101})
		assert.ErrorIs(t, err, cancellation.ErrNoCoveringPolicy)
	})
}

func TestCancellationQueries_List(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.book(t)

	first, err := e.cancelCmd.CreateCancellationRequest(ctx, commands.CreateCancellationInput{ReservationID: id, RoomIDs: []uuid.UUID{e.room101}}, e.guest)
	require.NoError(t, err)
	e.clock.Set(date(2025, 5, 3))
	second, err := e.cancelCmd.CreateCancellationRequest(ctx, commands.CreateCancellationInput{ReservationID: id, RoomIDs: []uuid.UUID{e.room102}}, e.guest)
	require.NoError(t, err)
	require.NoError(t, e.cancelCmd.ReviewCancellationRequest(ctx, first.CancellationID, commands.ReviewCancellationInput{Decision: "approved"}, e.admin))

	t.Run("正常系: フィルタなしは新しい順", func(t *testing.T) {
		items, err := e.cancels.ListAll(ctx, queries.CancellationFilters{})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, second.CancellationID, items[0].ID)
	})

	t.Run("正常系: ステータスで絞り込み", func(t *testing.T) {
		status := "approved"
		items, err := e.cancels.ListAll(ctx, queries.CancellationFilters{Status: &status})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, first.CancellationID, items[0].ID)
	})

	t.Run("正常系: 日付範囲は両端を含む", func(t *testing.T) {
		from, to := date(2025, 5, 1), date(2025, 5, 1)
		items, err := e.cancels.ListAll(ctx, queries.CancellationFilters{DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, first.CancellationID, items[0].ID)
	})

	t.Run("異常系: 不正なフィルタ", func(t *testing.T) {
		bad := "cancelled"
		_, err := e.cancels.ListAll(ctx, queries.CancellationFilters{Status: &bad})
		assert.ErrorIs(t, err, cancellation.ErrInvalidStatus)

		from, to := date(2025, 5, 5), date(2025, 5, 1)
		_, err = e.cancels.ListAll(ctx, queries.CancellationFilters{DateFrom: &from, DateTo: &to})
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})

	t.Run("正常系: 返金待ち一覧は承認済みのみ", func(t *testing.T) {
		items, err := e.cancels.ListForRefund(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, first.CancellationID, items[0].ID)
		assert.Nil(t, items[0].RefundID)
	})

	t.Run("正常系: ポリシー一覧", func(t *testing.T) {
		items, err := e.cancels.ListPolicies(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1000), items[0].ChargePercentageBps)
	})

	t.Run("異常系: 存在しない申請と返金", func(t *testing.T) {
		_, err := e.cancels.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, cancellation.ErrRequestNotFound)

		_, err = e.cancels.GetRefundByID(ctx, uuid.New())
		assert.ErrorIs(t, err, cancellation.ErrRefundNotFound)
	})
}

func TestListForRefund_Empty(t *testing.T) {
	e := newEnv(t)

	_, err := e.cancels.ListForRefund(context.Background())

	assert.ErrorIs(t, err, queries.ErrNoPendingRefunds)
}
