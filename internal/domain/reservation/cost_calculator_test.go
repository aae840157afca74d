//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moneyCmp = cmp.Comparer(func(a, b reservation.Money) bool { return a.Cents() == b.Cents() })
var pctCmp = cmp.Comparer(func(a, b reservation.Percentage) bool { return a.BasisPoints() == b.BasisPoints() })

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultCostCalculator(t *testing.T) {
	calc := reservation.NewDefaultCostCalculator(reservation.MustPercentage(1800))

	t.Run("2部屋3泊: 小計750 税135 合計885", func(t *testing.T) {
		r101 := reservation.RoomRate{RoomID: uuid.New(), RoomNumber: "101", NightlyRate: reservation.MustMoney(10000)}
		r102 := reservation.RoomRate{RoomID: uuid.New(), RoomNumber: "102", NightlyRate: reservation.MustMoney(15000)}
		stay := reservation.ReconstructStayPeriod(date(2025, 6, 1), date(2025, 6, 4))

		got, err := calc.ComputeRoomCosts([]reservation.RoomRate{r101, r102}, stay)
		require.NoError(t, err)

		want := reservation.RoomCostBreakdown{
			Lines: []reservation.RoomCostLine{
				{RoomID: r101.RoomID, RoomNumber: "101", NightlyRate: reservation.MustMoney(10000), Nights: 3, LineTotal: reservation.MustMoney(30000)},
				{RoomID: r102.RoomID, RoomNumber: "102", NightlyRate: reservation.MustMoney(15000), Nights: 3, LineTotal: reservation.MustMoney(45000)},
			},
			Nights:   3,
			Subtotal: reservation.MustMoney(75000),
			TaxRate:  reservation.MustPercentage(1800),
			Tax:      reservation.MustMoney(13500),
			Total:    reservation.MustMoney(88500),
		}
		if diff := cmp.Diff(want, got, moneyCmp, pctCmp); diff != "" {
			t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("合計 = 小計 + 税 (端数は1セント単位で丸め)", func(t *testing.T) {
		stay := reservation.ReconstructStayPeriod(date(2025, 1, 1), date(2025, 1, 2))
		for _, cents := range []int64{1, 3, 99, 12345, 999999} {
			got, err := calc.ComputeRoomCosts([]reservation.RoomRate{{RoomID: uuid.New(), NightlyRate: reservation.MustMoney(cents)}}, stay)
			require.NoError(t, err)
			assert.Equal(t, got.Subtotal.Cents()+got.Tax.Cents(), got.Total.Cents())
			exact := float64(cents) * 0.18
			assert.InDelta(t, exact, float64(got.Tax.Cents()), 0.5, "cents=%d", cents)
		}
	})

	t.Run("部屋なしはバリデーションエラー", func(t *testing.T) {
		stay := reservation.ReconstructStayPeriod(date(2025, 1, 1), date(2025, 1, 2))
		_, err := calc.ComputeRoomCosts(nil, stay)
		assert.ErrorIs(t, err, reservation.ErrNoRooms)
	})
}

func TestNewStayPeriod(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		errIs    error
		nights   int
	}{
		{name: "翌日から2泊OK", checkIn: date(2025, 5, 11), checkOut: date(2025, 5, 13), nights: 2},
		{name: "チェックアウト=チェックインNG", checkIn: date(2025, 5, 11), checkOut: date(2025, 5, 11), errIs: reservation.ErrCheckOutNotAfter},
		{name: "チェックアウトが前NG", checkIn: date(2025, 5, 12), checkOut: date(2025, 5, 11), errIs: reservation.ErrCheckOutNotAfter},
		{name: "今日チェックインNG", checkIn: date(2025, 5, 10), checkOut: date(2025, 5, 12), errIs: reservation.ErrStayNotInFuture},
		{name: "過去日NG", checkIn: date(2025, 5, 1), checkOut: date(2025, 5, 3), errIs: reservation.ErrStayNotInFuture},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stay, err := reservation.NewStayPeriod(tc.checkIn, tc.checkOut, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.nights, stay.Nights())
		})
	}
}

func TestMoney(t *testing.T) {
	_, err := reservation.NewMoney(-1)
	assert.ErrorIs(t, err, reservation.ErrNegativeMoney)

	assert.Equal(t, int64(0), reservation.MustMoney(100).Sub(reservation.MustMoney(300)).Cents())
	assert.Equal(t, "885.00", reservation.MustMoney(88500).String())
	assert.Equal(t, int64(20000), reservation.MustMoney(100000).Apply(reservation.MustPercentage(2000)).Cents())

	_, err = reservation.NewPercentage(10001)
	assert.ErrorIs(t, err, reservation.ErrInvalidPercentage)
}
