//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/tests/common/memledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const idempotencyTTL = 24 * time.Hour

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture: 税率10%、通年ポリシー(20%・最低50.00)、客室2室
type fixture struct {
	clock  *clock.MockClock
	ledger *memledger.Ledger

	reservations  commands.ReservationCommands
	payments      commands.PaymentCommands
	cancellations commands.CancellationCommands
	refunds       commands.RefundCommands

	room101 uuid.UUID
	room102 uuid.UUID
	guest   user.Actor
	admin   user.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	ledger := memledger.New(clk)
	calc := reservation.NewDefaultCostCalculator(reservation.MustPercentage(1000))
	engine := cancellation.NewPolicyEngine(calc)

	f := &fixture{
		clock:         clk,
		ledger:        ledger,
		reservations:  commands.NewReservationUseCase(ledger, calc, clk, idempotencyTTL),
		payments:      commands.NewPaymentUseCase(ledger, clk, idempotencyTTL),
		cancellations: commands.NewCancellationUseCase(ledger, engine, clk),
		refunds:       commands.NewRefundUseCase(ledger, clk),
		room101:       ledger.AddRoom("101", 10000),
		room102:       ledger.AddRoom("102", 15000),
		guest:         user.Actor{ID: uuid.New(), Role: user.RoleGuest},
		admin:         user.Actor{ID: uuid.New(), Role: user.RoleAdmin},
	}
	ledger.AddPolicy(cancellation.Policy{
		Description:      "standard",
		ChargePercentage: reservation.MustPercentage(2000),
		MinimumCharge:    reservation.MustMoney(5000),
		EffectiveFrom:    date(2025, 1, 1),
		EffectiveTo:      date(2025, 12, 31),
	})
	return f
}

// book reserves rooms for 2025-06-01 .. 2025-06-04 (3泊)
func (f *fixture) book(t *testing.T, rooms ...uuid.UUID) uuid.UUID {
	t.Helper()
	out, err := f.reservations.CreateReservation(context.Background(), commands.CreateReservationInput{
		RoomIDs:  rooms,
		CheckIn:  date(2025, 6, 1),
		CheckOut: date(2025, 6, 4),
	}, f.guest, nil)
	require.NoError(t, err)
	return out.ReservationID
}

func (f *fixture) requestCancellation(t *testing.T, reservationID uuid.UUID, rooms ...uuid.UUID) uuid.UUID {
	t.Helper()
	out, err := f.cancellations.CreateCancellationRequest(context.Background(), commands.CreateCancellationInput{
		ReservationID: reservationID,
		RoomIDs:       rooms,
	}, f.guest)
	require.NoError(t, err)
	return out.CancellationID
}

func (f *fixture) approve(t *testing.T, cancellationID uuid.UUID) {
	t.Helper()
	err := f.cancellations.ReviewCancellationRequest(context.Background(), cancellationID,
		commands.ReviewCancellationInput{Decision: "approved"}, f.admin)
	require.NoError(t, err)
}
