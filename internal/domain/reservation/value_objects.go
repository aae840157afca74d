package reservation

import (
	"fmt"
	"time"

	"hotel-booking/internal/pkg/errs"
)

var (
	ErrNegativeMoney     = errs.Validation("money cannot be negative")
	ErrInvalidPercentage = errs.Validation("percentage must be between 0 and 100")
	ErrCheckOutNotAfter  = errs.Validation("check-out date must be after check-in date")
	ErrStayNotInFuture   = errs.Validation("stay dates must be in the future")
)

// Money is an amount in minor currency units (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// MustMoney is for literals and values already validated by the store.
func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub floors at zero.
func (m Money) Sub(other Money) Money {
	if other.cents >= m.cents {
		return Money{}
	}
	return Money{cents: m.cents - other.cents}
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

// Apply returns m × p rounded half up to the cent.
func (m Money) Apply(p Percentage) Money {
	return Money{cents: (m.cents*p.bps + 5000) / 10000}
}

func (m Money) Max(other Money) Money {
	if other.cents > m.cents {
		return other
	}
	return m
}

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Percentage is stored in basis points: 1800 = 18%.
type Percentage struct {
	bps int64
}

func NewPercentage(bps int64) (Percentage, error) {
	if bps < 0 || bps > 10000 {
		return Percentage{}, ErrInvalidPercentage
	}
	return Percentage{bps: bps}, nil
}

func MustPercentage(bps int64) Percentage {
	p, err := NewPercentage(bps)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) BasisPoints() int64 { return p.bps }

// StayPeriod is a [checkIn, checkOut) range of calendar dates.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayPeriod validates a stay being booked: check-out after check-in, both after today.
func NewStayPeriod(checkIn, checkOut, now time.Time) (StayPeriod, error) {
	in, out := DateOf(checkIn), DateOf(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrCheckOutNotAfter
	}
	if !in.After(DateOf(now)) {
		return StayPeriod{}, ErrStayNotInFuture
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

// ReconstructStayPeriod skips the "in the future" rule for stays loaded from storage.
func ReconstructStayPeriod(checkIn, checkOut time.Time) StayPeriod {
	return StayPeriod{checkIn: DateOf(checkIn), checkOut: DateOf(checkOut)}
}

func (s StayPeriod) CheckIn() time.Time  { return s.checkIn }
func (s StayPeriod) CheckOut() time.Time { return s.checkOut }

func (s StayPeriod) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

func (s StayPeriod) Overlaps(other StayPeriod) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
