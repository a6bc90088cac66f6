package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingHoursWeekdaysOnly(t *testing.T) {
	// November 2024: 21 weekdays, 5 Saturdays, 4 Sundays.
	days, hours := WorkingHours(date(2024, time.November, 1), date(2024, time.November, 30), false)

	assert.Equal(t, 21, days)
	assert.Equal(t, 168.0, hours)
}

func TestWorkingHoursSaturdaysCappedAtTwo(t *testing.T) {
	days, hours := WorkingHours(date(2024, time.November, 1), date(2024, time.November, 30), true)

	assert.Equal(t, 21, days)
	assert.Equal(t, 184.0, hours)
}

func TestWorkingHoursShortRangeWithOneSaturday(t *testing.T) {
	// Mon Nov 4 through Sat Nov 9: five weekdays plus one Saturday.
	_, hours := WorkingHours(date(2024, time.November, 4), date(2024, time.November, 9), true)

	assert.Equal(t, 48.0, hours)
}

func newPayslip(field payslip.RateLockField) payslip.Payslip {
	return payslip.Payslip{
		RateLockField:        field,
		CurrencyRateFallback: decimal.NewFromInt(25000),
		TotalWorkingHours:    168,
	}
}

func TestDeriveFromMonthlyUSD(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyUSD)
	p.MonthlyWageUSD = decimal.NewFromInt(2100)

	require.NoError(t, conv.Derive(&p))

	assert.Equal(t, "12.5", p.HourlyRateUSD.String())
	assert.Equal(t, "52500000", p.MonthlyWageVND.String())
	assert.Equal(t, "312500", p.HourlyRateVND.String())
}

func TestDeriveFromHourlyVND(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockHourlyVND)
	p.HourlyRateVND = decimal.NewFromInt(250000)

	require.NoError(t, conv.Derive(&p))

	assert.Equal(t, "10", p.HourlyRateUSD.String())
	assert.Equal(t, "1680", p.MonthlyWageUSD.String())
	assert.Equal(t, "42000000", p.MonthlyWageVND.String())
	// The authoritative figure is untouched.
	assert.Equal(t, "250000", p.HourlyRateVND.String())
}

func TestDeriveFromMonthlyVND(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyVND)
	p.MonthlyWageVND = decimal.NewFromInt(42000000)

	require.NoError(t, conv.Derive(&p))

	assert.Equal(t, "1680", p.MonthlyWageUSD.String())
	assert.Equal(t, "10", p.HourlyRateUSD.String())
	assert.Equal(t, "250000", p.HourlyRateVND.String())
}

func TestDeriveRejectsNonPositiveRate(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyUSD)
	p.CurrencyRateFallback = decimal.Zero

	assert.ErrorIs(t, conv.Derive(&p), payslip.ErrInvalidCurrencyRate)

	p.CurrencyRateFallback = decimal.NewFromInt(-5)
	assert.ErrorIs(t, conv.Derive(&p), payslip.ErrInvalidCurrencyRate)
}

func TestDeriveZeroHoursLeavesHourlyZero(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyUSD)
	p.MonthlyWageUSD = decimal.NewFromInt(2100)
	p.TotalWorkingHours = 0

	require.NoError(t, conv.Derive(&p))

	assert.True(t, p.HourlyRateUSD.IsZero())
	assert.True(t, p.HourlyRateVND.IsZero())
}

func TestSetAuthoritativeReassignsLock(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyUSD)
	p.MonthlyWageUSD = decimal.NewFromInt(2100)
	require.NoError(t, conv.Derive(&p))

	require.NoError(t, conv.SetAuthoritative(&p, payslip.RateLockHourlyUSD, decimal.NewFromInt(15)))

	assert.Equal(t, payslip.RateLockHourlyUSD, p.RateLockField)
	assert.Equal(t, "2520", p.MonthlyWageUSD.String())
	assert.Equal(t, "375000", p.HourlyRateVND.String())
}

func TestSetAuthoritativeUnknownField(t *testing.T) {
	conv := NewConverter()
	p := newPayslip(payslip.RateLockMonthlyUSD)

	err := conv.SetAuthoritative(&p, payslip.RateLockField("weekly_usd"), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, payslip.ErrInvalidRateLockField)
}
