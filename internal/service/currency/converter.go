package currency

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

// Converter keeps the four wage figures of a payslip consistent. Exactly one
// figure is authoritative (the rate lock field); the other three are derived
// from it using the payslip's currency rate and the period's total working
// hours.
type Converter struct{}

func NewConverter() Converter {
	return Converter{}
}

const hoursPerDay = 8

// WorkingHours returns the number of working days (Monday to Friday) in the
// inclusive date range and the corresponding hour total. Payslips that pay
// Saturdays get up to two Saturdays of extra hours.
func WorkingHours(from, to time.Time, includeSaturdays bool) (days int, hours float64) {
	saturdays := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday:
			saturdays++
		case time.Sunday:
		default:
			days++
		}
	}

	hours = float64(days * hoursPerDay)
	if includeSaturdays {
		if saturdays > 2 {
			saturdays = 2
		}
		hours += float64(saturdays * hoursPerDay)
	}

	return days, hours
}

// Derive recomputes the three non-authoritative wage figures from the locked
// one. The payslip's TotalWorkingHours must already be up to date.
func (Converter) Derive(p *payslip.Payslip) error {
	if !p.CurrencyRateFallback.IsPositive() {
		return payslip.ErrInvalidCurrencyRate
	}
	if !p.RateLockField.Valid() {
		return payslip.ErrInvalidRateLockField
	}

	rate := p.CurrencyRateFallback
	hours := decimal.NewFromFloat(p.TotalWorkingHours)

	switch p.RateLockField {
	case payslip.RateLockMonthlyUSD:
		p.HourlyRateUSD = safeDiv(p.MonthlyWageUSD, hours)
	case payslip.RateLockHourlyUSD:
		p.MonthlyWageUSD = p.HourlyRateUSD.Mul(hours)
	case payslip.RateLockMonthlyVND:
		p.MonthlyWageUSD = p.MonthlyWageVND.Div(rate)
		p.HourlyRateUSD = safeDiv(p.MonthlyWageUSD, hours)
	case payslip.RateLockHourlyVND:
		p.HourlyRateUSD = p.HourlyRateVND.Div(rate)
		p.MonthlyWageUSD = p.HourlyRateUSD.Mul(hours)
	}

	if p.RateLockField != payslip.RateLockMonthlyVND {
		p.MonthlyWageVND = p.MonthlyWageUSD.Mul(rate)
	}
	if p.RateLockField != payslip.RateLockHourlyVND {
		p.HourlyRateVND = p.HourlyRateUSD.Mul(rate)
	}

	return nil
}

// SetAuthoritative stores a new value for the given wage figure, makes it the
// locked field, and rederives the rest.
func (c Converter) SetAuthoritative(p *payslip.Payslip, field payslip.RateLockField, value decimal.Decimal) error {
	switch field {
	case payslip.RateLockMonthlyUSD:
		p.MonthlyWageUSD = value
	case payslip.RateLockMonthlyVND:
		p.MonthlyWageVND = value
	case payslip.RateLockHourlyUSD:
		p.HourlyRateUSD = value
	case payslip.RateLockHourlyVND:
		p.HourlyRateVND = value
	default:
		return payslip.ErrInvalidRateLockField
	}

	p.RateLockField = field
	return c.Derive(p)
}

func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
