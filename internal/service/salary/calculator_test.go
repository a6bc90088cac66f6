package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func link(checkIn time.Time, hours float64, approved bool) attendance.Link {
	return attendance.Link{
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(time.Duration(hours * float64(time.Hour))),
		WorkedHours: hours,
		Approved:    approved,
	}
}

func basePayslip() payslip.Payslip {
	return payslip.Payslip{
		DateFrom:            day(2025, time.March, 1, 0),
		DateTo:              day(2025, time.March, 31, 0),
		HourlyRateUSD:       decimal.NewFromInt(10),
		ProbationPercentage: decimal.NewFromInt(85),
	}
}

func TestComputeOnlyApprovedHoursArePaid(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(30000))
	p := basePayslip()

	links := []attendance.Link{
		link(day(2025, time.March, 3, 9), 8, true),
		link(day(2025, time.March, 4, 9), 8, false),
	}

	b := calc.Compute(p, links)

	assert.Equal(t, 16.0, b.WorkedHours)
	assert.Equal(t, 8.0, b.NormalHours)
	assert.Equal(t, 0.0, b.ProbationHours)
	assert.Equal(t, "80", b.NormalSalary.String())
	assert.Equal(t, 1, b.ApprovedWorkingDays)
	assert.Equal(t, 8.0, b.ApprovedWorkingHours)
}

func TestComputeProbationSplit(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(30000))
	p := basePayslip()
	probStart := day(2025, time.March, 1, 0)
	probEnd := day(2025, time.March, 10, 0)
	p.ProbationStart = &probStart
	p.ProbationEnd = &probEnd

	links := []attendance.Link{
		link(day(2025, time.March, 5, 9), 8, true),  // inside window
		link(day(2025, time.March, 10, 9), 8, true), // last day, inclusive
		link(day(2025, time.March, 11, 9), 8, true), // first day after
	}

	b := calc.Compute(p, links)

	assert.Equal(t, 16.0, b.ProbationHours)
	assert.Equal(t, 8.0, b.NormalHours)
	// 16h at 10 USD/h paid at 85%
	assert.Equal(t, "136", b.ProbationSalary.String())
	assert.Equal(t, "80", b.NormalSalary.String())
}

func TestComputeMealAllowanceRequiresSaturdayMode(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(30000))
	p := basePayslip()

	links := []attendance.Link{
		link(day(2025, time.March, 3, 9), 8, true),
	}

	b := calc.Compute(p, links)
	assert.True(t, b.MealAllowance.IsZero())

	p.IncludeSaturdays = true
	b = calc.Compute(p, links)
	assert.Equal(t, "30000", b.MealAllowance.String())
}

func TestComputeMealAllowancePerFullDay(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(30000))
	p := basePayslip()
	p.IncludeSaturdays = true

	links := []attendance.Link{
		// Two sessions on the same day that only together reach 8 hours.
		link(day(2025, time.March, 3, 9), 4, true),
		link(day(2025, time.March, 3, 14), 4, true),
		// A short day earns nothing.
		link(day(2025, time.March, 4, 9), 6, true),
	}

	b := calc.Compute(p, links)

	assert.Equal(t, "30000", b.MealAllowance.String())
	assert.Equal(t, 2, b.ApprovedWorkingDays)
}

func TestComputeTotalSalaryFormula(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	p := basePayslip()
	p.Insurance = decimal.NewFromInt(50)
	p.KPIBonus = decimal.NewFromInt(100)
	p.OtherBonus = decimal.NewFromInt(25)

	links := []attendance.Link{
		link(day(2025, time.March, 3, 9), 8, true),
	}

	b := calc.Compute(p, links)

	// 80 normal - 50 insurance + 100 kpi + 25 other
	assert.Equal(t, "155", b.TotalSalary.String())
}

func TestComputeEmptyLinks(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(30000))
	p := basePayslip()
	p.Insurance = decimal.NewFromInt(10)

	b := calc.Compute(p, nil)

	assert.Equal(t, 0.0, b.WorkedHours)
	assert.Equal(t, "-10", b.TotalSalary.String())
}
