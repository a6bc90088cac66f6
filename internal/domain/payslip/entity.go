package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateLockField names which of the four wage figures is authoritative. The
// other three are derived from it using the payslip's currency rate and the
// period's total working hours.
type RateLockField string

const (
	RateLockMonthlyUSD RateLockField = "monthly_usd"
	RateLockMonthlyVND RateLockField = "monthly_vnd"
	RateLockHourlyUSD  RateLockField = "hourly_usd"
	RateLockHourlyVND  RateLockField = "hourly_vnd"
)

func (f RateLockField) Valid() bool {
	switch f {
	case RateLockMonthlyUSD, RateLockMonthlyVND, RateLockHourlyUSD, RateLockHourlyVND:
		return true
	}
	return false
}

type Payslip struct {
	ID         string
	EmployeeID string
	DateFrom   time.Time
	DateTo     time.Time
	Status     Status

	RateLockField        RateLockField
	MonthlyWageUSD       decimal.Decimal
	MonthlyWageVND       decimal.Decimal
	HourlyRateUSD        decimal.Decimal
	HourlyRateVND        decimal.Decimal
	CurrencyRateFallback decimal.Decimal

	IncludeSaturdays bool

	ProbationStart      *time.Time
	ProbationEnd        *time.Time
	ProbationPercentage decimal.Decimal

	Insurance     decimal.Decimal
	MealAllowance decimal.Decimal
	KPIBonus      decimal.Decimal
	OtherBonus    decimal.Decimal

	// Computed from approved attendance
	WorkedHours          float64
	ProbationHours       float64
	ProbationSalary      decimal.Decimal
	NormalHours          float64
	NormalSalary         decimal.Decimal
	TotalSalary          decimal.Decimal
	ConvertedSalaryVND   decimal.Decimal
	TotalWorkingDays     int
	TotalWorkingHours    float64
	ApprovedWorkingDays  int
	ApprovedWorkingHours float64

	VendorBillID        *string
	VendorBillReference *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined from the employee
	EmployeeName string
}

// InProbationWindow reports whether the given check-in time falls inside the
// payslip's probation window. Both bounds are inclusive and compared by date.
func (p Payslip) InProbationWindow(checkIn time.Time) bool {
	if p.ProbationStart == nil || p.ProbationEnd == nil {
		return false
	}
	day := checkIn.Truncate(24 * time.Hour)
	start := p.ProbationStart.Truncate(24 * time.Hour)
	end := p.ProbationEnd.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}
