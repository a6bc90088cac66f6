package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

// PayslipReport is a reporting snapshot taken when a payslip is generated.
// Its status mirrors the payslip's status from then on, matched by employee
// and period.
type PayslipReport struct {
	ID         string
	EmployeeID string
	DateFrom   time.Time
	DateTo     time.Time
	Status     payslip.Status

	WorkedHours          float64
	TotalWorkingDays     int
	TotalWorkingHours    float64
	ApprovedWorkingDays  int
	ApprovedWorkingHours float64

	TotalSalary        decimal.Decimal
	Insurance          decimal.Decimal
	MealAllowance      decimal.Decimal
	KPIBonus           decimal.Decimal
	OtherBonus         decimal.Decimal
	ConvertedSalaryVND decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
