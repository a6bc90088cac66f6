package salary

import (
	"github.com/shopspring/decimal"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

// Breakdown is the result of computing a payslip from its attendance links.
type Breakdown struct {
	WorkedHours          float64
	ProbationHours       float64
	ProbationSalary      decimal.Decimal
	NormalHours          float64
	NormalSalary         decimal.Decimal
	MealAllowance        decimal.Decimal
	TotalSalary          decimal.Decimal
	ApprovedWorkingDays  int
	ApprovedWorkingHours float64
}

// Calculator derives salary figures from approved attendance. Only approved
// links contribute to pay; WorkedHours still reflects every linked record so
// the payslip shows how much attendance is pending approval.
type Calculator struct {
	mealAllowanceUnit decimal.Decimal
}

func NewCalculator(mealAllowanceUnit decimal.Decimal) Calculator {
	return Calculator{mealAllowanceUnit: mealAllowanceUnit}
}

const hundred = 100

func (c Calculator) Compute(p payslip.Payslip, links []attendance.Link) Breakdown {
	var b Breakdown

	hoursByDay := make(map[string]float64)

	for _, link := range links {
		b.WorkedHours += link.WorkedHours

		if !link.Approved {
			continue
		}

		if p.InProbationWindow(link.CheckIn) {
			b.ProbationHours += link.WorkedHours
		} else {
			b.NormalHours += link.WorkedHours
		}

		day := link.CheckIn.Format("2006-01-02")
		hoursByDay[day] += link.WorkedHours
	}

	b.ApprovedWorkingDays = len(hoursByDay)
	b.ApprovedWorkingHours = b.ProbationHours + b.NormalHours

	probationRate := p.HourlyRateUSD.Mul(p.ProbationPercentage).Div(decimal.NewFromInt(hundred))
	b.ProbationSalary = probationRate.Mul(decimal.NewFromFloat(b.ProbationHours))
	b.NormalSalary = p.HourlyRateUSD.Mul(decimal.NewFromFloat(b.NormalHours))

	// Meal allowance accrues per full day (>= 8 approved hours), only for
	// payslips that pay Saturdays.
	if p.IncludeSaturdays {
		for _, hours := range hoursByDay {
			if hours >= 8 {
				b.MealAllowance = b.MealAllowance.Add(c.mealAllowanceUnit)
			}
		}
	}

	b.TotalSalary = b.ProbationSalary.
		Add(b.NormalSalary).
		Sub(p.Insurance).
		Add(b.MealAllowance).
		Add(p.KPIBonus).
		Add(p.OtherBonus)

	return b
}
