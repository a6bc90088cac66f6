package payslip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/validator"
)

// UpdatePayslipRequest carries a partial edit. Setting one of the four wage
// fields makes that field authoritative and rederives the other three.
type UpdatePayslipRequest struct {
	ID string `json:"-"`

	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`

	MonthlyWageUSD       *decimal.Decimal `json:"monthly_wage_usd,omitempty"`
	MonthlyWageVND       *decimal.Decimal `json:"monthly_wage_vnd,omitempty"`
	HourlyRateUSD        *decimal.Decimal `json:"hourly_rate_usd,omitempty"`
	HourlyRateVND        *decimal.Decimal `json:"hourly_rate_vnd,omitempty"`
	CurrencyRateFallback *decimal.Decimal `json:"currency_rate_fallback,omitempty"`

	IncludeSaturdays *bool `json:"include_saturdays,omitempty"`

	ProbationStart      *string          `json:"probation_start,omitempty"`
	ProbationEnd        *string          `json:"probation_end,omitempty"`
	ProbationPercentage *decimal.Decimal `json:"probation_percentage,omitempty"`

	Insurance  *decimal.Decimal `json:"insurance,omitempty"`
	KPIBonus   *decimal.Decimal `json:"kpi_bonus,omitempty"`
	OtherBonus *decimal.Decimal `json:"other_bonus,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.DateFrom != nil && !validator.IsValidDate(*r.DateFrom) {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from must be in YYYY-MM-DD format"})
	}
	if r.DateTo != nil && !validator.IsValidDate(*r.DateTo) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be in YYYY-MM-DD format"})
	}
	if r.ProbationStart != nil && !validator.IsValidDate(*r.ProbationStart) {
		errs = append(errs, validator.ValidationError{Field: "probation_start", Message: "probation_start must be in YYYY-MM-DD format"})
	}
	if r.ProbationEnd != nil && !validator.IsValidDate(*r.ProbationEnd) {
		errs = append(errs, validator.ValidationError{Field: "probation_end", Message: "probation_end must be in YYYY-MM-DD format"})
	}

	wageFields := 0
	for _, f := range []*decimal.Decimal{r.MonthlyWageUSD, r.MonthlyWageVND, r.HourlyRateUSD, r.HourlyRateVND} {
		if f != nil {
			wageFields++
		}
	}
	if wageFields > 1 {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "only one wage field may be set per update"})
	}

	if r.CurrencyRateFallback != nil && !r.CurrencyRateFallback.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "currency_rate_fallback", Message: "currency_rate_fallback must be positive"})
	}
	if r.ProbationPercentage != nil && (r.ProbationPercentage.IsNegative() || r.ProbationPercentage.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "probation_percentage", Message: "probation_percentage must be between 0 and 100"})
	}

	return errs
}

// DuplicatePayslipRequest copies a payslip into a new period. The optional
// rate override replaces the stored fallback on the copy.
type DuplicatePayslipRequest struct {
	SourceID string `json:"-"`

	DateFrom     string           `json:"date_from"`
	DateTo       string           `json:"date_to"`
	CurrencyRate *decimal.Decimal `json:"currency_rate,omitempty"`
}

func (r *DuplicatePayslipRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DateFrom) {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from is required"})
	} else if !validator.IsValidDate(r.DateFrom) {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.DateTo) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to is required"})
	} else if !validator.IsValidDate(r.DateTo) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be in YYYY-MM-DD format"})
	}
	if r.CurrencyRate != nil && !r.CurrencyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "currency_rate", Message: "currency_rate must be positive"})
	}

	return errs
}

type ListPayslipsFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type PayslipResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	Status       Status `json:"status"`

	RateLockField        RateLockField   `json:"rate_lock_field"`
	MonthlyWageUSD       decimal.Decimal `json:"monthly_wage_usd"`
	MonthlyWageVND       decimal.Decimal `json:"monthly_wage_vnd"`
	HourlyRateUSD        decimal.Decimal `json:"hourly_rate_usd"`
	HourlyRateVND        decimal.Decimal `json:"hourly_rate_vnd"`
	CurrencyRateFallback decimal.Decimal `json:"currency_rate_fallback"`

	IncludeSaturdays bool `json:"include_saturdays"`

	ProbationStart      *string         `json:"probation_start,omitempty"`
	ProbationEnd        *string         `json:"probation_end,omitempty"`
	ProbationPercentage decimal.Decimal `json:"probation_percentage"`

	Insurance     decimal.Decimal `json:"insurance"`
	MealAllowance decimal.Decimal `json:"meal_allowance"`
	KPIBonus      decimal.Decimal `json:"kpi_bonus"`
	OtherBonus    decimal.Decimal `json:"other_bonus"`

	WorkedHours          float64         `json:"worked_hours"`
	ProbationHours       float64         `json:"probation_hours"`
	ProbationSalary      decimal.Decimal `json:"probation_salary"`
	NormalHours          float64         `json:"normal_hours"`
	NormalSalary         decimal.Decimal `json:"normal_salary"`
	TotalSalary          decimal.Decimal `json:"total_salary"`
	ConvertedSalaryVND   decimal.Decimal `json:"converted_salary_vnd"`
	TotalWorkingDays     int             `json:"total_working_days"`
	TotalWorkingHours    float64         `json:"total_working_hours"`
	ApprovedWorkingDays  int             `json:"approved_working_days"`
	ApprovedWorkingHours float64         `json:"approved_working_hours"`

	VendorBillReference *string `json:"vendor_bill_reference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type ListPayslipsResponse struct {
	Payslips   []PayslipResponse `json:"payslips"`
	Pagination PaginationMeta    `json:"pagination"`
}

// RefreshRatesRequest optionally narrows the refresh to specific payslips.
// With no ids, every still-editable payslip gets the new rate.
type RefreshRatesRequest struct {
	PayslipIDs []string `json:"payslip_ids,omitempty"`
}

func (r *RefreshRatesRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	for _, id := range r.PayslipIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "payslip_ids", Message: "payslip_ids must contain valid UUIDs"})
			break
		}
	}

	return errs
}

type RefreshRatesResponse struct {
	Rate           decimal.Decimal `json:"rate"`
	PayslipsSynced int             `json:"payslips_synced"`
	FetchedAt      time.Time       `json:"fetched_at"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		DateFrom:             p.DateFrom.Format("2006-01-02"),
		DateTo:               p.DateTo.Format("2006-01-02"),
		Status:               p.Status,
		RateLockField:        p.RateLockField,
		MonthlyWageUSD:       p.MonthlyWageUSD,
		MonthlyWageVND:       p.MonthlyWageVND,
		HourlyRateUSD:        p.HourlyRateUSD,
		HourlyRateVND:        p.HourlyRateVND,
		CurrencyRateFallback: p.CurrencyRateFallback,
		IncludeSaturdays:     p.IncludeSaturdays,
		ProbationPercentage:  p.ProbationPercentage,
		Insurance:            p.Insurance,
		MealAllowance:        p.MealAllowance,
		KPIBonus:             p.KPIBonus,
		OtherBonus:           p.OtherBonus,
		WorkedHours:          p.WorkedHours,
		ProbationHours:       p.ProbationHours,
		ProbationSalary:      p.ProbationSalary,
		NormalHours:          p.NormalHours,
		NormalSalary:         p.NormalSalary,
		TotalSalary:          p.TotalSalary,
		ConvertedSalaryVND:   p.ConvertedSalaryVND,
		TotalWorkingDays:     p.TotalWorkingDays,
		TotalWorkingHours:    p.TotalWorkingHours,
		ApprovedWorkingDays:  p.ApprovedWorkingDays,
		ApprovedWorkingHours: p.ApprovedWorkingHours,
		VendorBillReference:  p.VendorBillReference,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.ProbationStart != nil {
		s := p.ProbationStart.Format("2006-01-02")
		resp.ProbationStart = &s
	}
	if p.ProbationEnd != nil {
		s := p.ProbationEnd.Format("2006-01-02")
		resp.ProbationEnd = &s
	}
	return resp
}
