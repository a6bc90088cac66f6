package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestUpdateRequestRejectsMultipleWageFields(t *testing.T) {
	req := UpdatePayslipRequest{
		MonthlyWageUSD: dec(2000),
		HourlyRateVND:  dec(250000),
	}

	errs := req.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "wage", errs[0].Field)
}

func TestUpdateRequestSingleWageFieldOK(t *testing.T) {
	req := UpdatePayslipRequest{MonthlyWageUSD: dec(2000)}
	assert.Empty(t, req.Validate())
}

func TestUpdateRequestRejectsBadDatesAndRate(t *testing.T) {
	from := "03-01-2025"
	req := UpdatePayslipRequest{
		DateFrom:             &from,
		CurrencyRateFallback: dec(0),
	}

	errs := req.Validate()
	fields := errs.ToMap()
	assert.Contains(t, fields, "date_from")
	assert.Contains(t, fields, "currency_rate_fallback")
}

func TestDuplicateRequestValidation(t *testing.T) {
	req := DuplicatePayslipRequest{}
	errs := req.Validate()
	fields := errs.ToMap()
	assert.Contains(t, fields, "date_from")
	assert.Contains(t, fields, "date_to")

	req = DuplicatePayslipRequest{
		DateFrom:     "2025-04-01",
		DateTo:       "2025-04-30",
		CurrencyRate: dec(-1),
	}
	errs = req.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "currency_rate", errs[0].Field)
}
