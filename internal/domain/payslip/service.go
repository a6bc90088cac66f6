package payslip

import (
	"context"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
)

type PayslipService interface {
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter ListPayslipsFilter) (ListPayslipsResponse, error)
	ListAttendanceLinks(ctx context.Context, payslipID string) ([]attendance.LinkResponse, error)

	UpdatePayslip(ctx context.Context, req UpdatePayslipRequest) (PayslipResponse, error)
	DuplicatePayslip(ctx context.Context, req DuplicatePayslipRequest) (PayslipResponse, error)

	Generate(ctx context.Context, id string) (PayslipResponse, error)
	ConfirmByEmployee(ctx context.Context, id string) (PayslipResponse, error)
	TransferPayment(ctx context.Context, id string) (PayslipResponse, error)
	MarkDone(ctx context.Context, id string) (PayslipResponse, error)
	Revert(ctx context.Context, id string) (PayslipResponse, error)

	// EnsureForRecord guarantees that a payslip covering the record's month
	// exists and has its attendance links and totals up to date. Called from
	// the attendance side whenever a record is created.
	EnsureForRecord(ctx context.Context, rec attendance.Record) error

	// Recompute refreshes the computed fields of a payslip from its approved
	// attendance links. Callers already inside a transaction pass their
	// transactional context.
	Recompute(ctx context.Context, payslipID string) error

	// RefreshRates fetches the live exchange rate and applies it as the new
	// fallback on the requested payslips, recomputing each. An empty request
	// targets every still-editable payslip.
	RefreshRates(ctx context.Context, req RefreshRatesRequest) (RefreshRatesResponse, error)
}
