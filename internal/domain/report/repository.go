package report

import (
	"context"
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

type Repository interface {
	// Upsert replaces the snapshot for the report's employee and period.
	Upsert(ctx context.Context, r PayslipReport) (PayslipReport, error)
	// MirrorStatus updates the status of the snapshot matching the employee
	// and period, if one exists.
	MirrorStatus(ctx context.Context, employeeID string, from, to time.Time, status payslip.Status) error
}
