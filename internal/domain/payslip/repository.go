package payslip

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) (Payslip, error)
	List(ctx context.Context, filter ListPayslipsFilter) ([]Payslip, int, error)
	ListByIDs(ctx context.Context, ids []string) ([]Payslip, error)
	ListEditable(ctx context.Context) ([]Payslip, error)

	Update(ctx context.Context, p Payslip) (Payslip, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	SetVendorBill(ctx context.Context, id string, billID, reference *string) error

	// TryClaimPeriod takes a transaction-scoped advisory lock keyed on the
	// employee and period. It must run inside a transaction; the claim is
	// released at commit or rollback. A false return means another
	// transaction is working on the same period right now.
	TryClaimPeriod(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
}
