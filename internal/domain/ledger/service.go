package ledger

import (
	"context"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

// BillEmitter turns a payslip into a balanced vendor bill and reverses it
// when the payslip walks back out of transfer_payment.
type BillEmitter interface {
	Emit(ctx context.Context, p payslip.Payslip) (VendorBill, error)
	Cancel(ctx context.Context, billID string) error
}
