package ledger

import "context"

type Repository interface {
	GetAccountByCode(ctx context.Context, code string) (Account, error)
	CreateBill(ctx context.Context, bill VendorBill) (VendorBill, error)
	// CancelAndDeleteBill voids the bill and removes it along with its lines.
	CancelAndDeleteBill(ctx context.Context, billID string) error
}
