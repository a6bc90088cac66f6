package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID   string
	Code string
	Name string
}

type BillLine struct {
	ID          string
	BillID      string
	Description string
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// VendorBill is the accounting artifact emitted when a payslip moves to
// transfer_payment. Lines always balance: one debit against the salary
// expense account, one credit against accounts payable.
type VendorBill struct {
	ID             string
	Reference      string
	PartnerAddress string
	IssueDate      time.Time
	Cancelled      bool
	Lines          []BillLine
	CreatedAt      time.Time
}
