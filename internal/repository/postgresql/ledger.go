package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/ledger"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.Repository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetAccountByCode(ctx context.Context, code string) (ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, code, name FROM accounts WHERE code = $1`

	var acc ledger.Account
	err := q.QueryRow(ctx, query, code).Scan(&acc.ID, &acc.Code, &acc.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Account{}, &ledger.MissingAccountError{Code: code}
		}
		return ledger.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

func (r *ledgerRepository) CreateBill(ctx context.Context, bill ledger.VendorBill) (ledger.VendorBill, error) {
	q := GetQuerier(ctx, r.db)

	billQuery := `
		INSERT INTO vendor_bills (reference, partner_address, issue_date, cancelled)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, billQuery,
		bill.Reference, bill.PartnerAddress, bill.IssueDate,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return ledger.VendorBill{}, fmt.Errorf("failed to create vendor bill: %w", err)
	}

	lineQuery := `
		INSERT INTO vendor_bill_lines (bill_id, description, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range bill.Lines {
		line := &bill.Lines[i]
		line.BillID = bill.ID
		err := q.QueryRow(ctx, lineQuery,
			bill.ID, line.Description, line.AccountID, line.Debit, line.Credit,
		).Scan(&line.ID)
		if err != nil {
			return ledger.VendorBill{}, fmt.Errorf("failed to create vendor bill line: %w", err)
		}
	}

	return bill, nil
}

func (r *ledgerRepository) CancelAndDeleteBill(ctx context.Context, billID string) error {
	q := GetQuerier(ctx, r.db)

	// Mark cancelled first so a failure between the statements never leaves
	// an active bill without lines.
	cancelQuery := `UPDATE vendor_bills SET cancelled = TRUE WHERE id = $1`
	tag, err := q.Exec(ctx, cancelQuery, billID)
	if err != nil {
		return fmt.Errorf("failed to cancel vendor bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrBillNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM vendor_bill_lines WHERE bill_id = $1`, billID); err != nil {
		return fmt.Errorf("failed to delete vendor bill lines: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM vendor_bills WHERE id = $1`, billID); err != nil {
		return fmt.Errorf("failed to delete vendor bill: %w", err)
	}

	return nil
}
