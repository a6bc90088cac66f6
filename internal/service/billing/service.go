package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/config"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/employee"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/ledger"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
)

type billEmitter struct {
	ledgerRepo   ledger.Repository
	employeeRepo employee.Repository
	payrollCfg   config.PayrollConfig
}

func NewBillEmitter(ledgerRepo ledger.Repository, employeeRepo employee.Repository, payrollCfg config.PayrollConfig) ledger.BillEmitter {
	return &billEmitter{
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
		payrollCfg:   payrollCfg,
	}
}

// Emit posts the payslip's converted salary as a balanced vendor bill: a
// debit against the salary expense account and a credit against accounts
// payable, addressed to the employee's payable address.
func (e *billEmitter) Emit(ctx context.Context, p payslip.Payslip) (ledger.VendorBill, error) {
	emp, err := e.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return ledger.VendorBill{}, err
	}
	if emp.PayableAddress == nil || *emp.PayableAddress == "" {
		return ledger.VendorBill{}, payslip.ErrNoPayableAddress
	}

	expense, err := e.ledgerRepo.GetAccountByCode(ctx, e.payrollCfg.SalaryExpenseAccount)
	if err != nil {
		return ledger.VendorBill{}, err
	}
	payable, err := e.ledgerRepo.GetAccountByCode(ctx, e.payrollCfg.AccountsPayableAccount)
	if err != nil {
		return ledger.VendorBill{}, err
	}

	today := time.Now()
	amount := p.ConvertedSalaryVND
	description := fmt.Sprintf("Salary %s (%s - %s)",
		emp.Name, p.DateFrom.Format("2006-01-02"), p.DateTo.Format("2006-01-02"))

	bill := ledger.VendorBill{
		Reference:      fmt.Sprintf("SALARY/%s/%s", today.Format("2006-01-02"), emp.FirstName()),
		PartnerAddress: *emp.PayableAddress,
		IssueDate:      today,
		Lines: []ledger.BillLine{
			{Description: description, AccountID: expense.ID, Debit: amount},
			{Description: description, AccountID: payable.ID, Credit: amount},
		},
	}

	created, err := e.ledgerRepo.CreateBill(ctx, bill)
	if err != nil {
		return ledger.VendorBill{}, err
	}

	slog.Info("Vendor bill emitted",
		"bill_id", created.ID, "reference", created.Reference, "payslip_id", p.ID, "amount_vnd", amount)
	return created, nil
}

func (e *billEmitter) Cancel(ctx context.Context, billID string) error {
	if err := e.ledgerRepo.CancelAndDeleteBill(ctx, billID); err != nil {
		return err
	}

	slog.Info("Vendor bill cancelled", "bill_id", billID)
	return nil
}
