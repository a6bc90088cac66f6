package attendance

import (
	"context"
	"time"
)

type Repository interface {
	CreateRecord(ctx context.Context, rec Record) (Record, error)
	GetRecordByID(ctx context.Context, id string) (Record, error)

	GetLinkByID(ctx context.Context, id string) (Link, error)
	ListLinksByPayslip(ctx context.Context, payslipID string) ([]Link, error)
	ListPayslipIDsByRecord(ctx context.Context, recordID string) ([]string, error)

	// SyncLinks reconciles the link set of a payslip against the records of
	// the employee whose check-in falls inside [from, to]: missing links are
	// created, out-of-range links are removed. Links owned by other payslips
	// are never touched.
	SyncLinks(ctx context.Context, payslipID, employeeID string, from, to time.Time) error

	// ApproveRecord atomically approves the record on behalf of the given
	// link's payslip, provided no link of the record is approved yet. It
	// reports whether the claim won.
	ApproveRecord(ctx context.Context, link Link, approvedBy string) (bool, error)

	// UnapproveRecord atomically clears the approval, provided the given
	// payslip currently holds the token. It reports whether the release won.
	UnapproveRecord(ctx context.Context, recordID, payslipID string) (bool, error)

	// CurrentOwner returns the payslip holding the approval token for the
	// record, or nil when the record is unapproved everywhere.
	CurrentOwner(ctx context.Context, recordID string) (*string, error)
}
