package attendance

import (
	"time"
)

// Record is a single check-in/check-out observation. Records are produced by
// the attendance source and are never deleted by payroll; payslips reference
// them through Links.
type Record struct {
	ID          string
	EmployeeID  string
	CheckIn     time.Time
	CheckOut    time.Time
	WorkedHours float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Link is the per-payslip view of a Record. Many links may exist for one
// record (one per overlapping payslip), but at most one of them is approved
// at any moment, and that link's payslip equals LastApproverPayslipID. The
// token is mirrored onto every link of the record so any payslip can see who
// currently owns the approval.
type Link struct {
	ID                    string
	PayslipID             string
	AttendanceRecordID    string
	Approved              bool
	ApprovedBy            *string
	LastApproverPayslipID *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Joined from the record
	EmployeeID  string
	CheckIn     time.Time
	CheckOut    time.Time
	WorkedHours float64
}
