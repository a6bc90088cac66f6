package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrLinkNotFound          = errors.New("attendance link not found")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
	ErrInvalidTimestamp      = errors.New("timestamp must be RFC3339")
)

// AlreadyApprovedError is returned when a link tries to approve a record that
// another payslip's link already holds. The owner id is empty when the claim
// lost a race whose winner is not yet visible.
type AlreadyApprovedError struct {
	OwnerPayslipID string
}

func (e *AlreadyApprovedError) Error() string {
	if e.OwnerPayslipID == "" {
		return "attendance record already approved by another payslip"
	}
	return fmt.Sprintf("attendance record already approved by payslip %s", e.OwnerPayslipID)
}

// NotOwnerError is returned when a payslip that does not hold the approval
// token tries to unapprove a record. Only the approving payslip may reverse.
type NotOwnerError struct {
	OwnerPayslipID string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("only payslip %s may unapprove this attendance record", e.OwnerPayslipID)
}
