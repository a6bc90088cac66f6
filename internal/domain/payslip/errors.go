package payslip

import (
	"errors"
	"fmt"
)

var (
	ErrPayslipNotFound        = errors.New("payslip not found")
	ErrPayslipExistsForPeriod = errors.New("a payslip already exists for this employee and period")
	ErrPeriodClaimConflict    = errors.New("another process is generating a payslip for this period")
	ErrInvalidPeriod          = errors.New("date_from must not be after date_to")
	ErrInvalidProbationWindow = errors.New("probation_start must not be after probation_end")
	ErrInvalidCurrencyRate    = errors.New("currency rate must be positive")
	ErrInvalidRateLockField   = errors.New("unknown rate lock field")
	ErrPayslipImmutable       = errors.New("payslip can no longer be edited in its current status")
	ErrNoPayableAddress       = errors.New("employee has no payable address configured")
)

// InvalidTransitionError reports a lifecycle move that the state machine does
// not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move payslip from %s to %s", e.From, e.To)
}
