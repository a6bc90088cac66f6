package response

import (
	"errors"
	"net/http"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/auth"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/employee"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/ledger"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var alreadyApproved *attendance.AlreadyApprovedError
	var notOwner *attendance.NotOwnerError
	var invalidTransition *payslip.InvalidTransitionError
	var missingAccount *ledger.MissingAccountError

	switch {
	// Auth
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, auth.ErrNotPayslipViewer),
		errors.Is(err, auth.ErrMissingEmployeeID):
		Forbidden(w, err.Error())

	// Payslips
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipExistsForPeriod),
		errors.Is(err, payslip.ErrPeriodClaimConflict):
		Conflict(w, err.Error())
	case errors.As(err, &invalidTransition):
		Conflict(w, invalidTransition.Error())
	case errors.Is(err, payslip.ErrPayslipImmutable):
		Conflict(w, err.Error())
	case errors.Is(err, payslip.ErrInvalidPeriod),
		errors.Is(err, payslip.ErrInvalidProbationWindow),
		errors.Is(err, payslip.ErrInvalidCurrencyRate),
		errors.Is(err, payslip.ErrInvalidRateLockField),
		errors.Is(err, payslip.ErrNoPayableAddress):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrLinkNotFound):
		NotFound(w, "Attendance link not found")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrInvalidTimestamp):
		BadRequest(w, err.Error(), nil)
	case errors.As(err, &alreadyApproved):
		Conflict(w, alreadyApproved.Error())
	case errors.As(err, &notOwner):
		Conflict(w, notOwner.Error())

	// Ledger
	case errors.As(err, &missingAccount):
		BadRequest(w, missingAccount.Error(), nil)
	case errors.Is(err, ledger.ErrBillNotFound):
		NotFound(w, "Vendor bill not found")

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
