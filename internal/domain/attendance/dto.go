package attendance

import (
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

func (r *CreateAttendanceRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in is required"})
	} else if !validator.IsValidDateTime(r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be a valid RFC3339 timestamp"})
	}
	if validator.IsEmpty(r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out is required"})
	} else if !validator.IsValidDateTime(r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be a valid RFC3339 timestamp"})
	}

	return errs
}

type AttendanceResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	WorkedHours float64   `json:"worked_hours"`
	CreatedAt   time.Time `json:"created_at"`
}

type LinkResponse struct {
	ID                    string    `json:"id"`
	PayslipID             string    `json:"payslip_id"`
	AttendanceRecordID    string    `json:"attendance_record_id"`
	Approved              bool      `json:"approved"`
	ApprovedBy            *string   `json:"approved_by,omitempty"`
	LastApproverPayslipID *string   `json:"last_approver_payslip_id,omitempty"`
	CheckIn               time.Time `json:"check_in"`
	CheckOut              time.Time `json:"check_out"`
	WorkedHours           float64   `json:"worked_hours"`
}

func ToAttendanceResponse(rec Record) AttendanceResponse {
	return AttendanceResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		CheckIn:     rec.CheckIn,
		CheckOut:    rec.CheckOut,
		WorkedHours: rec.WorkedHours,
		CreatedAt:   rec.CreatedAt,
	}
}

func ToLinkResponse(link Link) LinkResponse {
	return LinkResponse{
		ID:                    link.ID,
		PayslipID:             link.PayslipID,
		AttendanceRecordID:    link.AttendanceRecordID,
		Approved:              link.Approved,
		ApprovedBy:            link.ApprovedBy,
		LastApproverPayslipID: link.LastApproverPayslipID,
		CheckIn:               link.CheckIn,
		CheckOut:              link.CheckOut,
		WorkedHours:           link.WorkedHours,
	}
}
