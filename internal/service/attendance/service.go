package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/auth"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/employee"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
	"github.com/nguyenthuong372100/WSP-internal/internal/repository/postgresql"
)

type attendanceService struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	payslipRepo    payslip.Repository
	employeeRepo   employee.Repository
	payslipSvc     payslip.PayslipService
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	payslipRepo payslip.Repository,
	employeeRepo employee.Repository,
	payslipSvc payslip.PayslipService,
) attendance.AttendanceService {
	return &attendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		payslipRepo:    payslipRepo,
		employeeRepo:   employeeRepo,
		payslipSvc:     payslipSvc,
	}
}

func (s *attendanceService) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	checkIn, err := parseTimestamp(req.CheckIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	checkOut, err := parseTimestamp(req.CheckOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Sub-minute noise from the clocking device is not payroll data.
	checkIn = checkIn.Truncate(time.Minute)
	checkOut = checkOut.Truncate(time.Minute)

	if !checkOut.After(checkIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec := attendance.Record{
		EmployeeID:  req.EmployeeID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		WorkedHours: checkOut.Sub(checkIn).Hours(),
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.attendanceRepo.CreateRecord(txCtx, rec)
		if err != nil {
			return err
		}
		rec = created

		return s.payslipSvc.EnsureForRecord(txCtx, rec)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance recorded",
		"record_id", rec.ID, "employee_id", rec.EmployeeID, "worked_hours", rec.WorkedHours)
	return attendance.ToAttendanceResponse(rec), nil
}

func (s *attendanceService) ToggleApproval(ctx context.Context, linkID string) (attendance.LinkResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return attendance.LinkResponse{}, err
	}

	var result attendance.Link

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		link, err := s.attendanceRepo.GetLinkByID(txCtx, linkID)
		if err != nil {
			return err
		}

		p, err := s.payslipRepo.GetByID(txCtx, link.PayslipID)
		if err != nil {
			return err
		}
		if !actor.CanViewEmployee(p.EmployeeID) {
			return auth.ErrNotPayslipViewer
		}
		if p.Status == payslip.StatusDone {
			return payslip.ErrPayslipImmutable
		}

		if link.Approved {
			err = s.release(txCtx, link)
		} else {
			err = s.claim(txCtx, link, actor.UserID)
		}
		if err != nil {
			return err
		}

		// Every payslip linking the record shows hours from it, so all of
		// them pick up the new approval state.
		payslipIDs, err := s.attendanceRepo.ListPayslipIDsByRecord(txCtx, link.AttendanceRecordID)
		if err != nil {
			return err
		}
		for _, id := range payslipIDs {
			if err := s.payslipSvc.Recompute(txCtx, id); err != nil {
				return err
			}
		}

		result, err = s.attendanceRepo.GetLinkByID(txCtx, linkID)
		return err
	})
	if err != nil {
		return attendance.LinkResponse{}, err
	}

	return attendance.ToLinkResponse(result), nil
}

func (s *attendanceService) claim(ctx context.Context, link attendance.Link, approvedBy string) error {
	won, err := s.attendanceRepo.ApproveRecord(ctx, link, approvedBy)
	if err != nil {
		return err
	}
	if won {
		return nil
	}

	owner, err := s.attendanceRepo.CurrentOwner(ctx, link.AttendanceRecordID)
	if err != nil {
		return err
	}
	if owner == nil {
		// Lost the race and the winner released in between; surface the
		// conflict rather than silently retrying.
		return &attendance.AlreadyApprovedError{OwnerPayslipID: link.PayslipID}
	}
	return &attendance.AlreadyApprovedError{OwnerPayslipID: *owner}
}

func (s *attendanceService) release(ctx context.Context, link attendance.Link) error {
	won, err := s.attendanceRepo.UnapproveRecord(ctx, link.AttendanceRecordID, link.PayslipID)
	if err != nil {
		return err
	}
	if won {
		return nil
	}

	owner, err := s.attendanceRepo.CurrentOwner(ctx, link.AttendanceRecordID)
	if err != nil {
		return err
	}
	if owner == nil {
		// Nothing to release; the record is already unapproved.
		return nil
	}
	return &attendance.NotOwnerError{OwnerPayslipID: *owner}
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, attendance.ErrInvalidTimestamp
	}
	return t, nil
}
