package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/config"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/auth"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/employee"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/ledger"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/report"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/vietcombank"
	"github.com/nguyenthuong372100/WSP-internal/internal/repository/postgresql"
	"github.com/nguyenthuong372100/WSP-internal/internal/service/currency"
	"github.com/nguyenthuong372100/WSP-internal/internal/service/salary"
)

type payslipService struct {
	db             *database.DB
	payslipRepo    payslip.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	reportRepo     report.Repository
	billEmitter    ledger.BillEmitter
	calc           salary.Calculator
	converter      currency.Converter
	rateFeed       *vietcombank.Client
	payrollCfg     config.PayrollConfig
}

func NewPayslipService(
	db *database.DB,
	payslipRepo payslip.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	reportRepo report.Repository,
	billEmitter ledger.BillEmitter,
	rateFeed *vietcombank.Client,
	payrollCfg config.PayrollConfig,
) payslip.PayslipService {
	return &payslipService{
		db:             db,
		payslipRepo:    payslipRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		reportRepo:     reportRepo,
		billEmitter:    billEmitter,
		calc:           salary.NewCalculator(payrollCfg.MealAllowanceUnit),
		converter:      currency.NewConverter(),
		rateFeed:       rateFeed,
		payrollCfg:     payrollCfg,
	}
}

func (s *payslipService) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	if !actor.CanViewEmployee(p.EmployeeID) {
		return payslip.PayslipResponse{}, auth.ErrNotPayslipViewer
	}

	return payslip.ToPayslipResponse(p), nil
}

func (s *payslipService) ListPayslips(ctx context.Context, filter payslip.ListPayslipsFilter) (payslip.ListPayslipsResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return payslip.ListPayslipsResponse{}, err
	}

	// Employees only ever see their own payslips.
	if !actor.Privileged() {
		employeeID, err := s.resolveEmployeeID(ctx, actor)
		if err != nil {
			return payslip.ListPayslipsResponse{}, err
		}
		filter.EmployeeID = employeeID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	payslips, total, err := s.payslipRepo.List(ctx, filter)
	if err != nil {
		return payslip.ListPayslipsResponse{}, err
	}

	resp := payslip.ListPayslipsResponse{
		Payslips: make([]payslip.PayslipResponse, 0, len(payslips)),
		Pagination: payslip.PaginationMeta{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: (total + filter.Limit - 1) / filter.Limit,
		},
	}
	for _, p := range payslips {
		resp.Payslips = append(resp.Payslips, payslip.ToPayslipResponse(p))
	}

	return resp, nil
}

// resolveEmployeeID returns the employee the actor is paid as, falling back
// to a lookup by user when the token carries no employee claim.
func (s *payslipService) resolveEmployeeID(ctx context.Context, actor auth.Actor) (string, error) {
	if actor.EmployeeID != nil {
		return *actor.EmployeeID, nil
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return "", auth.ErrMissingEmployeeID
		}
		return "", err
	}
	return emp.ID, nil
}

func (s *payslipService) ListAttendanceLinks(ctx context.Context, payslipID string) ([]attendance.LinkResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewEmployee(p.EmployeeID) {
		return nil, auth.ErrNotPayslipViewer
	}

	links, err := s.attendanceRepo.ListLinksByPayslip(ctx, payslipID)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.LinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, attendance.ToLinkResponse(link))
	}

	return resp, nil
}

func (s *payslipService) UpdatePayslip(ctx context.Context, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	var updated payslip.Payslip

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		p, err := s.payslipRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if p.Status != payslip.StatusDraft && p.Status != payslip.StatusGenerated {
			return payslip.ErrPayslipImmutable
		}

		periodChanged := false
		if req.DateFrom != nil {
			t, err := time.Parse("2006-01-02", *req.DateFrom)
			if err != nil {
				return payslip.ErrInvalidPeriod
			}
			p.DateFrom = t
			periodChanged = true
		}
		if req.DateTo != nil {
			t, err := time.Parse("2006-01-02", *req.DateTo)
			if err != nil {
				return payslip.ErrInvalidPeriod
			}
			p.DateTo = t
			periodChanged = true
		}
		// Single-day periods are allowed; only an inverted range is not.
		if p.DateFrom.After(p.DateTo) {
			return payslip.ErrInvalidPeriod
		}

		if req.CurrencyRateFallback != nil {
			p.CurrencyRateFallback = *req.CurrencyRateFallback
		}
		if req.IncludeSaturdays != nil {
			p.IncludeSaturdays = *req.IncludeSaturdays
		}
		if req.ProbationStart != nil {
			t, err := time.Parse("2006-01-02", *req.ProbationStart)
			if err != nil {
				return payslip.ErrInvalidProbationWindow
			}
			p.ProbationStart = &t
		}
		if req.ProbationEnd != nil {
			t, err := time.Parse("2006-01-02", *req.ProbationEnd)
			if err != nil {
				return payslip.ErrInvalidProbationWindow
			}
			p.ProbationEnd = &t
		}
		if p.ProbationStart != nil && p.ProbationEnd != nil && p.ProbationStart.After(*p.ProbationEnd) {
			return payslip.ErrInvalidProbationWindow
		}
		if req.ProbationPercentage != nil {
			p.ProbationPercentage = *req.ProbationPercentage
		}
		if req.Insurance != nil {
			p.Insurance = *req.Insurance
		}
		if req.KPIBonus != nil {
			p.KPIBonus = *req.KPIBonus
		}
		if req.OtherBonus != nil {
			p.OtherBonus = *req.OtherBonus
		}

		// Editing a wage figure makes that figure authoritative.
		switch {
		case req.MonthlyWageUSD != nil:
			p.MonthlyWageUSD = *req.MonthlyWageUSD
			p.RateLockField = payslip.RateLockMonthlyUSD
		case req.MonthlyWageVND != nil:
			p.MonthlyWageVND = *req.MonthlyWageVND
			p.RateLockField = payslip.RateLockMonthlyVND
		case req.HourlyRateUSD != nil:
			p.HourlyRateUSD = *req.HourlyRateUSD
			p.RateLockField = payslip.RateLockHourlyUSD
		case req.HourlyRateVND != nil:
			p.HourlyRateVND = *req.HourlyRateVND
			p.RateLockField = payslip.RateLockHourlyVND
		}

		if periodChanged {
			if err := s.attendanceRepo.SyncLinks(txCtx, p.ID, p.EmployeeID, p.DateFrom, p.DateTo); err != nil {
				return err
			}
		}

		updated, err = s.recompute(txCtx, p)
		return err
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.ToPayslipResponse(updated), nil
}

func (s *payslipService) DuplicatePayslip(ctx context.Context, req payslip.DuplicatePayslipRequest) (payslip.PayslipResponse, error) {
	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return payslip.PayslipResponse{}, payslip.ErrInvalidPeriod
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return payslip.PayslipResponse{}, payslip.ErrInvalidPeriod
	}
	if from.After(to) {
		return payslip.PayslipResponse{}, payslip.ErrInvalidPeriod
	}

	var created payslip.Payslip

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		src, err := s.payslipRepo.GetByID(txCtx, req.SourceID)
		if err != nil {
			return err
		}

		acquired, err := s.payslipRepo.TryClaimPeriod(txCtx, src.EmployeeID, from, to)
		if err != nil {
			return err
		}
		if !acquired {
			return payslip.ErrPeriodClaimConflict
		}

		if _, err := s.payslipRepo.GetByEmployeePeriod(txCtx, src.EmployeeID, from, to); err == nil {
			return payslip.ErrPayslipExistsForPeriod
		} else if !errors.Is(err, payslip.ErrPayslipNotFound) {
			return err
		}

		clone := copyForPeriod(src, from, to)
		if req.CurrencyRate != nil {
			clone.CurrencyRateFallback = *req.CurrencyRate
		}

		clone, err = s.payslipRepo.Create(txCtx, clone)
		if err != nil {
			return err
		}

		if err := s.attendanceRepo.SyncLinks(txCtx, clone.ID, clone.EmployeeID, from, to); err != nil {
			return err
		}

		clone.EmployeeName = src.EmployeeName
		created, err = s.recompute(txCtx, clone)
		return err
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.ToPayslipResponse(created), nil
}

func (s *payslipService) Generate(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	return s.transition(ctx, id, payslip.StatusGenerated, func(txCtx context.Context, p *payslip.Payslip) error {
		recomputed, err := s.recompute(txCtx, *p)
		if err != nil {
			return err
		}
		*p = recomputed

		_, err = s.reportRepo.Upsert(txCtx, snapshotOf(*p, payslip.StatusGenerated))
		return err
	})
}

func (s *payslipService) ConfirmByEmployee(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return s.transition(ctx, id, payslip.StatusEmployeeConfirm, func(txCtx context.Context, p *payslip.Payslip) error {
		// Confirmation belongs to the paid employee; accountants may do it
		// on their behalf.
		if !actor.CanViewEmployee(p.EmployeeID) {
			return auth.ErrNotPayslipViewer
		}

		if p.VendorBillID != nil {
			slog.Warn("Payslip already has a vendor bill, emitting a replacement",
				"payslip_id", p.ID, "previous_bill_id", *p.VendorBillID)
		}

		bill, err := s.billEmitter.Emit(txCtx, *p)
		if err != nil {
			return err
		}

		p.VendorBillID = &bill.ID
		p.VendorBillReference = &bill.Reference
		return s.payslipRepo.SetVendorBill(txCtx, p.ID, p.VendorBillID, p.VendorBillReference)
	})
}

func (s *payslipService) TransferPayment(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if !actor.Privileged() {
		return payslip.PayslipResponse{}, auth.ErrForbidden
	}

	return s.transition(ctx, id, payslip.StatusTransferPayment, nil)
}

func (s *payslipService) MarkDone(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	actor, err := auth.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if !actor.Privileged() {
		return payslip.PayslipResponse{}, auth.ErrForbidden
	}

	return s.transition(ctx, id, payslip.StatusDone, nil)
}

func (s *payslipService) Revert(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	var result payslip.Payslip

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		p, err := s.payslipRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		prev, ok := payslip.PreviousStatus(p.Status)
		if !ok {
			return &payslip.InvalidTransitionError{From: p.Status, To: p.Status}
		}

		// Walking back out of transfer_payment reverses the accounting
		// artifact.
		if p.Status == payslip.StatusTransferPayment && p.VendorBillID != nil {
			if err := s.billEmitter.Cancel(txCtx, *p.VendorBillID); err != nil {
				return err
			}
			p.VendorBillID = nil
			p.VendorBillReference = nil
			if err := s.payslipRepo.SetVendorBill(txCtx, p.ID, nil, nil); err != nil {
				return err
			}
		}

		if err := s.payslipRepo.UpdateStatus(txCtx, p.ID, prev); err != nil {
			return err
		}
		if err := s.reportRepo.MirrorStatus(txCtx, p.EmployeeID, p.DateFrom, p.DateTo, prev); err != nil {
			return err
		}

		p.Status = prev
		result = p
		return nil
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("Payslip reverted", "payslip_id", id, "status", result.Status)
	return payslip.ToPayslipResponse(result), nil
}

// transition moves the payslip one step forward, running the hook between the
// state check and the status write.
func (s *payslipService) transition(ctx context.Context, id string, to payslip.Status, hook func(context.Context, *payslip.Payslip) error) (payslip.PayslipResponse, error) {
	var result payslip.Payslip

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		p, err := s.payslipRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !payslip.CanTransition(p.Status, to) {
			return &payslip.InvalidTransitionError{From: p.Status, To: to}
		}

		if hook != nil {
			if err := hook(txCtx, &p); err != nil {
				return err
			}
		}

		if err := s.payslipRepo.UpdateStatus(txCtx, p.ID, to); err != nil {
			return err
		}
		if err := s.reportRepo.MirrorStatus(txCtx, p.EmployeeID, p.DateFrom, p.DateTo, to); err != nil {
			return err
		}

		p.Status = to
		result = p
		return nil
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("Payslip transitioned", "payslip_id", id, "status", to)
	return payslip.ToPayslipResponse(result), nil
}

func (s *payslipService) EnsureForRecord(ctx context.Context, rec attendance.Record) error {
	from, to := monthBounds(rec.CheckIn)

	acquired, err := s.payslipRepo.TryClaimPeriod(ctx, rec.EmployeeID, from, to)
	if err != nil {
		return err
	}
	if !acquired {
		slog.Info("Payslip period busy, skipping attendance-driven sync",
			"employee_id", rec.EmployeeID, "date_from", from.Format("2006-01-02"))
		return nil
	}

	p, err := s.payslipRepo.GetByEmployeePeriod(ctx, rec.EmployeeID, from, to)
	switch {
	case err == nil:
		if p.Status == payslip.StatusDone {
			slog.Warn("Attendance recorded for a completed payslip period",
				"employee_id", rec.EmployeeID, "payslip_id", p.ID)
			return nil
		}
	case errors.Is(err, payslip.ErrPayslipNotFound):
		p, err = s.createForPeriod(ctx, rec.EmployeeID, from, to)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := s.attendanceRepo.SyncLinks(ctx, p.ID, p.EmployeeID, from, to); err != nil {
		return err
	}

	_, err = s.recompute(ctx, p)
	return err
}

// createForPeriod seeds a payslip for a month that has attendance but no
// payslip yet. The previous month's payslip is the template when one exists.
func (s *payslipService) createForPeriod(ctx context.Context, employeeID string, from, to time.Time) (payslip.Payslip, error) {
	prevFrom, prevTo := monthBounds(from.AddDate(0, -1, 0))

	var p payslip.Payslip
	prev, err := s.payslipRepo.GetByEmployeePeriod(ctx, employeeID, prevFrom, prevTo)
	switch {
	case err == nil:
		p = copyForPeriod(prev, from, to)
	case errors.Is(err, payslip.ErrPayslipNotFound):
		p = payslip.Payslip{
			EmployeeID:           employeeID,
			DateFrom:             from,
			DateTo:               to,
			Status:               payslip.StatusDraft,
			RateLockField:        payslip.RateLockMonthlyUSD,
			CurrencyRateFallback: s.payrollCfg.DefaultCurrencyRate,
			ProbationPercentage:  s.payrollCfg.DefaultProbationPct,
		}
	default:
		return payslip.Payslip{}, err
	}

	created, err := s.payslipRepo.Create(ctx, p)
	if err != nil {
		return payslip.Payslip{}, err
	}

	slog.Info("Payslip created from attendance",
		"payslip_id", created.ID, "employee_id", employeeID, "date_from", from.Format("2006-01-02"))
	return created, nil
}

func (s *payslipService) Recompute(ctx context.Context, payslipID string) error {
	p, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return err
	}

	_, err = s.recompute(ctx, p)
	return err
}

// recompute refreshes the working-hours calendar, the derived wage figures
// and the salary totals, then persists the payslip.
func (s *payslipService) recompute(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	p.TotalWorkingDays, p.TotalWorkingHours = currency.WorkingHours(p.DateFrom, p.DateTo, p.IncludeSaturdays)

	if err := s.converter.Derive(&p); err != nil {
		return payslip.Payslip{}, err
	}

	links, err := s.attendanceRepo.ListLinksByPayslip(ctx, p.ID)
	if err != nil {
		return payslip.Payslip{}, err
	}

	b := s.calc.Compute(p, links)
	p.WorkedHours = b.WorkedHours
	p.ProbationHours = b.ProbationHours
	p.ProbationSalary = b.ProbationSalary
	p.NormalHours = b.NormalHours
	p.NormalSalary = b.NormalSalary
	p.MealAllowance = b.MealAllowance
	p.TotalSalary = b.TotalSalary
	p.ApprovedWorkingDays = b.ApprovedWorkingDays
	p.ApprovedWorkingHours = b.ApprovedWorkingHours
	p.ConvertedSalaryVND = p.TotalSalary.Mul(p.CurrencyRateFallback)

	return s.payslipRepo.Update(ctx, p)
}

func (s *payslipService) RefreshRates(ctx context.Context, req payslip.RefreshRatesRequest) (payslip.RefreshRatesResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return payslip.RefreshRatesResponse{}, errs
	}

	rate, err := s.rateFeed.FetchUSDRate(ctx)
	if err != nil {
		cached, cachedAt, ok := s.rateFeed.CachedRate()
		if !ok {
			return payslip.RefreshRatesResponse{}, fmt.Errorf("refresh exchange rate: %w", err)
		}
		slog.Warn("Rate feed unavailable, using cached rate",
			"error", err, "cached_at", cachedAt)
		rate = cached
	}

	synced := 0
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var targets []payslip.Payslip
		if len(req.PayslipIDs) > 0 {
			targets, err = s.payslipRepo.ListByIDs(txCtx, req.PayslipIDs)
		} else {
			targets, err = s.payslipRepo.ListEditable(txCtx)
		}
		if err != nil {
			return err
		}

		for _, p := range targets {
			if p.Status != payslip.StatusDraft && p.Status != payslip.StatusGenerated {
				slog.Warn("Skipping rate update on non-editable payslip",
					"payslip_id", p.ID, "status", p.Status)
				continue
			}
			p.CurrencyRateFallback = rate
			if _, err := s.recompute(txCtx, p); err != nil {
				return fmt.Errorf("apply rate to payslip %s: %w", p.ID, err)
			}
			synced++
		}

		return nil
	})
	if err != nil {
		return payslip.RefreshRatesResponse{}, err
	}

	slog.Info("Exchange rate applied", "rate", rate, "payslips_synced", synced)
	return payslip.RefreshRatesResponse{
		Rate:           rate,
		PayslipsSynced: synced,
		FetchedAt:      time.Now(),
	}, nil
}

// copyForPeriod clones a payslip's configuration into a new period. Bonuses
// and insurance start over at zero; wage setup and probation settings carry
// forward.
func copyForPeriod(src payslip.Payslip, from, to time.Time) payslip.Payslip {
	return payslip.Payslip{
		EmployeeID:           src.EmployeeID,
		DateFrom:             from,
		DateTo:               to,
		Status:               payslip.StatusDraft,
		RateLockField:        src.RateLockField,
		MonthlyWageUSD:       src.MonthlyWageUSD,
		MonthlyWageVND:       src.MonthlyWageVND,
		HourlyRateUSD:        src.HourlyRateUSD,
		HourlyRateVND:        src.HourlyRateVND,
		CurrencyRateFallback: src.CurrencyRateFallback,
		IncludeSaturdays:     src.IncludeSaturdays,
		ProbationStart:       src.ProbationStart,
		ProbationEnd:         src.ProbationEnd,
		ProbationPercentage:  src.ProbationPercentage,
	}
}

func snapshotOf(p payslip.Payslip, status payslip.Status) report.PayslipReport {
	return report.PayslipReport{
		EmployeeID:           p.EmployeeID,
		DateFrom:             p.DateFrom,
		DateTo:               p.DateTo,
		Status:               status,
		WorkedHours:          p.WorkedHours,
		TotalWorkingDays:     p.TotalWorkingDays,
		TotalWorkingHours:    p.TotalWorkingHours,
		ApprovedWorkingDays:  p.ApprovedWorkingDays,
		ApprovedWorkingHours: p.ApprovedWorkingHours,
		TotalSalary:          p.TotalSalary,
		Insurance:            p.Insurance,
		MealAllowance:        p.MealAllowance,
		KPIBonus:             p.KPIBonus,
		OtherBonus:           p.OtherBonus,
		ConvertedSalaryVND:   p.ConvertedSalaryVND,
	}
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
