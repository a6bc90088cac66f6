package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
	"github.com/nguyenthuong372100/WSP-internal/internal/domain/report"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Upsert(ctx context.Context, rep report.PayslipReport) (report.PayslipReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslip_reports (
			employee_id, date_from, date_to, status,
			worked_hours, total_working_days, total_working_hours,
			approved_working_days, approved_working_hours,
			total_salary, insurance, meal_allowance, kpi_bonus, other_bonus,
			converted_salary_vnd
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, date_from, date_to) DO UPDATE SET
			status = EXCLUDED.status,
			worked_hours = EXCLUDED.worked_hours,
			total_working_days = EXCLUDED.total_working_days,
			total_working_hours = EXCLUDED.total_working_hours,
			approved_working_days = EXCLUDED.approved_working_days,
			approved_working_hours = EXCLUDED.approved_working_hours,
			total_salary = EXCLUDED.total_salary,
			insurance = EXCLUDED.insurance,
			meal_allowance = EXCLUDED.meal_allowance,
			kpi_bonus = EXCLUDED.kpi_bonus,
			other_bonus = EXCLUDED.other_bonus,
			converted_salary_vnd = EXCLUDED.converted_salary_vnd,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rep.EmployeeID, rep.DateFrom, rep.DateTo, rep.Status,
		rep.WorkedHours, rep.TotalWorkingDays, rep.TotalWorkingHours,
		rep.ApprovedWorkingDays, rep.ApprovedWorkingHours,
		rep.TotalSalary, rep.Insurance, rep.MealAllowance, rep.KPIBonus, rep.OtherBonus,
		rep.ConvertedSalaryVND,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return report.PayslipReport{}, fmt.Errorf("failed to upsert payslip report: %w", err)
	}

	return rep, nil
}

func (r *reportRepository) MirrorStatus(ctx context.Context, employeeID string, from, to time.Time, status payslip.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslip_reports
		SET status = $4, updated_at = NOW()
		WHERE employee_id = $1 AND date_from = $2 AND date_to = $3
	`

	if _, err := q.Exec(ctx, query, employeeID, from, to, status); err != nil {
		return fmt.Errorf("failed to mirror payslip status on report: %w", err)
	}

	return nil
}
