package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/payslip"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.Repository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.employee_id, p.date_from, p.date_to, p.status,
	p.rate_lock_field, p.monthly_wage_usd, p.monthly_wage_vnd, p.hourly_rate_usd, p.hourly_rate_vnd,
	p.currency_rate_fallback, p.include_saturdays,
	p.probation_start, p.probation_end, p.probation_percentage,
	p.insurance, p.meal_allowance, p.kpi_bonus, p.other_bonus,
	p.worked_hours, p.probation_hours, p.probation_salary, p.normal_hours, p.normal_salary,
	p.total_salary, p.converted_salary_vnd,
	p.total_working_days, p.total_working_hours, p.approved_working_days, p.approved_working_hours,
	p.vendor_bill_id, p.vendor_bill_reference,
	p.created_at, p.updated_at,
	e.name`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.DateFrom, &p.DateTo, &p.Status,
		&p.RateLockField, &p.MonthlyWageUSD, &p.MonthlyWageVND, &p.HourlyRateUSD, &p.HourlyRateVND,
		&p.CurrencyRateFallback, &p.IncludeSaturdays,
		&p.ProbationStart, &p.ProbationEnd, &p.ProbationPercentage,
		&p.Insurance, &p.MealAllowance, &p.KPIBonus, &p.OtherBonus,
		&p.WorkedHours, &p.ProbationHours, &p.ProbationSalary, &p.NormalHours, &p.NormalSalary,
		&p.TotalSalary, &p.ConvertedSalaryVND,
		&p.TotalWorkingDays, &p.TotalWorkingHours, &p.ApprovedWorkingDays, &p.ApprovedWorkingHours,
		&p.VendorBillID, &p.VendorBillReference,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}

func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, date_from, date_to, status,
			rate_lock_field, monthly_wage_usd, monthly_wage_vnd, hourly_rate_usd, hourly_rate_vnd,
			currency_rate_fallback, include_saturdays,
			probation_start, probation_end, probation_percentage,
			insurance, meal_allowance, kpi_bonus, other_bonus,
			worked_hours, probation_hours, probation_salary, normal_hours, normal_salary,
			total_salary, converted_salary_vnd,
			total_working_days, total_working_hours, approved_working_days, approved_working_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.DateFrom, p.DateTo, p.Status,
		p.RateLockField, p.MonthlyWageUSD, p.MonthlyWageVND, p.HourlyRateUSD, p.HourlyRateVND,
		p.CurrencyRateFallback, p.IncludeSaturdays,
		p.ProbationStart, p.ProbationEnd, p.ProbationPercentage,
		p.Insurance, p.MealAllowance, p.KPIBonus, p.OtherBonus,
		p.WorkedHours, p.ProbationHours, p.ProbationSalary, p.NormalHours, p.NormalSalary,
		p.TotalSalary, p.ConvertedSalaryVND,
		p.TotalWorkingDays, p.TotalWorkingHours, p.ApprovedWorkingDays, p.ApprovedWorkingHours,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payslip.Payslip{}, payslip.ErrPayslipExistsForPeriod
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.date_from = $2 AND p.date_to = $3
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip by period: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, filter payslip.ListPayslipsFilter) ([]payslip.Payslip, int, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM payslips p ` + where
	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.date_from DESC, e.name
		LIMIT $%d OFFSET $%d
	`, payslipColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, total, rows.Err()
}

func (r *payslipRepository) ListByIDs(ctx context.Context, ids []string) ([]payslip.Payslip, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips by ids: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payslipRepository) ListEditable(ctx context.Context) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.status IN ($1, $2)
		ORDER BY p.date_from DESC
	`

	rows, err := q.Query(ctx, query, payslip.StatusDraft, payslip.StatusGenerated)
	if err != nil {
		return nil, fmt.Errorf("failed to list editable payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payslipRepository) Update(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			date_from = $2, date_to = $3,
			rate_lock_field = $4, monthly_wage_usd = $5, monthly_wage_vnd = $6,
			hourly_rate_usd = $7, hourly_rate_vnd = $8,
			currency_rate_fallback = $9, include_saturdays = $10,
			probation_start = $11, probation_end = $12, probation_percentage = $13,
			insurance = $14, meal_allowance = $15, kpi_bonus = $16, other_bonus = $17,
			worked_hours = $18, probation_hours = $19, probation_salary = $20,
			normal_hours = $21, normal_salary = $22,
			total_salary = $23, converted_salary_vnd = $24,
			total_working_days = $25, total_working_hours = $26,
			approved_working_days = $27, approved_working_hours = $28,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.DateFrom, p.DateTo,
		p.RateLockField, p.MonthlyWageUSD, p.MonthlyWageVND,
		p.HourlyRateUSD, p.HourlyRateVND,
		p.CurrencyRateFallback, p.IncludeSaturdays,
		p.ProbationStart, p.ProbationEnd, p.ProbationPercentage,
		p.Insurance, p.MealAllowance, p.KPIBonus, p.OtherBonus,
		p.WorkedHours, p.ProbationHours, p.ProbationSalary,
		p.NormalHours, p.NormalSalary,
		p.TotalSalary, p.ConvertedSalaryVND,
		p.TotalWorkingDays, p.TotalWorkingHours,
		p.ApprovedWorkingDays, p.ApprovedWorkingHours,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		if isUniqueViolation(err) {
			return payslip.Payslip{}, payslip.ErrPayslipExistsForPeriod
		}
		return payslip.Payslip{}, fmt.Errorf("failed to update payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, status payslip.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payslips SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}

func (r *payslipRepository) SetVendorBill(ctx context.Context, id string, billID, reference *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET vendor_bill_id = $2, vendor_bill_reference = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, billID, reference)
	if err != nil {
		return fmt.Errorf("failed to set vendor bill on payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}

func (r *payslipRepository) TryClaimPeriod(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	key := fmt.Sprintf("payslip-period:%s:%s:%s",
		employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	query := `SELECT pg_try_advisory_xact_lock(hashtextextended($1, 0))`

	var acquired bool
	if err := q.QueryRow(ctx, query, key).Scan(&acquired); err != nil {
		return false, fmt.Errorf("failed to claim payslip period: %w", err)
	}

	return acquired, nil
}
