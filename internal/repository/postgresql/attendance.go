package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/attendance"
	"github.com/nguyenthuong372100/WSP-internal/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, check_in, check_out, worked_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.CheckIn, rec.CheckOut, rec.WorkedHours,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) GetRecordByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, check_in, check_out, worked_hours, created_at, updated_at
		FROM attendance_records
		WHERE id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckIn, &rec.CheckOut, &rec.WorkedHours,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

const linkColumns = `
	l.id, l.payslip_id, l.attendance_record_id,
	l.approved, l.approved_by, l.last_approver_payslip_id,
	l.created_at, l.updated_at,
	r.employee_id, r.check_in, r.check_out, r.worked_hours`

func scanLink(row pgx.Row) (attendance.Link, error) {
	var link attendance.Link
	err := row.Scan(
		&link.ID, &link.PayslipID, &link.AttendanceRecordID,
		&link.Approved, &link.ApprovedBy, &link.LastApproverPayslipID,
		&link.CreatedAt, &link.UpdatedAt,
		&link.EmployeeID, &link.CheckIn, &link.CheckOut, &link.WorkedHours,
	)
	return link, err
}

func (r *attendanceRepository) GetLinkByID(ctx context.Context, id string) (attendance.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + linkColumns + `
		FROM attendance_links l
		JOIN attendance_records r ON r.id = l.attendance_record_id
		WHERE l.id = $1
	`

	link, err := scanLink(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Link{}, attendance.ErrLinkNotFound
		}
		return attendance.Link{}, fmt.Errorf("failed to get attendance link: %w", err)
	}

	return link, nil
}

func (r *attendanceRepository) ListLinksByPayslip(ctx context.Context, payslipID string) ([]attendance.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + linkColumns + `
		FROM attendance_links l
		JOIN attendance_records r ON r.id = l.attendance_record_id
		WHERE l.payslip_id = $1
		ORDER BY r.check_in
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance links: %w", err)
	}
	defer rows.Close()

	var links []attendance.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func (r *attendanceRepository) ListPayslipIDsByRecord(ctx context.Context, recordID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT payslip_id FROM attendance_links WHERE attendance_record_id = $1`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips of record: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan payslip id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *attendanceRepository) SyncLinks(ctx context.Context, payslipID, employeeID string, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	// New links inherit the record's current ownership token so every
	// payslip sees who holds the approval.
	insertQuery := `
		INSERT INTO attendance_links (payslip_id, attendance_record_id, last_approver_payslip_id)
		SELECT $1, rec.id,
			   (SELECT o.last_approver_payslip_id
				FROM attendance_links o
				WHERE o.attendance_record_id = rec.id
				LIMIT 1)
		FROM attendance_records rec
		WHERE rec.employee_id = $2
		  AND rec.check_in::date BETWEEN $3::date AND $4::date
		ON CONFLICT (payslip_id, attendance_record_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insertQuery, payslipID, employeeID, from, to); err != nil {
		return fmt.Errorf("failed to insert attendance links: %w", err)
	}

	// A link that falls out of the period may be the approved one. Release
	// the record before removing it so the token never points at a payslip
	// that no longer links the record.
	releaseQuery := `
		UPDATE attendance_links o
		SET last_approver_payslip_id = NULL, updated_at = NOW()
		WHERE o.attendance_record_id IN (
			SELECT l.attendance_record_id
			FROM attendance_links l
			JOIN attendance_records rec ON rec.id = l.attendance_record_id
			WHERE l.payslip_id = $1
			  AND l.approved = TRUE
			  AND (rec.employee_id <> $2 OR rec.check_in::date NOT BETWEEN $3::date AND $4::date)
		)
	`
	if _, err := q.Exec(ctx, releaseQuery, payslipID, employeeID, from, to); err != nil {
		return fmt.Errorf("failed to release out-of-range approvals: %w", err)
	}

	deleteQuery := `
		DELETE FROM attendance_links l
		USING attendance_records rec
		WHERE l.payslip_id = $1
		  AND rec.id = l.attendance_record_id
		  AND (rec.employee_id <> $2 OR rec.check_in::date NOT BETWEEN $3::date AND $4::date)
	`
	if _, err := q.Exec(ctx, deleteQuery, payslipID, employeeID, from, to); err != nil {
		return fmt.Errorf("failed to delete out-of-range attendance links: %w", err)
	}

	return nil
}

func (r *attendanceRepository) ApproveRecord(ctx context.Context, link attendance.Link, approvedBy string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Guarded update: only succeeds while no link of the record is approved.
	// Concurrent claims serialize on the row; the loser sees zero rows.
	claimQuery := `
		UPDATE attendance_links l
		SET approved = TRUE, approved_by = $3, last_approver_payslip_id = l.payslip_id, updated_at = NOW()
		WHERE l.id = $1
		  AND l.approved = FALSE
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_links o
			WHERE o.attendance_record_id = $2 AND o.approved = TRUE
		  )
	`
	tag, err := q.Exec(ctx, claimQuery, link.ID, link.AttendanceRecordID, approvedBy)
	if err != nil {
		// Two claims on different links of the record can both pass the
		// guard; the partial unique index picks the winner and the loser
		// lands here with its transaction aborted, so the owner cannot be
		// queried anymore.
		if isUniqueViolation(err) {
			return false, &attendance.AlreadyApprovedError{}
		}
		return false, fmt.Errorf("failed to approve attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	mirrorQuery := `
		UPDATE attendance_links
		SET last_approver_payslip_id = $2, updated_at = NOW()
		WHERE attendance_record_id = $1
	`
	if _, err := q.Exec(ctx, mirrorQuery, link.AttendanceRecordID, link.PayslipID); err != nil {
		return false, fmt.Errorf("failed to mirror approval owner: %w", err)
	}

	return true, nil
}

func (r *attendanceRepository) UnapproveRecord(ctx context.Context, recordID, payslipID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	releaseQuery := `
		UPDATE attendance_links
		SET approved = FALSE, approved_by = NULL, updated_at = NOW()
		WHERE attendance_record_id = $1
		  AND payslip_id = $2
		  AND approved = TRUE
		  AND last_approver_payslip_id = $2
	`
	tag, err := q.Exec(ctx, releaseQuery, recordID, payslipID)
	if err != nil {
		return false, fmt.Errorf("failed to unapprove attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	clearQuery := `
		UPDATE attendance_links
		SET last_approver_payslip_id = NULL, updated_at = NOW()
		WHERE attendance_record_id = $1
	`
	if _, err := q.Exec(ctx, clearQuery, recordID); err != nil {
		return false, fmt.Errorf("failed to clear approval owner: %w", err)
	}

	return true, nil
}

func (r *attendanceRepository) CurrentOwner(ctx context.Context, recordID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payslip_id FROM attendance_links
		WHERE attendance_record_id = $1 AND approved = TRUE
		LIMIT 1
	`

	var owner string
	err := q.QueryRow(ctx, query, recordID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approval owner: %w", err)
	}

	return &owner, nil
}
