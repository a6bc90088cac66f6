package attendance

import "context"

type AttendanceService interface {
	// CreateAttendance stores a new record and makes sure a payslip covering
	// the record's month exists and is up to date.
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// ToggleApproval flips the approval state of a link. Approving claims the
	// underlying record for the link's payslip; unapproving releases it and
	// is only allowed from the payslip that holds the claim. Every payslip
	// linking the record is recomputed afterwards.
	ToggleApproval(ctx context.Context, linkID string) (LinkResponse, error)
}
