package auth

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAccountant Role = "accountant"
)

var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("insufficient role for this operation")
	ErrNotPayslipViewer  = errors.New("payslip belongs to another employee")
	ErrMissingEmployeeID = errors.New("token carries no employee identity")
)

// Actor is the authenticated caller extracted from the JWT claims.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// Privileged reports whether the actor may perform accountant operations:
// payment transfer, completion, reverts and cross-employee reads.
func (a Actor) Privileged() bool {
	return a.Role == RoleAccountant
}

// CanViewEmployee reports whether the actor may read payroll data of the
// given employee. Accountants see everyone; employees see themselves.
func (a Actor) CanViewEmployee(employeeID string) bool {
	if a.Privileged() {
		return true
	}
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// FromContext rebuilds the actor from the verified JWT claims placed in the
// request context by the jwtauth verifier.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrUnauthorized
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrUnauthorized
	}

	actor := Actor{UserID: userID, Role: RoleEmployee}
	if role, ok := claims["role"].(string); ok && role != "" {
		actor.Role = Role(role)
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}

	return actor, nil
}
