package employee

import "time"

type Employee struct {
	ID             string
	Name           string
	UserID         *string
	PayableAddress *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FirstName returns the leading word of the employee's name, used when
// building vendor bill references.
func (e Employee) FirstName() string {
	for i := 0; i < len(e.Name); i++ {
		if e.Name[i] == ' ' {
			return e.Name[:i]
		}
	}
	return e.Name
}
