package ledger

import (
	"errors"
	"fmt"
)

var ErrBillNotFound = errors.New("vendor bill not found")

// MissingAccountError is returned when a configured account code has no row
// in the chart of accounts.
type MissingAccountError struct {
	Code string
}

func (e *MissingAccountError) Error() string {
	return fmt.Sprintf("account with code %s is not configured", e.Code)
}
