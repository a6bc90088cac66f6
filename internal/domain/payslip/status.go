package payslip

// Status is the payslip lifecycle state.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusGenerated       Status = "generated"
	StatusEmployeeConfirm Status = "employee_confirm"
	StatusTransferPayment Status = "transfer_payment"
	StatusDone            Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusGenerated, StatusEmployeeConfirm, StatusTransferPayment, StatusDone:
		return true
	}
	return false
}

var forwardTransitions = map[Status]Status{
	StatusDraft:           StatusGenerated,
	StatusGenerated:       StatusEmployeeConfirm,
	StatusEmployeeConfirm: StatusTransferPayment,
	StatusTransferPayment: StatusDone,
}

var reverseTransitions = map[Status]Status{
	StatusEmployeeConfirm: StatusGenerated,
	StatusTransferPayment: StatusEmployeeConfirm,
	StatusDone:            StatusTransferPayment,
}

// CanTransition reports whether the lifecycle allows moving from one status
// directly to another, in either direction.
func CanTransition(from, to Status) bool {
	return forwardTransitions[from] == to || reverseTransitions[from] == to
}

// PreviousStatus returns the state a revert lands on, if reverting is allowed
// from the given state.
func PreviousStatus(from Status) (Status, bool) {
	prev, ok := reverseTransitions[from]
	return prev, ok
}
