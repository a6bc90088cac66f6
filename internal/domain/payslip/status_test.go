package payslip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForward(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusGenerated))
	assert.True(t, CanTransition(StatusGenerated, StatusEmployeeConfirm))
	assert.True(t, CanTransition(StatusEmployeeConfirm, StatusTransferPayment))
	assert.True(t, CanTransition(StatusTransferPayment, StatusDone))
}

func TestCanTransitionReverse(t *testing.T) {
	assert.True(t, CanTransition(StatusEmployeeConfirm, StatusGenerated))
	assert.True(t, CanTransition(StatusTransferPayment, StatusEmployeeConfirm))
	assert.True(t, CanTransition(StatusDone, StatusTransferPayment))

	// Draft and generated have no reverse edge.
	assert.False(t, CanTransition(StatusGenerated, StatusDraft))
	assert.False(t, CanTransition(StatusDraft, StatusDone))
}

func TestCanTransitionNoSkipping(t *testing.T) {
	assert.False(t, CanTransition(StatusDraft, StatusEmployeeConfirm))
	assert.False(t, CanTransition(StatusGenerated, StatusDone))
	assert.False(t, CanTransition(StatusDone, StatusGenerated))
	assert.False(t, CanTransition(StatusDraft, StatusDraft))
}

func TestPreviousStatus(t *testing.T) {
	prev, ok := PreviousStatus(StatusDone)
	assert.True(t, ok)
	assert.Equal(t, StatusTransferPayment, prev)

	_, ok = PreviousStatus(StatusDraft)
	assert.False(t, ok)

	_, ok = PreviousStatus(StatusGenerated)
	assert.False(t, ok)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusGenerated, StatusEmployeeConfirm, StatusTransferPayment, StatusDone} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("paid").Valid())
}
