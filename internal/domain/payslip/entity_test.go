package payslip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInProbationWindowInclusiveBounds(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	p := Payslip{ProbationStart: &start, ProbationEnd: &end}

	assert.True(t, p.InProbationWindow(time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC)))
	assert.True(t, p.InProbationWindow(time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.InProbationWindow(time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC)))
	assert.False(t, p.InProbationWindow(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)))
}

func TestInProbationWindowUnsetWindow(t *testing.T) {
	var p Payslip
	assert.False(t, p.InProbationWindow(time.Now()))

	start := time.Now()
	p.ProbationStart = &start
	assert.False(t, p.InProbationWindow(time.Now()))
}

func TestRateLockFieldValid(t *testing.T) {
	for _, f := range []RateLockField{RateLockMonthlyUSD, RateLockMonthlyVND, RateLockHourlyUSD, RateLockHourlyVND} {
		assert.True(t, f.Valid())
	}
	assert.False(t, RateLockField("weekly_usd").Valid())
}
