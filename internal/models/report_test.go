package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestReportStatus_CanTransition(t *testing.T) {
	all := []ReportStatus{StatusPending, StatusScheduled, StatusProcessing, StatusCompleted, StatusFailed}

	allowed := map[ReportStatus][]ReportStatus{
		StatusPending:    {StatusProcessing},
		StatusScheduled:  {StatusProcessing},
		StatusProcessing: {StatusCompleted, StatusFailed},
		StatusCompleted:  {},
		StatusFailed:     {},
	}

	for from, targets := range allowed {
		legal := make(map[ReportStatus]bool, len(targets))
		for _, to := range targets {
			legal[to] = true
		}
		for _, to := range all {
			assert.Equal(t, legal[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestReportStatus_TerminalStatesNeverTransition(t *testing.T) {
	all := []ReportStatus{StatusPending, StatusScheduled, StatusProcessing, StatusCompleted, StatusFailed}
	for _, terminal := range []ReportStatus{StatusCompleted, StatusFailed} {
		for _, to := range all {
			assert.False(t, terminal.CanTransition(to), "%s -> %s", terminal, to)
		}
	}
}
