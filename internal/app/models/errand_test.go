package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrandStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ErrandStatus
		known bool
	}{
		{"REQUESTED", ErrandStatusRequested, true},
		{"in_progress", ErrandStatusInProgress, true},
		{"  Completed  ", ErrandStatusCompleted, true},
		{"cancelled", ErrandStatusCancelled, true},
		{"", "", false},
		{"SHIPPED", "", false},
		{"IN PROGRESS", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := ParseErrandStatus(tt.input)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrandStatusOrDefault(t *testing.T) {
	assert.Equal(t, ErrandStatusCancelled, ErrandStatusOrDefault("cancelled"))
	assert.Equal(t, ErrandStatusRequested, ErrandStatusOrDefault(""))
	assert.Equal(t, ErrandStatusRequested, ErrandStatusOrDefault("garbage"))
}

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to ErrandStatus }{
		{ErrandStatusRequested, ErrandStatusInProgress},
		{ErrandStatusRequested, ErrandStatusCancelled},
		{ErrandStatusInProgress, ErrandStatusCompleted},
		{ErrandStatusInProgress, ErrandStatusCancelled},
	}
	for _, tt := range legal {
		assert.True(t, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}

	illegal := []struct{ from, to ErrandStatus }{
		{ErrandStatusRequested, ErrandStatusCompleted},
		{ErrandStatusRequested, ErrandStatusRequested},
		{ErrandStatusInProgress, ErrandStatusRequested},
		{ErrandStatusCompleted, ErrandStatusInProgress},
		{ErrandStatusCompleted, ErrandStatusCancelled},
		{ErrandStatusCancelled, ErrandStatusRequested},
	}
	for _, tt := range illegal {
		assert.False(t, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, ErrandStatusRequested.IsTerminal())
	assert.False(t, ErrandStatusInProgress.IsTerminal())
	assert.True(t, ErrandStatusCompleted.IsTerminal())
	assert.True(t, ErrandStatusCancelled.IsTerminal())
}
