package models

import (
	"strings"
	"time"
)

// ErrandStatus represents the lifecycle state of an errand
type ErrandStatus string

// Errand lifecycle states
const (
	ErrandStatusRequested  ErrandStatus = "REQUESTED"
	ErrandStatusInProgress ErrandStatus = "IN_PROGRESS"
	ErrandStatusCompleted  ErrandStatus = "COMPLETED"
	ErrandStatusCancelled  ErrandStatus = "CANCELLED"
)

// legalTransitions is the transition table for the errand state machine.
// COMPLETED and CANCELLED are terminal.
var legalTransitions = map[ErrandStatus][]ErrandStatus{
	ErrandStatusRequested:  {ErrandStatusInProgress, ErrandStatusCancelled},
	ErrandStatusInProgress: {ErrandStatusCompleted, ErrandStatusCancelled},
}

// ParseErrandStatus parses a status string into an ErrandStatus.
// The second return value reports whether the input was a known status.
func ParseErrandStatus(s string) (ErrandStatus, bool) {
	switch ErrandStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ErrandStatusRequested:
		return ErrandStatusRequested, true
	case ErrandStatusInProgress:
		return ErrandStatusInProgress, true
	case ErrandStatusCompleted:
		return ErrandStatusCompleted, true
	case ErrandStatusCancelled:
		return ErrandStatusCancelled, true
	}
	return "", false
}

// ErrandStatusOrDefault parses a status string, falling back to REQUESTED
// when the input is empty or unknown. The lenient fallback matches the
// behavior clients already depend on for create requests.
func ErrandStatusOrDefault(s string) ErrandStatus {
	if status, ok := ParseErrandStatus(s); ok {
		return status
	}
	return ErrandStatusRequested
}

// CanTransition reports whether moving from one status to another is legal
// per the lifecycle state machine.
func (s ErrandStatus) CanTransition(to ErrandStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves this status.
func (s ErrandStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// Errand represents a one-off paid task posted by a requester
type Errand struct {
	ErrandSeq         int64        `json:"errandSeq"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	RequesterSeq      int64        `json:"requesterSeq"`
	RunnerSeq         *int64       `json:"runnerSeq,omitempty"`
	RequesterNickname string       `json:"requesterNickname"`
	RunnerNickname    *string      `json:"runnerNickname,omitempty"`
	Status            ErrandStatus `json:"status"`
	CategoryID        int64        `json:"categoryId"`
	Location          string       `json:"location"`
	Price             float64      `json:"price"`
	EstimatedTime     int          `json:"estimatedTime"` // minutes
	Deadline          time.Time    `json:"deadline"`
	CreatedDate       time.Time    `json:"createdDate"`
	UpdatedDate       time.Time    `json:"updatedDate"`

	// Relations
	Category *Category `json:"category,omitempty"`
	Images   []Image   `json:"images,omitempty"`
}
