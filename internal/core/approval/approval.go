package approval

import (
	"strings"

	"github.com/frahmantamala/enterprise-admin/internal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	ActionApprove = "approve"
	ActionReject  = "reject"

	// NotApproved stands in for approved_by and approved_at on undecided records.
	NotApproved = "not approved"
	UnknownUser = "unknown"
)

// StatusForAction maps an approval action to the terminal status it sets.
func StatusForAction(action string) (string, error) {
	switch strings.TrimSpace(action) {
	case ActionApprove:
		return StatusApproved, nil
	case ActionReject:
		return StatusRejected, nil
	}
	return "", internal.ErrInvalidAction
}

// DecisionRecorder observes applied decisions, e.g. for metrics.
type DecisionRecorder interface {
	RecordDecision(kind, status string)
}

type NopRecorder struct{}

func (NopRecorder) RecordDecision(string, string) {}

// ActionDTO is the body of every approve endpoint.
type ActionDTO struct {
	Action  string `json:"action"`
	Comment string `json:"comment,omitempty"`
}

func UsernameOr(name *string, fallback string) string {
	if name == nil || *name == "" {
		return fallback
	}
	return *name
}
