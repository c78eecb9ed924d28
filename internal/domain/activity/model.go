package activity

import "time"

// Type represents the type of activity event
type Type string

const (
	TypeSessionCreated   Type = "session_created"
	TypeChecklistUpdated Type = "checklist_updated"
	TypeDecisionRecorded Type = "decision_recorded"
)

// Entry represents an event in a session's activity log
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
