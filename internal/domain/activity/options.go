package activity

// Limits applied to activity listings.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	SessionID string
	Type      *Type
	Limit     int
	Offset    int
}
