package session

import (
	"context"

	"github.com/rpggio/planwise/internal/domain/activity"
)

// Repository provides persistence for sessions. Missing sessions are
// reported with repository.ErrNotFound.
type Repository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Update(ctx context.Context, id string, patch Patch) (*Session, error)
}

// ActivityLog records and lists session events.
type ActivityLog interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}
