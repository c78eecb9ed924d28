package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/session"
	"github.com/rpggio/planwise/internal/repository"
)

// SessionRepository implements session.Repository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectSession = `
	SELECT
		id, project_name, project_type, scale, phase,
		features, checklist, decisions, started_at, updated_at
	FROM sessions
	WHERE id = ?
`

// Save inserts a new session
func (r *SessionRepository) Save(ctx context.Context, sess *session.Session) error {
	features, err := marshalJSON(sess.Features, "[]")
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	list, err := marshalJSON(sess.Checklist, "{}")
	if err != nil {
		return fmt.Errorf("encoding checklist: %w", err)
	}
	decisions, err := marshalJSON(sess.ArchitectureDecisions, "[]")
	if err != nil {
		return fmt.Errorf("encoding decisions: %w", err)
	}

	query := `
		INSERT INTO sessions (
			id, project_name, project_type, scale, phase,
			features, checklist, decisions, started_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		sess.ID,
		sess.ProjectName,
		sess.ProjectType,
		sess.Scale,
		sess.Phase,
		features,
		list,
		decisions,
		sess.StartedAt,
		sess.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	return scanSession(ctx, r.db, id)
}

// Update applies a patch and returns the session as stored afterwards.
// Patched documents replace the stored ones whole.
func (r *SessionRepository) Update(ctx context.Context, id string, patch session.Patch) (*session.Session, error) {
	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	sets := []string{"updated_at = ?"}
	args := []any{updatedAt}

	if patch.Phase != nil {
		sets = append(sets, "phase = ?")
		args = append(args, *patch.Phase)
	}
	if patch.Checklist != nil {
		list, err := json.Marshal(patch.Checklist)
		if err != nil {
			return nil, fmt.Errorf("encoding checklist: %w", err)
		}
		sets = append(sets, "checklist = ?")
		args = append(args, string(list))
	}
	if patch.ArchitectureDecisions != nil {
		decisions, err := json.Marshal(patch.ArchitectureDecisions)
		if err != nil {
			return nil, fmt.Errorf("encoding decisions: %w", err)
		}
		sets = append(sets, "decisions = ?")
		args = append(args, string(decisions))
	}
	args = append(args, id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE sessions SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	sess, err := scanSession(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session update: %w", err)
	}

	return sess, nil
}

func scanSession(ctx context.Context, q rowQueryer, id string) (*session.Session, error) {
	var sess session.Session
	var features, list, decisions string
	err := q.QueryRowContext(ctx, selectSession, id).Scan(
		&sess.ID,
		&sess.ProjectName,
		&sess.ProjectType,
		&sess.Scale,
		&sess.Phase,
		&features,
		&list,
		&decisions,
		&sess.StartedAt,
		&sess.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(features), &sess.Features); err != nil {
		return nil, fmt.Errorf("decoding features: %w", err)
	}
	if err := json.Unmarshal([]byte(list), &sess.Checklist); err != nil {
		return nil, fmt.Errorf("decoding checklist: %w", err)
	}
	if err := json.Unmarshal([]byte(decisions), &sess.ArchitectureDecisions); err != nil {
		return nil, fmt.Errorf("decoding decisions: %w", err)
	}

	if sess.Features == nil {
		sess.Features = []string{}
	}
	if sess.Checklist == nil {
		sess.Checklist = checklist.New()
	}
	if sess.ArchitectureDecisions == nil {
		sess.ArchitectureDecisions = []session.Decision{}
	}

	return &sess, nil
}

// marshalJSON encodes v, using empty for nil values.
func marshalJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}
