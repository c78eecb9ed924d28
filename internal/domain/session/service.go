package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/repository"
)

// Service handles planning session operations.
type Service struct {
	sessions Repository
	activity ActivityLog
	engine   *recommend.Engine
	logger   *slog.Logger
	locks    *keyedMutex

	now   func() time.Time
	newID func() string
}

// NewService creates a new session service. activity and logger may be nil.
func NewService(sessions Repository, activity ActivityLog, engine *recommend.Engine, logger *slog.Logger) *Service {
	if engine == nil {
		engine = recommend.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		sessions: sessions,
		activity: activity,
		engine:   engine,
		logger:   logger,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// UpdateItemRequest describes a checklist mutation.
type UpdateItemRequest struct {
	SessionID string
	Category  string
	ItemID    string
	Completed bool
	Notes     *string
}

// UpdateItemResult is the outcome of a checklist mutation.
type UpdateItemResult struct {
	SessionID string              `json:"sessionId"`
	Category  checklist.Category  `json:"category"`
	ItemID    string              `json:"itemId"`
	Completed bool                `json:"completed"`
	Item      checklist.Item      `json:"-"`
	Progress  checklist.Progress  `json:"progress"`
	Checklist checklist.Checklist `json:"checklist"`
}

// InitRequest describes a new planning session.
type InitRequest struct {
	ProjectName string
	ProjectType string
	Scale       string
	Features    []string
}

// InitResult holds the created session and its starting recommendations.
type InitResult struct {
	Session         *Session                 `json:"session"`
	Recommendations recommend.InitialProfile `json:"recommendations"`
	NextSteps       []string                 `json:"nextSteps"`
}

// DecisionRequest describes an architecture decision.
type DecisionRequest struct {
	Title     string
	Decision  string
	Rationale string
}

// GetStatus loads a session and computes its progress, phase and next
// actions. The stored phase is ignored.
func (s *Service) GetStatus(ctx context.Context, id string) (*Status, error) {
	id = normalizeID(id)
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	progress := checklist.CalculateProgress(sess.Checklist)
	current := phase.Classify(progress.Percentage)

	return &Status{
		Session: Summary{
			ID:          sess.ID,
			ProjectName: sess.ProjectName,
			ProjectType: sess.ProjectType,
			Scale:       sess.Scale,
			Phase:       current,
			StartedAt:   sess.StartedAt,
			UpdatedAt:   sess.UpdatedAt,
		},
		Progress:               progress,
		Features:               nonNil(sess.Features),
		ArchitectureDecisions:  nonNilDecisions(sess.ArchitectureDecisions),
		NextRecommendedActions: nextActions(current, progress),
	}, nil
}

// GetOrCreate returns the stored session or persists one with project
// defaults and an empty five-category checklist.
func (s *Service) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	id = normalizeID(id)
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.getOrCreate(ctx, id)
}

func (s *Service) getOrCreate(ctx context.Context, id string) (*Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	now := s.now()
	sess = &Session{
		ID:                    id,
		ProjectName:           DefaultProjectName,
		ProjectType:           DefaultProjectType,
		Scale:                 DefaultScale,
		Features:              []string{},
		Phase:                 phase.Initialization,
		StartedAt:             now,
		UpdatedAt:             now,
		Checklist:             checklist.New(),
		ArchitectureDecisions: []Decision{},
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.logger.Info("session auto-created", "session_id", id)
	s.logActivity(ctx, id, activity.TypeSessionCreated, "Session created with defaults")
	return sess, nil
}

// UpdateChecklistItem upserts one checklist item and persists the whole
// checklist. Calls for the same session id run one at a time.
func (s *Service) UpdateChecklistItem(ctx context.Context, req UpdateItemRequest) (*UpdateItemResult, error) {
	category, err := checklist.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ItemID) == "" {
		return nil, checklist.ErrInvalidItemID
	}

	id := normalizeID(req.SessionID)
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.getOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := sess.Checklist.Clone()
	if updated == nil {
		updated = checklist.New()
	}
	now := s.now()
	item, err := updated.Apply(checklist.Update{
		Category:  category,
		ItemID:    req.ItemID,
		Completed: req.Completed,
		Notes:     req.Notes,
	}, now)
	if err != nil {
		return nil, err
	}

	current := phase.Classify(checklist.CalculateProgress(updated).Percentage)
	stored, err := s.sessions.Update(ctx, id, Patch{
		Phase:     &current,
		Checklist: updated,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersistence
		}
		return nil, fmt.Errorf("updating checklist: %w", err)
	}
	if stored == nil {
		return nil, ErrPersistence
	}

	s.logger.Debug("checklist item updated",
		"session_id", id,
		"category", category,
		"item_id", req.ItemID,
		"completed", req.Completed,
	)
	s.logActivity(ctx, id, activity.TypeChecklistUpdated,
		fmt.Sprintf("%s/%s completed=%t", category, req.ItemID, req.Completed))

	return &UpdateItemResult{
		SessionID: id,
		Category:  category,
		ItemID:    req.ItemID,
		Completed: item.Completed,
		Item:      item,
		Progress:  checklist.CalculateProgress(stored.Checklist),
		Checklist: stored.Checklist,
	}, nil
}

// Initialize creates and persists a new session with a generated id.
func (s *Service) Initialize(ctx context.Context, req InitRequest) (*InitResult, error) {
	if strings.TrimSpace(req.ProjectName) == "" || strings.TrimSpace(req.ProjectType) == "" {
		return nil, ErrInvalidInput
	}
	projectType := strings.ToLower(strings.TrimSpace(req.ProjectType))
	if !slices.Contains(projectTypes, projectType) {
		return nil, fmt.Errorf("%w: projectType must be one of %s", ErrInvalidInput, strings.Join(projectTypes, ", "))
	}
	scale := strings.ToLower(strings.TrimSpace(req.Scale))
	if scale == "" {
		scale = DefaultScale
	}
	if !slices.Contains(scales, scale) {
		return nil, fmt.Errorf("%w: scale must be one of %s", ErrInvalidInput, strings.Join(scales, ", "))
	}

	now := s.now()
	sess := &Session{
		ID:                    s.newID(),
		ProjectName:           req.ProjectName,
		ProjectType:           projectType,
		Scale:                 scale,
		Features:              s.engine.MergeFeatures(projectType, req.Features),
		Phase:                 phase.Initialization,
		StartedAt:             now,
		UpdatedAt:             now,
		Checklist:             checklist.New(),
		ArchitectureDecisions: []Decision{},
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session initialized",
		"session_id", sess.ID,
		"project_type", sess.ProjectType,
		"scale", sess.Scale,
		"rules_version", s.engine.Version(),
	)
	s.logActivity(ctx, sess.ID, activity.TypeSessionCreated, "Session initialized for "+sess.ProjectName)

	return &InitResult{
		Session:         sess,
		Recommendations: s.engine.Initial(sess.ProjectType, sess.Scale),
		NextSteps:       recommend.StepNames(phase.Initialization),
	}, nil
}

// RecordDecision appends an architecture decision to an existing session.
func (s *Service) RecordDecision(ctx context.Context, sessionID string, req DecisionRequest) (*Decision, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Decision) == "" {
		return nil, ErrInvalidInput
	}

	id := normalizeID(sessionID)
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	decision := Decision{
		ID:        s.newID(),
		Title:     req.Title,
		Decision:  req.Decision,
		Rationale: req.Rationale,
		CreatedAt: now,
	}
	decisions := make([]Decision, 0, len(sess.ArchitectureDecisions)+1)
	decisions = append(decisions, sess.ArchitectureDecisions...)
	decisions = append(decisions, decision)

	if _, err := s.sessions.Update(ctx, id, Patch{ArchitectureDecisions: decisions, UpdatedAt: now}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("recording decision: %w", err)
	}

	s.logActivity(ctx, id, activity.TypeDecisionRecorded, "Decision recorded: "+req.Title)
	return &decision, nil
}

// Activity lists recent events for an existing session.
func (s *Service) Activity(ctx context.Context, sessionID string, limit int) ([]activity.Entry, error) {
	id := normalizeID(sessionID)
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if s.activity == nil {
		return []activity.Entry{}, nil
	}
	entries, err := s.activity.GetRecentActivity(ctx, activity.ListOptions{SessionID: id, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}

// ProjectName returns the session's project name, or "" when the session
// does not exist.
func (s *Service) ProjectName(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.load(ctx, normalizeID(sessionID))
	if errors.Is(err, ErrSessionNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.ProjectName, nil
}

func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

// logActivity never fails the calling operation.
func (s *Service) logActivity(ctx context.Context, sessionID string, kind activity.Type, summary string) {
	if s.activity == nil {
		return
	}
	entry := &activity.Entry{SessionID: sessionID, Type: kind, Summary: summary}
	if err := s.activity.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("activity log failed", "session_id", sessionID, "type", kind, "error", err)
	}
}

func nextActions(current phase.Phase, progress checklist.Progress) []string {
	actions := recommend.StepNames(current)
	for _, category := range checklist.Categories() {
		if progress.ByCategory[category].Percentage < 100 {
			actions = append(actions, fmt.Sprintf("Complete %s checklist", category))
		}
	}
	return actions
}

func normalizeID(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultID
	}
	return id
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilDecisions(in []Decision) []Decision {
	if in == nil {
		return []Decision{}
	}
	return in
}
