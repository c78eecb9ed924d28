package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
)

// SessionService is the session behavior the API needs.
type SessionService interface {
	GetStatus(ctx context.Context, id string) (*session.Status, error)
	UpdateChecklistItem(ctx context.Context, req session.UpdateItemRequest) (*session.UpdateItemResult, error)
	Initialize(ctx context.Context, req session.InitRequest) (*session.InitResult, error)
	RecordDecision(ctx context.Context, sessionID string, req session.DecisionRequest) (*session.Decision, error)
	Activity(ctx context.Context, sessionID string, limit int) ([]activity.Entry, error)
	ProjectName(ctx context.Context, sessionID string) (string, error)
}

// Config wires the HTTP server.
type Config struct {
	Sessions SessionService
	Engine   *recommend.Engine
	Logger   *slog.Logger
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server holds HTTP handler dependencies.
type Server struct {
	sessions SessionService
	engine   *recommend.Engine
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	srv := &Server{
		sessions: cfg.Sessions,
		engine:   cfg.Engine,
		logger:   cfg.Logger,
	}
	if srv.engine == nil {
		srv.engine = recommend.Default()
	}
	if srv.logger == nil {
		srv.logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(srv.logger))
	r.Use(SessionMiddleware)

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", srv.handleStatus)
		r.Post("/checklist", srv.handleChecklist)
		r.Post("/recommendations", srv.handleRecommendations)
		r.Post("/next-steps", srv.handleNextSteps)
		r.Post("/docs", srv.handleDocs)
		r.Post("/sessions", srv.handleInitialize)
		r.Post("/sessions/{id}/decisions", srv.handleRecordDecision)
		r.Get("/sessions/{id}/activity", srv.handleActivity)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Success bool `json:"success"`
	*session.Status
}

type statusMissingResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SessionID  string `json:"sessionId"`
	Suggestion string `json:"suggestion"`
}

// handleStatus answers a missing session with 200 and guidance, not 404.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := resolveSessionID(r, r.URL.Query().Get("sessionId"))
	status, err := s.sessions.GetStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			if id == "" {
				id = session.DefaultID
			}
			writeJSON(w, http.StatusOK, statusMissingResponse{
				Message:    "No planning session found",
				SessionID:  id,
				Suggestion: "Initialize a session with POST /api/sessions or update a checklist item to start one",
			})
			return
		}
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Status: status})
}

type checklistRequest struct {
	SessionID string  `json:"sessionId"`
	Category  string  `json:"category"`
	ItemID    string  `json:"itemId"`
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes"`
}

type checklistResponse struct {
	Success bool `json:"success"`
	*session.UpdateItemResult
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if err := decodeBody(w, r, checklistSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	result, err := s.sessions.UpdateChecklistItem(r.Context(), session.UpdateItemRequest{
		SessionID: resolveSessionID(r, req.SessionID),
		Category:  req.Category,
		ItemID:    req.ItemID,
		Completed: req.Completed,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistResponse{Success: true, UpdateItemResult: result})
}

type recommendationsRequest struct {
	ProjectType string   `json:"projectType"`
	Scale       string   `json:"scale"`
	Features    []string `json:"features"`
}

type recommendationsResponse struct {
	Success         bool              `json:"success"`
	ProjectType     string            `json:"projectType"`
	Scale           string            `json:"scale"`
	Recommendations recommend.Profile `json:"recommendations"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := decodeBody(w, r, recommendationsSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		Success:         true,
		ProjectType:     req.ProjectType,
		Scale:           req.Scale,
		Recommendations: s.engine.Recommend(req.ProjectType, req.Scale, req.Features),
	})
}

type nextStepsRequest struct {
	CurrentPhase string `json:"currentPhase"`
}

type nextStepsResponse struct {
	Success      bool   `json:"success"`
	CurrentPhase string `json:"currentPhase"`
	recommend.StepPlan
}

func (s *Server) handleNextSteps(w http.ResponseWriter, r *http.Request) {
	var req nextStepsRequest
	if err := decodeBody(w, r, nextStepsSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nextStepsResponse{
		Success:      true,
		CurrentPhase: req.CurrentPhase,
		StepPlan:     recommend.NextSteps(phase.Phase(req.CurrentPhase)),
	})
}

type initRequest struct {
	ProjectName string   `json:"projectName"`
	ProjectType string   `json:"projectType"`
	Scale       string   `json:"scale"`
	Features    []string `json:"features"`
}

type initResponse struct {
	Success bool `json:"success"`
	*session.InitResult
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := decodeBody(w, r, initSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	result, err := s.sessions.Initialize(r.Context(), session.InitRequest{
		ProjectName: req.ProjectName,
		ProjectType: req.ProjectType,
		Scale:       req.Scale,
		Features:    req.Features,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, initResponse{Success: true, InitResult: result})
}

type docsRequest struct {
	Sections  []string `json:"sections"`
	Format    string   `json:"format"`
	SessionID string   `json:"sessionId"`
}

type docsJSONResponse struct {
	Success       bool           `json:"success"`
	Format        docs.Format    `json:"format"`
	Documentation *docs.Document `json:"documentation"`
}

type docsContentResponse struct {
	Success bool        `json:"success"`
	Format  docs.Format `json:"format"`
	Content string      `json:"content"`
}

// handleDocs renders documentation. With ?raw=1 markdown and html are
// written as the response body instead of wrapped in JSON.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	var req docsRequest
	if err := decodeBody(w, r, docsSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	format, err := docs.ParseFormat(req.Format)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sections := req.Sections
	if len(sections) == 0 {
		sections = []string{docs.SectionAll}
	}

	projectName := ""
	if id := resolveSessionID(r, req.SessionID); id != "" {
		projectName, err = s.sessions.ProjectName(r.Context(), id)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}

	out, err := docs.Render(docs.Build(sections, projectName), format)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	raw := r.URL.Query().Get("raw")
	if raw == "1" || raw == "true" {
		switch format {
		case docs.FormatMarkdown:
			writeRaw(w, "text/markdown; charset=utf-8", out.Content)
			return
		case docs.FormatHTML:
			writeRaw(w, "text/html; charset=utf-8", out.Content)
			return
		}
	}

	if format == docs.FormatJSON {
		writeJSON(w, http.StatusOK, docsJSONResponse{Success: true, Format: format, Documentation: out.Document})
		return
	}
	writeJSON(w, http.StatusOK, docsContentResponse{Success: true, Format: format, Content: out.Content})
}

type decisionRequest struct {
	Title     string `json:"title"`
	Decision  string `json:"decision"`
	Rationale string `json:"rationale"`
}

type decisionResponse struct {
	Success   bool              `json:"success"`
	SessionID string            `json:"sessionId"`
	Decision  *session.Decision `json:"decision"`
}

func (s *Server) handleRecordDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeBody(w, r, decisionSchema, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	id := chi.URLParam(r, "id")
	decision, err := s.sessions.RecordDecision(r.Context(), id, session.DecisionRequest{
		Title:     req.Title,
		Decision:  req.Decision,
		Rationale: req.Rationale,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, decisionResponse{Success: true, SessionID: id, Decision: decision})
}

type activityResponse struct {
	Success   bool             `json:"success"`
	SessionID string           `json:"sessionId"`
	Activity  []activity.Entry `json:"activity"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, s.logger, &ValidationError{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	id := chi.URLParam(r, "id")
	entries, err := s.sessions.Activity(r.Context(), id, limit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse{Success: true, SessionID: id, Activity: entries})
}
