package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
)

type toolset struct {
	sessions SessionService
	engine   *recommend.Engine
	logger   *slog.Logger
}

// registerTools adds every planner tool to server.
func registerTools(server *sdkmcp.Server, t *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status",
		Description: "Get a planning session's progress, phase, features, decisions and recommended next actions",
	}, t.getStatus)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_checklist_item",
		Description: "Create or update one checklist item; the session is created with defaults if it does not exist",
		InputSchema: inputSchema[UpdateChecklistItemParams](func(s *jsonschema.Schema) {
			s.Properties["category"].Description = "one of: " + strings.Join(checklist.CategoryNames(), ", ")
		}),
	}, t.updateChecklistItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recommendations",
		Description: "Recommend architecture patterns, technologies and considerations for a project type, scale and feature list",
	}, t.getRecommendations)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "suggest_next_steps",
		Description: "Suggest the next tasks for a development phase with a time estimate",
		InputSchema: inputSchema[SuggestNextStepsParams](func(s *jsonschema.Schema) {
			s.Properties["currentPhase"].Enum = stringsToAny(phase.Names())
		}),
	}, t.suggestNextSteps)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "initialize_session",
		Description: "Start a new planning session and return its initial architecture and tech stack recommendations",
	}, t.initializeSession)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_documentation",
		Description: "Generate project documentation as markdown, json or html",
		InputSchema: inputSchema[GenerateDocumentationParams](func(s *jsonschema.Schema) {
			s.Properties["format"].Enum = []any{string(docs.FormatMarkdown), string(docs.FormatJSON), string(docs.FormatHTML)}
		}),
	}, t.generateDocumentation)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_decision",
		Description: "Append an architecture decision to an existing planning session",
	}, t.recordDecision)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activity",
		Description: "List recent activity for a planning session, newest first",
	}, t.listActivity)
}

func (t *toolset) getStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetStatusParams) (*sdkmcp.CallToolResult, any, error) {
	id := resolveSessionID(ctx, in.SessionID)
	status, err := t.sessions.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			if id == "" {
				id = session.DefaultID
			}
			return nil, StatusMissingResponse{
				Message:    "No planning session found",
				SessionID:  id,
				Suggestion: "Call initialize_session or update_checklist_item to start one",
			}, nil
		}
		return nil, nil, t.fail("get_status", err)
	}
	return nil, StatusResponse{Found: true, Status: status}, nil
}

func (t *toolset) updateChecklistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateChecklistItemParams) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.sessions.UpdateChecklistItem(ctx, session.UpdateItemRequest{
		SessionID: resolveSessionID(ctx, in.SessionID),
		Category:  in.Category,
		ItemID:    in.ItemID,
		Completed: in.Completed,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, nil, t.fail("update_checklist_item", err)
	}
	return nil, result, nil
}

func (t *toolset) getRecommendations(_ context.Context, _ *sdkmcp.CallToolRequest, in GetRecommendationsParams) (*sdkmcp.CallToolResult, any, error) {
	return nil, RecommendationsResponse{
		ProjectType:     in.ProjectType,
		Scale:           in.Scale,
		RulesVersion:    t.engine.Version(),
		Recommendations: t.engine.Recommend(in.ProjectType, in.Scale, in.Features),
	}, nil
}

func (t *toolset) suggestNextSteps(_ context.Context, _ *sdkmcp.CallToolRequest, in SuggestNextStepsParams) (*sdkmcp.CallToolResult, any, error) {
	p, ok := phase.Parse(in.CurrentPhase)
	if !ok {
		return nil, nil, &APIError{
			Code:         CodeInvalidPhase,
			Message:      "unknown phase " + in.CurrentPhase,
			Details:      phase.Names(),
			RecoveryHint: "Use one of the listed phases",
		}
	}
	return nil, NextStepsResponse{CurrentPhase: string(p), StepPlan: recommend.NextSteps(p)}, nil
}

func (t *toolset) initializeSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in InitializeSessionParams) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.sessions.Initialize(ctx, session.InitRequest{
		ProjectName: in.ProjectName,
		ProjectType: in.ProjectType,
		Scale:       in.Scale,
		Features:    in.Features,
	})
	if err != nil {
		return nil, nil, t.fail("initialize_session", err)
	}
	return nil, result, nil
}

// generateDocumentation returns markdown and html as the text content itself
// so clients can show it without unwrapping JSON.
func (t *toolset) generateDocumentation(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateDocumentationParams) (*sdkmcp.CallToolResult, any, error) {
	format, err := docs.ParseFormat(in.Format)
	if err != nil {
		return nil, nil, t.fail("generate_documentation", err)
	}
	sections := in.Sections
	if len(sections) == 0 {
		sections = []string{docs.SectionAll}
	}

	projectName := ""
	if id := resolveSessionID(ctx, in.SessionID); id != "" {
		projectName, err = t.sessions.ProjectName(ctx, id)
		if err != nil {
			return nil, nil, t.fail("generate_documentation", err)
		}
	}

	out, err := docs.Render(docs.Build(sections, projectName), format)
	if err != nil {
		return nil, nil, t.fail("generate_documentation", err)
	}
	resp := DocumentationResponse{Format: out.Format, Documentation: out.Document, Content: out.Content}
	if format == docs.FormatJSON {
		return nil, resp, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: out.Content}},
	}, resp, nil
}

func (t *toolset) recordDecision(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordDecisionParams) (*sdkmcp.CallToolResult, any, error) {
	id := resolveSessionID(ctx, in.SessionID)
	decision, err := t.sessions.RecordDecision(ctx, id, session.DecisionRequest{
		Title:     in.Title,
		Decision:  in.Decision,
		Rationale: in.Rationale,
	})
	if err != nil {
		return nil, nil, t.fail("record_decision", err)
	}
	if id == "" {
		id = session.DefaultID
	}
	return nil, DecisionResponse{SessionID: id, Decision: decision}, nil
}

func (t *toolset) listActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListActivityParams) (*sdkmcp.CallToolResult, any, error) {
	if in.Limit < 0 {
		return nil, nil, &APIError{Code: CodeInvalidInput, Message: "limit must be a non-negative integer"}
	}
	id := resolveSessionID(ctx, in.SessionID)
	entries, err := t.sessions.Activity(ctx, id, in.Limit)
	if err != nil {
		return nil, nil, t.fail("list_activity", err)
	}
	if id == "" {
		id = session.DefaultID
	}
	return nil, ActivityResponse{SessionID: id, Activity: entries}, nil
}

// fail converts err into an APIError. Unmapped errors are logged and
// reported without internal detail.
func (t *toolset) fail(tool string, err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	t.logger.Error("tool failed", "tool", tool, "error", err)
	return &APIError{Code: CodeInternal, Message: "internal error"}
}

// inputSchema infers the schema for T and lets the caller narrow it.
func inputSchema[T any](narrow func(*jsonschema.Schema)) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	narrow(schema)
	return schema
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
