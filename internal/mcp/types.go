package mcp

import (
	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
)

type GetStatusParams struct {
	SessionID string `json:"sessionId,omitempty" jsonschema:"planning session id; defaults to the connection session or default"`
}

type UpdateChecklistItemParams struct {
	SessionID string  `json:"sessionId,omitempty" jsonschema:"planning session id; created on first use"`
	Category  string  `json:"category" jsonschema:"checklist category"`
	ItemID    string  `json:"itemId" jsonschema:"item identifier within the category"`
	Completed bool    `json:"completed" jsonschema:"whether the item is done"`
	Notes     *string `json:"notes,omitempty" jsonschema:"free-form notes; an empty value keeps existing notes"`
}

type GetRecommendationsParams struct {
	ProjectType string   `json:"projectType" jsonschema:"project type: e-commerce, saas, blog, portfolio, dashboard, api, documentation, marketing or custom; unknown types get the default profile"`
	Scale       string   `json:"scale" jsonschema:"small, medium, large or enterprise"`
	Features    []string `json:"features,omitempty" jsonschema:"feature tags such as authentication or payments"`
}

type SuggestNextStepsParams struct {
	CurrentPhase string `json:"currentPhase" jsonschema:"current development phase"`
}

type InitializeSessionParams struct {
	ProjectName string   `json:"projectName" jsonschema:"display name of the project"`
	ProjectType string   `json:"projectType" jsonschema:"one of e-commerce, saas, blog, portfolio, dashboard, api, documentation, marketing or custom"`
	Scale       string   `json:"scale,omitempty" jsonschema:"one of small, medium, large or enterprise; defaults to medium"`
	Features    []string `json:"features,omitempty" jsonschema:"requested feature tags"`
}

type GenerateDocumentationParams struct {
	Sections  []string `json:"sections,omitempty" jsonschema:"sections to include; defaults to all"`
	Format    string   `json:"format,omitempty" jsonschema:"markdown, json or html; defaults to markdown"`
	SessionID string   `json:"sessionId,omitempty" jsonschema:"session whose project name titles the document"`
}

type RecordDecisionParams struct {
	SessionID string `json:"sessionId,omitempty" jsonschema:"planning session id"`
	Title     string `json:"title" jsonschema:"short decision title"`
	Decision  string `json:"decision" jsonschema:"what was decided"`
	Rationale string `json:"rationale,omitempty" jsonschema:"why it was decided"`
}

type ListActivityParams struct {
	SessionID string `json:"sessionId,omitempty" jsonschema:"planning session id"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

// StatusResponse is the get_status result for an existing session.
type StatusResponse struct {
	Found bool `json:"found"`
	*session.Status
}

// StatusMissingResponse is returned instead of an error when get_status finds
// no session.
type StatusMissingResponse struct {
	Found      bool   `json:"found"`
	Message    string `json:"message"`
	SessionID  string `json:"sessionId"`
	Suggestion string `json:"suggestion"`
}

type RecommendationsResponse struct {
	ProjectType     string            `json:"projectType"`
	Scale           string            `json:"scale"`
	RulesVersion    string            `json:"rulesVersion"`
	Recommendations recommend.Profile `json:"recommendations"`
}

type NextStepsResponse struct {
	CurrentPhase string `json:"currentPhase"`
	recommend.StepPlan
}

type DocumentationResponse struct {
	Format        docs.Format    `json:"format"`
	Documentation *docs.Document `json:"documentation,omitempty"`
	Content       string         `json:"content,omitempty"`
}

type DecisionResponse struct {
	SessionID string            `json:"sessionId"`
	Decision  *session.Decision `json:"decision"`
}

type ActivityResponse struct {
	SessionID string           `json:"sessionId"`
	Activity  []activity.Entry `json:"activity"`
}
