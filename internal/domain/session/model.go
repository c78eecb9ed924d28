package session

import (
	"slices"
	"time"

	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/phase"
)

// Defaults applied when a session is created implicitly.
const (
	DefaultID          = "default"
	DefaultProjectName = "New Project"
	DefaultProjectType = "custom"
	DefaultScale       = "medium"
)

var projectTypes = []string{
	"e-commerce", "saas", "blog", "portfolio", "dashboard",
	"api", "documentation", "marketing", "custom",
}

var scales = []string{"small", "medium", "large", "enterprise"}

// ProjectTypes returns the accepted project types.
func ProjectTypes() []string {
	return slices.Clone(projectTypes)
}

// Scales returns the accepted project scales, smallest first.
func Scales() []string {
	return slices.Clone(scales)
}

// Session is one project's planning exercise.
type Session struct {
	ID                    string              `json:"id"`
	ProjectName           string              `json:"projectName"`
	ProjectType           string              `json:"projectType"`
	Scale                 string              `json:"scale"`
	Features              []string            `json:"features"`
	Phase                 phase.Phase         `json:"phase"`
	StartedAt             time.Time           `json:"startedAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
	Checklist             checklist.Checklist `json:"checklist"`
	ArchitectureDecisions []Decision          `json:"architectureDecisions"`
}

// Decision is an architecture decision appended to a session.
type Decision struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Decision  string    `json:"decision"`
	Rationale string    `json:"rationale,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patch is a partial session update. Nil fields are left untouched.
type Patch struct {
	Phase                 *phase.Phase
	Checklist             checklist.Checklist
	ArchitectureDecisions []Decision
	UpdatedAt             time.Time
}

// Summary is the session header returned by status queries.
type Summary struct {
	ID          string      `json:"id"`
	ProjectName string      `json:"projectName"`
	ProjectType string      `json:"projectType"`
	Scale       string      `json:"scale"`
	Phase       phase.Phase `json:"phase"`
	StartedAt   time.Time   `json:"startedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Status is the computed view of a session.
type Status struct {
	Session                Summary            `json:"session"`
	Progress               checklist.Progress `json:"progress"`
	Features               []string           `json:"features"`
	ArchitectureDecisions  []Decision         `json:"architectureDecisions"`
	NextRecommendedActions []string           `json:"nextRecommendedActions"`
}
