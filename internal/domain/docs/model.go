// Package docs assembles the planning document and serializes it as JSON,
// Markdown or escaped HTML.
package docs

import "strings"

// Section names accepted by Build.
const (
	SectionAll              = "all"
	SectionOverview         = "overview"
	SectionTechStack        = "tech-stack"
	SectionArchitecture     = "architecture"
	SectionProjectStructure = "project-structure"
	SectionWorkflow         = "workflow"
	SectionDeployment       = "deployment"
	SectionBestPractices    = "best-practices"
	SectionTroubleshooting  = "troubleshooting"
)

// DefaultProjectName titles documents built without a session.
const DefaultProjectName = "Your Project"

var sectionOrder = []string{
	SectionOverview,
	SectionTechStack,
	SectionArchitecture,
	SectionProjectStructure,
	SectionWorkflow,
	SectionDeployment,
	SectionBestPractices,
	SectionTroubleshooting,
}

var sectionAliases = map[string]string{
	"techstack":            SectionTechStack,
	"tech_stack":           SectionTechStack,
	"projectstructure":     SectionProjectStructure,
	"project_structure":    SectionProjectStructure,
	"development-workflow": SectionWorkflow,
	"developmentworkflow":  SectionWorkflow,
	"bestpractices":        SectionBestPractices,
	"best_practices":       SectionBestPractices,
}

// Sections returns the section names in render order.
func Sections() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Document is the assembled planning document. Sections that were not
// requested are nil and omitted from every output.
type Document struct {
	Title            string            `json:"title"`
	Overview         *Overview         `json:"overview,omitempty"`
	TechStack        *TechStack        `json:"techStack,omitempty"`
	Architecture     *Architecture     `json:"architecture,omitempty"`
	ProjectStructure *ProjectStructure `json:"projectStructure,omitempty"`
	Workflow         *Workflow         `json:"developmentWorkflow,omitempty"`
	Deployment       *Deployment       `json:"deployment,omitempty"`
	BestPractices    *BestPractices    `json:"bestPractices,omitempty"`
	Troubleshooting  *Troubleshooting  `json:"troubleshooting,omitempty"`
}

type Overview struct {
	Description string   `json:"description"`
	Goals       []string `json:"goals"`
}

type TechStack struct {
	Layers []TechLayer `json:"layers"`
}

type TechLayer struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
}

type Architecture struct {
	Summary string      `json:"summary"`
	Layers  []ArchLayer `json:"layers"`
}

type ArchLayer struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
}

type ProjectStructure struct {
	Description string      `json:"description"`
	Directories []Directory `json:"directories"`
}

type Directory struct {
	Path    string `json:"path"`
	Purpose string `json:"purpose"`
}

type Workflow struct {
	Steps []string `json:"steps"`
}

type Deployment struct {
	Environments []Environment `json:"environments"`
}

type Environment struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

type BestPractices struct {
	Practices []string `json:"practices"`
}

type Troubleshooting struct {
	Issues []Issue `json:"issues"`
}

type Issue struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// Build assembles a document containing the requested sections. Unknown
// section names are ignored; "all" selects every section.
func Build(sections []string, projectName string) Document {
	if strings.TrimSpace(projectName) == "" {
		projectName = DefaultProjectName
	}
	want := selected(sections)

	doc := Document{Title: projectName + " Documentation"}
	if want[SectionOverview] {
		doc.Overview = &Overview{
			Description: "Planning documentation for " + projectName + ". It captures the agreed architecture, tooling and delivery process.",
			Goals: []string{
				"Deliver the core feature set with a maintainable codebase",
				"Keep the architecture simple enough to evolve",
				"Automate testing and deployment from day one",
			},
		}
	}
	if want[SectionTechStack] {
		doc.TechStack = &TechStack{Layers: []TechLayer{
			{Name: "Frontend", Technologies: []string{"React", "TypeScript"}},
			{Name: "Backend", Technologies: []string{"Node.js", "Express"}},
			{Name: "Database", Technologies: []string{"PostgreSQL"}},
			{Name: "Tooling", Technologies: []string{"ESLint", "Prettier", "Jest"}},
		}}
	}
	if want[SectionArchitecture] {
		doc.Architecture = &Architecture{
			Summary: "The system is organized in three layers with dependencies pointing inward.",
			Layers: []ArchLayer{
				{Name: "Presentation", Description: "User interface and request handling.", Components: []string{"Pages", "Components", "API routes"}},
				{Name: "Application", Description: "Use cases and business rules.", Components: []string{"Services", "Validators", "Domain models"}},
				{Name: "Data", Description: "Persistence and external integrations.", Components: []string{"Repositories", "Migrations", "API clients"}},
			},
		}
	}
	if want[SectionProjectStructure] {
		doc.ProjectStructure = &ProjectStructure{
			Description: "Top-level layout of the repository.",
			Directories: []Directory{
				{Path: "src/", Purpose: "Application source code"},
				{Path: "tests/", Purpose: "Automated tests"},
				{Path: "docs/", Purpose: "Project documentation"},
				{Path: "scripts/", Purpose: "Build and maintenance scripts"},
			},
		}
	}
	if want[SectionWorkflow] {
		doc.Workflow = &Workflow{Steps: []string{
			"Create a feature branch from main",
			"Implement the change with tests",
			"Open a pull request and request review",
			"Merge after checks pass",
		}}
	}
	if want[SectionDeployment] {
		doc.Deployment = &Deployment{Environments: []Environment{
			{Name: "Development", Description: "Local environment for day-to-day work.", Steps: []string{"Install dependencies", "Start the local database", "Run the development server"}},
			{Name: "Staging", Description: "Production-like environment for verification.", Steps: []string{"Deploy the release candidate", "Run smoke tests", "Collect stakeholder sign-off"}},
			{Name: "Production", Description: "Live environment serving users.", Steps: []string{"Deploy through the pipeline", "Verify health checks", "Monitor error rates"}},
		}}
	}
	if want[SectionBestPractices] {
		doc.BestPractices = &BestPractices{Practices: []string{
			"Keep functions small and focused",
			"Write tests for every bug fix",
			"Review dependencies before adding them",
			"Document architecture decisions as they are made",
		}}
	}
	if want[SectionTroubleshooting] {
		doc.Troubleshooting = &Troubleshooting{Issues: []Issue{
			{Problem: "Build fails after pulling changes", Solution: "Reinstall dependencies and clear build caches."},
			{Problem: "Database connection refused", Solution: "Check that the database is running and the connection string is correct."},
			{Problem: "Tests pass locally but fail in CI", Solution: "Compare environment variables and tool versions between CI and local setups."},
		}}
	}
	return doc
}

func selected(sections []string) map[string]bool {
	want := make(map[string]bool, len(sectionOrder))
	for _, raw := range sections {
		name := strings.ToLower(strings.TrimSpace(raw))
		if alias, ok := sectionAliases[name]; ok {
			name = alias
		}
		if name == SectionAll {
			for _, s := range sectionOrder {
				want[s] = true
			}
			continue
		}
		want[name] = true
	}
	return want
}
