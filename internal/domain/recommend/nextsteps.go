package recommend

import "github.com/rpggio/planwise/internal/domain/phase"

// Suggestion is one recommended next step.
type Suggestion struct {
	Step        string `json:"step"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// StepPlan groups the suggestions for a phase.
type StepPlan struct {
	Suggestions   []Suggestion `json:"suggestions"`
	EstimatedTime string       `json:"estimatedTime"`
}

var nextSteps = map[phase.Phase]StepPlan{
	phase.Initialization: {
		EstimatedTime: "1-2 days",
		Suggestions: []Suggestion{
			{Step: "Define project goals", Priority: "high", Description: "Write down the problem, the target users and what success looks like."},
			{Step: "Identify core features", Priority: "high", Description: "List the features required for a first usable release."},
			{Step: "Choose project type and scale", Priority: "medium", Description: "Pick the project type and expected scale to unlock architecture recommendations."},
		},
	},
	phase.Requirements: {
		EstimatedTime: "3-5 days",
		Suggestions: []Suggestion{
			{Step: "Write user stories", Priority: "high", Description: "Capture each core feature as a user story with acceptance criteria."},
			{Step: "Define non-functional requirements", Priority: "medium", Description: "Set targets for performance, security and availability."},
			{Step: "Prioritize the backlog", Priority: "medium", Description: "Order features by value and risk to plan the first iterations."},
		},
	},
	phase.Architecture: {
		EstimatedTime: "2-4 days",
		Suggestions: []Suggestion{
			{Step: "Select architecture pattern", Priority: "high", Description: "Choose the overall pattern using the architecture recommendations."},
			{Step: "Design the data model", Priority: "high", Description: "Define entities, relationships and storage technology."},
			{Step: "Record architecture decisions", Priority: "medium", Description: "Document each significant decision with its rationale."},
		},
	},
	phase.Setup: {
		EstimatedTime: "1-2 days",
		Suggestions: []Suggestion{
			{Step: "Initialize repository", Priority: "high", Description: "Create the repository with the agreed project structure."},
			{Step: "Configure tooling", Priority: "medium", Description: "Set up linting, formatting and the test runner."},
			{Step: "Set up CI pipeline", Priority: "medium", Description: "Run builds and tests automatically on every change."},
		},
	},
	phase.Development: {
		EstimatedTime: "2-6 weeks",
		Suggestions: []Suggestion{
			{Step: "Implement core features", Priority: "high", Description: "Build the highest priority features first."},
			{Step: "Write tests alongside code", Priority: "high", Description: "Cover business logic with unit tests as it is written."},
			{Step: "Review code regularly", Priority: "medium", Description: "Keep changes small and reviewed to maintain quality."},
		},
	},
	phase.Testing: {
		EstimatedTime: "1-2 weeks",
		Suggestions: []Suggestion{
			{Step: "Run integration tests", Priority: "high", Description: "Verify components work together against realistic data."},
			{Step: "Perform user acceptance testing", Priority: "high", Description: "Validate the release with real users or stakeholders."},
			{Step: "Fix critical bugs", Priority: "high", Description: "Resolve blocking issues before preparing the release."},
		},
	},
	phase.Deployment: {
		EstimatedTime: "2-3 days",
		Suggestions: []Suggestion{
			{Step: "Prepare production environment", Priority: "high", Description: "Provision infrastructure, secrets and monitoring."},
			{Step: "Deploy to production", Priority: "high", Description: "Release through the pipeline and verify health checks."},
			{Step: "Monitor and iterate", Priority: "medium", Description: "Watch metrics and user feedback to plan the next iteration."},
		},
	},
}

// NextSteps returns the static plan for a phase. Unknown phases get the
// initialization plan.
func NextSteps(p phase.Phase) StepPlan {
	plan, ok := nextSteps[p]
	if !ok {
		plan = nextSteps[phase.Initialization]
	}
	suggestions := make([]Suggestion, len(plan.Suggestions))
	copy(suggestions, plan.Suggestions)
	return StepPlan{Suggestions: suggestions, EstimatedTime: plan.EstimatedTime}
}

// StepNames returns only the step titles of a phase's plan.
func StepNames(p phase.Phase) []string {
	plan := NextSteps(p)
	names := make([]string, 0, len(plan.Suggestions))
	for _, s := range plan.Suggestions {
		names = append(names, s.Step)
	}
	return names
}
