// Package recommend turns a project type, scale and feature list into
// architecture and technology recommendations.
//
// Recommendations are produced by a fixed pipeline: a base profile looked up
// from a versioned RuleSet, then an ordered list of modifiers (scale first,
// then features). Every stage is a pure function over its inputs.
package recommend

import "strings"

// Profile is the output of the recommendation pipeline.
type Profile struct {
	Patterns       []string            `json:"patterns"`
	Technologies   map[string][]string `json:"technologies"`
	Considerations []string            `json:"considerations"`
}

// InitialProfile is the narrower shape returned at session initialization.
type InitialProfile struct {
	Architecture []string            `json:"Architecture"`
	TechStack    map[string][]string `json:"Tech Stack"`
}

// Input carries the request parameters through the modifier chain.
type Input struct {
	ProjectType string
	Scale       string
	Features    []string
}

// Modifier mutates a profile in place.
type Modifier func(p *Profile, in Input)

// Deployment sets assigned by the scale modifier.
var (
	ContainerDeployment = []string{"Docker", "Kubernetes", "AWS"}
	ManagedDeployment   = []string{"Render", "Railway", "Managed PostgreSQL"}
	MinimalDeployment   = []string{"Vercel", "Netlify"}
)

// Engine runs the recommendation pipeline over a rule set.
type Engine struct {
	rules     RuleSet
	modifiers []Modifier
}

// NewEngine creates an engine with the default modifier order: scale, then features.
func NewEngine(rules RuleSet) *Engine {
	return &Engine{
		rules:     rules,
		modifiers: []Modifier{ScaleModifier, FeatureModifier},
	}
}

// Default returns an engine over RulesV1.
func Default() *Engine {
	return NewEngine(RulesV1)
}

// Version reports the rule set version.
func (e *Engine) Version() string {
	return e.rules.Version
}

// Base returns the unmodified profile for a project type.
func (e *Engine) Base(projectType string) Profile {
	rule := e.rules.Lookup(projectType)
	return Profile{
		Patterns: clone(rule.Patterns),
		Technologies: map[string][]string{
			LayerFrontend: clone(rule.Frontend),
			LayerBackend:  clone(rule.Backend),
			LayerDatabase: clone(rule.Database),
		},
		Considerations: clone(rule.Considerations),
	}
}

// Recommend runs the full pipeline.
func (e *Engine) Recommend(projectType, scale string, features []string) Profile {
	in := Input{ProjectType: projectType, Scale: scale, Features: features}
	profile := e.Base(projectType)
	for _, modify := range e.modifiers {
		modify(&profile, in)
	}
	return profile
}

// Initial returns the initialization-time profile: base patterns plus the
// scale modifier, projected onto ui/database/authentication/deployment keys.
// Features do not participate.
func (e *Engine) Initial(projectType, scale string) InitialProfile {
	in := Input{ProjectType: projectType, Scale: scale}
	profile := e.Base(projectType)
	ScaleModifier(&profile, in)

	rule := e.rules.Lookup(projectType)
	return InitialProfile{
		Architecture: profile.Patterns,
		TechStack: map[string][]string{
			"ui":             profile.Technologies[LayerFrontend],
			"database":       profile.Technologies[LayerDatabase],
			"authentication": clone(rule.Authentication),
			"deployment":     profile.Technologies[LayerDeployment],
		},
	}
}

// MergeFeatures returns the user's features followed by the recommended
// features for the project type that the user did not already list.
// Duplicates inside the user's list are kept as given.
func (e *Engine) MergeFeatures(projectType string, features []string) []string {
	out := make([]string, 0, len(features))
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		out = append(out, f)
		seen[f] = true
	}
	for _, f := range e.rules.RecommendedFeatures(projectType) {
		if !seen[f] {
			out = append(out, f)
			seen[f] = true
		}
	}
	return out
}

// ScaleModifier assigns the deployment set for the scale. Exactly one
// assignment wins.
func ScaleModifier(p *Profile, in Input) {
	if p.Technologies == nil {
		p.Technologies = map[string][]string{}
	}
	switch strings.ToLower(strings.TrimSpace(in.Scale)) {
	case "enterprise", "large":
		p.Patterns = append(p.Patterns, "Microservices Architecture")
		p.Technologies[LayerDeployment] = clone(ContainerDeployment)
		p.Considerations = append(p.Considerations, "High availability", "Horizontal scaling", "Disaster recovery")
	case "medium":
		p.Technologies[LayerDeployment] = clone(ManagedDeployment)
	default:
		p.Technologies[LayerDeployment] = clone(MinimalDeployment)
	}
}

// FeatureModifier applies one fixed modifier per recognized feature tag, in
// input order. Repeated tags repeat their entries.
func FeatureModifier(p *Profile, in Input) {
	if p.Technologies == nil {
		p.Technologies = map[string][]string{}
	}
	for _, feature := range in.Features {
		switch feature {
		case "authentication":
			p.Technologies[LayerAuthentication] = append(p.Technologies[LayerAuthentication], "JWT", "OAuth 2.0")
			p.Considerations = append(p.Considerations, "Secure credential storage")
		case "real-time":
			p.Patterns = append(p.Patterns, "Event-Driven Architecture")
			p.Technologies[LayerRealtime] = append(p.Technologies[LayerRealtime], "WebSockets", "Redis Pub/Sub")
			p.Considerations = append(p.Considerations, "Connection scaling")
		case "payments":
			p.Technologies[LayerPayments] = append(p.Technologies[LayerPayments], "Stripe")
			p.Considerations = append(p.Considerations, "PCI compliance")
		}
	}
}
