package recommend

import "strings"

// Technology layer keys used in Profile.Technologies.
const (
	LayerFrontend       = "frontend"
	LayerBackend        = "backend"
	LayerDatabase       = "database"
	LayerDeployment     = "deployment"
	LayerAuthentication = "authentication"
	LayerRealtime       = "realtime"
	LayerPayments       = "payments"
)

// Rule is the base profile for one project type.
type Rule struct {
	Patterns       []string
	Frontend       []string
	Backend        []string
	Database       []string
	Authentication []string
	Considerations []string
	// Features are recommended feature tags merged in at session initialization.
	Features []string
}

// RuleSet is a versioned project-type table.
type RuleSet struct {
	Version string
	Rules   map[string]Rule
	// Aliases maps project types onto another row of Rules.
	Aliases map[string]string
	// Fallback names the row used for unknown project types.
	Fallback string
	// ExtraFeatures holds recommended features for types that share a row.
	ExtraFeatures map[string][]string
}

// Lookup resolves a project type, case-insensitively, to its rule.
func (rs RuleSet) Lookup(projectType string) Rule {
	key := normalize(projectType)
	if alias, ok := rs.Aliases[key]; ok {
		key = alias
	}
	if rule, ok := rs.Rules[key]; ok {
		return rule
	}
	return rs.Rules[rs.Fallback]
}

// RecommendedFeatures returns the recommended feature tags for a project type.
func (rs RuleSet) RecommendedFeatures(projectType string) []string {
	key := normalize(projectType)
	if features, ok := rs.ExtraFeatures[key]; ok {
		return clone(features)
	}
	if rule, ok := rs.Rules[key]; ok {
		return clone(rule.Features)
	}
	return nil
}

func normalize(projectType string) string {
	return strings.ToLower(strings.TrimSpace(projectType))
}

// RulesV1 is the current recommendation table.
var RulesV1 = RuleSet{
	Version:  "v1",
	Fallback: "default",
	Aliases: map[string]string{
		"documentation": "blog",
		"api":           "default",
		"marketing":     "default",
		"custom":        "default",
	},
	ExtraFeatures: map[string][]string{
		"documentation": {"search", "versioning", "seo"},
		"api":           {"authentication", "rate-limiting", "api-docs"},
		"marketing":     {"seo", "analytics", "contact-form"},
		"custom":        {},
	},
	Rules: map[string]Rule{
		"e-commerce": {
			Patterns:       []string{"Domain-Driven Design", "Event-Driven Order Processing"},
			Frontend:       []string{"Next.js", "React"},
			Backend:        []string{"Node.js", "Express"},
			Database:       []string{"PostgreSQL", "Redis"},
			Authentication: []string{"NextAuth.js"},
			Considerations: []string{"Inventory consistency", "SEO for product pages", "Cart abandonment handling"},
			Features:       []string{"authentication", "payments", "product-catalog", "shopping-cart", "search"},
		},
		"saas": {
			Patterns:       []string{"Multi-tenant Architecture", "API-First Design"},
			Frontend:       []string{"React", "TypeScript"},
			Backend:        []string{"Node.js", "NestJS"},
			Database:       []string{"PostgreSQL"},
			Authentication: []string{"Auth0"},
			Considerations: []string{"Tenant data isolation", "Subscription billing", "Usage metering"},
			Features:       []string{"authentication", "payments", "multi-tenancy", "analytics"},
		},
		"blog": {
			Patterns:       []string{"JAMstack", "Static Site Generation"},
			Frontend:       []string{"Next.js", "MDX"},
			Backend:        []string{"Headless CMS"},
			Database:       []string{"Markdown files"},
			Authentication: []string{"None required"},
			Considerations: []string{"SEO optimization", "Content delivery performance"},
			Features:       []string{"cms", "seo", "comments"},
		},
		"portfolio": {
			Patterns:       []string{"JAMstack", "Component-Based Design"},
			Frontend:       []string{"React", "Tailwind CSS"},
			Backend:        []string{"Serverless Functions"},
			Database:       []string{"Static content"},
			Authentication: []string{"None required"},
			Considerations: []string{"Visual performance", "Responsive design"},
			Features:       []string{"gallery", "contact-form", "seo"},
		},
		"dashboard": {
			Patterns:       []string{"Single Page Application", "Real-time Data Streaming"},
			Frontend:       []string{"React", "Chart.js"},
			Backend:        []string{"Node.js", "GraphQL"},
			Database:       []string{"PostgreSQL", "TimescaleDB"},
			Authentication: []string{"JWT"},
			Considerations: []string{"Data refresh strategy", "Role-based access control"},
			Features:       []string{"authentication", "real-time", "charts", "data-export"},
		},
		"default": {
			Patterns:       []string{"Layered Architecture", "RESTful API"},
			Frontend:       []string{"React"},
			Backend:        []string{"Node.js", "Express"},
			Database:       []string{"PostgreSQL"},
			Authentication: []string{"JWT"},
			Considerations: []string{"Maintainability", "Clear API contracts"},
		},
	},
}

func clone(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
