package recommend_test

import (
	"testing"

	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/stretchr/testify/require"
)

func TestRecommend_EcommerceEnterprisePayments(t *testing.T) {
	profile := recommend.Default().Recommend("e-commerce", "enterprise", []string{"payments"})

	require.Contains(t, profile.Patterns, "Event-Driven Order Processing")
	require.Contains(t, profile.Patterns, "Microservices Architecture")
	require.Contains(t, profile.Considerations, "PCI compliance")
	require.Equal(t, []string{"Stripe"}, profile.Technologies[recommend.LayerPayments])
	require.Equal(t, recommend.ContainerDeployment, profile.Technologies[recommend.LayerDeployment])
}

func TestRecommend_BlogSmall(t *testing.T) {
	profile := recommend.Default().Recommend("blog", "small", nil)

	require.Contains(t, profile.Patterns, "JAMstack")
	require.Equal(t, recommend.MinimalDeployment, profile.Technologies[recommend.LayerDeployment])
	require.NotContains(t, profile.Technologies[recommend.LayerDeployment], "Kubernetes")
	require.NotContains(t, profile.Technologies[recommend.LayerDeployment], "Docker")
	require.NotContains(t, profile.Patterns, "Microservices Architecture")
}

func TestRecommend_CaseInsensitiveTypeAndAliases(t *testing.T) {
	engine := recommend.Default()
	require.Equal(t, engine.Recommend("blog", "medium", nil), engine.Recommend("  BLOG ", "medium", nil))
	require.Equal(t, engine.Recommend("blog", "medium", nil), engine.Recommend("documentation", "medium", nil))
}

func TestRecommend_UnknownTypeUsesDefault(t *testing.T) {
	for _, projectType := range []string{"custom", "api", "marketing", "spaceship"} {
		profile := recommend.Default().Recommend(projectType, "small", nil)
		require.Equal(t, []string{"Layered Architecture", "RESTful API"}, profile.Patterns, projectType)
		require.Equal(t, []string{"PostgreSQL"}, profile.Technologies[recommend.LayerDatabase], projectType)
	}
}

func TestRecommend_ScaleDeploymentSets(t *testing.T) {
	engine := recommend.Default()
	tests := map[string][]string{
		"small":      recommend.MinimalDeployment,
		"medium":     recommend.ManagedDeployment,
		"large":      recommend.ContainerDeployment,
		"enterprise": recommend.ContainerDeployment,
		"":           recommend.MinimalDeployment,
	}
	for scale, want := range tests {
		profile := engine.Recommend("saas", scale, nil)
		require.Equal(t, want, profile.Technologies[recommend.LayerDeployment], scale)
	}

	large := engine.Recommend("saas", "large", nil)
	require.Contains(t, large.Considerations, "High availability")
}

func TestRecommend_FeatureModifiersNotDeduplicated(t *testing.T) {
	profile := recommend.Default().Recommend("saas", "small", []string{"authentication", "authentication", "unknown", "real-time"})

	require.Equal(t, []string{"JWT", "OAuth 2.0", "JWT", "OAuth 2.0"}, profile.Technologies[recommend.LayerAuthentication])
	require.Equal(t, []string{"WebSockets", "Redis Pub/Sub"}, profile.Technologies[recommend.LayerRealtime])
	require.Contains(t, profile.Patterns, "Event-Driven Architecture")

	count := 0
	for _, c := range profile.Considerations {
		if c == "Secure credential storage" {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestRecommend_DoesNotMutateTable(t *testing.T) {
	engine := recommend.Default()
	first := engine.Recommend("dashboard", "enterprise", []string{"real-time", "payments"})
	require.NotEmpty(t, first.Patterns)

	base := engine.Base("dashboard")
	require.Equal(t, []string{"Single Page Application", "Real-time Data Streaming"}, base.Patterns)
	require.Equal(t, first, engine.Recommend("dashboard", "enterprise", []string{"real-time", "payments"}))
}

func TestInitial_Shape(t *testing.T) {
	initial := recommend.Default().Initial("e-commerce", "large")

	require.Equal(t, []string{"Domain-Driven Design", "Event-Driven Order Processing", "Microservices Architecture"}, initial.Architecture)
	require.Equal(t, []string{"Next.js", "React"}, initial.TechStack["ui"])
	require.Equal(t, []string{"PostgreSQL", "Redis"}, initial.TechStack["database"])
	require.Equal(t, []string{"NextAuth.js"}, initial.TechStack["authentication"])
	require.Equal(t, recommend.ContainerDeployment, initial.TechStack["deployment"])
	require.Len(t, initial.TechStack, 4)
}

func TestMergeFeatures(t *testing.T) {
	engine := recommend.Default()

	merged := engine.MergeFeatures("blog", []string{"seo", "newsletter", "newsletter"})
	require.Equal(t, []string{"seo", "newsletter", "newsletter", "cms", "comments"}, merged)

	require.Equal(t, []string{"x"}, engine.MergeFeatures("custom", []string{"x"}))
	require.Equal(t, []string{"search", "versioning", "seo"}, engine.MergeFeatures("documentation", nil))
}

func TestNextSteps(t *testing.T) {
	for _, p := range phase.All() {
		plan := recommend.NextSteps(p)
		require.NotEmpty(t, plan.Suggestions, p)
		require.NotEmpty(t, plan.EstimatedTime, p)
	}

	require.Equal(t, recommend.NextSteps(phase.Initialization), recommend.NextSteps("unknown"))

	plan := recommend.NextSteps(phase.Testing)
	plan.Suggestions[0].Step = "changed"
	require.NotEqual(t, "changed", recommend.NextSteps(phase.Testing).Suggestions[0].Step)
}
