package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
)

const serverInstructions = `planwise tracks a software project's planning session: a five-category checklist, the
development phase derived from it, feature tags and architecture decisions.

Core concepts:
- Session: one project's planning exercise, addressed by id. Omitted ids mean "default".
- Checklist: items grouped under Project Setup, Architecture, Features, Testing and Deployment.
- Phase: derived from overall checklist completion on every read. It is never set directly.

Default workflow:
1) initialize_session with a project name and type, or let update_checklist_item create a default session.
2) get_status to see progress and nextRecommendedActions.
3) update_checklist_item as work is done. Empty notes keep the existing notes.
4) record_decision for architecture choices worth keeping.
5) get_recommendations and suggest_next_steps are stateless and safe to call any time.
6) generate_documentation (markdown, json or html) when the plan is ready to share.

Transport notes:
- HTTP: pick a session once with the X-Planner-Session header.
- Stdio: pass _meta.planner_session, or the sessionId argument on each tool.

Docs:
- planner://docs/index
- planner://docs/phases
- planner://docs/template
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

func buildDocResources(engine *recommend.Engine) []docResource {
	return []docResource{
		{
			URI:         "planner://docs/index",
			Name:        "docs_index",
			Title:       "planwise docs index",
			Description: "Entry point: tools, checklist categories and the recommendation rules version.",
			Content:     indexDoc(engine),
		},
		{
			URI:         "planner://docs/phases",
			Name:        "docs_phases",
			Title:       "Phases and next steps",
			Description: "How checklist completion maps to a phase, and the suggested steps for each phase.",
			Content:     phasesDoc(),
		},
		{
			URI:         "planner://docs/template",
			Name:        "docs_template",
			Title:       "Documentation template",
			Description: "The full generated documentation for an unnamed project.",
			Content:     docs.RenderMarkdown(docs.Build([]string{docs.SectionAll}, "")),
		},
	}
}

func indexDoc(engine *recommend.Engine) string {
	var b strings.Builder
	b.WriteString("# planwise: Agent Docs Index\n\n")
	b.WriteString("## Checklist categories\n\n")
	for _, name := range checklist.CategoryNames() {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\n## Recommendations\n\n")
	fmt.Fprintf(&b, "Rules version: %s. Unknown project types fall back to a generic layered profile.\n", engine.Version())
	b.WriteString("Scale picks the deployment set; features add authentication, realtime and payments layers.\n")
	return b.String()
}

func phasesDoc() string {
	var b strings.Builder
	b.WriteString("# Phases\n\n")
	b.WriteString("| Overall completion | Phase |\n|---|---|\n")
	b.WriteString("| 0% | initialization |\n")
	b.WriteString("| 1-24% | requirements |\n")
	b.WriteString("| 25-49% | architecture |\n")
	b.WriteString("| 50-74% | development |\n")
	b.WriteString("| 75-89% | testing |\n")
	b.WriteString("| 90-100% | deployment |\n\n")
	b.WriteString("`setup` is accepted by suggest_next_steps but never derived.\n\n")
	for _, p := range phase.All() {
		fmt.Fprintf(&b, "## %s\n\n", p)
		for _, step := range recommend.StepNames(p) {
			fmt.Fprintf(&b, "- %s\n", step)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func registerDocResources(server *sdkmcp.Server, engine *recommend.Engine) {
	for _, doc := range buildDocResources(engine) {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
