package docs

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an output format for documentation.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnsupportedFormat indicates an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported documentation format")

// ParseFormat validates a format name; empty selects markdown.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Output is a rendered document. JSON output carries the model itself;
// the other formats carry Content.
type Output struct {
	Format   Format    `json:"format"`
	Document *Document `json:"documentation,omitempty"`
	Content  string    `json:"content,omitempty"`
}

// Render serializes doc in the requested format.
func Render(doc Document, format Format) (Output, error) {
	switch format {
	case FormatJSON:
		return Output{Format: format, Document: &doc}, nil
	case FormatMarkdown:
		return Output{Format: format, Content: RenderMarkdown(doc)}, nil
	case FormatHTML:
		return Output{Format: format, Content: DefaultHTMLRenderer().Render(doc)}, nil
	default:
		return Output{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// RenderMarkdown writes the document as Markdown. Output is a pure function
// of doc.
func RenderMarkdown(doc Document) string {
	var b strings.Builder
	b.WriteString("# " + doc.Title + "\n\n")

	if s := doc.Overview; s != nil {
		heading(&b, 2, "Overview")
		paragraph(&b, s.Description)
		heading(&b, 3, "Goals")
		bullets(&b, s.Goals)
	}
	if s := doc.TechStack; s != nil {
		heading(&b, 2, "Tech Stack")
		for _, layer := range s.Layers {
			heading(&b, 3, layer.Name)
			bullets(&b, layer.Technologies)
		}
	}
	if s := doc.Architecture; s != nil {
		heading(&b, 2, "Architecture")
		paragraph(&b, s.Summary)
		for _, layer := range s.Layers {
			heading(&b, 3, layer.Name+" Layer")
			paragraph(&b, layer.Description)
			bullets(&b, layer.Components)
		}
	}
	if s := doc.ProjectStructure; s != nil {
		heading(&b, 2, "Project Structure")
		paragraph(&b, s.Description)
		lines := make([]string, 0, len(s.Directories))
		for _, dir := range s.Directories {
			lines = append(lines, "`"+dir.Path+"` - "+dir.Purpose)
		}
		bullets(&b, lines)
	}
	if s := doc.Workflow; s != nil {
		heading(&b, 2, "Development Workflow")
		numbered(&b, s.Steps)
	}
	if s := doc.Deployment; s != nil {
		heading(&b, 2, "Deployment")
		for _, env := range s.Environments {
			heading(&b, 3, env.Name)
			paragraph(&b, env.Description)
			numbered(&b, env.Steps)
		}
	}
	if s := doc.BestPractices; s != nil {
		heading(&b, 2, "Best Practices")
		bullets(&b, s.Practices)
	}
	if s := doc.Troubleshooting; s != nil {
		heading(&b, 2, "Troubleshooting")
		for _, issue := range s.Issues {
			heading(&b, 3, issue.Problem)
			paragraph(&b, issue.Solution)
		}
	}
	return b.String()
}

func heading(b *strings.Builder, level int, text string) {
	b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
}

func paragraph(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString(text + "\n\n")
}

func bullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

// numbered uses "1. " on every line and lets Markdown viewers renumber.
func numbered(b *strings.Builder, items []string) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		b.WriteString("1. " + item + "\n")
	}
	b.WriteString("\n")
}
