package transport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/session"
)

// requestSchema validates a decoded JSON body. Required fields and each
// property are checked separately so failures can name the field.
type requestSchema struct {
	whole    *jsonschema.Resolved
	required []string
	props    map[string]*jsonschema.Resolved
	order    []string
}

func mustSchema(schema *jsonschema.Schema) *requestSchema {
	whole, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("resolving request schema: %v", err))
	}
	rs := &requestSchema{
		whole:    whole,
		required: schema.Required,
		props:    make(map[string]*jsonschema.Resolved, len(schema.Properties)),
	}
	for name, prop := range schema.Properties {
		resolved, err := prop.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("resolving schema for %s: %v", name, err))
		}
		rs.props[name] = resolved
		rs.order = append(rs.order, name)
	}
	sort.Strings(rs.order)
	return rs
}

func (s *requestSchema) validate(instance any) error {
	obj, ok := instance.(map[string]any)
	if !ok {
		return &ValidationError{Message: "request body must be a JSON object"}
	}
	for _, name := range s.required {
		if _, ok := obj[name]; !ok {
			return &ValidationError{Field: name, Message: name + " is required"}
		}
	}
	for _, name := range s.order {
		value, ok := obj[name]
		if !ok {
			continue
		}
		if err := s.props[name].Validate(value); err != nil {
			return &ValidationError{Field: name, Message: fieldMessage(name, err)}
		}
	}
	if err := s.whole.Validate(instance); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func fieldMessage(name string, err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return fmt.Sprintf("%s is invalid: %s", name, msg)
}

func intPtr(v int) *int { return &v }

func stringEnum(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Schemas must form a tree, so every property gets a fresh node.
func nonEmptyString() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", MinLength: intPtr(1)}
}

func stringList() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
}

var (
	checklistSchema = mustSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"category", "itemId", "completed"},
		Properties: map[string]*jsonschema.Schema{
			"sessionId": {Type: "string"},
			// Category membership is checked by the checklist itself.
			"category":  {Type: "string"},
			"itemId":    nonEmptyString(),
			"completed": {Type: "boolean"},
			"notes":     {Type: "string"},
		},
	})

	recommendationsSchema = mustSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"projectType", "scale"},
		Properties: map[string]*jsonschema.Schema{
			"projectType": nonEmptyString(),
			"scale":       nonEmptyString(),
			"features":    stringList(),
		},
	})

	nextStepsSchema = mustSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"currentPhase"},
		Properties: map[string]*jsonschema.Schema{
			"currentPhase": {Type: "string", Enum: stringEnum(phase.Names())},
		},
	})

	initSchema = mustSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"projectName", "projectType"},
		Properties: map[string]*jsonschema.Schema{
			"projectName": nonEmptyString(),
			"projectType": {Type: "string", Enum: stringEnum(session.ProjectTypes())},
			"scale":       {Type: "string", Enum: stringEnum(session.Scales())},
			"features":    stringList(),
		},
	})

	docsSchema = mustSchema(&jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"sections":  stringList(),
			"format":    {Type: "string", Enum: stringEnum([]string{string(docs.FormatMarkdown), string(docs.FormatJSON), string(docs.FormatHTML)})},
			"sessionId": {Type: "string"},
		},
	})

	decisionSchema = mustSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"title", "decision"},
		Properties: map[string]*jsonschema.Schema{
			"title":     nonEmptyString(),
			"decision":  nonEmptyString(),
			"rationale": {Type: "string"},
		},
	})
)
