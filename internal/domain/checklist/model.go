package checklist

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Category is one of the fixed checklist groupings.
type Category string

const (
	CategoryProjectSetup Category = "Project Setup"
	CategoryArchitecture Category = "Architecture"
	CategoryFeatures     Category = "Features"
	CategoryTesting      Category = "Testing"
	CategoryDeployment   Category = "Deployment"
)

var categories = []Category{
	CategoryProjectSetup,
	CategoryArchitecture,
	CategoryFeatures,
	CategoryTesting,
	CategoryDeployment,
}

// Categories returns the five checklist categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the category names as plain strings.
func CategoryNames() []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory validates a category name. Matching is exact.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Priority ranks a checklist item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Item is a single checklist entry.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// MarkCompleted sets the completion flag and stamps CompletedAt with now.
func (i *Item) MarkCompleted(now time.Time) {
	i.Completed = true
	t := now
	i.CompletedAt = &t
}

// ClearCompletion resets the completion flag and removes CompletedAt.
func (i *Item) ClearCompletion() {
	i.Completed = false
	i.CompletedAt = nil
}

// UnmarshalJSON decodes an item leniently. Stored checklists may hold values
// that are not objects or that carry a non-boolean completed field; those
// decode to an incomplete item instead of failing the whole checklist.
func (i *Item) UnmarshalJSON(data []byte) error {
	*i = Item{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil
	}

	i.ID = rawString(fields["id"])
	i.Title = rawString(fields["title"])
	i.Priority = Priority(rawString(fields["priority"]))
	i.Notes = rawString(fields["notes"])
	i.Completed = truthy(fields["completed"])

	if raw, ok := fields["completedAt"]; ok && i.Completed {
		var ts time.Time
		if err := json.Unmarshal(raw, &ts); err == nil && !ts.IsZero() {
			i.CompletedAt = &ts
		}
	}
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// truthy mirrors loose truthiness: true, non-zero numbers and non-empty
// strings count as completed.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return strings.TrimSpace(val) != ""
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// Checklist maps a category to its items keyed by item id.
type Checklist map[Category]map[string]Item

// New returns a checklist with all five categories present and empty.
func New() Checklist {
	c := make(Checklist, len(categories))
	for _, cat := range categories {
		c[cat] = map[string]Item{}
	}
	return c
}

// Clone returns a deep copy of the checklist.
func (c Checklist) Clone() Checklist {
	out := make(Checklist, len(c))
	for cat, items := range c {
		copied := make(map[string]Item, len(items))
		for id, item := range items {
			if item.CompletedAt != nil {
				t := *item.CompletedAt
				item.CompletedAt = &t
			}
			copied[id] = item
		}
		out[cat] = copied
	}
	return out
}
