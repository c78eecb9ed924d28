package checklist

import (
	"math"
	"sort"
)

// CategoryProgress holds completion figures for one category.
type CategoryProgress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Progress is a computed snapshot over a whole checklist. It is never stored.
type Progress struct {
	Total      int                           `json:"total"`
	Completed  int                           `json:"completed"`
	Percentage int                           `json:"percentage"`
	ByCategory map[Category]CategoryProgress `json:"byCategory"`
}

// Percentage returns round(100*completed/total), or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CalculateProgress aggregates completion counts per category and overall.
// Every fixed category appears in ByCategory, even when absent from c.
func CalculateProgress(c Checklist) Progress {
	progress := Progress{ByCategory: make(map[Category]CategoryProgress, len(categories))}

	for _, cat := range orderedCategories(c) {
		var cp CategoryProgress
		for _, item := range c[cat] {
			cp.Total++
			if item.Completed {
				cp.Completed++
			}
		}
		cp.Percentage = Percentage(cp.Completed, cp.Total)
		progress.ByCategory[cat] = cp
		progress.Total += cp.Total
		progress.Completed += cp.Completed
	}

	progress.Percentage = Percentage(progress.Completed, progress.Total)
	return progress
}

// orderedCategories lists the fixed categories followed by any unknown keys
// found in stored data, sorted for determinism.
func orderedCategories(c Checklist) []Category {
	out := Categories()
	var extra []Category
	for cat := range c {
		if !cat.Valid() {
			extra = append(extra, cat)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
