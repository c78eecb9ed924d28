package checklist

import (
	"strings"
	"time"
)

// Update describes a single item mutation.
type Update struct {
	Category  Category
	ItemID    string
	Completed bool
	// Notes overwrites stored notes only when non-nil and non-empty.
	Notes *string
}

// Apply upserts the item described by u into c and returns the stored item.
// The category is validated before anything is touched. c must be non-nil;
// a missing category map is created.
func (c Checklist) Apply(u Update, now time.Time) (Item, error) {
	if !u.Category.Valid() {
		return Item{}, ErrInvalidCategory
	}
	if strings.TrimSpace(u.ItemID) == "" {
		return Item{}, ErrInvalidItemID
	}

	items, ok := c[u.Category]
	if !ok || items == nil {
		items = map[string]Item{}
		c[u.Category] = items
	}

	item, exists := items[u.ItemID]
	if !exists {
		item = Item{
			ID:       u.ItemID,
			Title:    u.ItemID,
			Priority: PriorityMedium,
		}
		if u.Notes != nil {
			item.Notes = *u.Notes
		}
	} else if u.Notes != nil && *u.Notes != "" {
		item.Notes = *u.Notes
	}

	if u.Completed {
		item.MarkCompleted(now)
	} else {
		item.ClearCompletion()
	}

	items[u.ItemID] = item
	return item, nil
}
