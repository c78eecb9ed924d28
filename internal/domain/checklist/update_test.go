package checklist_test

import (
	"testing"
	"time"

	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestApply_InvalidCategoryLeavesChecklistUntouched(t *testing.T) {
	c := checklist.New()
	before := c.Clone()

	_, err := c.Apply(checklist.Update{Category: "Marketing", ItemID: "x", Completed: true}, time.Now())
	require.ErrorIs(t, err, checklist.ErrInvalidCategory)
	require.Equal(t, before, c)
}

func TestApply_MissingItemID(t *testing.T) {
	c := checklist.New()
	_, err := c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "  "}, time.Now())
	require.ErrorIs(t, err, checklist.ErrInvalidItemID)
}

func TestApply_CreatesItemWithDefaults(t *testing.T) {
	c := checklist.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	item, err := c.Apply(checklist.Update{
		Category:  checklist.CategoryArchitecture,
		ItemID:    "choose-pattern",
		Completed: true,
		Notes:     strPtr("layered"),
	}, now)
	require.NoError(t, err)
	require.Equal(t, "choose-pattern", item.ID)
	require.Equal(t, "choose-pattern", item.Title)
	require.Equal(t, checklist.PriorityMedium, item.Priority)
	require.Equal(t, "layered", item.Notes)
	require.NotNil(t, item.CompletedAt)
	require.True(t, item.CompletedAt.Equal(now))

	progress := checklist.CalculateProgress(c)
	require.Equal(t, 1, progress.Total)
	require.Equal(t, 1, progress.Completed)
	require.Equal(t, 100, progress.Percentage)
}

func TestApply_CreatesIncompleteWithoutTimestamp(t *testing.T) {
	c := checklist.New()
	item, err := c.Apply(checklist.Update{Category: checklist.CategoryFeatures, ItemID: "f1"}, time.Now())
	require.NoError(t, err)
	require.False(t, item.Completed)
	require.Nil(t, item.CompletedAt)
}

func TestApply_CreatesMissingCategoryMap(t *testing.T) {
	c := checklist.Checklist{}
	_, err := c.Apply(checklist.Update{Category: checklist.CategoryDeployment, ItemID: "d1"}, time.Now())
	require.NoError(t, err)
	require.Contains(t, c[checklist.CategoryDeployment], "d1")
}

func TestApply_EmptyNotesKeepStoredValue(t *testing.T) {
	c := checklist.New()
	now := time.Now()
	_, err := c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Notes: strPtr("keep me")}, now)
	require.NoError(t, err)

	item, err := c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Notes: strPtr("")}, now)
	require.NoError(t, err)
	require.Equal(t, "keep me", item.Notes)

	item, err = c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1"}, now)
	require.NoError(t, err)
	require.Equal(t, "keep me", item.Notes)

	item, err = c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Notes: strPtr("new")}, now)
	require.NoError(t, err)
	require.Equal(t, "new", item.Notes)
}

func TestApply_ToggleCompletion(t *testing.T) {
	c := checklist.New()
	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	item, err := c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Completed: true}, first)
	require.NoError(t, err)
	require.NotNil(t, item.CompletedAt)

	item, err = c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Completed: false}, second)
	require.NoError(t, err)
	require.False(t, item.Completed)
	require.Nil(t, item.CompletedAt)

	item, err = c.Apply(checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Completed: true}, second)
	require.NoError(t, err)
	require.True(t, item.CompletedAt.Equal(second))
}

func TestApply_RepeatedUpdateIsIdempotent(t *testing.T) {
	c := checklist.New()
	now := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	u := checklist.Update{Category: checklist.CategoryTesting, ItemID: "t1", Completed: true}

	first, err := c.Apply(u, now)
	require.NoError(t, err)
	progressFirst := checklist.CalculateProgress(c)

	second, err := c.Apply(u, now)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, progressFirst, checklist.CalculateProgress(c))
}

func TestParseCategory(t *testing.T) {
	for _, name := range checklist.CategoryNames() {
		cat, err := checklist.ParseCategory(name)
		require.NoError(t, err)
		require.Equal(t, name, string(cat))
	}
	_, err := checklist.ParseCategory("testing")
	require.ErrorIs(t, err, checklist.ErrInvalidCategory)
}
