package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSessionRepository(db).Save(ctx, newTestSession("s1")))
	require.NoError(t, NewSessionRepository(db).Save(ctx, newTestSession("s2")))

	repo := NewActivityRepository(db)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entry1 := &activity.Entry{
		SessionID: "s1",
		Type:      activity.TypeSessionCreated,
		Summary:   "Session created",
		CreatedAt: base,
	}
	entry2 := &activity.Entry{
		SessionID: "s1",
		Type:      activity.TypeChecklistUpdated,
		Summary:   "Testing/t1 completed=true",
		Details:   `{"itemId":"t1"}`,
		CreatedAt: base.Add(time.Minute),
	}
	other := &activity.Entry{
		SessionID: "s2",
		Type:      activity.TypeSessionCreated,
		Summary:   "Other session",
		CreatedAt: base,
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NoError(t, repo.Log(ctx, other))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListOptions{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeChecklistUpdated, entries[0].Type)
	require.Equal(t, `{"itemId":"t1"}`, entries[0].Details)
	require.Equal(t, activity.TypeSessionCreated, entries[1].Type)

	limited, err := repo.List(ctx, activity.ListOptions{SessionID: "s1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, entry2.ID, limited[0].ID)

	kind := activity.TypeSessionCreated
	created, err := repo.List(ctx, activity.ListOptions{Type: &kind})
	require.NoError(t, err)
	require.Len(t, created, 2)
}

func TestActivityRepository_UnknownSession(t *testing.T) {
	repo := NewActivityRepository(NewTestDB(t))

	err := repo.Log(context.Background(), &activity.Entry{
		SessionID: "missing",
		Type:      activity.TypeSessionCreated,
		Summary:   "orphan",
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRepository_EmptyList(t *testing.T) {
	repo := NewActivityRepository(NewTestDB(t))

	entries, err := repo.List(context.Background(), activity.ListOptions{SessionID: "none"})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
