package integration_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/session"
	"github.com/rpggio/planwise/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db           *sqlite.DB
	sessionRepo  *sqlite.SessionRepository
	activityRepo *sqlite.ActivityRepository

	sessionSvc  *session.Service
	activitySvc *activity.Service
}

func newTestEnv(t *testing.T, path string) *testEnv {
	t.Helper()
	db, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	sessionRepo := sqlite.NewSessionRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	activitySvc := activity.NewService(activityRepo, nil)
	sessionSvc := session.NewService(sessionRepo, activitySvc, nil, nil)

	return &testEnv{
		db:           db,
		sessionRepo:  sessionRepo,
		activityRepo: activityRepo,
		sessionSvc:   sessionSvc,
		activitySvc:  activitySvc,
	}
}

func TestPlanningWorkflow(t *testing.T) {
	env := newTestEnv(t, sqlite.MemoryDSN)
	ctx := context.Background()

	init, err := env.sessionSvc.Initialize(ctx, session.InitRequest{
		ProjectName: "Storefront",
		ProjectType: "e-commerce",
		Scale:       "large",
	})
	require.NoError(t, err)
	id := init.Session.ID

	status, err := env.sessionSvc.GetStatus(ctx, id)
	require.NoError(t, err)
	require.Equal(t, phase.Initialization, status.Session.Phase)
	require.Equal(t, 0, status.Progress.Percentage)

	steps := []struct {
		category string
		item     string
		want     phase.Phase
	}{
		{"Project Setup", "repo", phase.Deployment},
		{"Architecture", "pattern", phase.Development},
		{"Features", "cart", phase.Development},
		{"Testing", "unit", phase.Development},
	}
	for i, step := range steps {
		// Every other item stays open.
		completed := i%2 == 0
		_, err := env.sessionSvc.UpdateChecklistItem(ctx, session.UpdateItemRequest{
			SessionID: id,
			Category:  step.category,
			ItemID:    step.item,
			Completed: completed,
		})
		require.NoError(t, err)

		status, err := env.sessionSvc.GetStatus(ctx, id)
		require.NoError(t, err)
		require.Equal(t, step.want, status.Session.Phase, "after %s/%s", step.category, step.item)
	}

	_, err = env.sessionSvc.RecordDecision(ctx, id, session.DecisionRequest{
		Title:    "Database",
		Decision: "PostgreSQL",
	})
	require.NoError(t, err)

	name, err := env.sessionSvc.ProjectName(ctx, id)
	require.NoError(t, err)
	out, err := docs.Render(docs.Build([]string{docs.SectionOverview}, name), docs.FormatMarkdown)
	require.NoError(t, err)
	require.Contains(t, out.Content, "# Storefront Documentation")

	entries, err := env.sessionSvc.Activity(ctx, id, 0)
	require.NoError(t, err)
	// created + 4 updates + 1 decision
	require.Len(t, entries, 6)
	require.Equal(t, activity.TypeDecisionRecorded, entries[0].Type)
	require.Equal(t, activity.TypeSessionCreated, entries[len(entries)-1].Type)
}

func TestSessionsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.db")
	ctx := context.Background()

	first := newTestEnv(t, path)
	_, err := first.sessionSvc.UpdateChecklistItem(ctx, session.UpdateItemRequest{
		SessionID: "persisted",
		Category:  "Deployment",
		ItemID:    "prod",
		Completed: true,
	})
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	second := newTestEnv(t, path)
	status, err := second.sessionSvc.GetStatus(ctx, "persisted")
	require.NoError(t, err)
	require.Equal(t, 100, status.Progress.Percentage)
	require.Equal(t, 1, status.Progress.ByCategory["Deployment"].Total)
}

func TestConcurrentUpdatesOnOneSession(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "planner.db"))
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.sessionSvc.UpdateChecklistItem(ctx, session.UpdateItemRequest{
				SessionID: "shared",
				Category:  "Features",
				ItemID:    fmt.Sprintf("item-%02d", i),
				Completed: i%2 == 0,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	status, err := env.sessionSvc.GetStatus(ctx, "shared")
	require.NoError(t, err)
	require.Equal(t, workers, status.Progress.Total)
	require.Equal(t, workers/2, status.Progress.Completed)
	require.Equal(t, 50, status.Progress.Percentage)
	require.Equal(t, phase.Development, status.Session.Phase)
}
