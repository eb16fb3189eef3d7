package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnerlima/agent-memory/internal/models"
)

func TestStartEndRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	started, err := s.StartRun(ctx, "x", "3 urls")
	require.NoError(t, err)
	assert.NotZero(t, started.ID)
	assert.Equal(t, models.RunStarted, started.Status)
	assert.Nil(t, started.EndedAt)
	require.NotNil(t, started.InputSummary)
	assert.Equal(t, "3 urls", *started.InputSummary)

	ended, err := s.EndRun(ctx, started.ID, models.RunSuccess, models.RunDetails{Notes: "all good"})
	require.NoError(t, err)
	assert.Equal(t, models.RunSuccess, ended.Status)
	require.NotNil(t, ended.EndedAt)

	runs, err := s.GetRuns(ctx, models.RunFilter{Directive: "x", Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, started.ID, runs[0].ID)
	assert.Equal(t, models.RunSuccess, runs[0].Status)
	assert.NotNil(t, runs[0].EndedAt)
	require.NotNil(t, runs[0].Notes)
	assert.Equal(t, "all good", *runs[0].Notes)
	require.NotNil(t, runs[0].InputSummary, "input summary from the start survives the end")
	assert.Nil(t, runs[0].ErrorMessage)
}

func TestStartRunLeftOpen(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.StartRun(ctx, "crashy", "")
	require.NoError(t, err)

	runs, err := s.GetRuns(ctx, models.RunFilter{Directive: "crashy"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStarted, runs[0].Status)
	assert.Nil(t, runs[0].EndedAt)
	assert.Nil(t, runs[0].InputSummary)
}

func TestEndRunNotFound(t *testing.T) {
	_, err := setupStore(t).EndRun(context.Background(), 99, models.RunFailed, models.RunDetails{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndRunTwice(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	run, err := s.StartRun(ctx, "x", "")
	require.NoError(t, err)
	_, err = s.EndRun(ctx, run.ID, models.RunPartial, models.RunDetails{})
	require.NoError(t, err)

	_, err = s.EndRun(ctx, run.ID, models.RunSuccess, models.RunDetails{})
	require.ErrorIs(t, err, ErrConflict)

	runs, err := s.GetRuns(ctx, models.RunFilter{Directive: "x"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunPartial, runs[0].Status)
}

func TestEndRunInvalidStatus(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	run, err := s.StartRun(ctx, "x", "")
	require.NoError(t, err)

	_, err = s.EndRun(ctx, run.ID, models.RunStarted, models.RunDetails{})
	assert.ErrorIs(t, err, ErrConstraint)

	_, err = s.EndRun(ctx, run.ID, "exploded", models.RunDetails{})
	assert.ErrorIs(t, err, ErrConstraint)

	runs, err := s.GetRuns(ctx, models.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStarted, runs[0].Status)
	assert.Nil(t, runs[0].EndedAt)
}

func TestLogRun(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	run, err := s.LogRun(ctx, "scrape_website", models.RunFailed, models.RunDetails{
		Notes:         "Scraped 50 pages",
		ErrorMessage:  "timeout on page 51",
		InputSummary:  "example.com",
		OutputSummary: "50 pages",
	})
	require.NoError(t, err)
	assert.Equal(t, "scrape_website", run.DirectiveName)
	assert.Equal(t, models.RunFailed, run.Status)
	require.NotNil(t, run.EndedAt)
	assert.Equal(t, run.StartedAt, *run.EndedAt)
	require.NotNil(t, run.ErrorMessage)
	assert.Equal(t, "timeout on page 51", *run.ErrorMessage)
	require.NotNil(t, run.OutputSummary)
	assert.Equal(t, "50 pages", *run.OutputSummary)
}

func TestLogRunRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.LogRun(ctx, "x", "done", models.RunDetails{})
	require.ErrorIs(t, err, ErrConstraint)

	graph, err := s.ReadGraph(ctx)
	require.NoError(t, err)
	assert.Zero(t, graph.Stats.DirectiveRunCount)
}

func TestGetRunsOrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	for i := 0; i < 15; i++ {
		directive := "alpha"
		if i%3 == 0 {
			directive = "beta"
		}
		_, err := s.LogRun(ctx, directive, models.RunSuccess, models.RunDetails{Notes: fmt.Sprintf("run %d", i)})
		require.NoError(t, err)
	}

	runs, err := s.GetRuns(ctx, models.RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, DefaultRunLimit)
	for i := 1; i < len(runs); i++ {
		assert.GreaterOrEqual(t, runs[i-1].StartedAt, runs[i].StartedAt)
		assert.Greater(t, runs[i-1].ID, runs[i].ID)
	}
	require.NotNil(t, runs[0].Notes)
	assert.Equal(t, "run 14", *runs[0].Notes)

	runs, err = s.GetRuns(ctx, models.RunFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = s.GetRuns(ctx, models.RunFilter{Directive: "beta", Limit: 100})
	require.NoError(t, err)
	assert.Len(t, runs, 5)
	for _, r := range runs {
		assert.Equal(t, "beta", r.DirectiveName)
	}

	runs, err = s.GetRuns(ctx, models.RunFilter{Directive: "alph"})
	require.NoError(t, err)
	assert.Empty(t, runs, "directive filter is an exact match")
}

func TestGetRunsStatusFilter(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.LogRun(ctx, "x", models.RunSuccess, models.RunDetails{})
	require.NoError(t, err)
	_, err = s.LogRun(ctx, "x", models.RunFailed, models.RunDetails{})
	require.NoError(t, err)
	_, err = s.LogRun(ctx, "y", models.RunFailed, models.RunDetails{})
	require.NoError(t, err)

	runs, err := s.GetRuns(ctx, models.RunFilter{Status: models.RunFailed})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.GetRuns(ctx, models.RunFilter{Directive: "x", Status: models.RunFailed})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "x", runs[0].DirectiveName)
}
