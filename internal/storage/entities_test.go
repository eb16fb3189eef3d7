package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntity(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	e, err := s.CreateEntity(ctx, "Go", "technology", "Fast compiled language", "Great for CLI tools")
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Go", e.Name)
	assert.Equal(t, "technology", e.EntityType)
	assert.NotEmpty(t, e.CreatedAt)
	require.Len(t, e.Observations, 2)
	assert.Equal(t, "Fast compiled language", e.Observations[0].Content)
	assert.NotZero(t, e.Observations[0].ID)
	assert.Equal(t, e.ID, e.Observations[1].EntityID)
}

func TestCreateEntityDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.CreateEntity(ctx, "user", "person", "Prefers concise responses")
	require.NoError(t, err)
	_, err = s.CreateEntity(ctx, "other", "person")
	require.NoError(t, err)
	_, err = s.CreateRelation(ctx, "user", "other", "knows")
	require.NoError(t, err)

	_, err = s.CreateEntity(ctx, "user", "robot", "should not be stored")
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `"user" already exists`)

	e, err := s.GetEntity(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "person", e.EntityType)
	require.Len(t, e.Observations, 1)
	assert.Equal(t, "Prefers concise responses", e.Observations[0].Content)
	assert.Len(t, e.RelationsOutgoing, 1)

	graph, err := s.ReadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, graph.Stats.ObservationCount)
}

func TestCreateEntityEmptyName(t *testing.T) {
	_, err := setupStore(t).CreateEntity(context.Background(), "", "person")
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestGetEntity(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.CreateEntity(ctx, "user", "person", "Works on data projects")
	require.NoError(t, err)
	_, err = s.CreateEntity(ctx, "project_x", "project")
	require.NoError(t, err)
	_, err = s.CreateEntity(ctx, "scrape_bot", "tool")
	require.NoError(t, err)

	_, err = s.CreateRelation(ctx, "user", "project_x", "owns")
	require.NoError(t, err)
	_, err = s.CreateRelation(ctx, "scrape_bot", "user", "works_for")
	require.NoError(t, err)

	e, err := s.GetEntity(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "user", e.Name)
	assert.Equal(t, "person", e.EntityType)
	require.Len(t, e.Observations, 1)
	assert.Equal(t, "Works on data projects", e.Observations[0].Content)

	require.Len(t, e.RelationsOutgoing, 1)
	assert.Equal(t, "owns", e.RelationsOutgoing[0].RelationType)
	assert.Equal(t, "project_x", e.RelationsOutgoing[0].ToEntity)

	require.Len(t, e.RelationsIncoming, 1)
	assert.Equal(t, "works_for", e.RelationsIncoming[0].RelationType)
	assert.Equal(t, "scrape_bot", e.RelationsIncoming[0].FromEntity)
}

func TestGetEntityEmptyLists(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.CreateEntity(ctx, "lonely", "concept")
	require.NoError(t, err)

	e, err := s.GetEntity(ctx, "lonely")
	require.NoError(t, err)
	assert.NotNil(t, e.Observations)
	assert.Empty(t, e.Observations)
	assert.NotNil(t, e.RelationsOutgoing)
	assert.NotNil(t, e.RelationsIncoming)
}

func TestGetEntityNotFound(t *testing.T) {
	_, err := setupStore(t).GetEntity(context.Background(), "DoesNotExist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEntityCascades(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.CreateEntity(ctx, "Go", "technology", "Fast")
	require.NoError(t, err)
	_, err = s.CreateEntity(ctx, "Rust", "technology", "Safe")
	require.NoError(t, err)
	_, err = s.CreateEntity(ctx, "SQLite", "technology")
	require.NoError(t, err)
	_, err = s.CreateRelation(ctx, "Go", "Rust", "competes_with")
	require.NoError(t, err)
	_, err = s.CreateRelation(ctx, "Rust", "Go", "competes_with")
	require.NoError(t, err)
	_, err = s.CreateRelation(ctx, "Rust", "SQLite", "binds")
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntity(ctx, "Go"))

	_, err = s.GetEntity(ctx, "Go")
	assert.ErrorIs(t, err, ErrNotFound)

	rust, err := s.GetEntity(ctx, "Rust")
	require.NoError(t, err)
	assert.Len(t, rust.Observations, 1)
	assert.Empty(t, rust.RelationsIncoming)
	require.Len(t, rust.RelationsOutgoing, 1)
	assert.Equal(t, "SQLite", rust.RelationsOutgoing[0].ToEntity)

	graph, err := s.ReadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, graph.Stats.EntityCount)
	assert.Equal(t, 1, graph.Stats.RelationCount)
	assert.Equal(t, 1, graph.Stats.ObservationCount)
}

func TestDeleteEntityNotFound(t *testing.T) {
	err := setupStore(t).DeleteEntity(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddObservation(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.CreateEntity(ctx, "user", "person")
	require.NoError(t, err)

	obs, err := s.AddObservation(ctx, "user", "Works on data projects")
	require.NoError(t, err)
	assert.NotZero(t, obs.ID)
	assert.Equal(t, "user", obs.EntityName)
	assert.Equal(t, "Works on data projects", obs.Content)
	assert.NotEmpty(t, obs.CreatedAt)

	e, err := s.GetEntity(ctx, "user")
	require.NoError(t, err)
	require.Len(t, e.Observations, 1)
	assert.Equal(t, obs.ID, e.Observations[0].ID)
}

func TestAddObservationNonExistent(t *testing.T) {
	_, err := setupStore(t).AddObservation(context.Background(), "DoesNotExist", "test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteObservation(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	e, err := s.CreateEntity(ctx, "Go", "technology", "Fast", "Compiled", "Typed")
	require.NoError(t, err)

	require.NoError(t, s.DeleteObservation(ctx, e.Observations[0].ID))
	require.NoError(t, s.DeleteObservation(ctx, e.Observations[2].ID))

	got, err := s.GetEntity(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, got.Observations, 1)
	assert.Equal(t, "Compiled", got.Observations[0].Content)

	err = s.DeleteObservation(ctx, e.Observations[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteObservationNotFound(t *testing.T) {
	err := setupStore(t).DeleteObservation(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}
