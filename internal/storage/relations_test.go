package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEntities(t *testing.T, s *Store, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := s.CreateEntity(context.Background(), name, "thing")
		require.NoError(t, err)
	}
}

func TestCreateRelation(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	seedEntities(t, s, "Go", "Memory Cloud")

	rel, err := s.CreateRelation(ctx, "Go", "Memory Cloud", "powers")
	require.NoError(t, err)
	assert.NotEmpty(t, rel.ID)
	assert.Equal(t, "Go", rel.FromEntity)
	assert.Equal(t, "Memory Cloud", rel.ToEntity)
	assert.Equal(t, "powers", rel.RelationType)
	assert.NotEmpty(t, rel.CreatedAt)
}

func TestCreateRelationDuplicateTriple(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	seedEntities(t, s, "user", "project_x")

	_, err := s.CreateRelation(ctx, "user", "project_x", "owns")
	require.NoError(t, err)

	_, err = s.CreateRelation(ctx, "user", "project_x", "owns")
	require.ErrorIs(t, err, ErrConflict)

	_, err = s.CreateRelation(ctx, "user", "project_x", "maintains")
	require.NoError(t, err, "a different relation type between the same pair is allowed")

	_, err = s.CreateRelation(ctx, "project_x", "user", "owns")
	require.NoError(t, err, "the reverse direction is a different triple")

	graph, err := s.ReadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, graph.Stats.RelationCount)
}

func TestCreateRelationReflexive(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	seedEntities(t, s, "recursion")

	_, err := s.CreateRelation(ctx, "recursion", "recursion", "refers_to")
	require.NoError(t, err)

	e, err := s.GetEntity(ctx, "recursion")
	require.NoError(t, err)
	assert.Len(t, e.RelationsOutgoing, 1)
	assert.Len(t, e.RelationsIncoming, 1)
}

func TestCreateRelationMissingEndpoint(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	seedEntities(t, s, "user")

	_, err := s.CreateRelation(ctx, "ghost", "user", "haunts")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"ghost"`)

	_, err = s.CreateRelation(ctx, "user", "ghost", "fears")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"ghost"`)
}
