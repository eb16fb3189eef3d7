package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// CreateRelation inserts a directed, typed edge between two existing
// entities. The same (from, to, type) triple may only exist once; an entity
// may relate to itself.
func (s *Store) CreateRelation(ctx context.Context, from, to, relationType string) (*models.Relation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	fromID, err := entityID(ctx, tx, from)
	if err != nil {
		return nil, err
	}
	toID, err := entityID(ctx, tx, to)
	if err != nil {
		return nil, err
	}

	rel := models.Relation{
		ID:           newID(),
		FromEntity:   from,
		ToEntity:     to,
		RelationType: relationType,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO relations (id, from_entity_id, to_entity_id, relation_type)
		 VALUES (?, ?, ?, ?) RETURNING created_at`,
		rel.ID, fromID, toID, relationType,
	).Scan(&rel.CreatedAt)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: relation %q -[%s]-> %q already exists", ErrConflict, from, relationType, to)
		}
		return nil, fmt.Errorf("insert relation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &rel, nil
}
