package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// CreateEntity inserts an entity together with its initial observations.
// Either everything is written or nothing is; a duplicate name returns
// ErrConflict.
func (s *Store) CreateEntity(ctx context.Context, name, entityType string, observations ...string) (*models.Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: entity name must not be empty", ErrConstraint)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	entity := models.Entity{
		ID:         newID(),
		Name:       name,
		EntityType: entityType,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO entities (id, name, entity_type) VALUES (?, ?, ?) RETURNING created_at`,
		entity.ID, name, entityType,
	).Scan(&entity.CreatedAt)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: entity %q already exists", ErrConflict, name)
		}
		return nil, fmt.Errorf("insert entity %q: %w", name, err)
	}

	for _, content := range observations {
		obs := models.Observation{EntityID: entity.ID, EntityName: name, Content: content}
		err := tx.QueryRowContext(ctx,
			`INSERT INTO observations (entity_id, content) VALUES (?, ?) RETURNING id, created_at`,
			entity.ID, content,
		).Scan(&obs.ID, &obs.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert observation for %q: %w", name, classify(err))
		}
		entity.Observations = append(entity.Observations, obs)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &entity, nil
}

// GetEntity returns an entity with its observations and its outgoing and
// incoming relations.
func (s *Store) GetEntity(ctx context.Context, name string) (*models.EntityDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var e models.EntityDetail
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, entity_type, created_at FROM entities WHERE name = ?`, name,
	).Scan(&e.ID, &e.Name, &e.EntityType, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: entity %q not found", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup entity %q: %w", name, err)
	}

	if e.Observations, err = entityObservations(ctx, tx, e.ID); err != nil {
		return nil, err
	}
	if e.RelationsOutgoing, err = outgoingRelations(ctx, tx, e.ID); err != nil {
		return nil, err
	}
	if e.RelationsIncoming, err = incomingRelations(ctx, tx, e.ID); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntity removes an entity. Its observations and every relation it
// takes part in go with it through ON DELETE CASCADE, in the same statement.
func (s *Store) DeleteEntity(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete entity %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entity %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: entity %q not found", ErrNotFound, name)
	}
	return nil
}

func entityObservations(ctx context.Context, tx *sql.Tx, entityID string) ([]models.Observation, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, content, created_at FROM observations WHERE entity_id = ? ORDER BY id`,
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	obs := []models.Observation{}
	for rows.Next() {
		var o models.Observation
		if err := rows.Scan(&o.ID, &o.Content, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

func outgoingRelations(ctx context.Context, tx *sql.Tx, entityID string) ([]models.OutgoingRelation, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT r.id, r.relation_type, e.name
		 FROM relations r
		 JOIN entities e ON r.to_entity_id = e.id
		 WHERE r.from_entity_id = ?
		 ORDER BY r.rowid`,
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outgoing relations: %w", err)
	}
	defer rows.Close()

	rels := []models.OutgoingRelation{}
	for rows.Next() {
		var r models.OutgoingRelation
		if err := rows.Scan(&r.ID, &r.RelationType, &r.ToEntity); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

func incomingRelations(ctx context.Context, tx *sql.Tx, entityID string) ([]models.IncomingRelation, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT r.id, r.relation_type, e.name
		 FROM relations r
		 JOIN entities e ON r.from_entity_id = e.id
		 WHERE r.to_entity_id = ?
		 ORDER BY r.rowid`,
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query incoming relations: %w", err)
	}
	defer rows.Close()

	rels := []models.IncomingRelation{}
	for rows.Next() {
		var r models.IncomingRelation
		if err := rows.Scan(&r.ID, &r.RelationType, &r.FromEntity); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}
