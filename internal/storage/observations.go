package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// AddObservation appends an observation to the named entity.
func (s *Store) AddObservation(ctx context.Context, entityName, content string) (*models.Observation, error) {
	obs := models.Observation{EntityName: entityName, Content: content}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO observations (entity_id, content)
		 SELECT id, ? FROM entities WHERE name = ?
		 RETURNING id, entity_id, created_at`,
		content, entityName,
	).Scan(&obs.ID, &obs.EntityID, &obs.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: entity %q not found", ErrNotFound, entityName)
	}
	if err != nil {
		return nil, fmt.Errorf("insert observation: %w", classify(err))
	}
	return &obs, nil
}

// DeleteObservation removes a single observation by id.
func (s *Store) DeleteObservation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM observations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete observation %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete observation %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: observation %d not found", ErrNotFound, id)
	}
	return nil
}
