package storage

import (
	"context"
	"fmt"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// ReadGraph returns every entity (newest first), every relation with both
// endpoint names, and store-wide counts. Everything is read in one
// transaction so the counts agree with the lists.
func (s *Store) ReadGraph(ctx context.Context) (*models.KnowledgeGraph, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	graph := &models.KnowledgeGraph{
		Entities:  []models.Entity{},
		Relations: []models.Relation{},
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, entity_type, created_at FROM entities ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	for rows.Next() {
		var e models.Entity
		if err := rows.Scan(&e.ID, &e.Name, &e.EntityType, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		graph.Entities = append(graph.Entities, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}

	relRows, err := tx.QueryContext(ctx,
		`SELECT r.id, f.name, t.name, r.relation_type, r.created_at
		 FROM relations r
		 JOIN entities f ON r.from_entity_id = f.id
		 JOIN entities t ON r.to_entity_id = t.id
		 ORDER BY r.rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	for relRows.Next() {
		var r models.Relation
		if err := relRows.Scan(&r.ID, &r.FromEntity, &r.ToEntity, &r.RelationType, &r.CreatedAt); err != nil {
			relRows.Close()
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		graph.Relations = append(graph.Relations, r)
	}
	relRows.Close()
	if err := relRows.Err(); err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}

	graph.Stats.EntityCount = len(graph.Entities)
	graph.Stats.RelationCount = len(graph.Relations)
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations`).Scan(&graph.Stats.ObservationCount); err != nil {
		return nil, fmt.Errorf("count observations: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM directive_runs`).Scan(&graph.Stats.DirectiveRunCount); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	return graph, nil
}
