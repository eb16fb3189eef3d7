package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// SearchRunLimit caps the directive runs returned by Search.
const SearchRunLimit = 20

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns query into a LIKE pattern matching it as a literal substring.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// Search matches query as a substring against entity names and types,
// observation content, and directive run names, notes and error messages.
// Comparison follows SQLite's LIKE, which ignores ASCII case.
func (s *Store) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	pattern := likePattern(query)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result := &models.SearchResult{
		Entities:     []models.Entity{},
		Observations: []models.Observation{},
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT DISTINCT id, name, entity_type, created_at FROM entities
		 WHERE name LIKE ? ESCAPE '\' OR entity_type LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC, id DESC`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	for rows.Next() {
		var e models.Entity
		if err := rows.Scan(&e.ID, &e.Name, &e.EntityType, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		result.Entities = append(result.Entities, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}

	obsRows, err := tx.QueryContext(ctx,
		`SELECT o.id, o.entity_id, e.name, o.content, o.created_at
		 FROM observations o
		 JOIN entities e ON o.entity_id = e.id
		 WHERE o.content LIKE ? ESCAPE '\'
		 ORDER BY o.id`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search observations: %w", err)
	}
	for obsRows.Next() {
		var o models.Observation
		if err := obsRows.Scan(&o.ID, &o.EntityID, &o.EntityName, &o.Content, &o.CreatedAt); err != nil {
			obsRows.Close()
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		result.Observations = append(result.Observations, o)
	}
	obsRows.Close()
	if err := obsRows.Err(); err != nil {
		return nil, fmt.Errorf("search observations: %w", err)
	}

	result.DirectiveRuns, err = queryRuns(ctx, tx,
		`SELECT `+runColumns+` FROM directive_runs
		 WHERE directive_name LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\' OR error_message LIKE ? ESCAPE '\'
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		pattern, pattern, pattern, SearchRunLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search runs: %w", err)
	}

	return result, nil
}
