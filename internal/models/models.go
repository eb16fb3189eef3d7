package models

// Run statuses accepted by the directive run log.
const (
	RunStarted = "started"
	RunSuccess = "success"
	RunFailed  = "failed"
	RunPartial = "partial"
)

// RunStatuses lists every valid directive run status.
var RunStatuses = []string{RunStarted, RunSuccess, RunFailed, RunPartial}

// ValidRunStatus reports whether s is one of RunStatuses.
func ValidRunStatus(s string) bool {
	for _, v := range RunStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Entity represents a node in the knowledge graph.
type Entity struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	EntityType   string        `json:"type"`
	Observations []Observation `json:"observations,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

// Observation represents a fact attached to an entity.
type Observation struct {
	ID         int64  `json:"id"`
	EntityID   string `json:"entity_id,omitempty"`
	EntityName string `json:"entity_name,omitempty"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

// Relation represents a directed edge between two entities, with both
// endpoints resolved to names.
type Relation struct {
	ID           string `json:"id"`
	FromEntity   string `json:"from_entity"`
	ToEntity     string `json:"to_entity"`
	RelationType string `json:"relation_type"`
	CreatedAt    string `json:"created_at"`
}

// OutgoingRelation is an edge seen from its source entity.
type OutgoingRelation struct {
	ID           string `json:"id"`
	RelationType string `json:"relation_type"`
	ToEntity     string `json:"to_entity"`
}

// IncomingRelation is an edge seen from its target entity.
type IncomingRelation struct {
	ID           string `json:"id"`
	RelationType string `json:"relation_type"`
	FromEntity   string `json:"from_entity"`
}

// EntityDetail is an entity with its observations and relations in both directions.
type EntityDetail struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	EntityType        string             `json:"type"`
	CreatedAt         string             `json:"created_at"`
	Observations      []Observation      `json:"observations"`
	RelationsOutgoing []OutgoingRelation `json:"relations_outgoing"`
	RelationsIncoming []IncomingRelation `json:"relations_incoming"`
}

// DirectiveRun is one execution record of a directive.
type DirectiveRun struct {
	ID            int64   `json:"id"`
	DirectiveName string  `json:"directive_name"`
	StartedAt     string  `json:"started_at"`
	EndedAt       *string `json:"ended_at"`
	Status        string  `json:"status"`
	ErrorMessage  *string `json:"error_message"`
	Notes         *string `json:"notes"`
	InputSummary  *string `json:"input_summary"`
	OutputSummary *string `json:"output_summary"`
}

// RunDetails carries the optional diagnostic fields of a run.
// Empty strings are stored as NULL.
type RunDetails struct {
	Notes         string `json:"notes,omitempty"`
	ErrorMessage  string `json:"error,omitempty"`
	InputSummary  string `json:"input,omitempty"`
	OutputSummary string `json:"output,omitempty"`
}

// RunFilter narrows a run history query. Empty fields match everything.
type RunFilter struct {
	Directive string
	Status    string
	Limit     int
}

// SearchResult holds the three independent lists produced by a search.
type SearchResult struct {
	Entities      []Entity       `json:"entities"`
	Observations  []Observation  `json:"observations"`
	DirectiveRuns []DirectiveRun `json:"directive_runs"`
}

// GraphStats holds aggregate counts over the whole store.
type GraphStats struct {
	EntityCount       int `json:"entity_count"`
	RelationCount     int `json:"relation_count"`
	ObservationCount  int `json:"observation_count"`
	DirectiveRunCount int `json:"directive_runs_count"`
}

// KnowledgeGraph represents the full graph plus its statistics.
type KnowledgeGraph struct {
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
	Stats     GraphStats `json:"stats"`
}
