package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/agent-memory/internal/storage"
)

// KnowledgeTools holds references needed by knowledge graph tool handlers.
type KnowledgeTools struct {
	Store *storage.Store
}

// --- Input types ---

type CreateEntityInput struct {
	Name         string   `json:"name" jsonschema:"Unique entity name"`
	EntityType   string   `json:"entity_type" jsonschema:"Entity type (e.g., person, tool, project)"`
	Observations []string `json:"observations,omitempty" jsonschema:"Initial observations about the entity"`
}

type EntityNameInput struct {
	Name string `json:"name" jsonschema:"Exact entity name"`
}

type AddObservationInput struct {
	EntityName string `json:"entity_name" jsonschema:"Name of the entity"`
	Content    string `json:"content" jsonschema:"Observation text"`
}

type DeleteObservationInput struct {
	ID int64 `json:"id" jsonschema:"Observation id"`
}

type CreateRelationInput struct {
	From         string `json:"from" jsonschema:"Source entity name"`
	To           string `json:"to" jsonschema:"Target entity name"`
	RelationType string `json:"relation_type" jsonschema:"Relation type in active voice (e.g., uses, owns, depends_on)"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"Substring to look for in entities, observations and directive runs"`
}

// --- Handlers ---

func (t *KnowledgeTools) CreateEntity(ctx context.Context, _ *mcp.CallToolRequest, input CreateEntityInput) (*mcp.CallToolResult, any, error) {
	entity, err := t.Store.CreateEntity(ctx, input.Name, input.EntityType, input.Observations...)
	if err != nil {
		return storeError("create_entity", err)
	}
	return toolJSON(entity)
}

func (t *KnowledgeTools) GetEntity(ctx context.Context, _ *mcp.CallToolRequest, input EntityNameInput) (*mcp.CallToolResult, any, error) {
	entity, err := t.Store.GetEntity(ctx, input.Name)
	if err != nil {
		return storeError("get_entity", err)
	}
	return toolJSON(entity)
}

func (t *KnowledgeTools) DeleteEntity(ctx context.Context, _ *mcp.CallToolRequest, input EntityNameInput) (*mcp.CallToolResult, any, error) {
	if err := t.Store.DeleteEntity(ctx, input.Name); err != nil {
		return storeError("delete_entity", err)
	}
	return toolText(fmt.Sprintf("Deleted entity %q.", input.Name)), nil, nil
}

func (t *KnowledgeTools) AddObservation(ctx context.Context, _ *mcp.CallToolRequest, input AddObservationInput) (*mcp.CallToolResult, any, error) {
	obs, err := t.Store.AddObservation(ctx, input.EntityName, input.Content)
	if err != nil {
		return storeError("add_observation", err)
	}
	return toolJSON(obs)
}

func (t *KnowledgeTools) DeleteObservation(ctx context.Context, _ *mcp.CallToolRequest, input DeleteObservationInput) (*mcp.CallToolResult, any, error) {
	if err := t.Store.DeleteObservation(ctx, input.ID); err != nil {
		return storeError("delete_observation", err)
	}
	return toolText(fmt.Sprintf("Deleted observation %d.", input.ID)), nil, nil
}

func (t *KnowledgeTools) CreateRelation(ctx context.Context, _ *mcp.CallToolRequest, input CreateRelationInput) (*mcp.CallToolResult, any, error) {
	rel, err := t.Store.CreateRelation(ctx, input.From, input.To, input.RelationType)
	if err != nil {
		return storeError("create_relation", err)
	}
	return toolJSON(rel)
}

func (t *KnowledgeTools) Search(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	result, err := t.Store.Search(ctx, input.Query)
	if err != nil {
		return storeError("search", err)
	}
	return toolJSON(result)
}

func (t *KnowledgeTools) ReadGraph(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	graph, err := t.Store.ReadGraph(ctx)
	if err != nil {
		return storeError("read_graph", err)
	}
	return toolJSON(graph)
}
