package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/agent-memory/internal/storage"
	"github.com/wagnerlima/agent-memory/internal/tools"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// New creates a fully configured MCP server with all tools registered.
func New(store *storage.Store) *mcp.Server {
	kt := &tools.KnowledgeTools{Store: store}
	rt := &tools.RunTools{Store: store}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "agent-memory",
		Version: Version,
	}, nil)

	// Knowledge graph tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_entity",
		Description: "Create a uniquely named entity with optional initial observations",
	}, kt.CreateEntity)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_entity",
		Description: "Get an entity with its observations and incoming/outgoing relations",
	}, kt.GetEntity)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_entity",
		Description: "Delete an entity together with its observations and relations",
	}, kt.DeleteEntity)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_observation",
		Description: "Add an observation to an existing entity",
	}, kt.AddObservation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_observation",
		Description: "Delete an observation by id",
	}, kt.DeleteObservation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_relation",
		Description: "Create a directed, typed relation between two existing entities",
	}, kt.CreateRelation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search",
		Description: "Substring search over entities, observations and directive runs",
	}, kt.Search)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_graph",
		Description: "Read every entity and relation plus store statistics",
	}, kt.ReadGraph)

	// Directive run tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "start_run",
		Description: "Record the start of a directive run and return its id",
	}, rt.StartRun)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "end_run",
		Description: "Complete a started directive run with its terminal status",
	}, rt.EndRun)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "log_run",
		Description: "Log a finished directive run after the fact",
	}, rt.LogRun)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_runs",
		Description: "List directive runs newest first, optionally filtered by directive and status",
	}, rt.GetRuns)

	return srv
}
