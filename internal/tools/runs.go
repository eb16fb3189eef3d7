package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/agent-memory/internal/models"
	"github.com/wagnerlima/agent-memory/internal/storage"
)

// RunTools holds references needed by directive run tool handlers.
type RunTools struct {
	Store *storage.Store
}

// --- Input types ---

type StartRunInput struct {
	Directive    string `json:"directive" jsonschema:"Directive name (e.g., scrape_website)"`
	InputSummary string `json:"input_summary,omitempty" jsonschema:"Summary of the run input"`
}

type EndRunInput struct {
	ID            int64  `json:"id" jsonschema:"Run id returned by start_run"`
	Status        string `json:"status" jsonschema:"Terminal status: success, failed or partial"`
	Notes         string `json:"notes,omitempty" jsonschema:"Execution notes"`
	ErrorMessage  string `json:"error_message,omitempty" jsonschema:"Error message if the run failed"`
	OutputSummary string `json:"output_summary,omitempty" jsonschema:"Summary of the run output"`
}

type LogRunInput struct {
	Directive     string `json:"directive" jsonschema:"Directive name"`
	Status        string `json:"status" jsonschema:"One of started, success, failed, partial"`
	Notes         string `json:"notes,omitempty" jsonschema:"Execution notes"`
	ErrorMessage  string `json:"error_message,omitempty" jsonschema:"Error message if the run failed"`
	InputSummary  string `json:"input_summary,omitempty" jsonschema:"Summary of the run input"`
	OutputSummary string `json:"output_summary,omitempty" jsonschema:"Summary of the run output"`
}

type GetRunsInput struct {
	Directive string `json:"directive,omitempty" jsonschema:"Exact directive name; omit for all directives"`
	Status    string `json:"status,omitempty" jsonschema:"Exact status filter"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of runs (default 10)"`
}

// --- Handlers ---

func (t *RunTools) StartRun(ctx context.Context, _ *mcp.CallToolRequest, input StartRunInput) (*mcp.CallToolResult, any, error) {
	run, err := t.Store.StartRun(ctx, input.Directive, input.InputSummary)
	if err != nil {
		return storeError("start_run", err)
	}
	return toolJSON(run)
}

func (t *RunTools) EndRun(ctx context.Context, _ *mcp.CallToolRequest, input EndRunInput) (*mcp.CallToolResult, any, error) {
	if !models.ValidRunStatus(input.Status) {
		return toolError("Invalid status %q: must be one of %s", input.Status, strings.Join(models.RunStatuses, ", ")), nil, nil
	}
	run, err := t.Store.EndRun(ctx, input.ID, input.Status, models.RunDetails{
		Notes:         input.Notes,
		ErrorMessage:  input.ErrorMessage,
		OutputSummary: input.OutputSummary,
	})
	if err != nil {
		return storeError("end_run", err)
	}
	return toolJSON(run)
}

func (t *RunTools) LogRun(ctx context.Context, _ *mcp.CallToolRequest, input LogRunInput) (*mcp.CallToolResult, any, error) {
	if !models.ValidRunStatus(input.Status) {
		return toolError("Invalid status %q: must be one of %s", input.Status, strings.Join(models.RunStatuses, ", ")), nil, nil
	}
	run, err := t.Store.LogRun(ctx, input.Directive, input.Status, models.RunDetails{
		Notes:         input.Notes,
		ErrorMessage:  input.ErrorMessage,
		InputSummary:  input.InputSummary,
		OutputSummary: input.OutputSummary,
	})
	if err != nil {
		return storeError("log_run", err)
	}
	return toolJSON(run)
}

func (t *RunTools) GetRuns(ctx context.Context, _ *mcp.CallToolRequest, input GetRunsInput) (*mcp.CallToolResult, any, error) {
	runs, err := t.Store.GetRuns(ctx, models.RunFilter{
		Directive: input.Directive,
		Status:    input.Status,
		Limit:     input.Limit,
	})
	if err != nil {
		return storeError("get_runs", err)
	}
	return toolJSON(runs)
}
