package cli

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/wagnerlima/agent-memory/internal/server"
	"github.com/wagnerlima/agent-memory/internal/storage"
)

// NewServeCommand creates the serve command.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the memory store as MCP tools over stdio",
		Long: `Run an MCP server on stdin/stdout exposing every memory operation as a
tool. The database stays open until the client disconnects or the process
is interrupted. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.Open(opts.Config.DBPath)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to open memory db", err)
			}
			defer s.Close()

			srv := server.New(s)
			slog.Info("memory MCP server starting (stdio)", "db", s.Path())
			if err := srv.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return WrapExitError(ExitFailure, "server error", err)
			}
			slog.Info("memory MCP server stopped")
			return nil
		},
	}
}
