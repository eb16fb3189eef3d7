package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/agent-memory/internal/storage"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search across entities, observations and directive runs",
		Long: `Find entities whose name or type contains the query, observations whose
content contains it, and the 20 most recent directive runs whose name, notes
or error message contain it. Matching is a plain substring match that
ignores ASCII case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.Search(ctx, args[0])
			})
		},
	}
}

// NewReadGraphCommand creates the read-graph command.
func NewReadGraphCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read-graph",
		Short: "Read the entire knowledge graph with statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.ReadGraph(ctx)
			})
		},
	}
}
