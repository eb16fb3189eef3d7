package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/agent-memory/internal/config"
	"github.com/wagnerlima/agent-memory/internal/storage"
)

// RootOptions holds global flags and the resolved configuration.
type RootOptions struct {
	DBPath     string
	ConfigPath string
	Verbose    bool

	Config *config.Config
}

// NewRootCommand creates the root command for the agent-memory CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "agent-memory",
		Short: "Agent memory - SQLite knowledge graph and directive run log",
		Long: `A persistent memory for autonomous agents: named entities with
observations, typed relations between them, and a log of directive runs.

Every command prints one JSON document. Conflicts and missing references
are reported as {"error": ...} documents; other failures exit non-zero.

Examples:
  agent-memory init
  agent-memory add-entity user person --obs "Prefers concise responses"
  agent-memory add-observation user "Works on data projects"
  agent-memory add-relation user project_x owns
  agent-memory log-run scrape_website success --notes "Scraped 50 pages"
  agent-memory search scrape
  agent-memory get-runs scrape_website --limit 5
  agent-memory read-graph`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the SQLite database (overrides config and "+config.EnvDBPath+")")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file (default $"+config.EnvConfig+")")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddEntityCommand(opts))
	cmd.AddCommand(NewGetEntityCommand(opts))
	cmd.AddCommand(NewDeleteEntityCommand(opts))
	cmd.AddCommand(NewAddObservationCommand(opts))
	cmd.AddCommand(NewDeleteObservationCommand(opts))
	cmd.AddCommand(NewAddRelationCommand(opts))
	cmd.AddCommand(NewLogRunCommand(opts))
	cmd.AddCommand(NewStartRunCommand(opts))
	cmd.AddCommand(NewEndRunCommand(opts))
	cmd.AddCommand(NewGetRunsCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewReadGraphCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// setup resolves configuration and installs the logger. Flags win over
// the environment, which wins over the config file.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	o.Config = cfg

	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Debug("configuration resolved", "db", cfg.DBPath, "log_level", level.String())
	return nil
}

// withStore opens the database for one operation, runs op, writes its
// result and closes the database on every path.
func (o *RootOptions) withStore(cmd *cobra.Command, op func(ctx context.Context, s *storage.Store) (any, error)) error {
	s, err := storage.Open(o.Config.DBPath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open memory db", err)
	}
	defer s.Close()

	result, err := op(cmd.Context(), s)
	if err != nil {
		slog.Debug("operation failed", "command", cmd.Name(), "error", err)
	}
	return writeResult(cmd.OutOrStdout(), result, err)
}
