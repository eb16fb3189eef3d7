package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/agent-memory/internal/models"
	"github.com/wagnerlima/agent-memory/internal/storage"
)

// NewLogRunCommand creates the log-run command.
func NewLogRunCommand(opts *RootOptions) *cobra.Command {
	var details models.RunDetails

	cmd := &cobra.Command{
		Use:   "log-run <directive> <status>",
		Short: "Log a directive execution after the fact",
		Long: `Record one finished directive run. Start and end time are both set to now.

Status is one of: started, success, failed, partial.

Example:
  agent-memory log-run scrape_website success --notes "Scraped 50 pages"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStatus(args[1]); err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.LogRun(ctx, args[0], args[1], details)
			})
		},
	}

	cmd.Flags().StringVar(&details.Notes, "notes", "", "execution notes")
	cmd.Flags().StringVar(&details.ErrorMessage, "error", "", "error message if failed")
	cmd.Flags().StringVar(&details.InputSummary, "input", "", "input summary")
	cmd.Flags().StringVar(&details.OutputSummary, "output", "", "output summary")
	return cmd
}

// NewStartRunCommand creates the start-run command.
func NewStartRunCommand(opts *RootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "start-run <directive>",
		Short: "Record the start of a directive run",
		Long: `Insert a run in status "started" and print it. Pass its id to end-run
when the directive finishes; a run that is never ended stays "started".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.StartRun(ctx, args[0], input)
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input summary")
	return cmd
}

// NewEndRunCommand creates the end-run command.
func NewEndRunCommand(opts *RootOptions) *cobra.Command {
	var details models.RunDetails

	cmd := &cobra.Command{
		Use:   "end-run <id> <status>",
		Short: "Complete a started directive run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := checkStatus(args[1]); err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.EndRun(ctx, id, args[1], details)
			})
		},
	}

	cmd.Flags().StringVar(&details.Notes, "notes", "", "execution notes")
	cmd.Flags().StringVar(&details.ErrorMessage, "error", "", "error message if failed")
	cmd.Flags().StringVar(&details.OutputSummary, "output", "", "output summary")
	return cmd
}

// NewGetRunsCommand creates the get-runs command.
func NewGetRunsCommand(opts *RootOptions) *cobra.Command {
	var filter models.RunFilter

	cmd := &cobra.Command{
		Use:   "get-runs [directive]",
		Short: "Get directive run history, newest first",
		Long: `List directive runs, most recent first. Without a directive every
directive is included. --limit defaults to default_run_limit from the
config (10 unless configured).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.Directive = args[0]
			}
			if filter.Status != "" {
				if err := checkStatus(filter.Status); err != nil {
					return err
				}
			}
			if filter.Limit <= 0 {
				filter.Limit = opts.Config.DefaultRunLimit
			}
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.GetRuns(ctx, filter)
			})
		},
	}

	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "max results (default from config, 10)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status ("+strings.Join(models.RunStatuses, "|")+")")
	return cmd
}

// checkStatus rejects statuses outside the run status enumeration.
func checkStatus(status string) error {
	if models.ValidRunStatus(status) {
		return nil
	}
	return NewExitError(ExitCommandError,
		fmt.Sprintf("invalid status %q: must be one of %s", status, strings.Join(models.RunStatuses, ", ")))
}
