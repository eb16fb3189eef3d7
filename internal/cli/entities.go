package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/agent-memory/internal/storage"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the database schema",
		Long: `Create the database file and its tables and indexes.

Running init again is harmless: existing tables and data are left as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				if err := s.Init(ctx); err != nil {
					return nil, err
				}
				return map[string]string{"message": "Database initialized at " + s.Path()}, nil
			})
		},
	}
}

// NewAddEntityCommand creates the add-entity command.
func NewAddEntityCommand(opts *RootOptions) *cobra.Command {
	var observations []string

	cmd := &cobra.Command{
		Use:   "add-entity <name> <type>",
		Short: "Create a new entity",
		Long: `Create a uniquely named entity of the given type (person, project,
api, tool, ...). Initial observations are stored together with it.

Example:
  agent-memory add-entity user person --obs "Prefers concise responses"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.CreateEntity(ctx, args[0], args[1], observations...)
			})
		},
	}

	cmd.Flags().StringArrayVar(&observations, "obs", nil, "initial observation (repeatable)")
	return cmd
}

// NewGetEntityCommand creates the get-entity command.
func NewGetEntityCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get-entity <name>",
		Short: "Get entity details with observations and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.GetEntity(ctx, args[0])
			})
		},
	}
}

// NewDeleteEntityCommand creates the delete-entity command.
func NewDeleteEntityCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-entity <name>",
		Short: "Delete an entity with its observations and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				if err := s.DeleteEntity(ctx, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"deleted": args[0]}, nil
			})
		},
	}
}

// NewAddObservationCommand creates the add-observation command.
func NewAddObservationCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-observation <entity> <content>",
		Short: "Add an observation to an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.AddObservation(ctx, args[0], args[1])
			})
		},
	}
}

// NewDeleteObservationCommand creates the delete-observation command.
func NewDeleteObservationCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-observation <id>",
		Short: "Delete an observation by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				if err := s.DeleteObservation(ctx, id); err != nil {
					return nil, err
				}
				return map[string]int64{"deleted_observation_id": id}, nil
			})
		},
	}
}

// NewAddRelationCommand creates the add-relation command.
func NewAddRelationCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-relation <from> <to> <relation-type>",
		Short: "Create a relation between two entities",
		Long: `Create a directed relation of the given type (uses, owns, depends_on, ...).
Both entities must exist. The same from/to/type triple can only be added once.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *storage.Store) (any, error) {
				return s.CreateRelation(ctx, args[0], args[1], args[2])
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be an integer", s))
	}
	return id, nil
}
