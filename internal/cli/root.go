package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"todolists/internal/core/port"
	"todolists/internal/infrastructure"
	"todolists/pkg/config"
)

// ServiceFactory builds the service a command runs against. The returned func
// releases whatever the service holds.
type ServiceFactory func(ctx context.Context, opts *RootOptions) (port.TodoListService, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Backend    string
	SessionID  string

	Open ServiceFactory
}

// NewRootCommand creates the root command wired to the configured backend.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithFactory(openService)
}

func NewRootCommandWithFactory(factory ServiceFactory) *cobra.Command {
	opts := &RootOptions{Open: factory}

	cmd := &cobra.Command{
		Use:   "todolists",
		Short: "Manage todo lists",
		Long:  "Manage todo lists stored in a relational database or in a session store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Backend {
			case "", config.BackendDurable, config.BackendEphemeral:
				return nil
			default:
				return fmt.Errorf("invalid backend %q: must be %s or %s", opts.Backend, config.BackendDurable, config.BackendEphemeral)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "persistence backend (durable|ephemeral)")
	cmd.PersistentFlags().StringVar(&opts.SessionID, "session", "cli", "session id for the ephemeral backend")

	cmd.AddCommand(NewListsCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCreateListCommand(opts))
	cmd.AddCommand(NewRenameListCommand(opts))
	cmd.AddCommand(NewDeleteListCommand(opts))
	cmd.AddCommand(NewAddTodoCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewDeleteTodoCommand(opts))
	cmd.AddCommand(NewCompleteAllCommand(opts))

	return cmd
}

func openService(ctx context.Context, opts *RootOptions) (port.TodoListService, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)

	if err != nil {
		return nil, nil, err
	}

	if opts.Backend != "" {
		cfg.Backend = opts.Backend

		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger, err := config.NewLogger(cfg)

	if err != nil {
		return nil, nil, err
	}

	c, err := infrastructure.NewContainer(ctx, cfg, logger, infrastructure.Options{SessionID: opts.SessionID})

	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	return c.Service, func() {
		c.Close(ctx)
		logger.Sync()
	}, nil
}

// withService opens the service for the duration of one command.
func withService(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, svc port.TodoListService) error) error {
	ctx := cmd.Context()

	if ctx == nil {
		ctx = context.Background()
	}

	svc, release, err := opts.Open(ctx, opts)

	if err != nil {
		return WrapExitError(ExitFailure, "failed to open storage", err)
	}

	defer release()

	return fn(ctx, svc)
}
