package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/together/internal/client/config"
	"github.com/dmitrijs2005/together/internal/logging"
)

// AppFactory builds the App a command runs against.
type AppFactory func(ctx context.Context) (*App, error)

// DefaultAppFactory loads configuration from the process arguments and
// environment and wires a real App.
func DefaultAppFactory(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromOS()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return NewApp(ctx, cfg, logger)
}

// configFlagsUsage lists the flags owned by the config loader; cobra lets
// them through untouched.
const configFlagsUsage = `
Configuration flags (also TOGETHER_* env vars or -c <file>):
  -a string    REST API base URL
  -d string    local database path
  -p string    platform: web or mobile
  -l string    locale (fr, en)
  -t duration  HTTP request timeout
  -i int       online check interval in seconds
  -g           drop superseded session resolutions
  -v string    log level
`

// NewRootCommand returns the "together" command tree. Without a
// subcommand it starts the interactive shell.
func NewRootCommand(factory AppFactory) *cobra.Command {
	withApp := func(run func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := factory(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			return run(ctx, a, args)
		}
	}

	root := &cobra.Command{
		Use:   "together",
		Short: "Together client - sign in and browse role areas",
		Long: `together resolves your Together session from stored credentials and
lets you enter the admin, association, volunteer and guest areas the way the
app would, including redirects and placeholders.` + configFlagsUsage,
		SilenceUsage: true,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Shell(ctx)
		}),
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Shell(ctx)
			}),
		},
		&cobra.Command{
			Use:   "login",
			Short: "Sign in with username and password",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Login(ctx)
			}),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget stored credentials",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Logout(ctx)
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Resolve and print the current identity",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Refetch(ctx)
			}),
		},
		&cobra.Command{
			Use:       "open <area>",
			Short:     "Resolve the session and enter an area",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"admin", "association", "volunteer", "guest"},
			RunE: withApp(func(ctx context.Context, a *App, args []string) error {
				a.session.Refetch(ctx)
				return a.Open(ctx, args[0])
			}),
		},
	)

	allowConfigFlags(root)
	return root
}

// allowConfigFlags makes every command in the tree ignore flags it does not
// define; the config loader parses those from os.Args itself.
func allowConfigFlags(cmd *cobra.Command) {
	cmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	for _, c := range cmd.Commands() {
		allowConfigFlags(c)
	}
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCommand(DefaultAppFactory).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
