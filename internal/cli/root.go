// AngelaMos | 2026
// root.go

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type rootOptions struct {
	configPath   string
	envFile      string
	apiURL       string
	sessionStore string
	minimal      bool
}

// NewRootCmd builds the mmle command tree. Every shell command is also
// available as a one-shot subcommand that reuses the persisted session.
func NewRootCmd(streams Streams) *cobra.Command {
	opts := &rootOptions{}
	var (
		app       *App
		telemetry *core.Telemetry
	)

	root := &cobra.Command{
		Use:           "mmle",
		Short:         "Mines and Minerals Laws ecosystem client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			logger := core.NewLogger(cfg.Log, streams.Err)
			tel, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App, "client")
			if err != nil {
				logger.Warn("failed to initialize telemetry", "error", err)
			} else {
				telemetry = tel
			}

			app, err = NewApp(ctx, cfg, streams, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if telemetry != nil {
				_ = telemetry.Shutdown(cmd.Context()) //nolint:errcheck // best effort on exit
			}
			if app != nil {
				return app.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before the config")
	pf.StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides config)")
	pf.StringVar(&opts.sessionStore, "session-store", "", "session store: file, redis or memory")
	pf.BoolVar(&opts.minimal, "minimal", false, "skip the introduction screen")

	root.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Shell(cmd.Context())
		},
	})

	for _, c := range commands {
		root.AddCommand(oneShot(c, streams, &app))
	}
	return root
}

func oneShot(c command, streams Streams, app **App) *cobra.Command {
	return &cobra.Command{
		Use:   strings.TrimSpace(c.name + " " + c.usage),
		Short: c.short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.run(cmd.Context(), *app, args)
			if err == nil {
				return nil
			}
			if userFacing(err) {
				fmt.Fprintf(streams.Err, "error: %v\n", err)
			}
			return &reportedError{err: err}
		},
	}
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.apiURL != "" {
		cfg.Client.APIURL = opts.apiURL
	}
	if opts.sessionStore != "" {
		cfg.Client.SessionStore = opts.sessionStore
	}
	if opts.minimal {
		cfg.Client.MinimalStart = true
	}
	return cfg, nil
}

// Execute runs the CLI with ctx and returns the process exit code.
func Execute(ctx context.Context, streams Streams, args []string) int {
	root := NewRootCmd(streams)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	if err := root.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(streams.Err, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// reportedError marks a command failure the user has already been shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }
