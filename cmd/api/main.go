// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgrams-coder/aicmmlr/internal/auth"
	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/user"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Mines and Minerals Laws ecosystem backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "config.yaml", "path to config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before the config")

	root.AddCommand(
		serveCmd(opts),
		migrateCmd(opts),
		keygenCmd(opts),
		createAdminCmd(opts),
	)
	return root
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			if err := core.Migrate(cfg.Database.URL); err != nil {
				return err
			}
			version, dirty, err := core.MigrationVersion(cfg.Database.URL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	}
}

func keygenCmd(opts *rootOptions) *cobra.Command {
	var publicPath string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 signing key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			privatePath := cfg.JWT.PrivateKeyPath
			if publicPath == "" {
				publicPath = privatePath + ".pub"
			}
			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&publicPath, "public", "", "public key output path")
	return cmd
}

func createAdminCmd(opts *rootOptions) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			db, err := core.NewDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			jwtManager, err := auth.NewJWTManager(cfg.JWT)
			if err != nil {
				return err
			}

			userSvc := user.NewService(user.NewRepository(db.DB), cfg.Library.TrialPeriod)
			authSvc := auth.NewService(jwtManager, userSvc, nil)

			admin, err := authSvc.CreateAdmin(ctx, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "Administrator", "display name")
	f.StringVar(&email, "email", "", "login email")
	f.StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("email")    //nolint:errcheck // flag exists
	_ = cmd.MarkFlagRequired("password") //nolint:errcheck // flag exists
	return cmd
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	path := opts.configPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = ""
	}
	return config.Load(path)
}
