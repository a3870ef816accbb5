package main

import (
	"context"
	"fmt"

	"github.com/ganatecnica/obradiary/internal/buildinfo"
	"github.com/ganatecnica/obradiary/internal/server"
	"github.com/ganatecnica/obradiary/internal/server/config"
	"github.com/spf13/cobra"
)

// runServe and runMigrate are swapped in tests.
var (
	runServe = func(ctx context.Context, cfg *config.Config) error {
		app, err := server.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Run(ctx)
	}

	runMigrate = func(ctx context.Context, cfg *config.Config) error {
		app, err := server.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Migrate(ctx)
	}
)

const flagsHelp = `Flags (also settable through DIARY_* environment variables or -c <file>):
  -c, -config  config file (.json, .yaml, .yml)
  -a  HTTP address            -r  gRPC health address
  -k  database driver (pgx|sqlite)
  -d  database DSN
  -u  S3 user    -p  S3 password    -b  S3 bucket
  -n  S3 region  -e  S3 endpoint
  -o  log backend (slog|zap)  -l  log level
  -z  timezone
  -t  request timeout, seconds
  -x  presign expiry, minutes`

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "obradiary",
		Short: "Construction-site attendance diary API",
		Long: `obradiary records when workers clock in and out on construction projects
and serves per-project and per-worker diary reports over HTTP.

Running it without a subcommand is the same as "obradiary serve".`,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, args)
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "serve [flags]",
		Short:              "Run the HTTP API and the gRPC health endpoint",
		Long:               "Applies pending migrations, then serves until SIGINT or SIGTERM.\n\n" + flagsHelp,
		DisableFlagParsing: true,
		RunE:               serve,
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate [flags]",
		Short:              "Apply schema migrations and exit",
		Long:               flagsHelp,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpRequested(args) {
				return cmd.Help()
			}
			return runMigrate(cmd.Context(), config.LoadConfig(args))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func serve(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	buildinfo.PrintBuildData(cmd.OutOrStdout())
	if err := runServe(cmd.Context(), config.LoadConfig(args)); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// helpRequested replaces cobra's help flag while flag parsing is left to
// the config loader.
func helpRequested(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "-help" {
			return true
		}
	}
	return false
}
