// Package main provides the directory binary: the HTTP admin service plus
// commands that edit the stored roles and users directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/directory/internal/directory/app"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appName = "directory"

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Role and user directory admin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		serveCmd(g),
		rolesCmd(g),
		usersCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, app.BuildVersion)
			},
		},
	)

	return cmd
}

func serveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP admin service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(g.configPath)
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

// openDirectory loads the configured directory for a one-shot command. Logs
// go to stderr so command output stays clean.
func openDirectory(ctx context.Context, g *globals) (*app.Directory, context.Context, error) {
	cfg, err := app.LoadConfig(g.configPath)
	if err != nil {
		return nil, ctx, err
	}

	logger := slog.New(slogx.NewHandler(slogx.Config{
		Level:  cfg.LogLevel,
		Format: "text",
	}, os.Stderr))

	dir, err := app.OpenDirectory(ctx, cfg, logger)
	if err != nil {
		return nil, ctx, err
	}
	return dir, slogx.WithContext(ctx, logger), nil
}
