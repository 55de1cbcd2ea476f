// Package cli provides the command-line interface for sqlfront.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/internal/cli/commands"
	"github.com/queryscope/sqlfront/internal/cli/config"
	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlfront",
		Short: "sqlfront - SQL parsing and query analysis",
		Long: `sqlfront parses SQL into a typed AST and derives a structural
description of SELECT queries: conditions, output fields, tables, joins,
grouping, ordering, and a weighted complexity score.

SQL is read from the first argument, from a file path, or from stdin
when the argument is "-".`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			opts := &sqlfront.Options{
				Strict:  cfg.Strict,
				Dialect: cfg.Dialect,
			}
			if cfg.Verbose {
				opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}
			commands.Setup(cmd, cfg, opts)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: sqlfront.yaml)")
	flags.Bool("strict", false, "Reject trailing tokens after the statement")
	flags.String("dialect", "ansi", "Dialect label recorded on results")
	flags.StringP("output", "o", "text", "Output format (text|json)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewParseCommand(),
		commands.NewTokenizeCommand(),
		commands.NewAnalyzeCommand(),
		commands.NewValidateCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
