// Package commands implements the sqlfront subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/internal/cli/config"
	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// runtimeKey stores the resolved runtime in the command context.
type runtimeKey struct{}

// Runtime carries the loaded config and façade options into subcommands.
type Runtime struct {
	Cfg  *config.Config
	Opts *sqlfront.Options
}

// Setup stores the runtime on the command tree's context. Called from the
// root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, cfg *config.Config, opts *sqlfront.Options) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, runtimeKey{}, &Runtime{Cfg: cfg, Opts: opts}))
}

// runtime retrieves the runtime, falling back to defaults when the command
// runs outside the root's pre-run (unit tests).
func runtime(cmd *cobra.Command) *Runtime {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
			return rt
		}
	}
	return &Runtime{Cfg: &config.Config{Output: "text"}, Opts: &sqlfront.Options{}}
}

// readInput resolves the SQL source: a file path if the argument names an
// existing file, stdin for "-", otherwise the argument itself.
func readInput(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", arg, err)
		}
		return string(data), nil
	}

	return arg, nil
}
