package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <sql|file|->",
		Short: "Parse SQL and print the AST",
		Example: `  # Parse an inline statement
  sqlfront parse "SELECT id, name FROM users WHERE age > 18"

  # Parse a file in strict mode
  sqlfront parse query.sql --strict

  # Parse from stdin as JSON
  cat query.sql | sqlfront parse - -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt := runtime(cmd)
			result := sqlfront.Parse(sql, rt.Opts)

			if rt.Cfg.Output == "json" {
				return writeJSON(cmd, result)
			}

			if !result.Success {
				return diagnosticErr(result.Errors)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tables:  %s\n", strings.Join(result.Tables, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "columns: %s\n", strings.Join(result.Columns, ", "))
			return writeJSON(cmd, result.AST)
		},
	}
}

// writeJSON renders v as indented JSON on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
