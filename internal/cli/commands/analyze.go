package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <sql|file|->",
		Short: "Analyze a query's structure and complexity",
		Example: `  # Summarize a query
  sqlfront analyze "SELECT u.name, COUNT(o.id) FROM users u LEFT JOIN orders o ON u.id = o.user_id GROUP BY u.name"

  # Full analysis as JSON
  sqlfront analyze query.sql -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt := runtime(cmd)
			result := sqlfront.Analyze(sql, rt.Opts)

			if rt.Cfg.Output == "json" {
				return writeJSON(cmd, result)
			}

			if !result.Success {
				return diagnosticErr(result.Errors)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "statement:  %s\n", result.Query.Type)
			fmt.Fprintf(out, "complexity: %s (score %d)\n", result.Complexity.Level, result.Complexity.Score)
			for _, factor := range result.Complexity.Factors {
				fmt.Fprintf(out, "  - %s\n", factor)
			}

			a := result.Analysis

			if len(a.Fields) > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetTitle("Fields")
				t.AppendHeader(table.Row{"NAME", "ALIAS", "TYPE", "AGGREGATE"})
				for _, f := range a.Fields {
					t.AppendRow(table.Row{f.Name, f.Alias, f.Type, f.Aggregation})
				}
				t.Render()
			}

			if len(a.Conditions) > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetTitle("Conditions")
				t.AppendHeader(table.Row{"FIELD", "OPERATOR", "VALUE", "TYPE"})
				for _, c := range a.Conditions {
					t.AppendRow(table.Row{c.Field, c.Operator, fmt.Sprintf("%v", c.Value), c.Type})
				}
				t.Render()
			}

			if len(a.Tables) > 0 {
				names := make([]string, len(a.Tables))
				for i, tbl := range a.Tables {
					names[i] = tbl.Name
					if tbl.Alias != "" {
						names[i] += " AS " + tbl.Alias
					}
				}
				fmt.Fprintf(out, "tables: %s\n", strings.Join(names, ", "))
			}

			for _, j := range a.Joins {
				fmt.Fprintf(out, "join:   %s JOIN %s\n", j.Type, j.Table)
			}

			return nil
		},
	}
}
