package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	var withComments bool

	cmd := &cobra.Command{
		Use:   "tokenize <sql|file|->",
		Short: "Scan SQL and print the token stream",
		Example: `  # Show the tokens of a statement
  sqlfront tokenize "SELECT * FROM users -- trailing note" --comments`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt := runtime(cmd)
			opts := *rt.Opts
			opts.IncludeComments = opts.IncludeComments || withComments

			tokens, err := sqlfront.Tokenize(sql, &opts)
			if err != nil {
				return err
			}

			if rt.Cfg.Output == "json" {
				return writeJSON(cmd, tokens)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "TYPE", "LITERAL", "LINE", "COL"})
			for i, tok := range tokens {
				t.AppendRow(table.Row{i, tok.Type.String(), tok.Literal, tok.Pos.Line, tok.Pos.Column})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&withComments, "comments", false, "Include comment tokens")
	return cmd
}
