package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/queryscope/sqlfront/pkg/sqlerr"
	"github.com/queryscope/sqlfront/pkg/sqlfront"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <sql|file|->",
		Short: "Validate SQL syntax",
		Long:  "Validate exits non-zero and prints the diagnostics when the SQL does not parse.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt := runtime(cmd)
			result := sqlfront.Validate(sql, rt.Opts)

			if rt.Cfg.Output == "json" {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
				if !result.Valid {
					return errors.New("invalid SQL")
				}
				return nil
			}

			if !result.Valid {
				return diagnosticErr(result.Errors)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

// diagnosticErr folds a diagnostic list into a command error.
func diagnosticErr(diags []*sqlerr.Error) error {
	if len(diags) == 0 {
		return errors.New("parse failed")
	}
	return fmt.Errorf("[%s] %w", diags[0].Kind, diags[0])
}
