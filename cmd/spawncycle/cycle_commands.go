package main

import (
	"fmt"

	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/report"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a spawn cycle file for syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			lines, err := cycle.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.remember(args[0])

			errs := cycle.Parse(lines)
			fmt.Fprint(cmd.OutOrStdout(), report.Errors(errs))
			if len(errs) > 0 {
				return fmt.Errorf("%s: %d error(s)", args[0], len(errs))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Cycle(cycle.Build(lines)))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Rewrite a spawn cycle file in canonical form",
		Long: `Parses the file, merges duplicate entries inside each squad and writes
the canonical export form. Cycles that are not exportable (wrong wave count,
empty waves or squads, oversized squads) are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			lines, err := cycle.LoadFile(args[0])
			if err != nil {
				return err
			}

			sc, errs := cycle.ParseAndBuild(lines)
			if len(errs) == 0 {
				errs = cycle.ValidateForExport(sc)
			}
			if len(errs) > 0 {
				fmt.Fprint(cmd.ErrOrStderr(), report.Errors(errs))
				return fmt.Errorf("%s cannot be exported", args[0])
			}

			if err := writeCycleLines(cmd, out, cycle.Serialize(sc)); err != nil {
				return err
			}
			if out != "" {
				a.remember(args[0], out)
			} else {
				a.remember(args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}
