package commands

import (
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(globals *Globals) *cobra.Command {
	var format string

	cobraCmd := &cobra.Command{
		Use:   "inspect <state file>",
		Short: "Describe a saved estimator state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			if _, _, err := globals.setup(cmd); err != nil {
				return err
			}

			h, err := readState(args[0])
			if err != nil {
				return err
			}

			report := newReport(h)
			report.Sources = args

			return renderReport(cmd.OutOrStdout(), format, report)
		},
	}

	cobraCmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text or json")

	return cobraCmd
}
