package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MergeCommand holds the flags for the merge command.
type MergeCommand struct {
	globals *Globals
	save    string
	format  string
}

// NewMergeCommand creates and configures the merge command.
func NewMergeCommand(globals *Globals) *cobra.Command {
	c := &MergeCommand{globals: globals}

	cobraCmd := &cobra.Command{
		Use:   "merge <state files...>",
		Short: "Merge saved estimator states",
		Long: `Merge estimator states written by "count --save" and report the estimated
number of distinct lines in the union of their inputs. All states must share
the same precision.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.Run,
	}

	cobraCmd.Flags().StringVar(&c.save, "save", "", "write the merged state to this file")
	cobraCmd.Flags().StringVarP(&c.format, "format", "f", FormatText, "output format: text or json")

	return cobraCmd
}

// Run executes the merge command.
func (c *MergeCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	_, logger, err := c.globals.setup(cmd)
	if err != nil {
		return err
	}

	total, err := readState(args[0])
	if err != nil {
		return err
	}

	for _, path := range args[1:] {
		h, readErr := readState(path)
		if readErr != nil {
			return readErr
		}

		if mergeErr := total.Merge(h); mergeErr != nil {
			return fmt.Errorf("merge %s: %w", path, mergeErr)
		}

		logger.Debug("merged", "path", path)
	}

	if c.save != "" {
		if err := writeState(c.save, total); err != nil {
			return err
		}

		logger.Info("state saved", "path", c.save)
	}

	report := newReport(total)
	report.Sources = args

	return renderReport(cmd.OutOrStdout(), c.format, report)
}
