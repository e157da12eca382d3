package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clarkduvall/hyperloglog/internal/config"
	"github.com/clarkduvall/hyperloglog/internal/ingest"
)

// CountCommand holds the flags for the count command.
type CountCommand struct {
	globals   *Globals
	save      string
	format    string
	precision int
	workers   int
	trim      bool
	lower     bool
	skipEmpty bool
}

// NewCountCommand creates and configures the count command.
func NewCountCommand(globals *Globals) *cobra.Command {
	c := &CountCommand{globals: globals}

	cobraCmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Estimate the number of distinct lines",
		Long: `Estimate the number of distinct lines across all files, or stdin when no
file is given. Lines are compared byte for byte after the optional trim and
lowercase canonicalization.`,
		RunE: c.Run,
	}

	cobraCmd.Flags().IntVarP(&c.precision, "precision", "p", config.DefaultPrecision, "estimator precision in [4, 16]")
	cobraCmd.Flags().IntVarP(&c.workers, "workers", "w", config.DefaultWorkers, "number of shards counted in parallel")
	cobraCmd.Flags().BoolVar(&c.trim, "trim", false, "trim surrounding whitespace from each line")
	cobraCmd.Flags().BoolVar(&c.lower, "lower", false, "lowercase each line")
	cobraCmd.Flags().BoolVar(&c.skipEmpty, "skip-empty", false, "ignore empty lines")
	cobraCmd.Flags().StringVar(&c.save, "save", "", "write the estimator state to this file")
	cobraCmd.Flags().StringVarP(&c.format, "format", "f", FormatText, "output format: text or json")

	return cobraCmd
}

// Run executes the count command.
func (c *CountCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	cfg, logger, err := c.globals.setup(cmd)
	if err != nil {
		return err
	}

	c.applyFlags(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	readers := []io.Reader{cmd.InOrStdin()}
	sources := []string{"-"}

	if len(args) > 0 {
		files, openErr := openInputs(args)
		if openErr != nil {
			return openErr
		}
		defer closeAll(files)

		readers = readers[:0]
		for _, f := range files {
			readers = append(readers, f)
		}

		sources = args
	}

	logger.Info("counting", "sources", len(sources), "precision", cfg.Estimator.Precision, "workers", cfg.Ingest.Workers)

	h, stats, err := ingest.Count(cmd.Context(), ingest.Options{
		Logger:    logger,
		Workers:   cfg.Ingest.Workers,
		BatchSize: cfg.Ingest.BatchSize,
		Precision: uint8(cfg.Estimator.Precision),
		Trim:      cfg.Ingest.Trim,
		Lower:     cfg.Ingest.Lower,
		SkipEmpty: cfg.Ingest.SkipEmpty,
	}, readers...)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	if c.save != "" {
		if err := writeState(c.save, h); err != nil {
			return err
		}

		logger.Info("state saved", "path", c.save)
	}

	report := newReport(h)
	report.Sources = sources
	report.Lines = stats.Lines
	report.Skipped = stats.Skipped
	report.Shards = stats.Shards

	return renderReport(cmd.OutOrStdout(), c.format, report)
}

// applyFlags overrides configuration values with explicitly set flags.
func (c *CountCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("precision") {
		cfg.Estimator.Precision = c.precision
	}

	if flags.Changed("workers") {
		cfg.Ingest.Workers = c.workers
	}

	if flags.Changed("trim") {
		cfg.Ingest.Trim = c.trim
	}

	if flags.Changed("lower") {
		cfg.Ingest.Lower = c.lower
	}

	if flags.Changed("skip-empty") {
		cfg.Ingest.SkipEmpty = c.skipEmpty
	}
}
