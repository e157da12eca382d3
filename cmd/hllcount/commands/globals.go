// Package commands implements the hllcount subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/clarkduvall/hyperloglog/internal/config"
	"github.com/clarkduvall/hyperloglog/internal/logging"
)

// Globals holds the persistent root flags shared by every subcommand.
type Globals struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// setup loads the configuration and builds the logger. Logs go to the
// command's stderr so they never mix with reports.
func (g *Globals) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case g.Quiet:
		cfg.Logging.Level = "error"
	case g.Verbose:
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func openInputs(paths []string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(paths))

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll(files)
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}
