// Package cli implements the docinspect command line.
package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docinspect/internal/config"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitFindings = 2
)

var (
	flagConfig  string
	flagFormat  string
	flagWorkers int
	flagLang    string
	flagFailOn  string
	flagStats   bool
)

var rootCmd = &cobra.Command{
	Use:   "docinspect",
	Short: "Inspect documents for wording and structure problems",
	Long: `docinspect parses documents into sections, paragraphs and sentences and
runs the validators named in a configuration tree over them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", "validator tree (.yaml, .yml or .toml)")
	flags.StringVarP(&flagFormat, "format", "f", "", "report format: plain or json")
	flags.IntVarP(&flagWorkers, "workers", "w", 0, "number of documents inspected in parallel")
	flags.StringVar(&flagLang, "lang", "", "document language, overrides the tree")
	flags.StringVar(&flagFailOn, "fail-on", "error", "lowest severity that fails the run: error, warning, info or none")
	flags.BoolVar(&flagStats, "stats", false, "print timing statistics to stderr")
}

// exitError carries a specific exit code out of a command.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			rootCmd.PrintErrln(ee.msg)
		}
		return ee.code
	}
	rootCmd.PrintErrln("Error:", err)
	return ExitFailure
}

// setup loads the environment configuration, applies flag overrides and
// builds the logger. Flags left at their zero value keep the environment
// setting.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if flagConfig != "" {
		cfg.ConfigPath = flagConfig
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagWorkers > 0 {
		cfg.WorkerCount = flagWorkers
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	lvl, err := cfg.SlogLevel()
	if err != nil {
		return config.Config{}, nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		h = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	return cfg, slog.New(h), nil
}
