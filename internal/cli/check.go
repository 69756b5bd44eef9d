package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docinspect/internal/report"
	"github.com/dgallion1/docinspect/internal/validator"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Inspect documents and report findings",
	Long: `Parses each file, splits it into sentences and runs the configured
validators. Exits 1 when the configuration or a file cannot be processed
and 2 when findings at or above --fail-on exist.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	threshold, err := failThreshold(flagFailOn)
	if err != nil {
		return err
	}
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	in, err := loadInspector(cfg, flagLang, log)
	if err != nil {
		return fmt.Errorf("load validators: %w", err)
	}
	sink, err := report.ForFormat(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	jobs, unreadable := in.jobsForFiles(args)
	res, err := in.run(cmd.Context(), jobs, sink)
	if err != nil {
		return err
	}
	res.failed += unreadable

	if flagStats {
		cmd.PrintErrln(res.stats.String())
	}
	if res.failed > 0 {
		return &exitError{code: ExitFailure, msg: fmt.Sprintf("%d file(s) could not be inspected", res.failed)}
	}
	if threshold != "" && countAtLeast(res.findings, threshold) > 0 {
		return &exitError{code: ExitFindings}
	}
	return nil
}

// failThreshold parses --fail-on. "none" disables failing on findings.
func failThreshold(s string) (validator.Severity, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return "", nil
	}
	sev, err := validator.ParseSeverity(s)
	if err != nil {
		return "", fmt.Errorf("--fail-on: %w", err)
	}
	return sev, nil
}
