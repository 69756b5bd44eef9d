package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/pipeline"
	"github.com/dgallion1/docinspect/internal/report"
	"github.com/dgallion1/docinspect/internal/validator"
	"github.com/dgallion1/docinspect/internal/validator/builtin"
)

// inspector holds a loaded validator set and runs documents through the
// pipeline.
type inspector struct {
	cfg   config.Config
	set   *validator.Set
	chars *chartable.Table
	log   *slog.Logger
}

type runResult struct {
	findings []validator.ValidationError
	failed   int
	stats    pipeline.StatsSnapshot
}

// loadInspector reads the validator tree. The document language is taken
// from lang, then the tree, then the environment.
func loadInspector(cfg config.Config, lang string, log *slog.Logger) (*inspector, error) {
	tree, err := config.LoadTree(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = tree.Language
	}
	if lang == "" {
		lang = cfg.Language
	}
	chars, err := chartable.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	chars = chars.Override(tree.Symbols)

	set, err := builtin.Registry().Load(tree.Root, validator.Resources{Chars: chars, Resolve: tree.Resolve, Log: log})
	if err != nil {
		return nil, err
	}
	log.Debug("loaded validators", "config", cfg.ConfigPath, "count", set.Len(), "lang", chars.Language())
	return &inspector{cfg: cfg, set: set, chars: chars, log: log}, nil
}

// readInput reads at most one byte past the input limit so that the
// worker can reject oversized files.
func readInput(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	return io.ReadAll(r)
}

// jobsForFiles reads every file into a job. Unreadable files are logged
// and counted as failures.
func (in *inspector) jobsForFiles(files []string) ([]*pipeline.Job, int) {
	var jobs []*pipeline.Job
	failed := 0
	for _, path := range files {
		data, err := readInput(path, in.cfg.MaxInputBytes)
		if err != nil {
			in.log.Error("read failed", "filename", path, "error", err)
			failed++
			continue
		}
		jobs = append(jobs, pipeline.NewJob(path, data))
	}
	return jobs, failed
}

// run validates jobs in parallel and reports their findings to sink in
// submission order.
func (in *inspector) run(ctx context.Context, jobs []*pipeline.Job, sink report.Sink) (runResult, error) {
	var res runResult

	orch := pipeline.NewOrchestrator(in.cfg, in.set, in.chars, in.log)
	orch.Start(ctx)
	for i, job := range jobs {
		if err := orch.SubmitWait(ctx, job); err != nil {
			_ = orch.Stop()
			for _, rest := range jobs[i+1:] {
				rest.AddError(err.Error())
				rest.SetStatus(pipeline.StatusFailed, "queued")
			}
			return res, err
		}
	}
	if err := orch.Drain(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.stats = orch.Stats()

	if err := sink.FlushHeader(); err != nil {
		return res, err
	}
	for _, job := range jobs {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed || !snap.Status.Terminal() {
			in.log.Error("inspection failed", "filename", snap.Filename, "phase", snap.Phase, "errors", snap.Progress.Errors)
			res.failed++
		}
		for _, f := range job.Findings() {
			if err := sink.Flush(f); err != nil {
				return res, fmt.Errorf("report: %w", err)
			}
			res.findings = append(res.findings, f)
		}
	}
	if err := sink.FlushFooter(); err != nil {
		return res, err
	}
	return res, nil
}

// countAtLeast returns the number of findings at or above threshold.
func countAtLeast(findings []validator.ValidationError, threshold validator.Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity.Rank() >= threshold.Rank() {
			n++
		}
	}
	return n
}
