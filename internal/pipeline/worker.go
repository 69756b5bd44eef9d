package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/inspect"
	"github.com/dgallion1/docinspect/internal/parser"
	"github.com/dgallion1/docinspect/internal/report"
	"github.com/dgallion1/docinspect/internal/segment"
	"github.com/dgallion1/docinspect/internal/validator"
)

// Worker processes document jobs one at a time. It is not safe for
// concurrent use.
type Worker struct {
	engine    *inspect.Engine
	chars     *chartable.Table
	log       *slog.Logger
	parseOpts parser.Options
	stats     *RunStats

	maxInputBytes int64
}

// NewWorker creates a worker over set. The set must not be shared with
// another worker; pass a clone.
func NewWorker(set *validator.Set, chars *chartable.Table, log *slog.Logger, opts parser.Options, maxInputBytes int64, stats *RunStats) *Worker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		engine:        inspect.NewEngine(set, report.NopSink{}, log),
		chars:         chars,
		log:           log,
		parseOpts:     opts,
		stats:         stats,
		maxInputBytes: maxInputBytes,
	}
}

// Process runs parse, segmentation and validation for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	defer func() {
		if p := recover(); p != nil {
			log.Error("job panicked", "panic", p)
			job.AddError(fmt.Sprintf("internal error: %v", p))
			job.SetStatus(StatusFailed, "panic")
		}
	}()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, err := w.parse(job)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.releaseFileData()

	segment.Document(doc, w.chars)
	sections, sentences := shape(doc)
	job.SetShape(sections, sentences)
	log.Debug("segmented document", "sections", sections, "sentences", sentences)

	// Phase 2: Validate
	job.SetStatus(StatusValidating, "validating")
	start := time.Now()
	errs, err := w.engine.Run(ctx, doc)
	if err != nil {
		log.Warn("validation interrupted", "error", err)
		job.SetFindings(errs)
		job.AddError(fmt.Sprintf("validate: %s", err))
		job.SetStatus(StatusFailed, "validating")
		return
	}
	if w.stats != nil {
		w.stats.Record(time.Since(start), len(errs))
	}

	job.SetFindings(errs)
	log.Debug("validated document", "sentences", sentences, "findings", len(errs))
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) parse(job *Job) (*doctree.Document, error) {
	data := job.FileData()
	if w.maxInputBytes > 0 && int64(len(data)) > w.maxInputBytes {
		return nil, fmt.Errorf("input is %d bytes, limit is %d", len(data), w.maxInputBytes)
	}
	p, err := parser.ForFile(job.Filename, w.parseOpts)
	if err != nil {
		return nil, err
	}
	return p.Parse(bytes.NewReader(data), job.Filename)
}

// shape counts sections and sentences of a segmented document.
func shape(doc *doctree.Document) (sections, sentences int) {
	doc.Walk(func(sec *doctree.Section) {
		sections++
		sentences += len(sec.Sentences())
	})
	return sections, sentences
}
