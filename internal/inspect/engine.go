// Package inspect runs a validator set over parsed documents.
package inspect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/report"
	"github.com/dgallion1/docinspect/internal/validator"
)

// Engine walks documents and invokes validators in a fixed order:
// document validators first, then each section depth-first with its
// section validators followed by its sentence validators paragraph by
// paragraph. An Engine is not safe for concurrent use; give each
// goroutine its own Engine over a cloned Set.
type Engine struct {
	set  *validator.Set
	sink report.Sink
	log  *slog.Logger
}

// NewEngine creates an engine. A nil sink discards findings and a nil
// logger discards log output.
func NewEngine(set *validator.Set, sink report.Sink, log *slog.Logger) *Engine {
	if set == nil {
		set = validator.NewSet()
	}
	if sink == nil {
		sink = report.NopSink{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{set: set, sink: sink, log: log}
}

// Set returns the validators the engine runs.
func (e *Engine) Set() *validator.Set {
	return e.set
}

// Run validates one document. On cancellation the findings produced so
// far are returned together with the context error.
func (e *Engine) Run(ctx context.Context, doc *doctree.Document) ([]validator.ValidationError, error) {
	return e.RunAll(ctx, []*doctree.Document{doc})
}

// RunAll validates documents in order. The sink header and footer are
// written once around the whole collection.
func (e *Engine) RunAll(ctx context.Context, docs []*doctree.Document) ([]validator.ValidationError, error) {
	if err := e.sink.FlushHeader(); err != nil {
		return nil, fmt.Errorf("flush header: %w", err)
	}

	var all []validator.ValidationError
	var runErr error
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		errs, err := e.document(ctx, doc)
		all = append(all, errs...)
		if err != nil {
			runErr = err
			break
		}
	}

	if err := e.sink.FlushFooter(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush footer: %w", err)
	}
	return all, runErr
}

func (e *Engine) document(ctx context.Context, doc *doctree.Document) ([]validator.ValidationError, error) {
	r := &run{engine: e, file: doc.Filename}

	for _, v := range e.set.Documents() {
		r.emit(e.call(v, "document", doc.Filename, func() []validator.ValidationError {
			return v.ValidateDocument(doc)
		}))
		if r.err != nil {
			return r.out, r.err
		}
	}

	r.sections(ctx, doc.Sections)
	return r.out, r.err
}

// run carries the state of one document traversal.
type run struct {
	engine *Engine
	file   string
	out    []validator.ValidationError
	err    error
}

func (r *run) sections(ctx context.Context, sections []*doctree.Section) {
	e := r.engine
	for _, sec := range sections {
		if r.err != nil {
			return
		}
		if err := ctx.Err(); err != nil {
			r.err = err
			return
		}

		for _, v := range e.set.Sections() {
			r.emit(e.call(v, "section", sec.Header, func() []validator.ValidationError {
				return v.ValidateSection(sec)
			}))
		}

		for _, p := range sec.Paragraphs {
			for _, v := range e.set.Sentences() {
				for _, s := range p.Sentences {
					if r.err != nil {
						return
					}
					if err := ctx.Err(); err != nil {
						r.err = err
						return
					}
					r.emit(e.call(v, "sentence", s.Content, func() []validator.ValidationError {
						return v.ValidateSentence(s)
					}))
				}
			}
		}

		r.sections(ctx, sec.Sections)
	}
}

// emit stamps findings with the file name and forwards them to the sink.
func (r *run) emit(errs []validator.ValidationError) {
	for _, ve := range errs {
		if r.err != nil {
			return
		}
		if ve.File == "" {
			ve.File = r.file
		}
		if err := r.engine.sink.Flush(ve); err != nil {
			r.err = fmt.Errorf("flush finding: %w", err)
			return
		}
		r.out = append(r.out, ve)
	}
}

// call invokes fn and turns a panic into an empty result.
func (e *Engine) call(v validator.Validator, scope, target string, fn func() []validator.ValidationError) []validator.ValidationError {
	return validator.Guard(e.log, v, scope, target, fn)
}
