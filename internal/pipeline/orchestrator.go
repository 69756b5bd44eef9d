package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/parser"
	"github.com/dgallion1/docinspect/internal/validator"
)

// Orchestrator manages the document validation pipeline. Each worker owns
// a private clone of the validator set.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	set   *validator.Set
	chars *chartable.Table
	stats *RunStats
	log   *slog.Logger
	cfg   config.Config

	cancel    context.CancelFunc
	group     *errgroup.Group
	quit      chan struct{}
	closeOnce sync.Once
}

// NewOrchestrator creates the pipeline. Call Start before submitting.
func NewOrchestrator(cfg config.Config, set *validator.Set, chars *chartable.Table, log *slog.Logger) *Orchestrator {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 1
	}
	if chars == nil {
		chars = chartable.Default()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if set == nil {
		set = validator.NewSet()
	}
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		set:   set,
		chars: chars,
		stats: NewRunStats(time.Hour),
		log:   log,
		cfg:   cfg,
		quit:  make(chan struct{}),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	g, gctx := errgroup.WithContext(workerCtx)
	o.group = g

	opts := parser.Options{PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext}
	for i := range o.cfg.WorkerCount {
		w := NewWorker(o.set.Clone(), o.chars, o.log.With("worker", i), opts, o.cfg.MaxInputBytes, o.stats)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case job, ok := <-o.queue:
					if !ok {
						return nil
					}
					w.Process(gctx, job)
				}
			}
		})
	}

	// Start job store cleanup.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-o.quit:
				return nil
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	})
}

// Drain stops accepting jobs, waits for queued jobs to finish and shuts
// the workers down.
func (o *Orchestrator) Drain() error {
	o.close()
	err := o.wait()
	if o.cancel != nil {
		o.cancel()
	}
	o.failPending()
	return err
}

// Stop shuts down the pipeline without waiting for queued jobs.
func (o *Orchestrator) Stop() error {
	if o.cancel != nil {
		o.cancel()
	}
	o.close()
	err := o.wait()
	o.failPending()
	return err
}

// failPending fails jobs still queued after the workers exited, so every
// submitted job ends in a terminal status. Call only after wait.
func (o *Orchestrator) failPending() {
	for job := range o.queue {
		o.log.Warn("job canceled before processing", "job_id", job.ID, "filename", job.Filename)
		job.AddError("canceled before processing")
		job.SetStatus(StatusFailed, "queued")
	}
}

func (o *Orchestrator) close() {
	o.closeOnce.Do(func() {
		close(o.quit)
		close(o.queue)
	})
}

func (o *Orchestrator) wait() error {
	if o.group == nil {
		return nil
	}
	return o.group.Wait()
}

// Submit queues a new job for processing without blocking.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// SubmitWait queues a job, blocking until there is room or ctx ends.
func (o *Orchestrator) SubmitWait(ctx context.Context, job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	case <-ctx.Done():
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "queued")
		return ctx.Err()
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns latency statistics of recently validated documents.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}
