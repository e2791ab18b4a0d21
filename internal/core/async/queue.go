package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/common"
	"github.com/mpavel/water-reports/internal/core"
)

// Job is one (zone, date) document to process.
type Job struct {
	Zone int
	Date time.Time

	// runID is captured from the Enqueue context so worker log lines stay
	// attributable to the batch run that queued the job.
	runID string
}

type ProcessorQueue struct {
	proc    *core.Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool

	statsMu sync.Mutex
	stats   Stats
}

// Stats counts job outcomes across the queue's lifetime.
type Stats struct {
	Queued    int
	Processed int
	Missing   int
	Failed    int
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewProcessorQueue(proc *core.Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					if job.runID != "" {
						ctx = common.WithRunID(ctx, job.runID)
					}
					res, err := q.proc.ProcessDocument(ctx, job.Zone, job.Date)
					cancel()

					date := job.Date.Format(constants.BulletinDateLayout)
					if err != nil {
						q.logger.Error("processing failed",
							"worker_id", workerID, "zone", job.Zone, "date", date, "error", err)
						q.record(constants.DocumentFailed)
						continue
					}
					q.logger.Info("document processed",
						"worker_id", workerID, "zone", job.Zone, "date", date,
						"status", res.Status, "reports", res.Built, "skipped", res.SkippedGrids)
					q.record(res.Status)
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) record(status constants.DocumentStatus) {
	q.statsMu.Lock()
	defer q.statsMu.Unlock()
	switch status {
	case constants.DocumentProcessed:
		q.stats.Processed++
	case constants.DocumentMissing:
		q.stats.Missing++
	default:
		q.stats.Failed++
	}
}

// Stats returns a snapshot of the outcome counters.
func (q *ProcessorQueue) Stats() Stats {
	q.statsMu.Lock()
	defer q.statsMu.Unlock()
	return q.stats
}

func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	job.runID = common.RunIDFrom(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down",
			"zone", job.Zone, "date", job.Date.Format(constants.BulletinDateLayout))
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Debug("queued document for processing",
			"run_id", job.runID, "zone", job.Zone,
			"date", job.Date.Format(constants.BulletinDateLayout),
			"status", constants.DocumentQueued)
	default:
		q.logger.Warn("queue full, applying backpressure",
			"zone", job.Zone, "date", job.Date.Format(constants.BulletinDateLayout))
		q.ch <- job
	}

	q.statsMu.Lock()
	q.stats.Queued++
	q.statsMu.Unlock()
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
