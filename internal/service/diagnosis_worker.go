package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"health-management/internal/domain/entity"
	"health-management/internal/domain/repository"
	"health-management/pkg/retry"

	"github.com/sirupsen/logrus"
)

var (
	ErrDiagnosisQueueFull = errors.New("diagnosis queue is full")
	ErrWorkerStopped      = errors.New("diagnosis worker stopped")
)

// Timeout for the job store writes that record progress
const jobStoreTimeout = 5 * time.Second

// ModelClient sends one prompt to the generative model.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type DiagnosisWorkerConfig struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
	Retry     retry.Policy
	// Retryable selects the model errors worth another attempt.
	Retryable func(error) bool
}

// DiagnosisWorker runs diagnosis jobs on a fixed pool of goroutines.
//
// Jobs are persisted before they are queued. Jobs still queued when Stop runs
// are marked failed with ErrWorkerStopped.
type DiagnosisWorker struct {
	jobRepo repository.DiagnosisJobRepository
	model   ModelClient
	log     *logrus.Logger
	cfg     DiagnosisWorkerConfig
	now     func() time.Time

	queue chan string

	// Graceful shutdown
	baseCtx  context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool

	// mu orders Enqueue sends against Stop so none lands after the drain.
	mu      sync.RWMutex
	stopped bool
}

func NewDiagnosisWorker(jobRepo repository.DiagnosisJobRepository, model ModelClient, log *logrus.Logger, cfg DiagnosisWorkerConfig) *DiagnosisWorker {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &DiagnosisWorker{
		jobRepo:  jobRepo,
		model:    model,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
		queue:    make(chan string, cfg.QueueSize),
		baseCtx:  ctx,
		cancel:   cancel,
		stopChan: make(chan struct{}),
	}
}

// Start launches the worker goroutines. Calls after the first are no-ops.
func (w *DiagnosisWorker) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.loop(i)
	}
	w.log.Infof("DiagnosisWorker started with %d workers", w.cfg.Workers)
}

// Stop cancels in-flight jobs, waits for the workers to exit and fails the
// jobs left in the queue. Safe to call multiple times.
func (w *DiagnosisWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()

	abandoned := 0
	for drained := false; !drained; {
		select {
		case jobID := <-w.queue:
			w.abandon(jobID)
			abandoned++
		default:
			drained = true
		}
	}
	if abandoned > 0 {
		w.log.Warnf("DiagnosisWorker stopped with %d queued jobs marked failed", abandoned)
	}
	w.log.Info("DiagnosisWorker stopped")
}

// Enqueue schedules a stored job. It never blocks.
func (w *DiagnosisWorker) Enqueue(jobID string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrWorkerStopped
	}
	select {
	case w.queue <- jobID:
		return nil
	default:
		return ErrDiagnosisQueueFull
	}
}

func (w *DiagnosisWorker) loop(n int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debugf("Diagnosis worker %d stopping", n)
			return
		case jobID := <-w.queue:
			// select picks at random when both are ready.
			select {
			case <-w.stopChan:
				w.abandon(jobID)
				return
			default:
			}
			w.process(jobID)
		}
	}
}

// abandon fails a queued job that will never run.
func (w *DiagnosisWorker) abandon(jobID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobStoreTimeout)
	job, err := w.jobRepo.FindByID(ctx, jobID)
	cancel()
	if err != nil {
		w.log.Warnf("Failed to load diagnosis job %s: %+v", jobID, err)
		return
	}
	if job == nil || job.IsFinished() {
		return
	}
	w.fail(job, ErrWorkerStopped)
}

func (w *DiagnosisWorker) process(jobID string) {
	ctx := w.baseCtx
	if w.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	job, err := w.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		w.log.Warnf("Failed to load diagnosis job %s: %+v", jobID, err)
		return
	}
	if job == nil {
		w.log.Warnf("Diagnosis job %s expired before it ran", jobID)
		return
	}
	if job.IsFinished() {
		return
	}

	var raw string
	err = retry.Do(ctx, w.cfg.Retry, w.cfg.Retryable, func(ctx context.Context, attempt int) error {
		job.Attempts = attempt
		w.save(job)

		out, genErr := w.model.Generate(ctx, job.Prompt)
		if genErr != nil {
			w.log.Warnf("Diagnosis job %s attempt %d failed: %+v", job.ID, attempt, genErr)
			return genErr
		}
		raw = out
		return nil
	})
	if err != nil {
		w.fail(job, fmt.Errorf("model request failed: %w", err))
		return
	}

	result, err := NormalizeModelOutput(job.Kind, raw)
	if err != nil {
		w.fail(job, err)
		return
	}

	job.Status = entity.DiagnosisJobCompleted
	job.Result = result
	job.Error = ""
	w.save(job)
	w.log.Infof("Diagnosis job %s completed after %d attempt(s)", job.ID, job.Attempts)
}

func (w *DiagnosisWorker) fail(job *entity.DiagnosisJob, err error) {
	job.Status = entity.DiagnosisJobFailed
	job.Error = err.Error()
	w.save(job)
	w.log.Warnf("Diagnosis job %s failed: %+v", job.ID, err)
}

// save uses its own context so that the final state is recorded even after
// the job context timed out.
func (w *DiagnosisWorker) save(job *entity.DiagnosisJob) {
	job.UpdatedAt = w.now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), jobStoreTimeout)
	defer cancel()
	if err := w.jobRepo.Save(ctx, job); err != nil {
		w.log.Warnf("Failed to save diagnosis job %s: %+v", job.ID, err)
	}
}
