package task

import (
	"context"
	"log/slog"
	"time"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds a single task execution; zero means no limit
	TaskTimeout time.Duration
}

// Runner couples a TaskQueue with the WorkerPool draining it.
type Runner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger
}

// Submitter accepts tasks for background execution.
type Submitter interface {
	Submit(task Task) error
}

var _ Submitter = (*Runner)(nil)

// NewRunner creates a queue of QueueSize and a pool of WorkerCount workers.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{
		WorkerCount: config.WorkerCount,
		TaskTimeout: config.TaskTimeout,
	}, logger)
	return &Runner{queue: queue, pool: pool, logger: logger}
}

// SetErrorHandler sets the pool's error handler; call before Start.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start begins processing tasks.
func (r *Runner) Start() {
	r.pool.Start()
}

// Submit enqueues a task without blocking. It returns ErrQueueFull or
// ErrQueueClosed when the task cannot be accepted.
func (r *Runner) Submit(task Task) error {
	return r.queue.Enqueue(task)
}

// Stats reports the queue's occupancy and admission counts.
func (r *Runner) Stats() QueueStats {
	return r.queue.Stats()
}

// Stop closes the queue and drains it, bounded by ctx.
func (r *Runner) Stop(ctx context.Context) error {
	r.queue.Close()
	err := r.pool.Stop(ctx)
	stats := r.queue.Stats()
	r.logger.Info("task runner stopped",
		"accepted", stats.Accepted,
		"rejected", stats.Rejected,
		"abandoned", stats.Pending)
	return err
}
