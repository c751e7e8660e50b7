package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the TaskQueue
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// QueueStats is a point-in-time view of a TaskQueue.
type QueueStats struct {
	Pending  int
	Capacity int
	// Accepted and Rejected count Enqueue calls since the queue was created.
	Accepted uint64
	Rejected uint64
}

// TaskQueue is a bounded FIFO of tasks. Enqueue never blocks; a full queue
// rejects the task.
type TaskQueue struct {
	mu       sync.Mutex
	tasks    chan Task
	logger   *slog.Logger
	closed   bool
	accepted uint64
	rejected uint64
}

var (
	_ TaskQueueReader = (*TaskQueue)(nil)
	_ TaskQueueWriter = (*TaskQueue)(nil)
)

// NewTaskQueue creates a queue holding at most size tasks.
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue adds task to the queue. It returns ErrQueueClosed after Close and
// a wrapped ErrQueueFull when no slot is free.
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		q.accepted++
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"pending", len(q.tasks))
		return nil
	default:
		q.rejected++
		q.logger.Warn("task rejected, queue full",
			"task_type", task.Type(),
			"capacity", cap(q.tasks),
			"rejected_total", q.rejected)
		return fmt.Errorf("%w: %d of %d slots taken", ErrQueueFull, len(q.tasks), cap(q.tasks))
	}
}

// Close stops accepting tasks. Queued tasks stay readable until drained.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed", "pending", len(q.tasks))
	}
}

// Tasks returns the channel workers receive from.
func (q *TaskQueue) Tasks() <-chan Task {
	return q.tasks
}

// Stats reports queue occupancy and admission counts.
func (q *TaskQueue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QueueStats{
		Pending:  len(q.tasks),
		Capacity: cap(q.tasks),
		Accepted: q.accepted,
		Rejected: q.rejected,
	}
}
