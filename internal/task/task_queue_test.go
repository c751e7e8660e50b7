package task

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(fn func(ctx context.Context) error) *FuncTask {
	return NewFuncTask("mock", fn)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestNewTaskQueue(t *testing.T) {
	q := NewTaskQueue(5, setupTestLogger())

	assert.NotNil(t, q)
	assert.Equal(t, 5, cap(q.tasks))
	assert.False(t, q.closed)

	q = NewTaskQueue(0, nil)
	assert.Equal(t, 1, cap(q.tasks))
	assert.NotNil(t, q.logger)
}

func TestTaskQueue_Enqueue(t *testing.T) {
	q := NewTaskQueue(2, setupTestLogger())

	first := newTestTask(nil)
	require.NoError(t, q.Enqueue(first))
	require.NoError(t, q.Enqueue(newTestTask(nil)))

	err := q.Enqueue(newTestTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)

	got := <-q.Tasks()
	assert.Equal(t, first.ID(), got.ID())
}

func TestTaskQueue_Stats(t *testing.T) {
	q := NewTaskQueue(2, setupTestLogger())
	assert.Equal(t, QueueStats{Capacity: 2}, q.Stats())

	require.NoError(t, q.Enqueue(newTestTask(nil)))
	require.NoError(t, q.Enqueue(newTestTask(nil)))
	err := q.Enqueue(newTestTask(nil))
	require.ErrorIs(t, err, ErrQueueFull)
	assert.Contains(t, err.Error(), "2 of 2 slots taken")

	assert.Equal(t, QueueStats{Pending: 2, Capacity: 2, Accepted: 2, Rejected: 1}, q.Stats())

	<-q.Tasks()
	assert.Equal(t, 1, q.Stats().Pending)

	// Closed-queue submissions are not admission decisions.
	q.Close()
	_ = q.Enqueue(newTestTask(nil))
	assert.Equal(t, uint64(1), q.Stats().Rejected)
}

func TestTaskQueue_Close(t *testing.T) {
	q := NewTaskQueue(2, setupTestLogger())
	queued := newTestTask(nil)
	require.NoError(t, q.Enqueue(queued))

	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Enqueue(newTestTask(nil)), ErrQueueClosed)

	got, ok := <-q.Tasks()
	require.True(t, ok)
	assert.Equal(t, queued.ID(), got.ID())

	_, ok = <-q.Tasks()
	assert.False(t, ok)
}

func TestTaskQueue_ConcurrentEnqueueAndClose(t *testing.T) {
	q := NewTaskQueue(100, setupTestLogger())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Enqueue(newTestTask(nil))
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Close()
	}()
	wg.Wait()

	assert.ErrorIs(t, q.Enqueue(newTestTask(nil)), ErrQueueClosed)
}

func TestFuncTask(t *testing.T) {
	called := false
	task := NewFuncTask(TaskTypeTelegramReply, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.Equal(t, TaskTypeTelegramReply, task.Type())
	assert.NotEqual(t, task.ID(), NewFuncTask("other", nil).ID())
	require.NoError(t, task.Execute(context.Background()))
	assert.True(t, called)

	assert.NoError(t, NewFuncTask("noop", nil).Execute(context.Background()))
}
