package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_SubmitAndStop(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 3, QueueSize: 16}, setupTestLogger())

	var failures atomic.Int32
	r.SetErrorHandler(func(task Task, err error) {
		failures.Add(1)
	})
	r.Start()

	var ran atomic.Int32
	for i := range 10 {
		require.NoError(t, r.Submit(NewFuncTask(TaskTypeTelegramReply, func(ctx context.Context) error {
			ran.Add(1)
			if i%5 == 0 {
				return errors.New("send failed")
			}
			return nil
		})))
	}

	require.NoError(t, r.Stop(context.Background()))
	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, int32(2), failures.Load())

	assert.ErrorIs(t, r.Submit(NewFuncTask("late", nil)), ErrQueueClosed)
}

func TestRunner_QueueFull(t *testing.T) {
	// Not started, so nothing drains the queue.
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)

	require.NoError(t, r.Submit(NewFuncTask("a", nil)))
	assert.ErrorIs(t, r.Submit(NewFuncTask("b", nil)), ErrQueueFull)
	assert.Equal(t, QueueStats{Pending: 1, Capacity: 1, Accepted: 1, Rejected: 1}, r.Stats())

	r.Start()
	require.NoError(t, r.Stop(context.Background()))
	assert.Equal(t, 0, r.Stats().Pending)
}
