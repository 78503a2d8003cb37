package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/pkg/logger"
)

func TestWorkerRunsQueuedTasksBeforeStop(t *testing.T) {
	w := NewWorker(10, logger.NewNop())
	w.Start(3)

	var done atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, w.Submit(Task{Name: "count", Handler: func(context.Context) error {
			done.Add(1)
			return nil
		}}))
	}
	w.Stop()

	assert.EqualValues(t, 10, done.Load())
	ok, failed := w.Counts()
	assert.EqualValues(t, 10, ok)
	assert.EqualValues(t, 0, failed)

	assert.ErrorIs(t, w.Submit(Task{Handler: func(context.Context) error { return nil }}), ErrStopped)
	w.Stop()
}

func TestWorkerRetriesUntilSuccess(t *testing.T) {
	w := NewWorker(1, logger.NewNop())
	w.backoff = time.Millisecond
	w.Start(1)

	var attempts atomic.Int32
	require.NoError(t, w.Submit(Task{
		Name:     "flaky",
		RetryMax: 2,
		Handler: func(context.Context) error {
			if attempts.Add(1) < 3 {
				return errors.New("smtp busy")
			}
			return nil
		},
	}))
	w.Stop()

	assert.EqualValues(t, 3, attempts.Load())
	ok, failed := w.Counts()
	assert.EqualValues(t, 1, ok)
	assert.EqualValues(t, 0, failed)
}

func TestWorkerRecoversPanics(t *testing.T) {
	w := NewWorker(1, logger.NewNop())
	w.Start(1)

	require.NoError(t, w.Submit(Task{Handler: func(context.Context) error { panic("bad template") }}))
	w.Stop()

	_, failed := w.Counts()
	assert.EqualValues(t, 1, failed)
}

func TestSubmitReportsFullQueue(t *testing.T) {
	w := NewWorker(1, logger.NewNop())
	noop := Task{Handler: func(context.Context) error { return nil }}

	require.NoError(t, w.Submit(noop))
	assert.ErrorIs(t, w.Submit(noop), ErrQueueFull)

	w.Start(1)
	w.Stop()
}
