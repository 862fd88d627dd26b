package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCloser struct {
	calls  atomic.Int32
	maxAge atomic.Int64
	err    error
}

func (c *countingCloser) CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	c.calls.Add(1)
	c.maxAge.Store(int64(maxAge))
	if c.err != nil {
		return 0, c.err
	}
	return 1, nil
}

func TestScheduler_RunsCleanup(t *testing.T) {
	closer := &countingCloser{}
	s := New(closer, 12*time.Hour, time.UTC, zap.NewNop())

	require.NoError(t, s.Start(50*time.Millisecond))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return closer.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(12*time.Hour), closer.maxAge.Load())
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	closer := &countingCloser{err: errors.New("database is locked")}
	s := New(closer, time.Hour, nil, zap.NewNop())

	require.NoError(t, s.Start(50*time.Millisecond))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return closer.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_InvalidInterval(t *testing.T) {
	s := New(&countingCloser{}, time.Hour, time.UTC, zap.NewNop())

	assert.Error(t, s.Start(0))
}
