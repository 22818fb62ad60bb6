package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	mu        sync.Mutex
	calls     int
	retention time.Duration
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.retention = retention
	return 3, nil
}

func (f *fakeCleaner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeEnqueuer struct {
	mu   sync.Mutex
	days []int
	err  error
}

func (f *fakeEnqueuer) EnqueueAuditCleanup(_ context.Context, retentionDays int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, retentionDays)
	return "task-1", f.err
}

func (f *fakeEnqueuer) enqueued() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.days...)
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler("0 3 * * *", 7, &fakeCleaner{}, nil)

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	// Second start is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler("not a cron", 7, &fakeCleaner{}, nil)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler("0 3 * * *", 7, &fakeCleaner{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	require.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_RunNowInline(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler("0 3 * * *", 7, cleaner, nil)

	s.RunNow()

	require.Eventually(t, func() bool { return cleaner.callCount() == 1 }, time.Second, 10*time.Millisecond)
	cleaner.mu.Lock()
	defer cleaner.mu.Unlock()
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)
}

func TestAuditCleanupScheduler_RunNowEnqueues(t *testing.T) {
	cleaner := &fakeCleaner{}
	enqueuer := &fakeEnqueuer{}
	s := NewAuditCleanupScheduler("0 3 * * *", 14, cleaner, enqueuer)

	s.RunNow()

	require.Eventually(t, func() bool { return len(enqueuer.enqueued()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{14}, enqueuer.enqueued())
	assert.Equal(t, 0, cleaner.callCount())
}

func TestAuditCleanupScheduler_EnqueueFailureDoesNotFallBack(t *testing.T) {
	cleaner := &fakeCleaner{}
	enqueuer := &fakeEnqueuer{err: errors.New("queue closed")}
	s := NewAuditCleanupScheduler("0 3 * * *", 14, cleaner, enqueuer)

	s.runCleanup()

	assert.Len(t, enqueuer.enqueued(), 1)
	assert.Equal(t, 0, cleaner.callCount())
}
