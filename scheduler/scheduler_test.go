package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"hausa-platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintenance struct {
	resets   atomic.Int32
	cleanups atomic.Int32
	err      error
}

func (f *fakeMaintenance) ResetStale(context.Context) (int, error) {
	f.resets.Add(1)
	return 3, f.err
}

func (f *fakeMaintenance) CleanupSessions(context.Context) (int64, error) {
	f.cleanups.Add(1)
	return 1, f.err
}

func TestRegisterSchedulesBothJobs(t *testing.T) {
	s := New(config.SchedulerConfig{Enabled: true, StreakResetAt: "00:05"}, &fakeMaintenance{})
	require.NoError(t, s.register())
	assert.Len(t, s.scheduler.Jobs(), 2)
}

func TestRegisterRejectsBadTime(t *testing.T) {
	s := New(config.SchedulerConfig{Enabled: true, StreakResetAt: "25:99"}, &fakeMaintenance{})
	assert.Error(t, s.register())
}

func TestJobsCallMaintenance(t *testing.T) {
	m := &fakeMaintenance{}
	s := New(config.SchedulerConfig{StreakResetAt: "00:05"}, m)

	s.resetStreaks()
	s.cleanupSessions()
	require.NoError(t, s.RunOnce(context.Background()))

	assert.EqualValues(t, 2, m.resets.Load())
	assert.EqualValues(t, 2, m.cleanups.Load())
}

func TestJobErrorsAreLoggedNotPropagated(t *testing.T) {
	m := &fakeMaintenance{err: errors.New("db down")}
	s := New(config.SchedulerConfig{StreakResetAt: "00:05"}, m)

	s.resetStreaks()
	s.cleanupSessions()
	assert.Error(t, s.RunOnce(context.Background()))
	assert.EqualValues(t, 1, m.cleanups.Load(), "RunOnce stops at the first failure")
}
