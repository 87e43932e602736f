package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeProcessor struct {
	calls int
	err   error
}

func (f *fakeProcessor) ProcessDueOccurrences(context.Context, time.Time, int) (int, error) {
	f.calls++
	return 1, f.err
}

type fakeLock struct {
	held     bool
	acquired int
	released int
}

func (f *fakeLock) TryLock(context.Context, time.Duration) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	f.acquired++
	return true, nil
}

func (f *fakeLock) Unlock(context.Context) error {
	f.held = false
	f.released++
	return nil
}

func TestSweepAcquiresAndReleasesLock(t *testing.T) {
	processor := &fakeProcessor{}
	lock := &fakeLock{}
	sweeper := NewDueSweeper(processor, lock, nil, time.Minute, time.Minute, 10)

	sweeper.Sweep(context.Background())

	assert.Equal(t, 1, processor.calls)
	assert.Equal(t, 1, lock.acquired)
	assert.Equal(t, 1, lock.released)
}

func TestSweepSkipsWhenLockHeld(t *testing.T) {
	processor := &fakeProcessor{}
	lock := &fakeLock{held: true}
	sweeper := NewDueSweeper(processor, lock, nil, time.Minute, time.Minute, 10)

	sweeper.Sweep(context.Background())

	assert.Zero(t, processor.calls)
	assert.Zero(t, lock.released)
}

func TestSweepReleasesLockOnProcessorFailure(t *testing.T) {
	processor := &fakeProcessor{err: errors.New("boom")}
	lock := &fakeLock{}
	sweeper := NewDueSweeper(processor, lock, nil, time.Minute, time.Minute, 10)

	sweeper.Sweep(context.Background())

	assert.Equal(t, 1, lock.released)
}
