package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var runs int32
	task := TaskFunc(func(ctx context.Context) error {
		if atomic.AddInt32(&runs, 1) == 2 {
			cancel()
		}
		// 실패해도 다음 실행은 계속됨
		return errors.New("일시적 실패")
	})

	s := NewScheduler(20*time.Millisecond, task, zerolog.Nop())
	err := s.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestScheduler_Stop(t *testing.T) {
	s := NewScheduler(time.Hour, TaskFunc(func(context.Context) error { return nil }), zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	s.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("스케줄러가 중지되지 않음")
	}
}

func TestScheduler_NextWait(t *testing.T) {
	s := NewScheduler(24*time.Hour, nil, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC) }

	next, wait := s.nextWait()
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), next)
	assert.Equal(t, 5*time.Hour+30*time.Minute, wait)
}

func TestNewCronScheduler_InvalidSpec(t *testing.T) {
	_, err := NewCronScheduler("매일", TaskFunc(func(context.Context) error { return nil }), zerolog.Nop())
	assert.Error(t, err)

	_, err = NewCronScheduler("0 30 18 * * 1-5", TaskFunc(func(context.Context) error { return nil }), zerolog.Nop())
	assert.NoError(t, err)

	_, err = NewCronScheduler("30 18 * * 1-5", TaskFunc(func(context.Context) error { return nil }), zerolog.Nop())
	assert.NoError(t, err)
}

func TestCronScheduler_Executes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var runs int32
	task := TaskFunc(func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		cancel()
		return nil
	})

	s, err := NewCronScheduler("@every 100ms", task, zerolog.Nop())
	require.NoError(t, err)

	err = s.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))
}
