package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Task는 스케줄러가 실행할 작업을 정의하는 인터페이스입니다
type Task interface {
	Execute(ctx context.Context) error
}

// TaskFunc는 함수를 Task로 사용할 수 있게 합니다
type TaskFunc func(ctx context.Context) error

// Execute는 함수를 실행합니다
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Scheduler는 정해진 간격에 맞춰 작업을 실행하는 스케줄러입니다
type Scheduler struct {
	interval time.Duration
	task     Task
	log      zerolog.Logger
	stopCh   chan struct{}
	now      func() time.Time
}

// NewScheduler는 새로운 스케줄러를 생성합니다
func NewScheduler(interval time.Duration, task Task, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		log:      log,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// nextWait는 다음 실행 시각(간격 경계)과 대기 시간을 계산합니다
func (s *Scheduler) nextWait() (time.Time, time.Duration) {
	now := s.now()
	nextRun := now.Truncate(s.interval).Add(s.interval)
	return nextRun, nextRun.Sub(now)
}

// Start는 스케줄러를 시작합니다. 컨텍스트가 취소되거나 Stop이 호출될 때까지 블록됩니다.
func (s *Scheduler) Start(ctx context.Context) error {
	nextRun, wait := s.nextWait()
	s.logNext(nextRun, wait)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.stopCh:
			return nil

		case <-timer.C:
			// 에러가 발생해도 계속 실행
			if err := s.task.Execute(ctx); err != nil {
				s.log.Error().Err(err).Msg("작업 실행 실패")
			}

			nextRun, wait = s.nextWait()
			s.logNext(nextRun, wait)
			timer.Reset(wait)
		}
	}
}

func (s *Scheduler) logNext(nextRun time.Time, wait time.Duration) {
	s.log.Info().
		Dur("wait", wait.Round(time.Second)).
		Str("next", nextRun.Format("2006-01-02 15:04:05")).
		Msg("다음 실행까지 대기")
}

// Stop은 스케줄러를 중지합니다
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
