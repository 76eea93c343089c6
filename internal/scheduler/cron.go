package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// CronScheduler는 cron 표현식(초 단위 포함)에 따라 작업을 실행합니다
type CronScheduler struct {
	cron *cron.Cron
	spec string
	task Task
	log  zerolog.Logger
}

// NewCronScheduler는 cron 스케줄러를 생성합니다.
// spec은 "[초] 분 시 일 월 요일" 형식이며 "@daily" 같은 기술자도 허용합니다.
func NewCronScheduler(spec string, task Task, log zerolog.Logger) (*CronScheduler, error) {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("잘못된 cron 표현식 %q: %w", spec, err)
	}

	return &CronScheduler{
		cron: cron.New(cron.WithParser(parser)),
		spec: spec,
		task: task,
		log:  log,
	}, nil
}

// Start는 작업을 등록하고 컨텍스트가 취소될 때까지 실행합니다.
// 종료 시 실행 중인 작업이 끝날 때까지 기다립니다.
func (s *CronScheduler) Start(ctx context.Context) error {
	// 이전 실행이 끝나지 않았으면 이번 실행은 건너뜀
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		if err := s.task.Execute(ctx); err != nil {
			s.log.Error().Err(err).Msg("작업 실행 실패")
		}
	}))

	id, err := s.cron.AddJob(s.spec, job)
	if err != nil {
		return fmt.Errorf("cron 작업 등록 실패: %w", err)
	}

	s.cron.Start()
	s.log.Info().
		Str("spec", s.spec).
		Time("next", s.cron.Entry(id).Next).
		Msg("cron 스케줄러 시작")

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.log.Info().Msg("cron 스케줄러 중지")
	return ctx.Err()
}
