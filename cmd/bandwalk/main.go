package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/assist-by/bandwalk/internal/backtest"
	"github.com/assist-by/bandwalk/internal/config"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/logger"
	"github.com/assist-by/bandwalk/internal/market"
	"github.com/assist-by/bandwalk/internal/metrics"
	"github.com/assist-by/bandwalk/internal/notification"
	"github.com/assist-by/bandwalk/internal/notification/discord"
	"github.com/assist-by/bandwalk/internal/scheduler"
	"github.com/assist-by/bandwalk/internal/strategy"
	"github.com/assist-by/bandwalk/internal/strategy/bandwalk"
	"github.com/assist-by/bandwalk/internal/strategy/macdhist"
)

// flags는 명령줄 인자를 담습니다. 지정된 값만 설정 파일/환경 변수보다 우선합니다.
type flags struct {
	fund      string
	title     string
	dir       string
	days      int
	lang      string
	watch     bool
	backtest  bool
	horizon   int
	upper     float64
	lower     float64
	upperRate float64
	lowerRate float64
	set       map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("bandwalk", flag.ContinueOnError)
	fs.StringVar(&f.fund, "fund", "", "펀드 ID (<dir>/<id>_.csv 를 읽음)")
	fs.StringVar(&f.title, "title", "", "리포트에 표시할 펀드 이름")
	fs.StringVar(&f.dir, "dir", "", "CSV 디렉터리")
	fs.IntVar(&f.days, "days", 0, "리포트에 표시할 최근 일수")
	fs.StringVar(&f.lang, "lang", "", "리포트 언어 (ja, ko, en)")
	fs.BoolVar(&f.watch, "watch", false, "주기적으로 다시 분석")
	fs.BoolVar(&f.backtest, "backtest", false, "과거 시그널을 평가하고 종료")
	fs.IntVar(&f.horizon, "horizon", 0, "시그널 평가 기간 (영업일)")
	fs.Float64Var(&f.upper, "upper", 0, "히스토그램 상단 임계값")
	fs.Float64Var(&f.lower, "lower", 0, "히스토그램 하단 임계값")
	fs.Float64Var(&f.upperRate, "upper-rate", 0, "매도 교차 비율")
	fs.Float64Var(&f.lowerRate, "lower-rate", 0, "매수 교차 비율")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply는 명시적으로 지정된 플래그를 설정에 반영하고 다시 검증합니다
func (f *flags) apply(cfg *config.Config) error {
	if f.set["dir"] {
		cfg.App.DataDir = f.dir
	}
	if f.set["days"] {
		cfg.App.ReportDays = f.days
	}
	if f.set["lang"] {
		if _, err := domain.ParseLang(f.lang); err != nil {
			return err
		}
		cfg.App.Lang = f.lang
	}
	if f.set["horizon"] {
		cfg.Backtest.Horizon = f.horizon
	}
	if f.set["upper"] {
		cfg.Signal.UpperThreshold = f.upper
	}
	if f.set["lower"] {
		cfg.Signal.LowerThreshold = f.lower
	}
	if f.set["upper-rate"] {
		cfg.Signal.UpperCrossRate = f.upperRate
	}
	if f.set["lower-rate"] {
		cfg.Signal.LowerCrossRate = f.lowerRate
	}
	if f.fund != "" {
		cfg.Funds = []domain.Fund{{ID: f.fund, Title: f.title}}
	}

	if len(cfg.Funds) == 0 {
		return errors.New("-fund 또는 FUNDS_FILE 중 하나는 필요합니다")
	}
	return config.ValidateConfig(cfg)
}

func newNotifier(cfg *config.Config, log zerolog.Logger) notification.Notifier {
	if cfg.Discord.SignalWebhook == "" {
		return notification.Noop{}
	}
	return discord.NewClient(
		cfg.Discord.SignalWebhook,
		discord.WithErrorWebhook(cfg.Discord.ErrorWebhook),
		discord.WithInfoWebhook(cfg.Discord.InfoWebhook),
		discord.WithLogger(log),
	)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := f.apply(cfg); err != nil {
		return fmt.Errorf("설정 오류: %w", err)
	}

	// 리포트는 표준 출력, 로그는 표준 에러
	log := logger.NewWriter(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat)

	ctx, stop := osSignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 메트릭
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	if cfg.App.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.App.MetricsAddr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("메트릭 서버 종료")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("메트릭 서버 시작")
	}

	notifier := newNotifier(cfg, log)

	// 전략 레지스트리 생성 및 등록
	registry := strategy.NewRegistry()
	bandwalk.RegisterStrategy(registry)
	macdhist.RegisterStrategy(registry)

	strategies, err := strategy.CreateStrategiesFromConfig(registry, cfg)
	if err != nil {
		return err
	}
	for _, s := range strategies {
		if err := s.Initialize(ctx); err != nil {
			return fmt.Errorf("전략 초기화 실패 (%s): %w", s.GetName(), err)
		}
	}

	collector := market.NewCollector(cfg, strategies,
		market.WithNotifier(notifier),
		market.WithMetrics(m),
		market.WithLogger(log),
		market.WithOutput(os.Stdout),
	)

	if f.backtest {
		results, err := collector.Backtest(ctx, cfg.Backtest.Horizon)
		if werr := backtest.WriteSummary(os.Stdout, results); werr != nil {
			return werr
		}
		return err
	}

	// 최초 1회 분석
	_, collectErr := collector.Collect(ctx)
	if !f.watch {
		return collectErr
	}
	if collectErr != nil {
		log.Error().Err(collectErr).Msg("분석 실패")
	}

	if err := notifier.SendInfo(fmt.Sprintf("📈 감시 모드 시작: 펀드 %d개", len(cfg.Funds))); err != nil {
		log.Warn().Err(err).Msg("시작 알림 전송 실패")
	}

	var runErr error
	if cfg.App.WatchCron != "" {
		cs, err := scheduler.NewCronScheduler(cfg.App.WatchCron, collector, log)
		if err != nil {
			return err
		}
		runErr = cs.Start(ctx)
	} else {
		runErr = scheduler.NewScheduler(cfg.App.FetchInterval, collector, log).Start(ctx)
	}

	if errors.Is(runErr, context.Canceled) {
		log.Info().Msg("종료 신호 수신, 감시 모드 종료")
		return nil
	}
	return runErr
}
