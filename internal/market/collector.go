package market

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/assist-by/bandwalk/internal/analysis/bandwalk"
	"github.com/assist-by/bandwalk/internal/analysis/signal"
	"github.com/assist-by/bandwalk/internal/config"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/ingest"
	"github.com/assist-by/bandwalk/internal/metrics"
	"github.com/assist-by/bandwalk/internal/notification"
	"github.com/assist-by/bandwalk/internal/report"
	"github.com/assist-by/bandwalk/internal/strategy"
)

// Collector는 펀드별 기준가를 읽어 분석하고 리포트와 알림을 내보냅니다
type Collector struct {
	config     *config.Config
	loader     *ingest.Loader
	strategies []strategy.Strategy
	notifier   notification.Notifier
	metrics    *metrics.Metrics
	log        zerolog.Logger
	out        io.Writer

	outMu    sync.Mutex
	mu       sync.Mutex // Collect 중복 실행 방지
	notified map[string]struct{}
	notifyMu sync.Mutex
}

// CollectorOption은 수집기의 옵션을 정의합니다
type CollectorOption func(*Collector)

// WithNotifier는 알림 전송기를 지정합니다
func WithNotifier(n notification.Notifier) CollectorOption {
	return func(c *Collector) {
		c.notifier = n
	}
}

// WithMetrics는 메트릭 수집기를 지정합니다
func WithMetrics(m *metrics.Metrics) CollectorOption {
	return func(c *Collector) {
		c.metrics = m
	}
}

// WithLogger는 로거를 지정합니다
func WithLogger(log zerolog.Logger) CollectorOption {
	return func(c *Collector) {
		c.log = log
	}
}

// WithOutput은 리포트 출력 대상을 지정합니다. nil이면 리포트를 출력하지 않습니다.
func WithOutput(w io.Writer) CollectorOption {
	return func(c *Collector) {
		c.out = w
	}
}

// NewCollector는 새로운 수집기를 생성합니다
func NewCollector(cfg *config.Config, strategies []strategy.Strategy, opts ...CollectorOption) *Collector {
	c := &Collector{
		config:     cfg,
		strategies: strategies,
		notifier:   notification.Noop{},
		log:        zerolog.Nop(),
		notified:   make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.loader = ingest.NewLoader(c.log)
	return c
}

// FundResult는 펀드 하나의 분석 결과입니다
type FundResult struct {
	Fund      domain.Fund
	Rows      []indicator.Row
	Decisions []domain.Decision
	Signals   []domain.Signal // 이번 실행에서 새로 알린 시그널
	Err       error           // 분석에 실패한 펀드만 설정
}

// Execute는 scheduler.Task 구현입니다
func (c *Collector) Execute(ctx context.Context) error {
	_, err := c.Collect(ctx)
	return err
}

// Collect는 설정된 모든 펀드를 한 번 분석합니다.
// 펀드별 오류는 로그와 에러 알림으로 남기고, 전체 오류를 묶어 반환합니다.
func (c *Collector) Collect(ctx context.Context) ([]FundResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	funds := c.config.Funds
	if len(funds) == 0 {
		return nil, errors.New("분석할 펀드가 없습니다")
	}

	workers := c.config.App.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]FundResult, len(funds))
	errs := make([]error, len(funds))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, fund := range funds {
		wg.Add(1)
		go func(i int, fund domain.Fund) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				results[i] = FundResult{Fund: fund, Err: errs[i]}
				return
			}

			start := time.Now()
			res, err := c.analyzeFund(ctx, fund)
			c.metrics.ObserveAnalysis(fund.ID, err, time.Since(start))
			if err != nil {
				errs[i] = fmt.Errorf("%s 분석 실패: %w", fund.ID, err)
				res.Err = errs[i]
				c.log.Error().Err(err).Str("fund", fund.ID).Msg("펀드 분석 실패")
				if notifyErr := c.notifier.SendError(errs[i]); notifyErr != nil {
					c.log.Warn().Err(notifyErr).Msg("에러 알림 전송 실패")
				}
			}
			results[i] = res
		}(i, fund)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// analyzeFund는 펀드 하나에 대해 로드, 지표 계산, 전략 판정, 리포트, 알림을 수행합니다
func (c *Collector) analyzeFund(ctx context.Context, fund domain.Fund) (FundResult, error) {
	res := FundResult{Fund: fund}

	series, err := c.loader.LoadCSV(ctx, ingest.ResolvePath(c.config.App.DataDir, fund))
	if err != nil {
		return res, err
	}
	last, ok := series.Last()
	if !ok {
		return res, errors.New("기준가 데이터가 없습니다")
	}

	rows, err := indicator.Compute(series, indicator.DefaultOptions())
	if err != nil {
		return res, fmt.Errorf("지표 계산 실패: %w", err)
	}
	res.Rows = rows
	c.metrics.SetLastNAV(fund.ID, last.NAV)

	for _, s := range c.strategies {
		decisions, err := s.Analyze(ctx, fund, rows)
		if err != nil {
			return res, fmt.Errorf("%s 전략 실행 실패: %w", s.GetName(), err)
		}
		res.Decisions = append(res.Decisions, decisions...)
	}

	if err := c.writeReport(fund, rows); err != nil {
		return res, err
	}

	res.Signals = c.notifyLatest(fund, rows, res.Decisions)
	return res, nil
}

// bandReporter는 리포트에 밴드워크 상세 판정을 제공하는 전략입니다
type bandReporter interface {
	Results(rows []indicator.Row) []bandwalk.Result
	Zones() bandwalk.Config
}

// annotationReporter는 리포트에 MACD 히스토그램 판정을 제공하는 전략입니다
type annotationReporter interface {
	Annotations(rows []indicator.Row) ([]signal.Annotation, error)
}

// writeReport는 최근 N일 리포트를 출력합니다. 펀드별 출력이 섞이지 않도록 버퍼에 모아 한 번에 씁니다.
// 활성화된 전략이 제공하는 판정만 리포트에 표시합니다.
func (c *Collector) writeReport(fund domain.Fund, rows []indicator.Row) error {
	if c.out == nil {
		return nil
	}

	var (
		bands []bandwalk.Result
		anns  []signal.Annotation
		zones = c.config.BandWalkConfig()
	)
	for _, s := range c.strategies {
		switch r := s.(type) {
		case bandReporter:
			bands = r.Results(rows)
			zones = r.Zones()
		case annotationReporter:
			a, err := r.Annotations(rows)
			if err != nil {
				return err
			}
			anns = a
		}
	}

	lang := c.config.Language()
	days := c.config.App.ReportDays

	var buf bytes.Buffer
	if err := report.Render(&buf, fund.Name(), rows, bands, anns, zones, days, lang); err != nil {
		return fmt.Errorf("리포트 생성 실패: %w", err)
	}
	if bands != nil || anns != nil {
		if err := report.RenderSummary(&buf, report.Summarize(bands, anns, days), lang); err != nil {
			return fmt.Errorf("리포트 생성 실패: %w", err)
		}
	}

	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, err := buf.WriteTo(c.out)
	return err
}

// notifyLatest는 최신 기준일에 발생한 매수/매도 판정만 알립니다.
// 같은 펀드/전략/기준일 조합은 프로세스 수명 동안 한 번만 전송합니다.
func (c *Collector) notifyLatest(fund domain.Fund, rows []indicator.Row, decisions []domain.Decision) []domain.Signal {
	last := len(rows) - 1
	var sent []domain.Signal

	for _, d := range decisions {
		if d.Index != last {
			continue
		}
		c.metrics.ObserveDecision(d.Strategy, d.Action.String())

		if !d.Fired || !d.Action.IsActionable() {
			continue
		}

		sig := domain.NewSignal(fund, d)
		if !sig.IsValid() || !c.markNotified(sig.Key()) {
			continue
		}

		c.log.Info().
			Str("fund", fund.ID).
			Str("strategy", d.Strategy).
			Str("action", d.Action.String()).
			Str("date", d.Date.Format("2006-01-02")).
			Str("message", d.Message.Text).
			Msg("시그널 감지")

		if err := c.notifier.SendSignal(sig); err != nil {
			c.log.Warn().Err(err).Str("fund", fund.ID).Msg("시그널 알림 전송 실패")
			c.unmarkNotified(sig.Key())
			continue
		}
		sent = append(sent, sig)
	}

	return sent
}

func (c *Collector) markNotified(key string) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if _, ok := c.notified[key]; ok {
		return false
	}
	c.notified[key] = struct{}{}
	return true
}

// 전송에 실패한 시그널은 다음 실행에서 다시 시도합니다
func (c *Collector) unmarkNotified(key string) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	delete(c.notified, key)
}
