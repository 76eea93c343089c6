package market

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/bandwalk/internal/config"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/metrics"
	"github.com/assist-by/bandwalk/internal/strategy"
	"github.com/assist-by/bandwalk/internal/strategy/bandwalk"
	"github.com/assist-by/bandwalk/internal/strategy/macdhist"
)

type fakeNotifier struct {
	mu      sync.Mutex
	signals []domain.Signal
	errs    []error
	fail    bool
}

func (n *fakeNotifier) SendSignal(s domain.Signal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("전송 실패")
	}
	n.signals = append(n.signals, s)
	return nil
}

func (n *fakeNotifier) SendError(err error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errs = append(n.errs, err)
	return nil
}

func (n *fakeNotifier) SendInfo(string) error { return nil }

// lastDaySell은 마지막 날에만 매도 시그널을 내는 테스트용 전략입니다
type lastDaySell struct {
	strategy.BaseStrategy
}

func (s *lastDaySell) Initialize(context.Context) error { return nil }

func (s *lastDaySell) Analyze(_ context.Context, _ domain.Fund, rows []indicator.Row) ([]domain.Decision, error) {
	decisions := make([]domain.Decision, len(rows))
	for i, r := range rows {
		decisions[i] = domain.Decision{Strategy: s.GetName(), Index: i, Date: r.Date, NAV: r.NAV, Action: domain.ActionNormal}
	}
	last := len(rows) - 1
	decisions[last].Action = domain.ActionSell
	decisions[last].Fired = true
	decisions[last].Message = domain.Message{Lang: domain.LangEnglish, Text: "test sell"}
	return decisions, nil
}

func writeCSV(t *testing.T, dir, id string, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("日付,基準価額,前日比,純資産\n")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		nav := 10000 + 500*math.Sin(float64(i)/4)
		fmt.Fprintf(&b, "%s,\"%.0f\",+10,\"1,000\"\n", base.AddDate(0, 0, i).Format("2006-01-02"), nav)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+"_.csv"), []byte(b.String()), 0o644))
}

func testConfig(dir string, funds ...domain.Fund) *config.Config {
	cfg := &config.Config{}
	cfg.App.DataDir = dir
	cfg.App.ReportDays = 5
	cfg.App.Lang = "en"
	cfg.App.Workers = 2
	cfg.Signal.UpperThreshold = 0.5
	cfg.Signal.LowerThreshold = -0.5
	cfg.Signal.UpperCrossRate = 0.7
	cfg.Signal.LowerCrossRate = 0.7
	cfg.Funds = funds
	return cfg
}

func newSellStrategy() strategy.Strategy {
	return &lastDaySell{BaseStrategy: strategy.BaseStrategy{Name: "LastDaySell"}}
}

func TestCollect_ReportsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 60)
	writeCSV(t, dir, "BBB", 60)

	cfg := testConfig(dir,
		domain.Fund{ID: "AAA", Title: "Fund A"},
		domain.Fund{ID: "BBB", Title: "Fund B"},
	)
	notifier := &fakeNotifier{}
	var out bytes.Buffer
	reg := prometheus.NewRegistry()

	c := NewCollector(cfg, []strategy.Strategy{newSellStrategy()},
		WithNotifier(notifier), WithOutput(&out), WithMetrics(metrics.NewMetrics(reg)))

	results, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "AAA", results[0].Fund.ID)
	assert.Len(t, results[0].Rows, 60)
	assert.Len(t, results[0].Decisions, 60)
	require.Len(t, results[0].Signals, 1)
	assert.Equal(t, "2024-02-29", results[0].Signals[0].Date.Format("2006-01-02"))

	assert.Len(t, notifier.signals, 2)
	assert.Empty(t, notifier.errs)

	report := out.String()
	assert.Contains(t, report, "=== Fund A - analysis of the last 5 days ===")
	assert.Contains(t, report, "=== Fund B - analysis of the last 5 days ===")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCollect_NotifiesOnce(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 40)

	notifier := &fakeNotifier{}
	c := NewCollector(testConfig(dir, domain.Fund{ID: "AAA"}), []strategy.Strategy{newSellStrategy()},
		WithNotifier(notifier))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Execute(context.Background()))
	}
	assert.Len(t, notifier.signals, 1)
}

func TestCollect_RetriesFailedNotification(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 40)

	notifier := &fakeNotifier{fail: true}
	c := NewCollector(testConfig(dir, domain.Fund{ID: "AAA"}), []strategy.Strategy{newSellStrategy()},
		WithNotifier(notifier))

	results, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results[0].Signals)

	notifier.fail = false
	results, err = c.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, results[0].Signals, 1)
	assert.Len(t, notifier.signals, 1)
}

func TestCollect_JoinsFundErrors(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 40)

	notifier := &fakeNotifier{}
	c := NewCollector(
		testConfig(dir, domain.Fund{ID: "AAA"}, domain.Fund{ID: "MISSING"}),
		[]strategy.Strategy{newSellStrategy()},
		WithNotifier(notifier))

	results, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// 실패한 펀드와 무관하게 나머지는 분석됨
	require.Len(t, results, 2)
	assert.Len(t, results[0].Signals, 1)
	assert.NoError(t, results[0].Err)
	assert.Len(t, notifier.errs, 1)

	// 실패한 펀드도 어떤 펀드인지 알 수 있어야 함
	assert.Equal(t, "MISSING", results[1].Fund.ID)
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)
	assert.Empty(t, results[1].Rows)
}

func TestCollect_NoFunds(t *testing.T) {
	c := NewCollector(testConfig(t.TempDir()), nil)
	_, err := c.Collect(context.Background())
	assert.Error(t, err)
}

func TestCollect_RegisteredStrategies(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 80)

	cfg := testConfig(dir, domain.Fund{ID: "AAA", Title: "Fund A"})
	cfg.Strategy.Enabled = []string{strategy.BandWalkName, strategy.MACDHistogramName}

	registry := strategy.NewRegistry()
	bandwalk.RegisterStrategy(registry)
	macdhist.RegisterStrategy(registry)
	strategies, err := strategy.CreateStrategiesFromConfig(registry, cfg)
	require.NoError(t, err)

	c := NewCollector(cfg, strategies)
	results, err := c.Collect(context.Background())
	require.NoError(t, err)

	// 전략마다 하루 한 건의 판정
	assert.Len(t, results[0].Decisions, 160)
	for _, s := range results[0].Signals {
		assert.True(t, s.Action.IsActionable())
	}
}

func collectReport(t *testing.T, dir string, enabled ...string) string {
	t.Helper()
	cfg := testConfig(dir, domain.Fund{ID: "AAA", Title: "Fund A"})
	cfg.App.Lang = "ja"
	cfg.App.ReportDays = 10
	cfg.Strategy.Enabled = enabled

	registry := strategy.NewRegistry()
	bandwalk.RegisterStrategy(registry)
	macdhist.RegisterStrategy(registry)
	strategies, err := strategy.CreateStrategiesFromConfig(registry, cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = NewCollector(cfg, strategies, WithOutput(&out)).Collect(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestCollect_ReportFollowsEnabledStrategies(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 60)

	both := collectReport(t, dir, strategy.BandWalkName, strategy.MACDHistogramName)
	assert.Contains(t, both, "MACD判定")
	assert.Contains(t, both, "状態: ")
	assert.Contains(t, both, "--- 過去10日のまとめ ---")

	bandOnly := collectReport(t, dir, strategy.BandWalkName)
	assert.NotContains(t, bandOnly, "MACD判定")
	assert.Contains(t, bandOnly, "状態: ")
	assert.Contains(t, bandOnly, "--- 過去10日のまとめ ---")

	macdOnly := collectReport(t, dir, strategy.MACDHistogramName)
	assert.Contains(t, macdOnly, "MACD判定")
	assert.NotContains(t, macdOnly, "状態: ")

	none := collectReport(t, dir)
	assert.Contains(t, none, "[INSUFFICIENT_DATA]")
	assert.NotContains(t, none, "まとめ")
}

func TestBacktest(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAA", 40)

	notifier := &fakeNotifier{}
	c := NewCollector(testConfig(dir, domain.Fund{ID: "AAA"}, domain.Fund{ID: "MISSING"}),
		[]strategy.Strategy{newSellStrategy()}, WithNotifier(notifier))

	results, err := c.Backtest(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")
	require.Len(t, results, 1)

	// 마지막 날 시그널은 평가 기간이 지나지 않음
	assert.Equal(t, "AAA", results[0].FundID)
	assert.Zero(t, results[0].TotalTrades)
	assert.Equal(t, 1, results[0].Pending)
	assert.Empty(t, notifier.signals)

	_, err = c.Backtest(context.Background(), 0)
	assert.Error(t, err)
}
