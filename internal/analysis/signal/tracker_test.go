package signal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

const eps = 1e-6

func values(fs ...float64) []indicator.Value {
	out := make([]indicator.Value, len(fs))
	for i, f := range fs {
		out[i] = indicator.Some(f)
	}
	return out
}

func newTracker(t *testing.T, cfg Config) *Tracker {
	t.Helper()
	tr, err := NewTracker(cfg, domain.LangEnglish)
	require.NoError(t, err)
	return tr
}

func TestTracker_SellSignal(t *testing.T) {
	hist := values(0.1, 0.3, 0.6, 0.6*0.7-eps, 0.3, 0.5, 0.2, -0.1)
	anns := newTracker(t, DefaultConfig()).Run(hist)
	require.Len(t, anns, len(hist))

	assert.True(t, anns[0].Skipped)
	for i := 0; i < 3; i++ {
		assert.False(t, anns[i].Sell, "인덱스 %d", i)
		assert.False(t, anns[i].SellFired, "인덱스 %d", i)
	}

	fired := anns[3]
	assert.True(t, fired.SellFired)
	assert.True(t, fired.Sell)
	assert.Equal(t, domain.ActionSell, fired.Action())
	assert.Equal(t, "sell signal: max 0.6000, crossed below the 70% line 0.4200", fired.Message.Text)
	assert.InDelta(t, 0.6, fired.State.Max.Float, 1e-12)

	// 제로선 교차 전까지 유지
	for i := 4; i < 7; i++ {
		assert.True(t, anns[i].Sell, "인덱스 %d", i)
		assert.False(t, anns[i].SellFired, "인덱스 %d", i)
		assert.Equal(t, "sell signal continuing", anns[i].Message.Text)
		assert.Equal(t, domain.ActionHold, anns[i].Action())
	}

	reset := anns[7]
	assert.Equal(t, -1, reset.ZeroCross)
	assert.False(t, reset.Sell)
	assert.Equal(t, State{Last: indicator.Some(-0.1)}, reset.State)
	assert.Equal(t, "no signal: histogram crossed zero downward", reset.Message.Text)
	assert.Equal(t, domain.ActionNormal, reset.Action())
}

func TestTracker_BuySignal(t *testing.T) {
	hist := values(-0.1, -0.3, -0.6, -0.6*0.7+eps, -0.2, 0.1)
	anns := newTracker(t, DefaultConfig()).Run(hist)

	assert.False(t, anns[2].Buy)
	assert.True(t, anns[3].BuyFired)
	assert.Equal(t, domain.ActionBuy, anns[3].Action())
	assert.Equal(t, "buy signal: min -0.6000, crossed above the 70% line -0.4200", anns[3].Message.Text)

	assert.True(t, anns[4].Buy)
	assert.False(t, anns[4].BuyFired)
	assert.Equal(t, "buy signal continuing", anns[4].Message.Text)

	assert.Equal(t, 1, anns[5].ZeroCross)
	assert.False(t, anns[5].Buy)
}

func TestTracker_ThresholdNotReached(t *testing.T) {
	anns := newTracker(t, DefaultConfig()).Run(values(0.1, 0.3, 0.45, 0.1))

	for _, a := range anns {
		assert.False(t, a.Sell)
	}
	last := anns[3]
	assert.True(t, last.State.HasDeclined)
	assert.True(t, last.State.HasInclined)
	assert.Equal(t, "positive territory 0.1000 (max 0.4500)", last.Message.Text)
}

func TestTracker_CustomCrossRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UpperCrossRate = 1.0
	anns := newTracker(t, cfg).Run(values(0.1, 0.6, 0.59))

	assert.False(t, anns[1].Sell)
	assert.True(t, anns[2].SellFired)
}

func TestTracker_SkipsUndefined(t *testing.T) {
	hist := []indicator.Value{indicator.None, indicator.None, indicator.Some(0.2), indicator.None, indicator.Some(-0.1)}
	anns := newTracker(t, DefaultConfig()).Run(hist)

	assert.True(t, anns[0].Skipped)
	assert.True(t, anns[1].Skipped)
	assert.Equal(t, domain.ActionInsufficientData, anns[1].Action())

	// 직전 값이 없으면 교차로 보지 않음
	assert.False(t, anns[2].Skipped)
	assert.Equal(t, 0, anns[2].ZeroCross)
	assert.Equal(t, indicator.Some(0.2), anns[2].State.Last)

	assert.True(t, anns[3].Skipped)
	assert.Equal(t, 0, anns[4].ZeroCross)
	assert.Equal(t, "negative territory -0.1000 (min -0.1000)", anns[4].Message.Text)
}

func TestTracker_ZeroCrossFromFirstDay(t *testing.T) {
	tr := newTracker(t, DefaultConfig())
	tr.Advance(indicator.Some(-0.2))
	ann := tr.Advance(indicator.Some(0.3))

	assert.Equal(t, 1, ann.ZeroCross)
	assert.False(t, ann.State.Max.Valid)
	assert.Equal(t, indicator.Some(0.3), tr.State().Last)
	assert.Equal(t, 1, ann.Index)
}

func TestTracker_Deterministic(t *testing.T) {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.PriceSeries, 120)
	for i := range series {
		series[i] = domain.PriceRow{
			Date: baseTime.AddDate(0, 0, i),
			NAV:  10000 + 400*math.Sin(float64(i)/9) + 5*float64(i),
		}
	}
	rows, err := indicator.Compute(series, indicator.DefaultOptions())
	require.NoError(t, err)

	first := newTracker(t, DefaultConfig()).RunRows(rows)
	second := newTracker(t, DefaultConfig()).RunRows(rows)
	assert.Equal(t, first, second)

	// 첫 히스토그램(인덱스 25) 이전은 모두 판정하지 않음
	for i := 0; i < 25; i++ {
		assert.True(t, first[i].Skipped, "인덱스 %d", i)
	}
}

func TestTracker_DefaultLanguageFallback(t *testing.T) {
	tr, err := NewTracker(DefaultConfig(), domain.Lang("xx"))
	require.NoError(t, err)

	anns := tr.Run(values(0.1, 0.2))
	assert.Equal(t, domain.LangJapanese, anns[1].Message.Lang)
	assert.Equal(t, domain.LangJapanese, anns[0].Message.Lang)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"기본값", func(c *Config) {}, false},
		{"교차 비율 1", func(c *Config) { c.UpperCrossRate = 1 }, false},
		{"교차 비율 0", func(c *Config) { c.UpperCrossRate = 0 }, true},
		{"교차 비율 초과", func(c *Config) { c.LowerCrossRate = 1.2 }, true},
		{"임계값 역전", func(c *Config) { c.UpperThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := NewTracker(cfg, domain.LangJapanese)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
