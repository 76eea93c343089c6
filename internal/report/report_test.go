package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/bandwalk/internal/analysis/bandwalk"
	"github.com/assist-by/bandwalk/internal/analysis/signal"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

func analyze(t *testing.T, n int, lang domain.Lang) ([]indicator.Row, []bandwalk.Result, []signal.Annotation) {
	t.Helper()
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.PriceSeries, n)
	for i := range series {
		series[i] = domain.PriceRow{
			Date:        baseTime.AddDate(0, 0, i),
			NAV:         15000 + 800*math.Sin(float64(i)/5),
			DailyChange: float64(i%7) - 3,
		}
	}
	rows, err := indicator.Compute(series, indicator.DefaultOptions())
	require.NoError(t, err)

	detector, err := bandwalk.NewDetector(bandwalk.DefaultConfig(), lang)
	require.NoError(t, err)
	tracker, err := signal.NewTracker(signal.DefaultConfig(), lang)
	require.NoError(t, err)

	return rows, detector.CheckAll(rows), tracker.RunRows(rows)
}

func countDays(out, title string) int {
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, title+" 2024/") {
			n++
		}
	}
	return n
}

func TestRender_RecentDays(t *testing.T) {
	rows, bands, anns := analyze(t, 40, domain.LangEnglish)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Test Fund", rows, bands, anns, bandwalk.DefaultConfig(), 10, domain.LangEnglish))
	out := buf.String()

	assert.Contains(t, out, "=== Test Fund - analysis of the last 10 days ===")
	assert.Contains(t, out, "Test Fund 2024/02/09")
	assert.NotContains(t, out, "Test Fund 2024/01/30")
	assert.Equal(t, 10, countDays(out, "Test Fund"))
	assert.Contains(t, out, "band position:")
	assert.Contains(t, out, "MACD:")
	assert.Contains(t, out, "state: ")
}

func TestRender_SkipsUndefinedBands(t *testing.T) {
	rows, bands, anns := analyze(t, 40, domain.LangJapanese)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "F", rows, bands, anns, bandwalk.DefaultConfig(), 100, domain.LangJapanese))
	out := buf.String()

	// 밴드는 인덱스 19부터 정의
	assert.Equal(t, 21, countDays(out, "F"))
	assert.Contains(t, out, "=== F - 過去40日の分析結果 ===")
	assert.Contains(t, out, "バンド位置")
}

func TestRender_WithoutStrategies(t *testing.T) {
	rows, _, _ := analyze(t, 30, domain.LangKorean)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "F", rows, nil, nil, bandwalk.DefaultConfig(), 5, domain.LangKorean))
	out := buf.String()

	assert.Equal(t, 5, countDays(out, "F"))
	assert.Contains(t, out, "[INSUFFICIENT_DATA]")
	assert.NotContains(t, out, "MACD 판정")
}

// flatRows는 밴드가 모두 정의된 rows를 만듭니다 (상단 110, 하단 90)
func flatRows(navs ...float64) []indicator.Row {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]indicator.Row, len(navs))
	for i, nav := range navs {
		rows[i].PriceRow = domain.PriceRow{Date: baseTime.AddDate(0, 0, i), NAV: nav}
		rows[i].BBUpper = indicator.Some(110)
		rows[i].BBLower = indicator.Some(90)
	}
	return rows
}

func TestRender_MarksBandWalkSpan(t *testing.T) {
	rows := flatRows(100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100)
	bands := make([]bandwalk.Result, len(rows))
	for i := range bands {
		bands[i] = bandwalk.Result{Action: domain.ActionNormal}
	}
	bands[9] = bandwalk.Result{Action: domain.ActionHold, IsBandWalk: true}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "F", rows, bands, nil, bandwalk.DefaultConfig(), 100, domain.LangEnglish))
	out := buf.String()

	// 판정일과 직전 5일이 함께 표시됨
	assert.Equal(t, 6, strings.Count(out, "*BANDWALK*"))
	for day := 5; day <= 10; day++ {
		assert.Contains(t, out, fmt.Sprintf("F 2024/01/%02d [", day))
	}
	assert.Contains(t, out, "F 2024/01/05 [NORMAL] *BANDWALK*")
	assert.Contains(t, out, "F 2024/01/10 [HOLD] *BANDWALK*")
	assert.Contains(t, out, "F 2024/01/04 [NORMAL]\n")
	assert.Contains(t, out, "F 2024/01/11 [NORMAL]\n")
}

func TestRender_UsesConfiguredZones(t *testing.T) {
	rows := flatRows(106) // 위치 0.8

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "F", rows, nil, nil, bandwalk.DefaultConfig(), 1, domain.LangEnglish))
	assert.NotContains(t, buf.String(), "near upper band")

	zones := bandwalk.DefaultConfig()
	zones.UpperZone = 0.75
	buf.Reset()
	require.NoError(t, Render(&buf, "F", rows, nil, nil, zones, 1, domain.LangEnglish))
	assert.Contains(t, buf.String(), "band position: 0.800 (0=lower, 1=upper) near upper band")
}

func TestRenderSummary(t *testing.T) {
	s := Summary{Days: 5, BandWalkDays: 2, SellFired: 1, Latest: domain.ActionHold}

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, s, domain.LangEnglish))
	out := buf.String()
	assert.Contains(t, out, "--- summary of the last 5 days ---")
	assert.Contains(t, out, "band walk: 2 days, sell signals: 1, buy signals: 0")
	assert.Contains(t, out, "latest: HOLD")

	buf.Reset()
	require.NoError(t, RenderSummary(&buf, s, domain.LangJapanese))
	assert.Contains(t, buf.String(), "--- 過去5日のまとめ ---")
}

func TestSummarize(t *testing.T) {
	bands := []bandwalk.Result{
		{Action: domain.ActionInsufficientData},
		{Action: domain.ActionNormal},
		{Action: domain.ActionHold, IsBandWalk: true},
		{Action: domain.ActionSell, IsBandWalk: true},
	}
	anns := []signal.Annotation{
		{Skipped: true},
		{SellFired: true, Sell: true},
		{Sell: true},
		{BuyFired: true, Buy: true},
	}

	s := Summarize(bands, anns, 3)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 1, s.Actions[domain.ActionNormal])
	assert.Equal(t, 0, s.Actions[domain.ActionInsufficientData])
	assert.Equal(t, 2, s.BandWalkDays)
	assert.Equal(t, 1, s.SellFired)
	assert.Equal(t, 1, s.BuyFired)
	assert.Equal(t, domain.ActionSell, s.Latest)

	empty := Summarize(nil, nil, 10)
	assert.Equal(t, 0, empty.Days)
	assert.Equal(t, domain.ActionInsufficientData, empty.Latest)
}
