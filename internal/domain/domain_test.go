package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestPriceSeries_Validate(t *testing.T) {
	tests := []struct {
		name    string
		series  PriceSeries
		wantErr bool
		index   int
	}{
		{"빈 시계열", nil, false, 0},
		{"정상", PriceSeries{{Date: day(0), NAV: 100}, {Date: day(1), NAV: 101}}, false, 0},
		{"중복 날짜", PriceSeries{{Date: day(0), NAV: 100}, {Date: day(0), NAV: 101}}, true, 1},
		{"역순 날짜", PriceSeries{{Date: day(1), NAV: 100}, {Date: day(0), NAV: 101}}, true, 1},
		{"음수 기준가", PriceSeries{{Date: day(0), NAV: -1}}, true, 0},
		{"NaN 기준가", PriceSeries{{Date: day(0), NAV: 1}, {Date: day(1), NAV: math.NaN()}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "InvalidInputError 기대, 실제 %v", err)
			assert.Equal(t, tt.index, invalid.Index)
		})
	}
}

func TestPriceSeries_SortByDate(t *testing.T) {
	series := PriceSeries{{Date: day(2), NAV: 3}, {Date: day(0), NAV: 1}, {Date: day(1), NAV: 2}}
	sorted := series.SortByDate()

	assert.Equal(t, []float64{1, 2, 3}, sorted.NAVs())
	assert.Equal(t, 3.0, series[0].NAV, "원본은 변경되지 않아야 합니다")
	require.NoError(t, sorted.Validate())

	last, ok := sorted.Last()
	require.True(t, ok)
	assert.Equal(t, day(2), last.Date)
}

func TestFormat(t *testing.T) {
	msg := Format(LangEnglish, MsgUpperWalkDetach, 5)
	assert.Equal(t, "upside band walk detachment after 5 days", msg.Text)
	assert.Equal(t, LangEnglish, msg.Lang)

	msg = Format(LangJapanese, MsgNormal)
	assert.Equal(t, "通常状態", msg.String())

	// 알 수 없는 언어는 일본어로 대체
	msg = Format(Lang("xx"), MsgNormal)
	assert.Equal(t, LangJapanese, msg.Lang)
}

func TestParseLang(t *testing.T) {
	lang, err := ParseLang(" KO ")
	require.NoError(t, err)
	assert.Equal(t, LangKorean, lang)

	_, err = ParseLang("fr")
	assert.Error(t, err)
}

func TestSignal(t *testing.T) {
	fund := Fund{ID: "04315213"}
	d := Decision{Strategy: "BandWalk", Date: day(3), NAV: 12000, Action: ActionSell}
	sig := NewSignal(fund, d)

	assert.True(t, sig.IsValid())
	assert.Equal(t, "04315213", sig.FundTitle)
	assert.Equal(t, "04315213|BandWalk|2024-01-04", sig.Key())

	sig.Action = ActionHold
	assert.False(t, sig.IsValid())
}
