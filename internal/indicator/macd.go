package indicator

import (
	"fmt"
)

// MACDSeries는 MACD 지표 계산 결과입니다. 모든 슬라이스는 입력과 길이가 같습니다.
type MACDSeries struct {
	Fast      []Value // 단기 EMA
	Slow      []Value // 장기 EMA
	Line      []Value // MACD 라인
	Signal    []Value // 시그널 라인
	Histogram []Value // 히스토그램
}

// MACD는 Moving Average Convergence Divergence 지표를 구현합니다
type MACD struct {
	BaseIndicator
	ShortPeriod  int // 단기 EMA 기간
	LongPeriod   int // 장기 EMA 기간
	SignalPeriod int // 시그널 라인 기간
}

// NewMACD는 새로운 MACD 지표 인스턴스를 생성합니다
func NewMACD(shortPeriod, longPeriod, signalPeriod int) *MACD {
	return &MACD{
		BaseIndicator: BaseIndicator{
			Name: fmt.Sprintf("MACD(%d,%d,%d)", shortPeriod, longPeriod, signalPeriod),
			Config: map[string]interface{}{
				"ShortPeriod":  shortPeriod,
				"LongPeriod":   longPeriod,
				"SignalPeriod": signalPeriod,
			},
		},
		ShortPeriod:  shortPeriod,
		LongPeriod:   longPeriod,
		SignalPeriod: signalPeriod,
	}
}

// Calculate는 주어진 기준가 시계열에 대해 MACD를 계산합니다
func (m *MACD) Calculate(navs []float64) (MACDSeries, error) {
	if err := m.validate(); err != nil {
		return MACDSeries{}, err
	}

	// 단기/장기 EMA는 서로 독립적으로 시작
	fast, err := NewEMA(m.ShortPeriod).Calculate(navs)
	if err != nil {
		return MACDSeries{}, fmt.Errorf("단기 EMA 계산 실패: %w", err)
	}
	slow, err := NewEMA(m.LongPeriod).Calculate(navs)
	if err != nil {
		return MACDSeries{}, fmt.Errorf("장기 EMA 계산 실패: %w", err)
	}

	// MACD 라인 계산 (단기 EMA - 장기 EMA)
	line := make([]Value, len(navs))
	for i := range navs {
		line[i] = fast[i].Sub(slow[i])
	}

	signal := SignalLine(line, m.SignalPeriod)

	histogram := make([]Value, len(navs))
	for i := range navs {
		histogram[i] = line[i].Sub(signal[i])
	}

	return MACDSeries{
		Fast:      fast,
		Slow:      slow,
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}, nil
}

// SignalLine은 MACD 라인의 시그널 EMA를 계산합니다.
//
// i == period-1 이거나 전날 시그널이 정의되지 않은 경우, 직전 period개 MACD 중
// 정의된 값들의 평균으로 다시 시작합니다. 따라서 MACD가 중간에 끊기면 그 다음 날
// 시그널이 재시작되며 값이 불연속일 수 있습니다.
func SignalLine(macd []Value, period int) []Value {
	results := make([]Value, len(macd))
	if period < 1 {
		return results
	}
	alpha := Alpha(period)

	for i := range macd {
		cur, ok := macd[i].Get()
		if i < period-1 || !ok {
			results[i] = None
			continue
		}

		if i == period-1 || !results[i-1].Valid {
			results[i] = seedSignal(macd, period, i)
			continue
		}

		results[i] = Some(alpha*cur + (1-alpha)*results[i-1].Float)
	}
	return results
}

// seedSignal은 i에서 끝나는 period 구간 중 정의된 MACD 값의 평균을 반환합니다
func seedSignal(macd []Value, period, i int) Value {
	var sum float64
	var count int
	for j := i; j > i-period && j >= 0; j-- {
		if v, ok := macd[j].Get(); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return None
	}
	return Some(sum / float64(count))
}

func (m *MACD) validate() error {
	if err := validatePeriod("ShortPeriod", m.ShortPeriod); err != nil {
		return err
	}
	if m.LongPeriod <= m.ShortPeriod {
		return &ValidationError{
			Field: "LongPeriod",
			Err:   fmt.Errorf("장기 기간은 단기 기간보다 커야 합니다: %d <= %d", m.LongPeriod, m.ShortPeriod),
		}
	}
	return validatePeriod("SignalPeriod", m.SignalPeriod)
}
