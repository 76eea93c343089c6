package indicator

import (
	"fmt"
	"math"
)

// SMAAt은 인덱스 i에서 끝나는 period 구간의 단순이동평균을 계산합니다
func SMAAt(navs []float64, period, i int) Value {
	if period < 1 || i < period-1 || i >= len(navs) {
		return None
	}

	var sum float64
	for j := i - period + 1; j <= i; j++ {
		sum += navs[j]
	}
	return Some(sum / float64(period))
}

// StdDevAt은 같은 구간의 모표준편차를 계산합니다 (period로 나눔)
func StdDevAt(navs []float64, period, i int, mean Value) Value {
	m, ok := mean.Get()
	if !ok || period < 1 || i < period-1 || i >= len(navs) {
		return None
	}

	var sumSquares float64
	for j := i - period + 1; j <= i; j++ {
		diff := navs[j] - m
		sumSquares += diff * diff
	}
	return Some(math.Sqrt(sumSquares / float64(period)))
}

// SMA는 단순이동평균 지표를 구현합니다
type SMA struct {
	BaseIndicator
	Period int
}

// NewSMA는 새로운 SMA 지표 인스턴스를 생성합니다
func NewSMA(period int) *SMA {
	return &SMA{
		BaseIndicator: BaseIndicator{
			Name:   fmt.Sprintf("SMA(%d)", period),
			Config: map[string]interface{}{"Period": period},
		},
		Period: period,
	}
}

// Calculate는 주어진 기준가 시계열에 대해 SMA를 계산합니다
func (s *SMA) Calculate(navs []float64) ([]Value, error) {
	if err := validatePeriod("Period", s.Period); err != nil {
		return nil, err
	}

	results := make([]Value, len(navs))
	for i := range navs {
		results[i] = SMAAt(navs, s.Period, i)
	}
	return results, nil
}
