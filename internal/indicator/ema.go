package indicator

import (
	"fmt"
)

// EMA는 지수이동평균 지표를 구현합니다
type EMA struct {
	BaseIndicator
	Period int // EMA 기간
}

// NewEMA는 새로운 EMA 지표 인스턴스를 생성합니다
func NewEMA(period int) *EMA {
	return &EMA{
		BaseIndicator: BaseIndicator{
			Name: fmt.Sprintf("EMA(%d)", period),
			Config: map[string]interface{}{
				"Period": period,
			},
		},
		Period: period,
	}
}

// Alpha는 평활 계수 2/(period+1)을 반환합니다
func Alpha(period int) float64 {
	return 2.0 / float64(period+1)
}

// Calculate는 주어진 기준가 시계열에 대해 EMA를 계산합니다.
// period-1 이전은 정의되지 않고, period-1에서 SMA로 시작합니다.
func (e *EMA) Calculate(navs []float64) ([]Value, error) {
	if err := validatePeriod("Period", e.Period); err != nil {
		return nil, err
	}

	alpha := Alpha(e.Period)
	results := make([]Value, len(navs))

	for i := range navs {
		switch {
		case i < e.Period-1:
			results[i] = None
		case i == e.Period-1:
			// 첫 번째 EMA는 SMA 값으로 설정
			results[i] = SMAAt(navs, e.Period, i)
		default:
			prev, ok := results[i-1].Get()
			if !ok {
				results[i] = None
				continue
			}
			results[i] = Some(alpha*navs[i] + (1-alpha)*prev)
		}
	}

	return results, nil
}
