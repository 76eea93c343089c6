package indicator

import "fmt"

// BollingerSeries는 볼린저 밴드 계산 결과입니다
type BollingerSeries struct {
	Middle []Value // 중심선 (SMA)
	StdDev []Value // 모표준편차
	Upper  []Value // 상단 밴드
	Lower  []Value // 하단 밴드
}

// Bollinger는 볼린저 밴드 지표를 구현합니다
type Bollinger struct {
	BaseIndicator
	Period int     // 이동평균 기간
	K      float64 // 표준편차 배수
}

// NewBollinger는 새로운 볼린저 밴드 인스턴스를 생성합니다
func NewBollinger(period int, k float64) *Bollinger {
	return &Bollinger{
		BaseIndicator: BaseIndicator{
			Name: fmt.Sprintf("BB(%d,%.1f)", period, k),
			Config: map[string]interface{}{
				"Period": period,
				"K":      k,
			},
		},
		Period: period,
		K:      k,
	}
}

// Calculate는 주어진 기준가 시계열에 대해 볼린저 밴드를 계산합니다.
// 상단과 하단은 항상 함께 정의되거나 함께 정의되지 않습니다.
func (b *Bollinger) Calculate(navs []float64) (BollingerSeries, error) {
	if err := validatePeriod("Period", b.Period); err != nil {
		return BollingerSeries{}, err
	}
	if b.K <= 0 {
		return BollingerSeries{}, &ValidationError{
			Field: "K",
			Err:   fmt.Errorf("표준편차 배수는 0보다 커야 합니다: %f", b.K),
		}
	}

	out := BollingerSeries{
		Middle: make([]Value, len(navs)),
		StdDev: make([]Value, len(navs)),
		Upper:  make([]Value, len(navs)),
		Lower:  make([]Value, len(navs)),
	}

	for i := range navs {
		mid := SMAAt(navs, b.Period, i)
		std := StdDevAt(navs, b.Period, i, mid)
		out.Middle[i] = mid
		out.StdDev[i] = std

		if mid.Valid && std.Valid {
			out.Upper[i] = Some(mid.Float + b.K*std.Float)
			out.Lower[i] = Some(mid.Float - b.K*std.Float)
		}
	}

	return out, nil
}
