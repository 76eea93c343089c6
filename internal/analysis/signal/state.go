package signal

import "github.com/assist-by/bandwalk/internal/indicator"

// State는 제로선 교차 사이에 누적되는 히스토그램 상태입니다.
// 제로값(State{})이 초기 상태입니다.
type State struct {
	Max         indicator.Value // 마지막 리셋 이후 최대 히스토그램
	Min         indicator.Value // 마지막 리셋 이후 최소 히스토그램
	Last        indicator.Value // 직전 처리일의 히스토그램
	HasDeclined bool            // 리셋 이후 한 번이라도 하락했는지
	HasInclined bool            // 리셋 이후 한 번이라도 상승했는지
	SellSignal  bool            // 매도 시그널 발생 (리셋 전까지 유지)
	BuySignal   bool            // 매수 시그널 발생 (리셋 전까지 유지)
}

// updateExtrema는 현재 값을 최대/최소에 반영합니다
func (s *State) updateExtrema(h float64) {
	if !s.Max.Valid || h > s.Max.Float {
		s.Max = indicator.Some(h)
	}
	if !s.Min.Valid || h < s.Min.Float {
		s.Min = indicator.Some(h)
	}
}

// updateTrend는 직전 값과 비교해 추세 플래그를 갱신합니다
func (s *State) updateTrend(h float64) {
	last, ok := s.Last.Get()
	if !ok {
		return
	}
	if h < last {
		s.HasDeclined = true
	}
	if h > last {
		s.HasInclined = true
	}
}

// isZeroCross는 제로선 교차 여부를 반환합니다 (1: 상향, -1: 하향, 0: 없음).
// 직전 값이 정의되지 않았으면 교차로 보지 않습니다.
func isZeroCross(curr float64, prev indicator.Value) int {
	p, ok := prev.Get()
	if !ok {
		return 0
	}
	if curr > 0 && p <= 0 {
		return 1
	}
	if curr < 0 && p >= 0 {
		return -1
	}
	return 0
}
