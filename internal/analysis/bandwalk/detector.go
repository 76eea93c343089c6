package bandwalk

import (
	"fmt"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

// Config는 밴드워크 판정 기준을 정의합니다
type Config struct {
	Window    int     // 현재일을 포함한 판정 일수
	UpperZone float64 // 상단 부근 기준 (이상)
	LowerZone float64 // 하단 부근 기준 (이하)
	SellBelow float64 // 상승 밴드워크 중 이 위치 미만이면 이탈로 판정
	BuyAbove  float64 // 하락 밴드워크 중 이 위치 초과이면 이탈로 판정
}

// DefaultConfig는 기본 판정 기준을 반환합니다
func DefaultConfig() Config {
	return Config{
		Window:    6,
		UpperZone: 0.85,
		LowerZone: 0.15,
		SellBelow: 0.7,
		BuyAbove:  0.3,
	}
}

// Validate는 판정 기준이 유효한지 확인합니다
func (c Config) Validate() error {
	if c.Window < 2 {
		return fmt.Errorf("판정 일수는 2 이상이어야 합니다: %d", c.Window)
	}
	if c.LowerZone >= c.UpperZone {
		return fmt.Errorf("하단 기준(%.2f)은 상단 기준(%.2f)보다 작아야 합니다", c.LowerZone, c.UpperZone)
	}
	return nil
}

// Result는 하루에 대한 밴드워크 판정 결과입니다
type Result struct {
	Action       domain.Action
	Message      domain.Message
	IsBandWalk   bool
	Position     float64 // 현재일 밴드 위치
	MeanPosition float64 // 판정 구간 평균 위치
	UpperCount   int     // 상단 부근 일수
	LowerCount   int     // 하단 부근 일수
	Days         int     // 메시지에 표시되는 지속 일수
}

// Detector는 밴드워크 판정기입니다. 내부 상태가 없으므로 동시에 사용해도 안전합니다.
type Detector struct {
	cfg  Config
	lang domain.Lang
}

// NewDetector는 새로운 밴드워크 판정기를 생성합니다
func NewDetector(cfg Config, lang domain.Lang) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg, lang: lang}, nil
}

// Config는 판정 기준을 반환합니다
func (d *Detector) Config() Config {
	return d.cfg
}

// Check는 idx일의 밴드워크 여부를 판정합니다
func (d *Detector) Check(rows []indicator.Row, idx int) Result {
	window := d.cfg.Window
	days := window - 1

	insufficient := Result{
		Action:  domain.ActionInsufficientData,
		Message: domain.Format(d.lang, domain.MsgInsufficientData),
	}

	// 현재일 포함 window일의 밴드가 필요
	if idx < window-1 || idx >= len(rows) {
		return insufficient
	}

	var upperCount, lowerCount int
	var sum float64
	for i := 0; i < window; i++ {
		r := rows[idx-i]
		upper, okUpper := r.BBUpper.Get()
		lower, okLower := r.BBLower.Get()
		if !okUpper || !okLower {
			return insufficient
		}

		position := Position(r.NAV, upper, lower)
		sum += position

		if position >= d.cfg.UpperZone {
			upperCount++
		}
		if position <= d.cfg.LowerZone {
			lowerCount++
		}
	}

	current := rows[idx]
	ma, ok := current.MA25.Get()
	if !ok {
		return insufficient
	}

	position := Position(current.NAV, current.BBUpper.Float, current.BBLower.Float)
	mean := sum / float64(window)

	result := Result{
		Action:       domain.ActionNormal,
		Message:      domain.Format(d.lang, domain.MsgNormal),
		Position:     position,
		MeanPosition: mean,
		UpperCount:   upperCount,
		LowerCount:   lowerCount,
		Days:         days,
	}

	// 상승 밴드워크를 먼저 판정
	if upperCount == window && mean >= d.cfg.UpperZone && current.NAV > ma {
		result.IsBandWalk = true
		if position < d.cfg.SellBelow {
			result.Action = domain.ActionSell
			result.Message = domain.Format(d.lang, domain.MsgUpperWalkDetach, days)
		} else {
			result.Action = domain.ActionHold
			result.Message = domain.Format(d.lang, domain.MsgUpperWalkContinue, days)
		}
		return result
	}

	if lowerCount == window && mean <= d.cfg.LowerZone && current.NAV < ma {
		result.IsBandWalk = true
		if position > d.cfg.BuyAbove {
			result.Action = domain.ActionBuy
			result.Message = domain.Format(d.lang, domain.MsgLowerWalkDetach, days)
		} else {
			result.Action = domain.ActionHold
			result.Message = domain.Format(d.lang, domain.MsgLowerWalkContinue, days)
		}
		return result
	}

	return result
}

// CheckAll은 모든 인덱스에 대해 판정합니다
func (d *Detector) CheckAll(rows []indicator.Row) []Result {
	results := make([]Result, len(rows))
	for i := range rows {
		results[i] = d.Check(rows, i)
	}
	return results
}

// MarkSpans는 차트 표시용으로 밴드워크 구간을 표시합니다.
// 밴드워크로 판정된 날은 자신과 직전 window-1일을 함께 표시합니다.
func MarkSpans(results []Result, window int) []bool {
	marks := make([]bool, len(results))
	for i, r := range results {
		if !r.IsBandWalk {
			continue
		}
		for j := 0; j < window && i-j >= 0; j++ {
			marks[i-j] = true
		}
	}
	return marks
}
