package bandwalk

// Position은 밴드 안에서 가격의 상대 위치를 계산합니다 (0=하단, 1=상단).
// 밴드 폭이 0이면 0.5를 반환하며, 밴드를 벗어나면 [0,1] 범위를 넘을 수 있습니다.
func Position(price, upper, lower float64) float64 {
	if upper != lower {
		return (price - lower) / (upper - lower)
	}
	return 0.5
}

// Zone은 밴드 위치 구간을 정의합니다
type Zone int

const (
	ZoneInside        Zone = iota
	ZoneNearUpper          // 상단 부근
	ZoneNearLower          // 하단 부근
	ZoneBreakoutUpper      // 상단 돌파
	ZoneBreakoutLower      // 하단 돌파
)

// String은 Zone의 문자열 표현을 반환합니다
func (z Zone) String() string {
	switch z {
	case ZoneNearUpper:
		return "near_upper"
	case ZoneNearLower:
		return "near_lower"
	case ZoneBreakoutUpper:
		return "breakout_upper"
	case ZoneBreakoutLower:
		return "breakout_lower"
	default:
		return "inside"
	}
}

// ZoneOf는 설정된 임계값으로 위치 구간을 분류합니다
func (c Config) ZoneOf(position float64) Zone {
	switch {
	case position > 1.0:
		return ZoneBreakoutUpper
	case position < 0.0:
		return ZoneBreakoutLower
	case position >= c.UpperZone:
		return ZoneNearUpper
	case position <= c.LowerZone:
		return ZoneNearLower
	default:
		return ZoneInside
	}
}
