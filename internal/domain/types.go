package domain

// Action은 하루 단위 판정 결과를 정의합니다
type Action int

const (
	ActionInsufficientData Action = iota // 룩백 구간이 아직 채워지지 않음
	ActionNormal
	ActionHold
	ActionBuy
	ActionSell
)

// String은 Action의 문자열 표현을 반환합니다
func (a Action) String() string {
	switch a {
	case ActionInsufficientData:
		return "insufficient_data"
	case ActionNormal:
		return "normal"
	case ActionHold:
		return "hold"
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "unknown"
	}
}

// IsActionable은 매매 판단이 필요한 액션인지 확인합니다
func (a Action) IsActionable() bool {
	return a == ActionBuy || a == ActionSell
}

// NotificationColor는 알림 색상 코드를 정의합니다
const (
	ColorSuccess = 0x00FF00 // 녹색
	ColorError   = 0xFF0000 // 빨간색
	ColorInfo    = 0x0000FF // 파란색
	ColorWarning = 0xFFA500 // 주황색
)

// ColorForAction은 액션에 따른 알림 색상을 반환합니다
func ColorForAction(a Action) int {
	switch a {
	case ActionBuy:
		return ColorSuccess
	case ActionSell:
		return ColorError
	case ActionHold:
		return ColorWarning
	default:
		return ColorInfo
	}
}
