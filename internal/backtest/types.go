package backtest

import (
	"time"

	"github.com/assist-by/bandwalk/internal/domain"
)

// Result는 한 펀드/전략에 대한 과거 시그널 평가 결과입니다
type Result struct {
	FundID               string    // 펀드 ID
	Strategy             string    // 전략 이름
	Horizon              int       // 평가 기간 (영업일 수)
	TotalTrades          int       // 평가된 시그널 수
	WinningTrades        int       // 적중한 시그널 수
	LosingTrades         int       // 빗나간 시그널 수
	Pending              int       // 평가 기간이 아직 지나지 않은 시그널 수
	WinRate              float64   // 적중률 (%)
	AverageReturn        float64   // 평균 방향 수익률 (%)
	BestReturn           float64   // 최고 방향 수익률 (%)
	WorstReturn          float64   // 최저 방향 수익률 (%)
	MaxConsecutiveWins   int       // 최대 연속 적중
	MaxConsecutiveLosses int       // 최대 연속 빗나감
	StartDate            time.Time // 시계열 시작일
	EndDate              time.Time // 시계열 종료일
	Trades               []Trade   // 개별 시그널 기록
}

// Trade는 시그널 하나와 그 이후 기준가 변화를 기록합니다
type Trade struct {
	Action    domain.Action // buy 또는 sell
	EntryDate time.Time     // 시그널 발생일
	ExitDate  time.Time     // 평가일
	EntryNAV  float64       // 시그널 발생일 기준가
	ExitNAV   float64       // 평가일 기준가
	ReturnPct float64       // 방향 수익률 (%). 매도 시그널은 하락을 수익으로 봅니다.
}

// Hit는 시그널이 적중했는지 확인합니다
func (t Trade) Hit() bool {
	return t.ReturnPct > 0
}
