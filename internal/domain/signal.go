package domain

import "time"

// Fund는 분석 대상 펀드를 정의합니다
type Fund struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	CSVPath string `yaml:"csv"` // 비어 있으면 <dir>/<id>_.csv
}

// Name은 표시용 이름을 반환합니다
func (f Fund) Name() string {
	if f.Title != "" {
		return f.Title
	}
	return f.ID
}

// Decision은 전략이 하루에 대해 내린 판정입니다
type Decision struct {
	Strategy   string    // 전략 이름
	Index      int       // 시계열 인덱스
	Date       time.Time // 기준일
	NAV        float64   // 기준가
	Action     Action    // 판정
	Message    Message   // 판정 근거
	IsBandWalk bool      // 밴드워크 구간 여부 (BandWalk 전략)
	Fired      bool      // 이 날 시그널이 새로 발생했는지 (MACDHistogram 전략)
}

// Signal은 알림으로 전송되는 매매 시그널입니다
type Signal struct {
	FundID    string
	FundTitle string
	Strategy  string
	Action    Action
	Date      time.Time
	NAV       float64
	Message   Message
}

// NewSignal은 펀드와 판정으로부터 시그널을 생성합니다
func NewSignal(fund Fund, d Decision) Signal {
	return Signal{
		FundID:    fund.ID,
		FundTitle: fund.Name(),
		Strategy:  d.Strategy,
		Action:    d.Action,
		Date:      d.Date,
		NAV:       d.NAV,
		Message:   d.Message,
	}
}

// IsValid는 시그널이 유효한지 확인합니다
func (s Signal) IsValid() bool {
	return s.Action.IsActionable() && s.FundID != "" && s.NAV > 0
}

// Key는 중복 알림 방지를 위한 키를 반환합니다
func (s Signal) Key() string {
	return s.FundID + "|" + s.Strategy + "|" + s.Date.Format("2006-01-02")
}
