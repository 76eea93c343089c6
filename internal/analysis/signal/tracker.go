package signal

import (
	"strings"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

// Annotation은 하루에 대한 MACD 히스토그램 판정 결과입니다
type Annotation struct {
	Index     int
	Histogram indicator.Value
	Skipped   bool // 첫날이거나 히스토그램이 정의되지 않아 판정하지 않음
	ZeroCross int  // 1: 상향 교차, -1: 하향 교차, 0: 없음
	Sell      bool // 매도 시그널 상태 (발생 또는 지속)
	Buy       bool // 매수 시그널 상태 (발생 또는 지속)
	SellFired bool // 이 날 매도 시그널이 새로 발생
	BuyFired  bool // 이 날 매수 시그널이 새로 발생
	Message   domain.Message
	State     State // 이 날 처리 후 상태
}

// Action은 판정 결과를 공통 액션으로 변환합니다.
// 새로 발생한 날만 매도/매수이고, 유지 중인 날은 보유입니다.
func (a Annotation) Action() domain.Action {
	switch {
	case a.Skipped:
		return domain.ActionInsufficientData
	case a.SellFired:
		return domain.ActionSell
	case a.BuyFired:
		return domain.ActionBuy
	case a.Sell || a.Buy:
		return domain.ActionHold
	default:
		return domain.ActionNormal
	}
}

// Fired는 이 날 새 시그널이 발생했는지 반환합니다
func (a Annotation) Fired() bool {
	return a.SellFired || a.BuyFired
}

// Tracker는 시계열 하나를 날짜 순서대로 따라가며 MACD 히스토그램 시그널을 판정합니다.
// 상태를 가지므로 시계열마다 새 인스턴스를 사용해야 하며, 동시에 사용하면 안 됩니다.
type Tracker struct {
	cfg   Config
	lang  domain.Lang
	state State
	index int
	prev  indicator.Value // 직전 인덱스의 히스토그램 (건너뛴 날 포함)
}

// NewTracker는 새로운 시그널 추적기를 생성합니다
func NewTracker(cfg Config, lang domain.Lang) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{cfg: cfg, lang: lang}, nil
}

// State는 현재 누적 상태의 복사본을 반환합니다
func (t *Tracker) State() State {
	return t.state
}

// Advance는 다음 날의 히스토그램 값을 하나 처리합니다
func (t *Tracker) Advance(h indicator.Value) Annotation {
	ann := Annotation{Index: t.index, Histogram: h}
	prev := t.prev

	t.index++
	t.prev = h

	curr, ok := h.Get()
	if ann.Index == 0 || !ok {
		ann.Skipped = true
		ann.Message = domain.Format(t.lang, domain.MsgInsufficientData)
		ann.State = t.state
		return ann
	}

	// 제로선 교차 시 상태 초기화 후 종료
	if cross := isZeroCross(curr, prev); cross != 0 {
		t.state = State{Last: h}
		ann.ZeroCross = cross
		if cross > 0 {
			ann.Message = domain.Format(t.lang, domain.MsgZeroCrossUp)
		} else {
			ann.Message = domain.Format(t.lang, domain.MsgZeroCrossDown)
		}
		ann.State = t.state
		return ann
	}

	s := &t.state
	s.updateExtrema(curr)
	s.updateTrend(curr)

	var reasons []string

	sellLine := s.Max.Float * t.cfg.UpperCrossRate
	if !s.SellSignal && s.HasDeclined && s.Max.Float > t.cfg.UpperThreshold && curr < sellLine {
		s.SellSignal = true
		ann.SellFired = true
		reasons = append(reasons, domain.Format(t.lang, domain.MsgSellFired,
			s.Max.Float, t.cfg.UpperCrossRate*100, sellLine).Text)
	}

	buyLine := s.Min.Float * t.cfg.LowerCrossRate
	if !s.BuySignal && s.HasInclined && s.Min.Float < t.cfg.LowerThreshold && curr > buyLine {
		s.BuySignal = true
		ann.BuyFired = true
		reasons = append(reasons, domain.Format(t.lang, domain.MsgBuyFired,
			s.Min.Float, t.cfg.LowerCrossRate*100, buyLine).Text)
	}

	if s.SellSignal && !ann.SellFired {
		reasons = append(reasons, domain.Format(t.lang, domain.MsgSellContinue).Text)
	}
	if s.BuySignal && !ann.BuyFired {
		reasons = append(reasons, domain.Format(t.lang, domain.MsgBuyContinue).Text)
	}

	if len(reasons) == 0 {
		if curr >= 0 {
			reasons = append(reasons, domain.Format(t.lang, domain.MsgPositiveTerritory, curr, s.Max.Float).Text)
		} else {
			reasons = append(reasons, domain.Format(t.lang, domain.MsgNegativeTerritory, curr, s.Min.Float).Text)
		}
	}

	ann.Sell = s.SellSignal
	ann.Buy = s.BuySignal
	ann.Message = domain.Message{Lang: t.msgLang(), Text: strings.Join(reasons, " / ")}

	s.Last = h
	ann.State = t.state
	return ann
}

// msgLang은 메시지 카탈로그가 실제로 사용한 언어를 반환합니다
func (t *Tracker) msgLang() domain.Lang {
	return domain.Format(t.lang, domain.MsgNormal).Lang
}

// Run은 히스토그램 시계열 전체를 순서대로 처리합니다
func (t *Tracker) Run(hist []indicator.Value) []Annotation {
	out := make([]Annotation, len(hist))
	for i, h := range hist {
		out[i] = t.Advance(h)
	}
	return out
}

// RunRows는 지표 행 목록의 히스토그램을 순서대로 처리합니다
func (t *Tracker) RunRows(rows []indicator.Row) []Annotation {
	return t.Run(indicator.Histograms(rows))
}
