package macdhist

import (
	"context"

	"github.com/assist-by/bandwalk/internal/analysis/signal"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/strategy"
)

// MACDHistogramStrategy는 제로선 교차 사이의 히스토그램 극값을 추적하는 전략을 구현합니다
type MACDHistogramStrategy struct {
	strategy.BaseStrategy
	cfg  signal.Config
	lang domain.Lang
}

// NewStrategy는 새로운 MACD 히스토그램 전략 인스턴스를 생성합니다
func NewStrategy(config map[string]interface{}) (strategy.Strategy, error) {
	if config == nil {
		config = make(map[string]interface{})
	}

	s := &MACDHistogramStrategy{
		BaseStrategy: strategy.BaseStrategy{
			Name:        strategy.MACDHistogramName,
			Description: "MACD 히스토그램이 극값 대비 일정 비율 이상 되돌리면 매매 시그널을 내는 전략",
			Config:      config,
		},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MACDHistogramStrategy) load() error {
	def := signal.DefaultConfig()
	cfg := signal.Config{
		UpperThreshold: strategy.Float(s.Config, "upperThreshold", def.UpperThreshold),
		LowerThreshold: strategy.Float(s.Config, "lowerThreshold", def.LowerThreshold),
		UpperCrossRate: strategy.Float(s.Config, "upperCrossRate", def.UpperCrossRate),
		LowerCrossRate: strategy.Float(s.Config, "lowerCrossRate", def.LowerCrossRate),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.lang = strategy.Lang(s.Config, "lang")
	return nil
}

// Initialize는 전략을 초기화합니다
func (s *MACDHistogramStrategy) Initialize(ctx context.Context) error {
	return nil
}

// Annotations는 새 추적기로 시계열 전체를 처리한 결과를 반환합니다.
// 호출마다 새 추적기를 사용하므로 같은 입력에는 항상 같은 결과가 나옵니다.
func (s *MACDHistogramStrategy) Annotations(rows []indicator.Row) ([]signal.Annotation, error) {
	tracker, err := signal.NewTracker(s.cfg, s.lang)
	if err != nil {
		return nil, err
	}
	return tracker.RunRows(rows), nil
}

// Analyze는 시계열 전체에 대해 MACD 히스토그램 시그널을 판정합니다
func (s *MACDHistogramStrategy) Analyze(ctx context.Context, fund domain.Fund, rows []indicator.Row) ([]domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anns, err := s.Annotations(rows)
	if err != nil {
		return nil, err
	}

	decisions := make([]domain.Decision, len(rows))
	for i, a := range anns {
		decisions[i] = domain.Decision{
			Strategy: s.GetName(),
			Index:    i,
			Date:     rows[i].Date,
			NAV:      rows[i].NAV,
			Action:   a.Action(),
			Message:  a.Message,
			Fired:    a.Fired(),
		}
	}
	return decisions, nil
}

// UpdateConfig는 설정을 반영합니다
func (s *MACDHistogramStrategy) UpdateConfig(config map[string]interface{}) error {
	prev := s.GetConfig()
	if err := s.BaseStrategy.UpdateConfig(config); err != nil {
		return err
	}
	if err := s.load(); err != nil {
		s.Config = prev
		return err
	}
	return nil
}

// RegisterStrategy는 이 전략을 레지스트리에 등록합니다
func RegisterStrategy(registry *strategy.Registry) {
	registry.Register(strategy.MACDHistogramName, NewStrategy)
}
