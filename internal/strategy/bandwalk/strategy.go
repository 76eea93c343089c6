package bandwalk

import (
	"context"

	"github.com/assist-by/bandwalk/internal/analysis/bandwalk"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/strategy"
)

// BandWalkStrategy는 볼린저 밴드워크 이탈 전략을 구현합니다
type BandWalkStrategy struct {
	strategy.BaseStrategy
	detector *bandwalk.Detector
}

// NewStrategy는 새로운 밴드워크 전략 인스턴스를 생성합니다
func NewStrategy(config map[string]interface{}) (strategy.Strategy, error) {
	if config == nil {
		config = make(map[string]interface{})
	}

	s := &BandWalkStrategy{
		BaseStrategy: strategy.BaseStrategy{
			Name:        strategy.BandWalkName,
			Description: "볼린저 밴드 상단/하단을 따라 걷다가 이탈하는 시점을 판정하는 전략",
			Config:      config,
		},
	}

	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// build는 현재 설정으로 판정기를 다시 만듭니다
func (s *BandWalkStrategy) build() error {
	def := bandwalk.DefaultConfig()
	cfg := bandwalk.Config{
		Window:    strategy.Int(s.Config, "window", def.Window),
		UpperZone: strategy.Float(s.Config, "upperZone", def.UpperZone),
		LowerZone: strategy.Float(s.Config, "lowerZone", def.LowerZone),
		SellBelow: strategy.Float(s.Config, "sellBelow", def.SellBelow),
		BuyAbove:  strategy.Float(s.Config, "buyAbove", def.BuyAbove),
	}

	detector, err := bandwalk.NewDetector(cfg, strategy.Lang(s.Config, "lang"))
	if err != nil {
		return err
	}
	s.detector = detector
	return nil
}

// Initialize는 전략을 초기화합니다
func (s *BandWalkStrategy) Initialize(ctx context.Context) error {
	return nil
}

// Analyze는 시계열 전체에 대해 밴드워크 판정을 수행합니다
func (s *BandWalkStrategy) Analyze(ctx context.Context, fund domain.Fund, rows []indicator.Row) ([]domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := s.detector.CheckAll(rows)
	decisions := make([]domain.Decision, len(rows))
	for i, r := range results {
		decisions[i] = domain.Decision{
			Strategy:   s.GetName(),
			Index:      i,
			Date:       rows[i].Date,
			NAV:        rows[i].NAV,
			Action:     r.Action,
			Message:    r.Message,
			IsBandWalk: r.IsBandWalk,
			Fired:      r.Action.IsActionable(),
		}
	}
	return decisions, nil
}

// Results는 리포트용 상세 판정 결과를 반환합니다
func (s *BandWalkStrategy) Results(rows []indicator.Row) []bandwalk.Result {
	return s.detector.CheckAll(rows)
}

// Zones는 현재 판정 기준을 반환합니다
func (s *BandWalkStrategy) Zones() bandwalk.Config {
	return s.detector.Config()
}

// UpdateConfig는 설정을 반영하고 판정기를 다시 만듭니다
func (s *BandWalkStrategy) UpdateConfig(config map[string]interface{}) error {
	prev := s.GetConfig()
	if err := s.BaseStrategy.UpdateConfig(config); err != nil {
		return err
	}
	if err := s.build(); err != nil {
		s.Config = prev
		return err
	}
	return nil
}

// RegisterStrategy는 이 전략을 레지스트리에 등록합니다
func RegisterStrategy(registry *strategy.Registry) {
	registry.Register(strategy.BandWalkName, NewStrategy)
}
