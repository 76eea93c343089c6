package strategy

import (
	"fmt"

	"github.com/assist-by/bandwalk/internal/config"
)

// 등록 이름
const (
	BandWalkName      = "BandWalk"
	MACDHistogramName = "MACDHistogram"
)

// CreateStrategiesFromConfig는 설정에서 활성화된 전략들을 생성합니다
func CreateStrategiesFromConfig(registry *Registry, cfg *config.Config) ([]Strategy, error) {
	lang := cfg.Language()
	bw := cfg.BandWalkConfig()
	sig := cfg.SignalConfig()

	// 전략별 설정 맵 생성
	strategyConfigs := map[string]map[string]interface{}{
		BandWalkName: {
			"lang":      lang,
			"window":    bw.Window,
			"upperZone": bw.UpperZone,
			"lowerZone": bw.LowerZone,
			"sellBelow": bw.SellBelow,
			"buyAbove":  bw.BuyAbove,
		},
		MACDHistogramName: {
			"lang":           lang,
			"upperThreshold": sig.UpperThreshold,
			"lowerThreshold": sig.LowerThreshold,
			"upperCrossRate": sig.UpperCrossRate,
			"lowerCrossRate": sig.LowerCrossRate,
		},
	}

	strategies := make([]Strategy, 0, len(cfg.Strategy.Enabled))
	for _, name := range cfg.Strategy.Enabled {
		s, err := registry.Create(name, strategyConfigs[name])
		if err != nil {
			return nil, fmt.Errorf("전략 생성 실패 (%s): %w", name, err)
		}
		strategies = append(strategies, s)
	}

	return strategies, nil
}
