package signal

import "fmt"

// Config는 MACD 히스토그램 시그널 판정 기준을 정의합니다
type Config struct {
	UpperThreshold float64 // 매도 판정에 필요한 최대값 하한 (기본값: 0.5)
	LowerThreshold float64 // 매수 판정에 필요한 최소값 상한 (기본값: -0.5)
	UpperCrossRate float64 // 최대값 대비 하향 돌파 비율 (기본값: 0.7)
	LowerCrossRate float64 // 최소값 대비 상향 돌파 비율 (기본값: 0.7)
}

// DefaultConfig는 기본 판정 기준을 반환합니다
func DefaultConfig() Config {
	return Config{
		UpperThreshold: 0.5,
		LowerThreshold: -0.5,
		UpperCrossRate: 0.7,
		LowerCrossRate: 0.7,
	}
}

// Validate는 판정 기준이 유효한지 확인합니다
func (c Config) Validate() error {
	if c.UpperThreshold <= c.LowerThreshold {
		return fmt.Errorf("상단 임계값(%.4f)은 하단 임계값(%.4f)보다 커야 합니다",
			c.UpperThreshold, c.LowerThreshold)
	}
	if c.UpperCrossRate <= 0 || c.UpperCrossRate > 1 {
		return fmt.Errorf("상단 교차 비율은 (0, 1] 범위여야 합니다: %.4f", c.UpperCrossRate)
	}
	if c.LowerCrossRate <= 0 || c.LowerCrossRate > 1 {
		return fmt.Errorf("하단 교차 비율은 (0, 1] 범위여야 합니다: %.4f", c.LowerCrossRate)
	}
	return nil
}
