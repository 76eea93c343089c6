package indicator

import (
	"fmt"
)

// ValidationError는 입력값 검증 에러를 정의합니다
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("유효하지 않은 %s: %v", e.Field, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Indicator는 기준가 시계열 하나로 계산되는 지표의 인터페이스입니다
type Indicator interface {
	// Calculate는 기준가 시계열에 대해 인덱스별 지표값을 계산합니다
	Calculate(navs []float64) ([]Value, error)

	// GetName은 지표의 이름을 반환합니다
	GetName() string

	// GetConfig는 지표의 현재 설정을 반환합니다
	GetConfig() map[string]interface{}
}

// BaseIndicator는 모든 지표 구현체에서 공통적으로 사용할 수 있는 기본 구현을 제공합니다
type BaseIndicator struct {
	Name   string
	Config map[string]interface{}
}

// GetName은 지표의 이름을 반환합니다
func (b *BaseIndicator) GetName() string {
	return b.Name
}

// GetConfig는 지표의 현재 설정을 반환합니다
func (b *BaseIndicator) GetConfig() map[string]interface{} {
	// 설정의 복사본 반환
	configCopy := make(map[string]interface{})
	for k, v := range b.Config {
		configCopy[k] = v
	}
	return configCopy
}

func validatePeriod(field string, period int) error {
	if period < 1 {
		return &ValidationError{
			Field: field,
			Err:   fmt.Errorf("기간은 1 이상이어야 합니다: %d", period),
		}
	}
	return nil
}
