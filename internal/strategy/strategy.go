package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

// Strategy는 분석 전략의 인터페이스를 정의합니다
type Strategy interface {
	// Initialize는 전략을 초기화합니다
	Initialize(ctx context.Context) error

	// Analyze는 지표가 계산된 시계열 전체를 분석하여 날짜별 판정을 반환합니다.
	// 반환되는 판정은 rows와 인덱스가 1:1로 대응합니다.
	Analyze(ctx context.Context, fund domain.Fund, rows []indicator.Row) ([]domain.Decision, error)

	// GetName은 전략의 이름을 반환합니다
	GetName() string

	// GetDescription은 전략의 설명을 반환합니다
	GetDescription() string

	// GetConfig는 전략의 현재 설정을 반환합니다
	GetConfig() map[string]interface{}

	// UpdateConfig는 전략 설정을 업데이트합니다
	UpdateConfig(config map[string]interface{}) error
}

// BaseStrategy는 모든 전략 구현체에서 공통적으로 사용할 수 있는 기본 구현을 제공합니다
type BaseStrategy struct {
	Name        string
	Description string
	Config      map[string]interface{}
}

// GetName은 전략의 이름을 반환합니다
func (b *BaseStrategy) GetName() string {
	return b.Name
}

// GetDescription은 전략의 설명을 반환합니다
func (b *BaseStrategy) GetDescription() string {
	return b.Description
}

// GetConfig는 전략의 현재 설정을 반환합니다
func (b *BaseStrategy) GetConfig() map[string]interface{} {
	// 설정의 복사본 반환
	configCopy := make(map[string]interface{})
	for k, v := range b.Config {
		configCopy[k] = v
	}
	return configCopy
}

// UpdateConfig는 전략 설정을 업데이트합니다
func (b *BaseStrategy) UpdateConfig(config map[string]interface{}) error {
	if b.Config == nil {
		b.Config = make(map[string]interface{})
	}
	for k, v := range config {
		b.Config[k] = v
	}
	return nil
}

// Factory는 전략 인스턴스를 생성하는 함수 타입입니다
type Factory func(config map[string]interface{}) (Strategy, error)

// Registry는 사용 가능한 모든 전략을 등록하고 관리합니다
type Registry struct {
	strategies map[string]Factory
}

// NewRegistry는 새로운 전략 레지스트리를 생성합니다
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Factory),
	}
}

// Register는 새로운 전략 팩토리를 레지스트리에 등록합니다
func (r *Registry) Register(name string, factory Factory) {
	r.strategies[name] = factory
}

// Create는 주어진 이름과 설정으로 전략 인스턴스를 생성합니다
func (r *Registry) Create(name string, config map[string]interface{}) (Strategy, error) {
	factory, exists := r.strategies[name]
	if !exists {
		return nil, fmt.Errorf("존재하지 않는 전략: %s", name)
	}
	return factory(config)
}

// ListStrategies는 사용 가능한 모든 전략 이름을 정렬해서 반환합니다
func (r *Registry) ListStrategies() []string {
	var names []string
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Float는 설정 맵에서 실수 값을 읽습니다. 없거나 타입이 맞지 않으면 def를 반환합니다.
func Float(config map[string]interface{}, key string, def float64) float64 {
	switch v := config[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// Int는 설정 맵에서 정수 값을 읽습니다
func Int(config map[string]interface{}, key string, def int) int {
	if v, ok := config[key].(int); ok {
		return v
	}
	return def
}

// Lang은 설정 맵에서 언어 태그를 읽습니다
func Lang(config map[string]interface{}, key string) domain.Lang {
	switch v := config[key].(type) {
	case domain.Lang:
		return v
	case string:
		if lang, err := domain.ParseLang(v); err == nil {
			return lang
		}
	}
	return domain.LangJapanese
}
