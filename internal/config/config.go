package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/assist-by/bandwalk/internal/analysis/bandwalk"
	"github.com/assist-by/bandwalk/internal/analysis/signal"
	"github.com/assist-by/bandwalk/internal/domain"
)

type Config struct {
	// 디스코드 웹훅 설정 (비어 있으면 알림을 보내지 않음)
	Discord struct {
		SignalWebhook string `envconfig:"DISCORD_SIGNAL_WEBHOOK"`
		ErrorWebhook  string `envconfig:"DISCORD_ERROR_WEBHOOK"`
		InfoWebhook   string `envconfig:"DISCORD_INFO_WEBHOOK"`
	}

	// 애플리케이션 설정
	App struct {
		DataDir       string        `envconfig:"DATA_DIR" default:"."`
		FundsFile     string        `envconfig:"FUNDS_FILE"`
		ReportDays    int           `envconfig:"REPORT_DAYS" default:"10"`
		Lang          string        `envconfig:"REPORT_LANG" default:"ja"`
		Workers       int           `envconfig:"WORKERS" default:"4"`
		FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"24h"`
		WatchCron     string        `envconfig:"WATCH_CRON"`
		MetricsAddr   string        `envconfig:"METRICS_ADDR"`
		LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat     string        `envconfig:"LOG_FORMAT" default:"json"`
	}

	// MACD 히스토그램 시그널 설정
	Signal struct {
		UpperThreshold float64 `envconfig:"UPPER_THRESHOLD" default:"0.5"`
		LowerThreshold float64 `envconfig:"LOWER_THRESHOLD" default:"-0.5"`
		UpperCrossRate float64 `envconfig:"UPPER_CROSS_RATE" default:"0.7"`
		LowerCrossRate float64 `envconfig:"LOWER_CROSS_RATE" default:"0.7"`
	}

	// 전략 설정
	Strategy struct {
		Enabled []string `envconfig:"STRATEGIES" default:"BandWalk,MACDHistogram"`
	}

	// 과거 시그널 평가 설정
	Backtest struct {
		Horizon int `envconfig:"BACKTEST_HORIZON" default:"20"`
	}

	// 분석 대상 펀드 (FUNDS_FILE 또는 CLI 인자)
	Funds []domain.Fund `ignored:"true"`
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if cfg.App.ReportDays < 1 {
		return fmt.Errorf("REPORT_DAYS는 1 이상이어야 합니다")
	}

	if cfg.App.Workers < 1 {
		return fmt.Errorf("WORKERS는 1 이상이어야 합니다")
	}

	if cfg.App.FetchInterval < 1*time.Minute {
		return fmt.Errorf("FETCH_INTERVAL은 1분 이상이어야 합니다")
	}

	if cfg.Backtest.Horizon < 1 {
		return fmt.Errorf("BACKTEST_HORIZON은 1 이상이어야 합니다")
	}

	if _, err := domain.ParseLang(cfg.App.Lang); err != nil {
		return fmt.Errorf("REPORT_LANG 오류: %w", err)
	}

	if err := cfg.SignalConfig().Validate(); err != nil {
		return fmt.Errorf("시그널 설정 오류: %w", err)
	}

	if len(cfg.Strategy.Enabled) == 0 {
		return fmt.Errorf("STRATEGIES는 비어 있을 수 없습니다")
	}

	for i, f := range cfg.Funds {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("%d번째 펀드의 id가 비어 있습니다", i+1)
		}
	}

	return nil
}

// SignalConfig는 MACD 히스토그램 추적기 설정을 반환합니다
func (c *Config) SignalConfig() signal.Config {
	return signal.Config{
		UpperThreshold: c.Signal.UpperThreshold,
		LowerThreshold: c.Signal.LowerThreshold,
		UpperCrossRate: c.Signal.UpperCrossRate,
		LowerCrossRate: c.Signal.LowerCrossRate,
	}
}

// BandWalkConfig는 밴드워크 판정 기준을 반환합니다
func (c *Config) BandWalkConfig() bandwalk.Config {
	return bandwalk.DefaultConfig()
}

// Language는 리포트 언어를 반환합니다. 잘못된 값이면 일본어를 사용합니다.
func (c *Config) Language() domain.Lang {
	lang, err := domain.ParseLang(c.App.Lang)
	if err != nil {
		return domain.LangJapanese
	}
	return lang
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (없으면 무시)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env 파일 로드 실패: %w", err)
	}

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	if cfg.App.FundsFile != "" {
		funds, err := LoadFunds(cfg.App.FundsFile)
		if err != nil {
			return nil, err
		}
		cfg.Funds = funds
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}

type fundsFile struct {
	Funds []domain.Fund `yaml:"funds"`
}

// LoadFunds는 YAML 파일에서 펀드 목록을 읽습니다
func LoadFunds(path string) ([]domain.Fund, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("펀드 목록 읽기 실패: %w", err)
	}

	var f fundsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("펀드 목록 파싱 실패: %w", err)
	}

	return f.Funds, nil
}
