package indicator

import (
	"fmt"

	"github.com/assist-by/bandwalk/internal/domain"
)

// Options는 지표 계산에 필요한 기간 설정입니다
type Options struct {
	BBPeriod     int     // 볼린저 밴드 기간
	BBStdDev     float64 // 볼린저 밴드 표준편차 배수
	MAPeriod     int     // 이동평균 기간
	FastPeriod   int     // MACD 단기 EMA 기간
	SlowPeriod   int     // MACD 장기 EMA 기간
	SignalPeriod int     // MACD 시그널 기간
}

// DefaultOptions는 기본 지표 설정을 반환합니다
func DefaultOptions() Options {
	return Options{
		BBPeriod:     20,
		BBStdDev:     2.0,
		MAPeriod:     25,
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
	}
}

// Validate는 설정이 유효한지 확인합니다
func (o Options) Validate() error {
	if err := validatePeriod("BBPeriod", o.BBPeriod); err != nil {
		return err
	}
	if o.BBStdDev <= 0 {
		return &ValidationError{Field: "BBStdDev", Err: fmt.Errorf("0보다 커야 합니다: %f", o.BBStdDev)}
	}
	if err := validatePeriod("MAPeriod", o.MAPeriod); err != nil {
		return err
	}
	return NewMACD(o.FastPeriod, o.SlowPeriod, o.SignalPeriod).validate()
}

// Row는 하루치 기준가와 그 날의 지표값입니다
type Row struct {
	domain.PriceRow

	SMA20         Value
	Std20         Value
	BBUpper       Value
	BBLower       Value
	MA25          Value
	EMAFast       Value
	EMASlow       Value
	MACD          Value
	MACDSignal    Value
	MACDHistogram Value
}

// Compute는 기준가 시계열 전체에 대해 지표를 계산합니다.
// 입력 시계열은 변경하지 않고, 인덱스가 1:1로 대응하는 새 슬라이스를 반환합니다.
func Compute(series domain.PriceSeries, opt Options) ([]Row, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	navs := series.NAVs()

	bands, err := NewBollinger(opt.BBPeriod, opt.BBStdDev).Calculate(navs)
	if err != nil {
		return nil, fmt.Errorf("볼린저 밴드 계산 실패: %w", err)
	}
	ma, err := NewSMA(opt.MAPeriod).Calculate(navs)
	if err != nil {
		return nil, fmt.Errorf("이동평균 계산 실패: %w", err)
	}
	macd, err := NewMACD(opt.FastPeriod, opt.SlowPeriod, opt.SignalPeriod).Calculate(navs)
	if err != nil {
		return nil, fmt.Errorf("MACD 계산 실패: %w", err)
	}

	rows := make([]Row, len(series))
	for i, price := range series {
		rows[i] = Row{
			PriceRow:      price,
			SMA20:         bands.Middle[i],
			Std20:         bands.StdDev[i],
			BBUpper:       bands.Upper[i],
			BBLower:       bands.Lower[i],
			MA25:          ma[i],
			EMAFast:       macd.Fast[i],
			EMASlow:       macd.Slow[i],
			MACD:          macd.Line[i],
			MACDSignal:    macd.Signal[i],
			MACDHistogram: macd.Histogram[i],
		}
	}

	return rows, nil
}

// Histograms는 행 목록에서 MACD 히스토그램만 추출합니다
func Histograms(rows []Row) []Value {
	out := make([]Value, len(rows))
	for i, r := range rows {
		out[i] = r.MACDHistogram
	}
	return out
}
