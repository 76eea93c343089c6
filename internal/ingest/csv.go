package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/assist-by/bandwalk/internal/domain"
)

// 지원하는 날짜 형식
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006年1月2日",
}

// Stats는 CSV 읽기 결과 통계입니다
type Stats struct {
	Rows    int // 읽은 데이터 행 수 (헤더 제외)
	Dropped int // 형식 오류로 버린 행 수
}

// Loader는 기준가 CSV 파일을 읽습니다
type Loader struct {
	log zerolog.Logger
}

// NewLoader는 새로운 CSV 로더를 생성합니다
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log.With().Str("component", "ingest").Logger()}
}

// FundCSVPath는 펀드 ID에 해당하는 기본 CSV 경로를 반환합니다
func FundCSVPath(dir, id string) string {
	return filepath.Join(dir, id+"_.csv")
}

// ResolvePath는 펀드 설정에 경로가 있으면 그것을, 없으면 기본 경로를 반환합니다
func ResolvePath(dir string, fund domain.Fund) string {
	if fund.CSVPath != "" {
		return fund.CSVPath
	}
	return FundCSVPath(dir, fund.ID)
}

// LoadCSV는 파일에서 기준가 시계열을 읽습니다
func (l *Loader) LoadCSV(ctx context.Context, path string) (domain.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("CSV 파일 열기 실패: %w", err)
	}
	defer f.Close()

	series, stats, err := l.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ev := l.log.Info()
	if stats.Dropped > 0 {
		ev = l.log.Warn()
	}
	ev.Str("path", path).
		Int("rows", stats.Rows).
		Int("dropped", stats.Dropped).
		Msg("기준가 데이터 로드 완료")

	if len(series) > 0 {
		l.log.Debug().
			Str("from", series[0].Date.Format("2006-01-02")).
			Str("to", series[len(series)-1].Date.Format("2006-01-02")).
			Msg("데이터 기간")
	}

	return series, nil
}

// Parse는 CSV를 읽어 날짜순으로 정렬된 시계열을 반환합니다.
// 첫 행은 헤더로 간주하고, 열이 4개 미만이거나 날짜/숫자를 해석할 수 없는 행은 버립니다.
// 중복된 날짜가 있으면 *domain.InvalidInputError를 반환합니다.
func (l *Loader) Parse(ctx context.Context, r io.Reader) (domain.PriceSeries, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var stats Stats

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.PriceSeries{}, stats, nil
		}
		return nil, stats, fmt.Errorf("헤더 읽기 실패: %w", err)
	}

	var series domain.PriceSeries
	for line := 2; ; line++ {
		if stats.Rows%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%d행 읽기 실패: %w", line, err)
		}
		stats.Rows++

		row, err := parseRecord(record)
		if err != nil {
			stats.Dropped++
			l.log.Debug().Int("line", line).Err(err).Msg("행 무시")
			continue
		}
		series = append(series, row)
	}

	series = series.SortByDate()
	if err := series.Validate(); err != nil {
		return nil, stats, err
	}

	return series, stats, nil
}

func parseRecord(record []string) (domain.PriceRow, error) {
	if len(record) < 4 {
		return domain.PriceRow{}, fmt.Errorf("열 개수 부족: %d", len(record))
	}

	date, err := ParseDate(record[0])
	if err != nil {
		return domain.PriceRow{}, err
	}

	var nums [3]float64
	for i := range nums {
		v, err := ParseNumber(record[i+1])
		if err != nil {
			return domain.PriceRow{}, err
		}
		nums[i] = v
	}

	return domain.PriceRow{
		Date:        date,
		NAV:         nums[0],
		DailyChange: nums[1],
		TotalAssets: nums[2],
	}, nil
}

// ParseDate는 지원하는 형식 중 하나로 날짜를 해석합니다
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("지원하지 않는 날짜 형식: %q", s)
}

// ParseNumber는 천 단위 구분자와 앞의 + 부호를 허용해 숫자를 해석합니다.
// 빈 문자열은 0입니다.
func ParseNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("숫자 형식 오류: %q", s)
	}
	f, _ := d.Float64()
	return f, nil
}
