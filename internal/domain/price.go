package domain

import (
	"math"
	"sort"
	"time"
)

// PriceRow는 하루치 기준가 데이터를 표현합니다
type PriceRow struct {
	Date        time.Time // 기준일
	NAV         float64   // 기준가
	DailyChange float64   // 전일 대비
	TotalAssets float64   // 순자산 총액 (계산에는 사용하지 않음)
}

// PriceSeries는 날짜 오름차순으로 정렬된 기준가 목록입니다
type PriceSeries []PriceRow

// Validate는 시계열이 계산 가능한 상태인지 확인합니다.
// 날짜는 엄격하게 증가해야 하고 기준가는 0 이상의 유한한 값이어야 합니다.
func (s PriceSeries) Validate() error {
	for i, row := range s {
		if math.IsNaN(row.NAV) || math.IsInf(row.NAV, 0) {
			return &InvalidInputError{Index: i, Reason: "기준가가 숫자가 아닙니다"}
		}
		if row.NAV < 0 {
			return &InvalidInputError{Index: i, Reason: "기준가가 음수입니다"}
		}
		if i == 0 {
			continue
		}
		prev := s[i-1].Date
		switch {
		case row.Date.Equal(prev):
			return &InvalidInputError{Index: i, Reason: "중복된 날짜: " + row.Date.Format("2006-01-02")}
		case row.Date.Before(prev):
			return &InvalidInputError{Index: i, Reason: "날짜 순서가 올바르지 않습니다: " + row.Date.Format("2006-01-02")}
		}
	}
	return nil
}

// SortByDate는 날짜 오름차순으로 정렬된 복사본을 반환합니다
func (s PriceSeries) SortByDate() PriceSeries {
	sorted := make(PriceSeries, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// NAVs는 기준가만 추출한 슬라이스를 반환합니다
func (s PriceSeries) NAVs() []float64 {
	navs := make([]float64, len(s))
	for i, row := range s {
		navs[i] = row.NAV
	}
	return navs
}

// Last는 가장 최근 행을 반환합니다
func (s PriceSeries) Last() (PriceRow, bool) {
	if len(s) == 0 {
		return PriceRow{}, false
	}
	return s[len(s)-1], true
}
