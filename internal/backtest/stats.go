package backtest

import (
	"fmt"
	"io"
	"strings"
)

// CalculateStats는 시그널 기록으로부터 적중률과 수익률 통계를 계산합니다
func CalculateStats(trades []Trade) *Result {
	result := &Result{
		TotalTrades: len(trades),
		Trades:      trades,
	}

	// 트레이드가 없는 경우 빈 결과 반환
	if len(trades) == 0 {
		return result
	}

	total := 0.0
	result.BestReturn = trades[0].ReturnPct
	result.WorstReturn = trades[0].ReturnPct

	// 연속 적중/빗나감 계산 변수
	currentWins := 0
	currentLosses := 0

	for _, trade := range trades {
		total += trade.ReturnPct

		if trade.ReturnPct > result.BestReturn {
			result.BestReturn = trade.ReturnPct
		}
		if trade.ReturnPct < result.WorstReturn {
			result.WorstReturn = trade.ReturnPct
		}

		if trade.Hit() {
			result.WinningTrades++
			currentWins++
			currentLosses = 0
			if currentWins > result.MaxConsecutiveWins {
				result.MaxConsecutiveWins = currentWins
			}
		} else {
			result.LosingTrades++
			currentLosses++
			currentWins = 0
			if currentLosses > result.MaxConsecutiveLosses {
				result.MaxConsecutiveLosses = currentLosses
			}
		}
	}

	result.WinRate = float64(result.WinningTrades) / float64(len(trades)) * 100
	result.AverageReturn = total / float64(len(trades))

	return result
}

// WriteSummary는 평가 결과를 사람이 읽을 수 있는 형태로 출력합니다
func WriteSummary(w io.Writer, results []*Result) error {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "=== %s / %s (%d일 후 평가, %s ~ %s) ===\n",
			r.FundID, r.Strategy, r.Horizon,
			r.StartDate.Format("2006/01/02"), r.EndDate.Format("2006/01/02"))
		fmt.Fprintf(&b, "시그널: %d건 (적중 %d, 빗나감 %d, 평가 대기 %d)\n",
			r.TotalTrades, r.WinningTrades, r.LosingTrades, r.Pending)

		if r.TotalTrades > 0 {
			fmt.Fprintf(&b, "적중률: %.1f%%  평균: %+.2f%%  최고: %+.2f%%  최저: %+.2f%%\n",
				r.WinRate, r.AverageReturn, r.BestReturn, r.WorstReturn)
			fmt.Fprintf(&b, "최대 연속 적중: %d  최대 연속 빗나감: %d\n",
				r.MaxConsecutiveWins, r.MaxConsecutiveLosses)
			for _, t := range r.Trades {
				fmt.Fprintf(&b, "  %s %-4s %.2f -> %s %.2f (%+.2f%%)\n",
					t.EntryDate.Format("2006/01/02"), t.Action, t.EntryNAV,
					t.ExitDate.Format("2006/01/02"), t.ExitNAV, t.ReturnPct)
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
