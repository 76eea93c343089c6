package backtest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/strategy"
)

// DefaultHorizon은 기본 평가 기간입니다 (약 한 달치 영업일)
const DefaultHorizon = 20

// Engine은 전략이 과거에 낸 시그널을 평가 기간 뒤의 기준가와 비교합니다
type Engine struct {
	Horizon int
	log     zerolog.Logger
}

// NewEngine은 새로운 평가 엔진을 생성합니다
func NewEngine(horizon int, log zerolog.Logger) (*Engine, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("평가 기간은 1 이상이어야 합니다: %d", horizon)
	}
	return &Engine{Horizon: horizon, log: log}, nil
}

// Evaluate는 한 전략의 판정 목록에서 새로 발생한 매수/매도 시그널만 골라 평가합니다.
// decisions의 Index는 rows의 인덱스와 대응해야 합니다.
func (e *Engine) Evaluate(fundID, strategyName string, rows []indicator.Row, decisions []domain.Decision) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("시계열이 비어 있습니다")
	}

	var trades []Trade
	pending := 0

	for _, d := range decisions {
		if !d.Fired || !d.Action.IsActionable() {
			continue
		}
		if d.Index < 0 || d.Index >= len(rows) {
			return nil, fmt.Errorf("판정 인덱스 범위 초과: %d", d.Index)
		}

		exit := d.Index + e.Horizon
		if exit >= len(rows) {
			pending++
			continue
		}

		entry := rows[d.Index]
		if entry.NAV <= 0 {
			continue
		}
		trades = append(trades, newTrade(d.Action, entry.PriceRow, rows[exit].PriceRow))
	}

	result := CalculateStats(trades)
	result.FundID = fundID
	result.Strategy = strategyName
	result.Horizon = e.Horizon
	result.Pending = pending
	result.StartDate = rows[0].Date
	result.EndDate = rows[len(rows)-1].Date

	e.log.Debug().
		Str("fund", fundID).
		Str("strategy", strategyName).
		Int("trades", result.TotalTrades).
		Int("pending", pending).
		Float64("winRate", result.WinRate).
		Msg("시그널 평가 완료")

	return result, nil
}

// Run은 모든 전략을 실행해 전략별 평가 결과를 반환합니다
func (e *Engine) Run(ctx context.Context, fund domain.Fund, rows []indicator.Row, strategies []strategy.Strategy) ([]*Result, error) {
	results := make([]*Result, 0, len(strategies))
	for _, s := range strategies {
		decisions, err := s.Analyze(ctx, fund, rows)
		if err != nil {
			return nil, fmt.Errorf("%s 전략 실행 실패: %w", s.GetName(), err)
		}

		res, err := e.Evaluate(fund.ID, s.GetName(), rows, decisions)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func newTrade(action domain.Action, entry, exit domain.PriceRow) Trade {
	change := (exit.NAV - entry.NAV) / entry.NAV * 100
	if action == domain.ActionSell {
		change = -change
	}
	return Trade{
		Action:    action,
		EntryDate: entry.Date,
		ExitDate:  exit.Date,
		EntryNAV:  entry.NAV,
		ExitNAV:   exit.NAV,
		ReturnPct: change,
	}
}
