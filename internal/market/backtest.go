package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/assist-by/bandwalk/internal/backtest"
	"github.com/assist-by/bandwalk/internal/indicator"
	"github.com/assist-by/bandwalk/internal/ingest"
)

// Backtest는 모든 펀드에 대해 전략별 과거 시그널을 평가 기간 뒤의 기준가로 평가합니다.
// 알림은 보내지 않습니다.
func (c *Collector) Backtest(ctx context.Context, horizon int) ([]*backtest.Result, error) {
	engine, err := backtest.NewEngine(horizon, c.log)
	if err != nil {
		return nil, err
	}
	if len(c.config.Funds) == 0 {
		return nil, errors.New("분석할 펀드가 없습니다")
	}

	var results []*backtest.Result
	var errs []error

	for _, fund := range c.config.Funds {
		series, err := c.loader.LoadCSV(ctx, ingest.ResolvePath(c.config.App.DataDir, fund))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fund.ID, err))
			continue
		}
		if len(series) == 0 {
			errs = append(errs, fmt.Errorf("%s: 기준가 데이터가 없습니다", fund.ID))
			continue
		}

		rows, err := indicator.Compute(series, indicator.DefaultOptions())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: 지표 계산 실패: %w", fund.ID, err))
			continue
		}

		res, err := engine.Run(ctx, fund, rows, c.strategies)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fund.ID, err))
			continue
		}
		results = append(results, res...)
	}

	return results, errors.Join(errs...)
}
