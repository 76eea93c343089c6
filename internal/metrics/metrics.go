package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics는 분석 파이프라인의 Prometheus 지표입니다
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: fund, result
	DecisionsTotal   *prometheus.CounterVec // labels: strategy, action
	AnalysisDuration prometheus.Histogram
	LastNAV          *prometheus.GaugeVec // labels: fund
}

// NewMetrics는 지표를 생성해서 reg에 등록합니다. reg가 nil이면 등록하지 않습니다.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bandwalk_analyses_total",
			Help: "Fund series analyses by result",
		}, []string{"fund", "result"}),
		DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bandwalk_decisions_total",
			Help: "Latest-day decisions by strategy and action",
		}, []string{"strategy", "action"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bandwalk_analysis_duration_seconds",
			Help:    "Time to load, compute and evaluate one fund series",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		LastNAV: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bandwalk_last_nav",
			Help: "Most recent NAV per fund",
		}, []string{"fund"}),
	}

	if reg != nil {
		reg.MustRegister(m.AnalysesTotal, m.DecisionsTotal, m.AnalysisDuration, m.LastNAV)
	}
	return m
}

// ObserveAnalysis는 펀드 하나의 분석 결과를 기록합니다
func (m *Metrics) ObserveAnalysis(fund string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.AnalysesTotal.WithLabelValues(fund, result).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

// ObserveDecision은 최신일 판정을 기록합니다
func (m *Metrics) ObserveDecision(strategy, action string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(strategy, action).Inc()
}

// SetLastNAV는 펀드의 최신 기준가를 기록합니다
func (m *Metrics) SetLastNAV(fund string, nav float64) {
	if m == nil {
		return
	}
	m.LastNAV.WithLabelValues(fund).Set(nav)
}

// NewServer는 /metrics를 제공하는 HTTP 서버를 생성합니다. 시작은 호출자가 합니다.
func NewServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
