// Package metrics exposes Prometheus instrumentation for backtest
// runs and live replays.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	candlesReplayed  prometheus.Counter
	tradesExecuted   *prometheus.CounterVec
	ordersRejected   prometheus.Counter
	strategyErrors   prometheus.Counter
	portfolioValue   prometheus.Gauge
}

// NewRegistry creates a metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coin_backtests_total",
				Help: "Total number of backtest runs",
			},
			[]string{"strategy", "status"},
		),
		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coin_backtest_duration_seconds",
				Help:    "Backtest run duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		candlesReplayed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "coin_candles_replayed_total",
				Help: "Total number of candles fed through the replay loop",
			},
		),
		tradesExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coin_trades_executed_total",
				Help: "Total number of executed trades",
			},
			[]string{"side", "reason"},
		),
		ordersRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "coin_orders_rejected_total",
				Help: "Total number of orders rejected by venue minimums",
			},
		),
		strategyErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "coin_strategy_errors_total",
				Help: "Total number of strategy evaluation failures",
			},
		),
		portfolioValue: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "coin_portfolio_value",
				Help: "Current portfolio value in quote currency",
			},
		),
	}

	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.candlesReplayed)
	reg.MustRegister(r.tradesExecuted)
	reg.MustRegister(r.ordersRejected)
	reg.MustRegister(r.strategyErrors)
	reg.MustRegister(r.portfolioValue)

	return r
}

// RecordBacktest records a backtest completion.
func (r *Registry) RecordBacktest(strategy, status string, duration float64) {
	r.backtestsTotal.WithLabelValues(strategy, status).Inc()
	r.backtestDuration.Observe(duration)
}

// RecordCandle records one replayed candle.
func (r *Registry) RecordCandle() {
	r.candlesReplayed.Inc()
}

// RecordTrade records an executed trade.
func (r *Registry) RecordTrade(side, reason string) {
	r.tradesExecuted.WithLabelValues(side, reason).Inc()
}

// RecordRejection records an order rejected below venue minimums.
func (r *Registry) RecordRejection() {
	r.ordersRejected.Inc()
}

// RecordStrategyError records a degraded strategy evaluation.
func (r *Registry) RecordStrategyError() {
	r.strategyErrors.Inc()
}

// SetPortfolioValue updates the marked portfolio value.
func (r *Registry) SetPortfolioValue(v float64) {
	r.portfolioValue.Set(v)
}
