package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	CyclesTotal      = prometheus.NewCounter(prometheus.CounterOpts{Name: "depthwatch_cycles_total", Help: "Completed comparison cycles"})
	CycleErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "depthwatch_cycle_errors_total", Help: "Failed cycles by venue"}, []string{"venue"})
	FetchLatencyMs   = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "depthwatch_fetch_latency_ms", Help: "Book fetch latency", Buckets: prometheus.LinearBuckets(10, 50, 20)}, []string{"venue"})
	BookLevels       = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "depthwatch_book_levels", Help: "Levels in the last snapshot by venue and side"}, []string{"venue", "side"})
	BuyCostUSD       = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "depthwatch_buy_cost_usd", Help: "Cost to buy the configured quantity"}, []string{"venue"})
	SellRevenueUSD   = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "depthwatch_sell_revenue_usd", Help: "Revenue from selling the configured quantity"}, []string{"venue"})
	PartialFills     = prometheus.NewCounter(prometheus.CounterOpts{Name: "depthwatch_partial_fills_total", Help: "Walks that exhausted book depth"})
	APIErrorsTotal   = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "depthwatch_api_errors_total", Help: "Venue API errors by venue and kind"}, []string{"venue", "kind"})
)

func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		CyclesTotal, CycleErrorsTotal, FetchLatencyMs, BookLevels,
		BuyCostUSD, SellRevenueUSD, PartialFills, APIErrorsTotal,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("Prometheus metrics initialized")
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
