package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depthwatch/internal/config"
	"depthwatch/internal/exchange/common"
	"depthwatch/internal/infra/log"
	"depthwatch/internal/infra/metrics"
	"depthwatch/internal/orderbook"
	"depthwatch/internal/report"
)

// Engine drives the fetch-both → walk-four → report cycle. Each cycle's
// data is independent; a failed cycle leaves no state behind for the next.
type Engine struct {
	cfg      config.Config
	adapters []common.Adapter
	logger   log.Logger
	renderer *report.Renderer
}

func New(cfg config.Config, adapters []common.Adapter, logger log.Logger, renderer *report.Renderer) *Engine {
	return &Engine{cfg: cfg, adapters: adapters, logger: logger, renderer: renderer}
}

// Run polls until ctx is canceled. The first cycle runs immediately; a
// failed cycle re-arms either the full poll interval or the retry interval
// depending on cycle.on_error. Cycle errors never abort the loop.
func (e *Engine) Run(ctx context.Context) error {
	poll := time.Duration(e.cfg.Cycle.PollIntervalSeconds) * time.Second
	retry := time.Duration(e.cfg.Cycle.RetryIntervalSeconds) * time.Second

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("watcher stopped")
			return nil
		case <-timer.C:
			err := e.cycle(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				e.logger.Error().Err(err).Msg("cycle failed")
				if e.cfg.Cycle.OnError == "retry" {
					timer.Reset(retry)
					continue
				}
			}
			timer.Reset(poll)
		}
	}
}

func (e *Engine) cycle(ctx context.Context) error {
	ctxTO, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Cycle.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	// Both snapshots in flight at once so the comparison sees minimal skew.
	// Goroutines write to disjoint slots; the channel only signals joins.
	books := make([]orderbook.Book, len(e.adapters))
	errs := make([]error, len(e.adapters))
	done := make(chan int, len(e.adapters))
	for i, ad := range e.adapters {
		go func(i int, ad common.Adapter) {
			start := time.Now()
			books[i], errs[i] = ad.FetchBook(ctxTO)
			metrics.FetchLatencyMs.WithLabelValues(ad.Name()).Observe(float64(time.Since(start).Milliseconds()))
			done <- i
		}(i, ad)
	}
	for range e.adapters {
		<-done
	}

	var failed error
	for i, err := range errs {
		if err == nil {
			continue
		}
		venue := e.adapters[i].Name()
		metrics.CycleErrorsTotal.WithLabelValues(venue).Inc()
		metrics.APIErrorsTotal.WithLabelValues(venue, errorKind(err)).Inc()
		if failed == nil {
			failed = fmt.Errorf("fetch %s: %w", venue, err)
		}
	}
	if failed != nil {
		return failed
	}

	snaps := make([]Snapshot, len(e.adapters))
	for i, ad := range e.adapters {
		snaps[i] = Snapshot{Venue: ad.Name(), Book: books[i]}
		metrics.BookLevels.WithLabelValues(ad.Name(), "asks").Set(float64(len(books[i].Asks)))
		metrics.BookLevels.WithLabelValues(ad.Name(), "bids").Set(float64(len(books[i].Bids)))
	}

	rep := Summarize(e.cfg.Cycle.Quantity, snaps)
	for _, v := range rep.Venues {
		metrics.BuyCostUSD.WithLabelValues(v.Name).Set(v.Buy.Value)
		metrics.SellRevenueUSD.WithLabelValues(v.Name).Set(v.Sell.Value)
		if v.BuyPartial || v.SellPartial {
			metrics.PartialFills.Inc()
		}
		e.logger.Info().
			Str("venue", v.Name).
			Float64("buy_cost", v.Buy.Value).
			Float64("buy_avg", v.BuyAvg).
			Float64("sell_revenue", v.Sell.Value).
			Float64("sell_avg", v.SellAvg).
			Bool("buy_partial", v.BuyPartial).
			Bool("sell_partial", v.SellPartial).
			Msg("venue fills")
	}
	e.logger.Info().
		Str("best_buy", rep.BestBuy).
		Float64("buy_delta", rep.BuyDelta).
		Str("best_sell", rep.BestSell).
		Float64("sell_delta", rep.SellDelta).
		Msg("cycle summary")

	if err := e.renderer.Render(rep); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	metrics.CyclesTotal.Inc()
	return nil
}

func errorKind(err error) string {
	var pe *common.ParseError
	if errors.As(err, &pe) {
		return "parse"
	}
	return "transport"
}
