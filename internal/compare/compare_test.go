package compare

import (
	"math"
	"testing"

	"depthwatch/internal/orderbook"
)

func twoVenueSnaps() []Snapshot {
	return []Snapshot{
		{Venue: "coinbase", Book: orderbook.Book{
			Asks: []orderbook.Level{{Price: 100, Qty: 2}, {Price: 110, Qty: 3}},
			Bids: []orderbook.Level{{Price: 99, Qty: 5}},
		}},
		{Venue: "gemini", Book: orderbook.Book{
			Asks: []orderbook.Level{{Price: 101, Qty: 5}},
			Bids: []orderbook.Level{{Price: 100, Qty: 5}},
		}},
	}
}

func TestSummarizeFourWalks(t *testing.T) {
	rep := Summarize(4, twoVenueSnaps())
	if len(rep.Venues) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(rep.Venues))
	}
	cb := rep.Venues[0]
	if math.Abs(cb.Buy.Value-420) > 1e-9 || cb.Buy.Qty != 4 {
		t.Fatalf("coinbase buy = %+v, want {420 4}", cb.Buy)
	}
	if math.Abs(cb.BuyAvg-105) > 1e-9 {
		t.Fatalf("coinbase buy avg = %v, want 105", cb.BuyAvg)
	}
	gem := rep.Venues[1]
	if math.Abs(gem.Buy.Value-404) > 1e-9 {
		t.Fatalf("gemini buy = %+v, want value 404", gem.Buy)
	}
}

func TestSummarizePicksBestVenues(t *testing.T) {
	rep := Summarize(4, twoVenueSnaps())
	// gemini buy 404 beats coinbase 420; gemini bids at 100 beat coinbase 99
	if rep.BestBuy != "gemini" {
		t.Fatalf("best buy = %s, want gemini", rep.BestBuy)
	}
	if math.Abs(rep.BuyDelta-16) > 1e-9 {
		t.Fatalf("buy delta = %v, want 16", rep.BuyDelta)
	}
	if rep.BestSell != "gemini" {
		t.Fatalf("best sell = %s, want gemini", rep.BestSell)
	}
	if math.Abs(rep.SellDelta-4) > 1e-9 {
		t.Fatalf("sell delta = %v, want 4", rep.SellDelta)
	}
}

func TestSummarizeFlagsPartials(t *testing.T) {
	snaps := []Snapshot{
		{Venue: "coinbase", Book: orderbook.Book{Asks: []orderbook.Level{{Price: 100, Qty: 1}}}},
		{Venue: "gemini", Book: orderbook.Book{Asks: []orderbook.Level{{Price: 100, Qty: 50}}, Bids: []orderbook.Level{{Price: 99, Qty: 50}}}},
	}
	rep := Summarize(5, snaps)
	cb := rep.Venues[0]
	if !cb.BuyPartial || !cb.SellPartial {
		t.Fatalf("expected coinbase partials, got %+v", cb)
	}
	if cb.Buy.Value != 100 || cb.Buy.Qty != 1 {
		t.Fatalf("partial buy = %+v, want {100 1}", cb.Buy)
	}
	if cb.SellAvg != 0 {
		t.Fatalf("empty-fill avg should be 0, got %v", cb.SellAvg)
	}
	gem := rep.Venues[1]
	if gem.BuyPartial || gem.SellPartial {
		t.Fatalf("gemini should fill fully, got %+v", gem)
	}
}

func TestSummarizeSingleVenueSkipsComparison(t *testing.T) {
	rep := Summarize(1, twoVenueSnaps()[:1])
	if rep.BestBuy != "" || rep.BestSell != "" {
		t.Fatalf("comparison should be empty with one venue, got %+v", rep)
	}
}
