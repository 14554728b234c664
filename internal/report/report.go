package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"depthwatch/internal/orderbook"
)

// Venue holds one venue's buy and sell fills for a cycle.
type Venue struct {
	Name        string
	Buy         orderbook.Fill
	Sell        orderbook.Fill
	BuyAvg      float64
	SellAvg     float64
	BuyPartial  bool
	SellPartial bool
}

// Report is one cycle's outcome: four fills, derived averages and the
// venue comparison.
type Report struct {
	Ts        time.Time
	Quantity  float64
	Venues    []Venue
	BestBuy   string
	BestSell  string
	BuyDelta  float64 // how much cheaper the best buy venue is
	SellDelta float64 // how much more the best sell venue nets
}

// Renderer writes human-readable cycle summaries to a sink.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer { return &Renderer{w: w} }

func (r *Renderer) Render(rep Report) error {
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "%s\nAnalysis at %s\n%s\n", rule, rep.Ts.Format("15:04:05"), rule)

	fmt.Fprintf(&b, "\nBUYING %.4f BTC (from asks)\n", rep.Quantity)
	for _, v := range rep.Venues {
		fmt.Fprintf(&b, "  %-10s cost $%.2f  avg $%.2f/BTC%s\n", v.Name, v.Buy.Value, v.BuyAvg, partialNote(v.BuyPartial, v.Buy.Qty))
	}
	fmt.Fprintf(&b, "  best place to BUY: %s ($%.2f cheaper)\n", rep.BestBuy, rep.BuyDelta)

	fmt.Fprintf(&b, "\nSELLING %.4f BTC (from bids)\n", rep.Quantity)
	for _, v := range rep.Venues {
		fmt.Fprintf(&b, "  %-10s nets $%.2f  avg $%.2f/BTC%s\n", v.Name, v.Sell.Value, v.SellAvg, partialNote(v.SellPartial, v.Sell.Qty))
	}
	fmt.Fprintf(&b, "  best place to SELL: %s ($%.2f more)\n\n", rep.BestSell, rep.SellDelta)

	_, err := io.WriteString(r.w, b.String())
	return err
}

func partialNote(partial bool, filled float64) string {
	if !partial {
		return ""
	}
	return fmt.Sprintf("  [partial: %.4f filled]", filled)
}
