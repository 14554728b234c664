package compare

import (
	"math"
	"time"

	"depthwatch/internal/orderbook"
	"depthwatch/internal/report"
)

// Snapshot pairs a venue name with the book fetched this cycle.
type Snapshot struct {
	Venue string
	Book  orderbook.Book
}

// Summarize runs the four walks (buy from asks, sell into bids, per venue)
// and derives the venue comparison. Buying is cheaper where total cost is
// lower; selling is better where total revenue is higher.
func Summarize(quantity float64, snaps []Snapshot) report.Report {
	rep := report.Report{Ts: time.Now(), Quantity: quantity}
	for _, s := range snaps {
		buy := orderbook.Walk(s.Book.Asks, quantity)
		sell := orderbook.Walk(s.Book.Bids, quantity)
		rep.Venues = append(rep.Venues, report.Venue{
			Name:        s.Venue,
			Buy:         buy,
			Sell:        sell,
			BuyAvg:      buy.AvgPrice(),
			SellAvg:     sell.AvgPrice(),
			BuyPartial:  buy.Partial(quantity),
			SellPartial: sell.Partial(quantity),
		})
	}
	if len(rep.Venues) < 2 {
		return rep
	}
	a, b := rep.Venues[0], rep.Venues[1]
	if a.Buy.Value < b.Buy.Value {
		rep.BestBuy = a.Name
	} else {
		rep.BestBuy = b.Name
	}
	rep.BuyDelta = math.Abs(a.Buy.Value - b.Buy.Value)
	if a.Sell.Value > b.Sell.Value {
		rep.BestSell = a.Name
	} else {
		rep.BestSell = b.Name
	}
	rep.SellDelta = math.Abs(a.Sell.Value - b.Sell.Value)
	return rep
}
