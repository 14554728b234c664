package orderbook

// Level is one price point with the quantity available at it.
type Level struct{ Price, Qty float64 }

// Book is an L2 snapshot. Ordering comes from the venue and is trusted:
// asks ascending, bids descending by price. The walker never re-sorts.
type Book struct {
	Asks []Level // sorted asc by price
	Bids []Level // sorted desc by price
}

// Fill is the outcome of consuming liquidity against one side of a book.
// Value is the volume-weighted total (cost when walking asks, revenue when
// walking bids); Qty is how much of the request was actually satisfied.
type Fill struct {
	Value float64
	Qty   float64
}

// Walk consumes levels best-price-first until qty is filled or depth runs
// out. Insufficient depth yields a partial fill, not an error.
func Walk(levels []Level, qty float64) Fill {
	if qty <= 0 {
		return Fill{}
	}
	var value float64
	remaining := qty
	for _, lvl := range levels {
		if remaining <= 0 {
			break
		}
		take := min(lvl.Qty, remaining)
		value += take * lvl.Price
		remaining -= take
	}
	return Fill{Value: value, Qty: qty - remaining}
}

// AvgPrice is Value per unit filled, 0 for an empty fill.
func (f Fill) AvgPrice() float64 {
	if f.Qty <= 0 {
		return 0
	}
	return f.Value / f.Qty
}

// Partial reports whether the fill came up short of the requested qty.
func (f Fill) Partial(requested float64) bool { return f.Qty < requested }

// Depth is the total quantity available across levels.
func Depth(levels []Level) float64 {
	var d float64
	for _, lvl := range levels {
		d += lvl.Qty
	}
	return d
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
