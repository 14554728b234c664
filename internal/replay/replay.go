package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"depthwatch/internal/orderbook"
)

// Simple CSV-based replay harness for offline fill evaluation.
// CSV format: side,price,qty with side "ask" or "bid", best levels first.
// Env var: DEPTHWATCH_REPLAY_CSV=/path/to/file.csv
func RunSimpleCSV(quantity float64) error {
	path := os.Getenv("DEPTHWATCH_REPLAY_CSV")
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	buy, sell, levels, err := Evaluate(f, quantity)
	if err != nil {
		return err
	}
	fmt.Printf("replay levels=%d qty=%.4f buy_cost=%.2f buy_filled=%.4f sell_revenue=%.2f sell_filled=%.4f at %s\n",
		levels, quantity, buy.Value, buy.Qty, sell.Value, sell.Qty, time.Now().Format(time.RFC3339))
	return nil
}

// Evaluate builds a book from CSV rows and walks both sides for quantity.
// Malformed rows are skipped; row order is preserved per side.
func Evaluate(r io.Reader, quantity float64) (buy, sell orderbook.Fill, levels int, err error) {
	cr := csv.NewReader(r)
	var book orderbook.Book
	for {
		rec, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return orderbook.Fill{}, orderbook.Fill{}, 0, rerr
		}
		if len(rec) < 3 {
			continue
		}
		p, err1 := strconv.ParseFloat(rec[1], 64)
		q, err2 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil || p <= 0 || q < 0 {
			continue
		}
		switch rec[0] {
		case "ask":
			book.Asks = append(book.Asks, orderbook.Level{Price: p, Qty: q})
		case "bid":
			book.Bids = append(book.Bids, orderbook.Level{Price: p, Qty: q})
		}
	}
	levels = len(book.Asks) + len(book.Bids)
	return orderbook.Walk(book.Asks, quantity), orderbook.Walk(book.Bids, quantity), levels, nil
}
