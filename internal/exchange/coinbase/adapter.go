package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"depthwatch/internal/config"
	"depthwatch/internal/exchange/common"
	"depthwatch/internal/infra/network"
	"depthwatch/internal/orderbook"
)

// Coinbase level-2 books encode each level as [price, size, num_orders]
// where price and size are strings and num_orders is a JSON number.
// Available quantity at a level is size * num_orders.

type Adapter struct {
	cfg    config.Config
	http   *http.Client
	bucket *network.TokenBucket
}

func New(cfg config.Config) *Adapter {
	return &Adapter{
		cfg:    cfg,
		http:   network.NewHTTPClient(),
		bucket: network.NewTokenBucket(cfg.Network.Burst, cfg.Network.RequestsPerSecond),
	}
}

func (a *Adapter) Name() string { return "coinbase" }

func (a *Adapter) FetchBook(ctx context.Context) (orderbook.Book, error) {
	if !a.bucket.Allow(time.Now()) {
		return orderbook.Book{}, fmt.Errorf("coinbase: request budget exhausted")
	}
	url := fmt.Sprintf("%s/products/%s/book?level=2", a.cfg.Venues.Coinbase.BaseURL, a.cfg.Venues.Coinbase.Product)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("User-Agent", "depthwatch/1.0")
	resp, err := a.http.Do(req)
	if err != nil {
		return orderbook.Book{}, fmt.Errorf("coinbase: book request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode/100 != 2 {
		return orderbook.Book{}, fmt.Errorf("coinbase: book http %d", resp.StatusCode)
	}
	var raw struct {
		Asks [][]any `json:"asks"`
		Bids [][]any `json:"bids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return orderbook.Book{}, fmt.Errorf("coinbase: decode book: %w", err)
	}
	asks, err := normalizeLevels(raw.Asks)
	if err != nil {
		return orderbook.Book{}, err
	}
	bids, err := normalizeLevels(raw.Bids)
	if err != nil {
		return orderbook.Book{}, err
	}
	return orderbook.Book{Asks: asks, Bids: bids}, nil
}

// normalizeLevels keeps the venue-provided order; it validates numerics only.
func normalizeLevels(raw [][]any) ([]orderbook.Level, error) {
	out := make([]orderbook.Level, 0, len(raw))
	for _, entry := range raw {
		if len(entry) < 3 {
			return nil, &common.ParseError{Venue: "coinbase", Field: "level", Raw: fmt.Sprint(entry), Err: fmt.Errorf("want [price, size, num_orders]")}
		}
		price, err := parseField(entry[0], "price")
		if err != nil {
			return nil, err
		}
		size, err := parseField(entry[1], "size")
		if err != nil {
			return nil, err
		}
		count, ok := entry[2].(float64)
		if !ok || count < 0 || count != math.Trunc(count) {
			return nil, &common.ParseError{Venue: "coinbase", Field: "num_orders", Raw: fmt.Sprint(entry[2]), Err: fmt.Errorf("want non-negative integer")}
		}
		if price <= 0 {
			return nil, &common.ParseError{Venue: "coinbase", Field: "price", Raw: fmt.Sprint(entry[0]), Err: fmt.Errorf("want positive")}
		}
		out = append(out, orderbook.Level{Price: price, Qty: size * count})
	}
	return out, nil
}

func parseField(v any, field string) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, &common.ParseError{Venue: "coinbase", Field: field, Raw: fmt.Sprint(v), Err: fmt.Errorf("want string")}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &common.ParseError{Venue: "coinbase", Field: field, Raw: s, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, &common.ParseError{Venue: "coinbase", Field: field, Raw: s, Err: fmt.Errorf("not a finite non-negative number")}
	}
	return f, nil
}
