package gemini

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

// Gemini books encode each level as {"price": "...", "amount": "..."};
// available quantity is the amount directly.

type rawLevel struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

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

func (a *Adapter) Name() string { return "gemini" }

func (a *Adapter) FetchBook(ctx context.Context) (orderbook.Book, error) {
	if !a.bucket.Allow(time.Now()) {
		return orderbook.Book{}, fmt.Errorf("gemini: request budget exhausted")
	}
	url := fmt.Sprintf("%s/v1/book/%s", a.cfg.Venues.Gemini.BaseURL, a.cfg.Venues.Gemini.Symbol)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("User-Agent", "depthwatch/1.0")
	resp, err := a.http.Do(req)
	if err != nil {
		return orderbook.Book{}, fmt.Errorf("gemini: book request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode/100 != 2 {
		return orderbook.Book{}, fmt.Errorf("gemini: book http %d", resp.StatusCode)
	}
	var raw struct {
		Asks []rawLevel `json:"asks"`
		Bids []rawLevel `json:"bids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return orderbook.Book{}, fmt.Errorf("gemini: decode book: %w", err)
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

func normalizeLevels(raw []rawLevel) ([]orderbook.Level, error) {
	out := make([]orderbook.Level, 0, len(raw))
	for _, entry := range raw {
		price, err := parseField(entry.Price, "price")
		if err != nil {
			return nil, err
		}
		amount, err := parseField(entry.Amount, "amount")
		if err != nil {
			return nil, err
		}
		if price <= 0 {
			return nil, &common.ParseError{Venue: "gemini", Field: "price", Raw: entry.Price, Err: fmt.Errorf("want positive")}
		}
		out = append(out, orderbook.Level{Price: price, Qty: amount})
	}
	return out, nil
}

func parseField(s, field string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &common.ParseError{Venue: "gemini", Field: field, Raw: s, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, &common.ParseError{Venue: "gemini", Field: field, Raw: s, Err: fmt.Errorf("not a finite non-negative number")}
	}
	return f, nil
}
