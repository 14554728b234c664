package common

import (
	"context"
	"fmt"

	"depthwatch/internal/orderbook"
)

// Adapter fetches a fresh L2 snapshot from one venue. Implementations
// normalize the venue's raw level encoding into orderbook.Book and
// preserve the venue-provided level order.
type Adapter interface {
	Name() string
	FetchBook(ctx context.Context) (orderbook.Book, error)
}

// ParseError marks a malformed numeric field in a raw level. It fails the
// venue's cycle; transport failures are reported as ordinary wrapped errors.
type ParseError struct {
	Venue string
	Field string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: bad %s %q: %v", e.Venue, e.Field, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
