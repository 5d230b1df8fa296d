package quotes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"stocknest/internal/finnhub"
)

// DefaultTimeout bounds each per-symbol provider call. One slow symbol delays
// the aggregation by at most this much, not by the sum over all symbols.
const DefaultTimeout = 5 * time.Second

// ErrNoAPIKey means the provider credential is not configured. It fails the
// whole aggregation before any outbound call; it is never a per-symbol result.
var ErrNoAPIKey = errors.New("server configuration error: financial data API key is missing")

// Source is the per-symbol quote provider the Aggregator fans out to.
type Source interface {
	Quote(ctx context.Context, symbol string) (*finnhub.Quote, error)
}

// Result is the per-symbol outcome of an aggregation. A failed lookup carries
// a human-readable Error instead of prices; failures are data here, never
// error returns.
type Result struct {
	Symbol             string   `json:"symbol"`
	CurrentPrice       *float64 `json:"currentPrice"`
	OpenPrice          *float64 `json:"openPrice,omitempty"`
	PreviousClosePrice *float64 `json:"previousClosePrice,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// Aggregator turns a list of symbols into one Result per symbol. All lookups
// for one call run concurrently and are joined before returning; a symbol's
// failure never cancels or delays its siblings.
type Aggregator struct {
	source  Source
	apiKey  string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewAggregator(source Source, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		source:  source,
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

// Aggregate returns one Result per input symbol, in input order. Each symbol
// is attempted exactly once. The only whole-call failure is the missing
// provider credential, checked before anything goes out.
func (a *Aggregator) Aggregate(ctx context.Context, symbols []string) ([]Result, error) {
	if a.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	results := make([]Result, len(symbols))
	if len(symbols) == 0 {
		return results, nil
	}

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			results[i] = a.fetchOne(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()

	return results, nil
}

func (a *Aggregator) fetchOne(ctx context.Context, symbol string) Result {
	// The timeout cancels only this symbol's call, not its siblings.
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	quote, err := a.source.Quote(callCtx, symbol)
	switch {
	case err != nil:
		if isTimeout(err) {
			a.logger.Infow("quote lookup timed out", "symbol", symbol)
			return Result{Symbol: symbol, Error: fmt.Sprintf("timeout fetching %s", symbol)}
		}
		a.logger.Infow("quote lookup failed", "symbol", symbol, "error", err)
		return Result{Symbol: symbol, Error: fmt.Sprintf("API error fetching %s", symbol)}

	case quote.Current == nil:
		return Result{Symbol: symbol, Error: fmt.Sprintf("no price data found for %s", symbol)}

	case quote.AllZero():
		// The provider responded but had nothing; distinct from a genuine
		// zero-valued asset. See finnhub.Quote.AllZero.
		return Result{Symbol: symbol, Error: fmt.Sprintf("no price data for %s or symbol invalid", symbol)}

	default:
		return Result{
			Symbol:             symbol,
			CurrentPrice:       quote.Current,
			OpenPrice:          quote.Open,
			PreviousClosePrice: quote.PreviousClose,
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
