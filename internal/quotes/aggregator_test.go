package quotes_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stocknest/internal/finnhub"
	"stocknest/internal/quotes"
)

// stubSource is a hand-rolled quote source. Maps are read-only once the test
// starts; the counters are guarded because the aggregator fans out.
type stubSource struct {
	quotes map[string]*finnhub.Quote
	errs   map[string]error
	delays map[string]time.Duration
	delay  time.Duration

	mu          sync.Mutex
	calls       int
	inflight    int
	maxInflight int
}

func (s *stubSource) Quote(ctx context.Context, symbol string) (*finnhub.Quote, error) {
	s.mu.Lock()
	s.calls++
	s.inflight++
	if s.inflight > s.maxInflight {
		s.maxInflight = s.inflight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	delay := s.delay
	if d, ok := s.delays[symbol]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	if quote, ok := s.quotes[symbol]; ok {
		return quote, nil
	}

	return &finnhub.Quote{}, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fp(v float64) *float64 { return &v }

func newAggregator(source quotes.Source, apiKey string, timeout time.Duration) *quotes.Aggregator {
	return quotes.NewAggregator(source, apiKey, timeout, zap.NewNop().Sugar())
}

func TestAggregateReturnsOneResultPerSymbol(t *testing.T) {
	t.Parallel()

	source := &stubSource{errs: map[string]error{
		"AAPL":  errors.New("boom"),
		"GOOGL": errors.New("boom"),
		"TSLA":  errors.New("boom"),
	}}
	agg := newAggregator(source, "key", time.Second)

	results, err := agg.Aggregate(context.Background(), []string{"AAPL", "GOOGL", "TSLA"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		require.Nil(t, result.CurrentPrice)
		require.NotEmpty(t, result.Error)
	}
}

func TestAggregatePreservesInputOrder(t *testing.T) {
	t.Parallel()

	source := &stubSource{quotes: map[string]*finnhub.Quote{
		"AAPL":  {Current: fp(150), Open: fp(149), High: fp(151), Low: fp(148), PreviousClose: fp(148)},
		"GOOGL": {Current: fp(2500), Open: fp(2490), High: fp(2510), Low: fp(2480), PreviousClose: fp(2480)},
		"TSLA":  {Current: fp(700), Open: fp(690), High: fp(710), Low: fp(680), PreviousClose: fp(695)},
	}}
	agg := newAggregator(source, "key", time.Second)

	symbols := []string{"TSLA", "AAPL", "GOOGL"}
	results, err := agg.Aggregate(context.Background(), symbols)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, symbol := range symbols {
		require.Equal(t, symbol, results[i].Symbol)
	}
	require.Equal(t, 700.0, *results[0].CurrentPrice)
	require.Equal(t, 150.0, *results[1].CurrentPrice)
	require.Equal(t, 2500.0, *results[2].CurrentPrice)
}

func TestAggregateEmptyInputMakesNoCalls(t *testing.T) {
	t.Parallel()

	source := &stubSource{}
	agg := newAggregator(source, "key", time.Second)

	results, err := agg.Aggregate(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
	require.Zero(t, source.callCount())
}

func TestAggregateMissingAPIKeyFailsBeforeAnyCall(t *testing.T) {
	t.Parallel()

	source := &stubSource{quotes: map[string]*finnhub.Quote{
		"AAPL": {Current: fp(150), Open: fp(149), High: fp(151), Low: fp(148), PreviousClose: fp(148)},
	}}
	agg := newAggregator(source, "", time.Second)

	results, err := agg.Aggregate(context.Background(), []string{"AAPL"})
	require.ErrorIs(t, err, quotes.ErrNoAPIKey)
	require.Nil(t, results)
	require.Zero(t, source.callCount())
}

func TestAggregateIsolatesTimeoutFromSuccess(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		quotes: map[string]*finnhub.Quote{
			"AAPL": {Current: fp(150), Open: fp(149), High: fp(151), Low: fp(148), PreviousClose: fp(148)},
		},
		delays: map[string]time.Duration{"GOOGL": 500 * time.Millisecond},
	}
	agg := newAggregator(source, "key", 50*time.Millisecond)

	results, err := agg.Aggregate(context.Background(), []string{"AAPL", "GOOGL"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, "AAPL", results[0].Symbol)
	require.NotNil(t, results[0].CurrentPrice)
	require.Equal(t, 150.0, *results[0].CurrentPrice)
	require.Empty(t, results[0].Error)

	require.Equal(t, "GOOGL", results[1].Symbol)
	require.Nil(t, results[1].CurrentPrice)
	require.Equal(t, "timeout fetching GOOGL", results[1].Error)
}

func TestAggregateAllZeroQuoteIsError(t *testing.T) {
	t.Parallel()

	source := &stubSource{quotes: map[string]*finnhub.Quote{
		"ZEROSYM": {Current: fp(0), Open: fp(0), High: fp(0), Low: fp(0), PreviousClose: fp(0)},
	}}
	agg := newAggregator(source, "key", time.Second)

	results, err := agg.Aggregate(context.Background(), []string{"ZEROSYM"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Nil(t, results[0].CurrentPrice)
	require.Equal(t, "no price data for ZEROSYM or symbol invalid", results[0].Error)
}

func TestAggregateMissingCurrentPriceIsError(t *testing.T) {
	t.Parallel()

	source := &stubSource{quotes: map[string]*finnhub.Quote{
		"BADSYM": {Open: fp(1), PreviousClose: fp(0.5)},
	}}
	agg := newAggregator(source, "key", time.Second)

	results, err := agg.Aggregate(context.Background(), []string{"BADSYM"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Nil(t, results[0].CurrentPrice)
	require.Equal(t, "no price data found for BADSYM", results[0].Error)
}

func TestAggregateTransportErrorMessage(t *testing.T) {
	t.Parallel()

	source := &stubSource{errs: map[string]error{
		"APIERR": &finnhub.TransportError{Status: 500},
	}}
	agg := newAggregator(source, "key", time.Second)

	results, err := agg.Aggregate(context.Background(), []string{"APIERR"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "API error fetching APIERR", results[0].Error)
}

func TestAggregateFansOut(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		delay: 40 * time.Millisecond,
		quotes: map[string]*finnhub.Quote{
			"A": {Current: fp(1), Open: fp(1), High: fp(1), Low: fp(1), PreviousClose: fp(1)},
		},
	}
	agg := newAggregator(source, "key", time.Second)

	symbols := []string{"A", "B", "C", "D", "E", "F"}
	results, err := agg.Aggregate(context.Background(), symbols)
	require.NoError(t, err)
	require.Len(t, results, len(symbols))
	require.Equal(t, len(symbols), source.callCount())
	require.Greater(t, source.maxInflight, 1, "lookups should overlap, not run one by one")
}
