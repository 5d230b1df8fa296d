package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Quote is the provider's per-symbol payload. Fields are pointers so a field
// the provider omitted stays distinguishable from a genuine zero.
type Quote struct {
	Current       *float64 `json:"c"`
	Open          *float64 `json:"o"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	PreviousClose *float64 `json:"pc"`
}

// AllZero reports whether the provider answered with every field present and
// exactly zero. Finnhub responds this way for symbols it does not recognize,
// so callers treat it as "no data" rather than a free stock. This is a
// business heuristic, not a provider guarantee: a thinly traded security whose
// real quote is legitimately all zero would be misclassified.
func (q *Quote) AllZero() bool {
	for _, f := range []*float64{q.Current, q.Open, q.High, q.Low, q.PreviousClose} {
		if f == nil || *f != 0 {
			return false
		}
	}

	return true
}

// TransportError is a non-2xx answer from the provider.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("finnhub: unexpected status %d", e.Status)
}

type Client struct {
	apiKey  string
	baseURL string
	http    *retryablehttp.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	client := retryablehttp.NewClient()
	// Quotes go stale: each symbol is attempted exactly once per aggregation.
	// The retryable client is kept for its context plumbing and connection
	// reuse, not its retries; CheckRetry must also be overridden or the
	// default policy swallows non-2xx responses as "giving up" errors.
	client.RetryMax = 0
	client.CheckRetry = func(_ context.Context, _ *http.Response, _ error) (bool, error) {
		return false, nil
	}
	client.Logger = nil
	client.HTTPClient.Timeout = 10 * time.Second

	c := &Client{apiKey: apiKey, baseURL: defaultBaseURL, http: client}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Quote fetches the live quote for one symbol. The caller bounds the call
// through ctx.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, &TransportError{Status: res.StatusCode}
	}

	var quote Quote
	if err := json.NewDecoder(res.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("finnhub: decoding quote for %s: %w", symbol, err)
	}

	return &quote, nil
}
