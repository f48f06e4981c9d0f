package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var errUnexpectedStatus = errors.New("unexpected status code from rate service")

// FailureBackoff is how long a failed fetch for a base code is remembered.
// Lookups for that base fail immediately until it expires.
const FailureBackoff = 30 * time.Second

// Remote fetches rates from an HTTP service.
//
// The service is queried with GET {base}/latest?base=CODE and answers with
// {"base": "USD", "rates": {"EUR": 0.92}}. Tables are cached per base code,
// failed fetches are cached for FailureBackoff.
type Remote struct {
	HTTPClient *http.Client
	BasePath   *url.URL

	cache    *cache[map[string]decimal.Decimal]
	failures *cache[error]
	group    singleflight.Group
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// NewRemote creates a remote source. A nil client uses a client with a 10 second timeout.
func NewRemote(httpClient *http.Client, basePath string, ttl time.Duration) (*Remote, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	basePathURL, err := url.Parse(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid rate service URL '%s': %w", basePath, err)
	}

	return &Remote{
		HTTPClient: httpClient,
		BasePath:   basePathURL,
		cache:      newCache[map[string]decimal.Decimal](len(currency.All()), ttl),
		failures:   newCache[error](len(currency.All()), FailureBackoff),
	}, nil
}

func (r *Remote) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	table, err := r.table(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := table[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrNoRate, from, to)
	}

	return rate, nil
}

// table returns the rates for base, fetching them at most once concurrently.
func (r *Remote) table(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	if table, ok := r.cache.Get(base); ok {
		return table, nil
	}

	if err, ok := r.failures.Get(base); ok {
		return nil, fmt.Errorf("%w: rate service unavailable for %s: %w", ErrNoRate, base, err)
	}

	v, err, _ := r.group.Do(base, func() (any, error) {
		table, err := r.fetch(ctx, base)
		if err != nil {
			// A cancelled caller says nothing about the service
			if ctx.Err() == nil {
				r.failures.Set(base, err)
				log.Warn().Str("base", base).Err(err).Dur("backoff", FailureBackoff).Msg("rate fetch failed")
			}
			return nil, err
		}

		r.cache.Set(base, table)
		return table, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[string]decimal.Decimal), nil
}

func (r *Remote) fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	path := r.BasePath.JoinPath("latest")
	q := url.Values{}
	q.Add("base", base)
	path.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	var body latestResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("error decoding rate response: %w", err)
	}

	log.Debug().Str("base", base).Int("rates", len(body.Rates)).Msg("fetched exchange rates")
	return body.Rates, nil
}

// Fallback queries its sources in order and returns the first rate found.
type Fallback []Source

func (f Fallback) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	err := fmt.Errorf("%w: %s to %s", ErrNoRate, from, to)
	for _, source := range f {
		var rate decimal.Decimal
		rate, err = source.Rate(ctx, from, to)
		if err == nil {
			return rate, nil
		}
	}

	return decimal.Zero, err
}
