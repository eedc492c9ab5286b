// Package remote issues the HTTP GET requests used to read the review
// service and the governance documents.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// Getter fetches the body of a URL.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values, accept string) ([]byte, error)
}

// Requester is a Getter that throttles requests and tags each one with a
// request id so server-side logs can be matched with ours.
type Requester struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Requester
type Option func(*Requester)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) {
		r.http = c
	}
}

// WithRateLimit limits the request rate. A non-positive rate disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(r *Requester) {
		if perSecond <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(r *Requester) {
		r.logger = l
	}
}

// NewRequester creates a Requester with no rate limit and a 30s timeout
// unless options say otherwise.
func NewRequester(opts ...Option) *Requester {
	r := &Requester{
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get issues a GET request and returns the response body.
// Any status other than 200 is an error.
func (r *Requester) Get(ctx context.Context, rawURL string, params url.Values, accept string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed waiting to fetch %s: %w", rawURL, err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	r.logger.Debug("fetching", zap.String("url", u.String()), zap.String("request_id", requestID))

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return body, nil
}

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
