package filings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultFetchTimeout bounds a single document request
	DefaultFetchTimeout = 30 * time.Second

	// DefaultPriorFetchTimeout bounds the prior-period request in FetchPair
	DefaultPriorFetchTimeout = 15 * time.Second

	// maxDocumentBytes caps a downloaded document (large 10-Ks run ~20MB)
	maxDocumentBytes = 64 << 20
)

// StatusError is returned when SEC answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("SEC returned status %d for %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err is a 404 from SEC.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client fetches SEC documents with a descriptive User-Agent and a shared
// request-rate limit.
type Client struct {
	userAgent    string
	http         *http.Client
	limiter      *rate.Limiter
	timeout      time.Duration
	priorTimeout time.Duration // prior-period bound in FetchPair
	logger       *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit sets the request rate ceiling.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithPriorTimeout sets the prior-period timeout FetchPair uses when the
// caller passes none.
func WithPriorTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.priorTimeout = d }
}

// WithLogger sets the client's logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client. Email is required by SEC and must be a valid
// address.
func NewClient(email string, opts ...ClientOption) (*Client, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required for SEC requests")
	}
	if err := ValidateSecEmail(email); err != nil {
		return nil, err
	}

	c := &Client{
		userAgent:    BuildUserAgent(email),
		http:         &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		timeout:      DefaultFetchTimeout,
		priorTimeout: DefaultPriorFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = loggerOrDiscard(c.logger)
	return c, nil
}

// NewClientFromConfig creates a Client from loaded configuration. Extra
// options are applied after the configured ones.
func NewClientFromConfig(cfg *Config, logger *slog.Logger, opts ...ClientOption) (*Client, error) {
	if cfg.SecEmail == "" {
		return nil, errMissingSecEmail
	}
	base := []ClientOption{
		WithRateLimit(cfg.RequestsPerSecond),
		WithTimeout(cfg.FetchTimeout),
		WithPriorTimeout(cfg.PriorFetchTimeout),
		WithLogger(logger),
	}
	return NewClient(cfg.SecEmail, append(base, opts...)...)
}

// Fetch downloads url, waiting on the rate limiter first.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, c.timeout)
}

func (c *Client) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "identity")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("fetched document", "url", url, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

// FetchPairResult holds a current filing and, when available, its prior
// period counterpart.
type FetchPairResult struct {
	Current  []byte
	Prior    []byte // nil when no prior URL was given or its fetch failed
	PriorErr error
}

// FetchPair fetches the current and prior filing concurrently. The prior
// fetch runs under its own timeout (the client's when priorTimeout <= 0) and
// its failure is recorded in PriorErr rather than failing the pair; only a
// current-filing failure is returned.
func (c *Client) FetchPair(ctx context.Context, currentURL, priorURL string, priorTimeout time.Duration) (*FetchPairResult, error) {
	res := &FetchPairResult{}
	if priorTimeout <= 0 {
		priorTimeout = c.priorTimeout
	}
	if priorTimeout <= 0 {
		priorTimeout = DefaultPriorFetchTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := c.fetch(gctx, currentURL, c.timeout)
		if err != nil {
			return fmt.Errorf("fetch current filing: %w", err)
		}
		res.Current = data
		return nil
	})
	if priorURL != "" {
		g.Go(func() error {
			// Parent ctx, not gctx: a current failure already fails the pair
			data, err := c.fetch(ctx, priorURL, priorTimeout)
			if err != nil {
				c.logger.Warn("prior filing unavailable", "url", priorURL, "error", err)
				res.PriorErr = err
				return nil
			}
			res.Prior = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
