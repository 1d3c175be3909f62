package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "gitcopy/0.1"
)

type Client struct {
	c         *http.Client
	timeout   time.Duration
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		c:         &http.Client{Timeout: timeout},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// drainLimit bounds how much of an unwanted body is discarded so the
// connection can be reused.
const drainLimit = 4 << 10

// Fetch GETs rawURL under its own timeout budget and reads the whole body.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*domain.Response, error) {
	return c.FetchIf(ctx, rawURL, nil)
}

// FetchIf is Fetch, except that the body is only read when keep (nil means
// always) accepts the status and headers.
func (c *Client) FetchIf(ctx context.Context, rawURL string, keep func(*domain.Response) bool) (*domain.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	out := &domain.Response{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
	if keep != nil && !keep(out) {
		_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
		return out, nil
	}

	out.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return out, nil
}
