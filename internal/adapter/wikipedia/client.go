package wikipedia

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// PageFetcher returns the raw HTML of a named page.
type PageFetcher interface {
	Fetch(ctx context.Context, page string) ([]byte, error)
}

// Client downloads pages over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	delay      time.Duration
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a page client. delay is slept after every download to
// keep the request rate polite.
func NewClient(baseURL string, timeout, delay time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		delay:   delay,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch downloads a single page.
func (c *Client) Fetch(ctx context.Context, page string) ([]byte, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(page)))
	if err != nil {
		c.metrics.PageFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", page, err)
	}
	c.metrics.PageFetches.WithLabelValues("success").Inc()
	c.logger.Debug("page downloaded", "page", page, "bytes", len(body))

	if !retry.SleepWithContext(ctx, c.delay) {
		return nil, ctx.Err()
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
