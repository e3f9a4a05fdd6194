package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
	errorBodyLimit = 512

	endpointSnapshot = "snapshot"
	endpointDaily    = "daily"
)

var (
	_ domain.MetricSource = (*Client)(nil)

	errBaseURLRequired = errors.New("upstream base url is required")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.StatusCode, e.Body)
}

// Client calls the seller backend dashboard endpoints and normalizes their
// responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	metrics    *metrics.Collector
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid upstream base url: %w", err)
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// FetchSnapshot posts to {base}/dashboard/{metric}.
func (c *Client) FetchSnapshot(ctx context.Context, metric domain.Metric, payload domain.StorePayload) (domain.MetricSnapshot, error) {
	body, err := c.post(ctx, endpointSnapshot, "/dashboard/"+url.PathEscape(string(metric)), payload)
	if err != nil {
		return domain.MetricSnapshot{}, err
	}
	return analytics.ExtractSnapshot(body), nil
}

// FetchDailySeries posts to {base}/dashboard/{metric}/daily.
func (c *Client) FetchDailySeries(ctx context.Context, metric domain.Metric, payload domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	body, err := c.post(ctx, endpointDaily, "/dashboard/"+url.PathEscape(string(metric))+"/daily", payload)
	if err != nil {
		return nil, err
	}
	return analytics.ExtractSeries(body), nil
}

func (c *Client) post(ctx context.Context, endpoint, path string, payload domain.StorePayload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveUpstream(endpoint, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}
