// Package backend provides a REST client for the remote treasury API.
// It is the authoritative data source; every collection the application
// works with is fetched from and mutated through this adapter.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("backend")

// Client wraps HTTP calls to the treasury backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a treasury backend client.
func NewClient(httpClient *http.Client, baseURL, apiToken string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiToken:   apiToken,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// doGet executes an authenticated GET against the backend.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("backend: failed to create request",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: GET request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("backend: failed to read response body",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend: GET non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("backend GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	c.logger.Debug("backend: GET OK",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}
