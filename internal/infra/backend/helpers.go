package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ============================================================
// HTTP helpers for POST, PUT, PATCH, DELETE
// ============================================================

func (c *Client) doSend(ctx context.Context, method, path string, data any) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	var reader *bytes.Reader
	if data != nil {
		jsonBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend: non-2xx",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("backend %s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}

	c.logger.Debug("backend: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}

func (c *Client) doPost(ctx context.Context, path string, data any) ([]byte, error) {
	return c.doSend(ctx, http.MethodPost, path, data)
}

func (c *Client) doPut(ctx context.Context, path string, data any) ([]byte, error) {
	return c.doSend(ctx, http.MethodPut, path, data)
}

func (c *Client) doPatch(ctx context.Context, path string, data map[string]any) ([]byte, error) {
	return c.doSend(ctx, http.MethodPatch, path, data)
}

func (c *Client) doDelete(ctx context.Context, path string) error {
	_, err := c.doSend(ctx, http.MethodDelete, path, nil)
	return err
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
