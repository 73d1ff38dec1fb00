package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GatewayClient is the concrete Sender backed by the messaging gateway's
// form-encoded HTTP API. Application credentials are injected at construction
// and never read from elsewhere.
type GatewayClient struct {
	endpoint   string
	appKey     string
	authKey    string
	httpClient *http.Client
}

// NewGatewayClient returns a Sender that delivers via the configured gateway.
func NewGatewayClient(endpoint, appKey, authKey string) *GatewayClient {
	return &GatewayClient{
		endpoint: endpoint,
		appKey:   appKey,
		authKey:  authKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send POSTs the message to the gateway. Any non-2xx status is a hard
// failure; the gateway's response payload is returned on success.
func (c *GatewayClient) Send(ctx context.Context, to, message, fileURL string) (map[string]any, error) {
	if strings.TrimSpace(c.endpoint) == "" {
		return nil, fmt.Errorf("messaging: endpoint not configured")
	}

	form := url.Values{}
	form.Set("appkey", c.appKey)
	form.Set("authkey", c.authKey)
	form.Set("to", to)
	form.Set("message", message)
	if fileURL != "" {
		form.Set("file", fileURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("messaging: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messaging: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("messaging: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("messaging: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	payload := map[string]any{}
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &payload); err != nil {
			payload["raw"] = string(respBytes)
		}
	}
	return payload, nil
}

var _ Sender = (*GatewayClient)(nil)
