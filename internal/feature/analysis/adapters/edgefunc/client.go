// Package edgefunc は分析トリガーの代替チャネル（サーバーサイド関数の起動）を提供します。
package edgefunc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"stock_collector/internal/feature/analysis/usecase"
)

// dailyAnalysisFunction は代替チャネルで起動するサーバーサイド関数名です。
const dailyAnalysisFunction = "daily-analysis"

// Config holds configuration for the server-side function endpoint.
type Config struct {
	BaseURL    string        // Functions host (e.g., "https://xxxx.supabase.co")
	ServiceKey string        // Service-role key used as bearer token
	Timeout    time.Duration // Per-invocation timeout
}

// LoadConfig loads function endpoint configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL:    os.Getenv("SUPABASE_URL"),
		ServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		Timeout:    5 * time.Minute,
	}
}

// Client は名前付きサーバーサイド関数を起動するFallbackTrigger実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.FallbackTrigger = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// InvokeDaily はdaily-analysis関数を主経路と同じペイロードで起動します。
func (c *Client) InvokeDaily(ctx context.Context, date string) error {
	if c.cfg.BaseURL == "" {
		return fmt.Errorf("fallback endpoint not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/functions/v1/%s", c.cfg.BaseURL, dailyAnalysisFunction)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.ServiceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("function %s http %d: %s", dailyAnalysisFunction, res.StatusCode, body)
	}
	return nil
}
