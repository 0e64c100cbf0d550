// Package aiserver provides a client for the external analysis service.
package aiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"stock_collector/internal/feature/analysis/usecase"
)

// Config holds configuration for the analysis service client.
type Config struct {
	BaseURL        string        // Base URL of the analysis service (e.g., "http://localhost:8000")
	AnalyzeTimeout time.Duration // Timeout for the daily analysis call (long: batch computation downstream)
	HealthTimeout  time.Duration // Timeout for the health probe
}

// LoadConfig loads analysis service configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("AI_SERVER_URL")
	if base == "" {
		base = "http://localhost:8000"
	}
	return Config{
		BaseURL:        base,
		AnalyzeTimeout: 5 * time.Minute,
		HealthTimeout:  5 * time.Second,
	}
}

// Client は分析サービスを呼び出すAnalysisTrigger実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.AnalysisTrigger = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// 渡すHTTPクライアントにはタイムアウトを設定しないでください（呼び出しごとにcontextで制御します）。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// TriggerDaily は指定日（YYYY-MM-DD）の日次分析をPOSTで起動します。
// 下流はバッチ計算を行うため、タイムアウトは長め（既定5分）です。
func (c *Client) TriggerDaily(ctx context.Context, date string) (usecase.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.AnalyzeTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return usecase.AnalysisResult{}, err
	}

	u := c.cfg.BaseURL + "/api/analyze/daily"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return usecase.AnalysisResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return usecase.AnalysisResult{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return usecase.AnalysisResult{}, fmt.Errorf("analysis service http %d", res.StatusCode)
	}

	var out usecase.AnalysisResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return usecase.AnalysisResult{}, err
	}
	return out, nil
}

// Health は分析サービスの /health を叩き、到達不能または非2xxをエラーとします。
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return err
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

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis service health http %d", res.StatusCode)
	}
	return nil
}
