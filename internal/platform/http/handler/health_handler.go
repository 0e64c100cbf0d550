// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoragePinger はストレージの到達確認を抽象化します。
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// ServicePinger は外部サービスのヘルス確認を抽象化します。
type ServicePinger interface {
	Health(ctx context.Context) error
}

// HealthHandler は /healthz エンドポイントを処理します。
// ストレージの到達性を必須条件とし、分析サービスの到達性は警告のみ
// （分析サービスが落ちていても収集と参照は継続できるため）とします。
type HealthHandler struct {
	storage  StoragePinger
	analysis ServicePinger // nilの場合はチェックしない
}

// NewHealthHandler は指定された依存でHealthHandlerの新しいインスタンスを生成します。
func NewHealthHandler(storage StoragePinger, analysis ServicePinger) *HealthHandler {
	return &HealthHandler{storage: storage, analysis: analysis}
}

// healthResponse はヘルスチェックのレスポンスです。
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	now := time.Now().UTC().Format(time.RFC3339)

	if err := h.storage.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: now,
			Error:     "database connection failed: " + err.Error(),
		})
		return
	}

	if h.analysis != nil {
		if err := h.analysis.Health(c.Request.Context()); err != nil {
			// 分析サービスの停止はヘルス判定を落とさない
			slog.Warn("analysis service health check failed", "error", err)
		}
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: now,
	})
}
