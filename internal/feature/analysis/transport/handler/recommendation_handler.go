// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_collector/internal/feature/analysis/domain/entity"
	"stock_collector/internal/feature/analysis/transport/http/dto"
)

// RecommendationsUsecase は推奨参照のユースケースインターフェースを定義します。
type RecommendationsUsecase interface {
	GetForDate(ctx context.Context, date time.Time) ([]entity.Recommendation, error)
}

// RecommendationHandler は推奨のHTTPリクエストを処理します。
type RecommendationHandler struct {
	uc RecommendationsUsecase
}

// NewRecommendationHandler は指定されたusecaseでRecommendationHandlerの新しいインスタンスを生成します。
func NewRecommendationHandler(uc RecommendationsUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// GetForDate は指定日の推奨をスコア降順でJSONで返します。
// dateが未指定の場合は当日分を返します。
//
// エンドポイント例:
// GET /api/recommendations?date=2026-08-27
func (h *RecommendationHandler) GetForDate(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	recs, err := h.uc.GetForDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.RecommendationResponse{
			StockID:         r.StockID,
			Score:           r.Score,
			Reason:          r.Reason,
			RecommendedDate: r.RecommendedDate.UTC().Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, out)
}
