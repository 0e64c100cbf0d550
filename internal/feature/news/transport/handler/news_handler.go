// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/transport/http/dto"
)

// NewsUsecase はニュース参照のユースケースインターフェースを定義します。
type NewsUsecase interface {
	GetRecent(ctx context.Context, ticker string, limit int) ([]entity.NewsItem, error)
}

// NewsHandler はニュースのHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は指定されたusecaseでNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// GetRecent は公開日時の新しい順にニュースをJSONで返します。
//
// エンドポイント例:
// GET /api/news?ticker=AAPL&limit=50
func (h *NewsHandler) GetRecent(c *gin.Context) {
	ticker := c.Query("ticker")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.uc.GetRecent(c.Request.Context(), ticker, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NewsResponse{
			StockID:     n.StockID,
			Headline:    n.Headline,
			URL:         n.URL,
			Content:     n.Content,
			Source:      n.Source,
			PublishedAt: n.PublishedAt.UTC().Format(time.RFC3339),
			Sentiment:   n.Sentiment,
			Confidence:  n.Confidence,
		})
	}
	c.JSON(http.StatusOK, out)
}
