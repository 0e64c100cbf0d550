// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/transport/http/dto"
)

// StocksUsecase は銘柄参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	ListStocks(ctx context.Context) ([]entity.Stock, error)
	GetPrices(ctx context.Context, ticker string, limit int) (*entity.Stock, []entity.PricePoint, error)
}

// StockHandler は銘柄・価格のHTTPリクエストを処理します。
type StockHandler struct {
	uc StocksUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StocksUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

func toStockResponse(s entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		Ticker:    s.Ticker,
		Name:      s.Name,
		Market:    string(s.Market),
		Sector:    s.Sector,
		Industry:  s.Industry,
		MarketCap: s.MarketCap,
	}
}

// List は追跡中の全銘柄をJSONで返します。
//
// エンドポイント例:
// GET /api/stocks
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.uc.ListStocks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toStockResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetPrices は銘柄の直近の日足をJSONで返します。
//
// エンドポイント例:
// GET /api/stocks/:ticker/prices?limit=30
func (h *StockHandler) GetPrices(c *gin.Context) {
	ticker := c.Param("ticker")
	// 文字列を整数に変換。未指定の場合はusecase側でデフォルト値を使用
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	stock, prices, err := h.uc.GetPrices(c.Request.Context(), ticker, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}

	out := dto.StockPricesResponse{
		Stock:  toStockResponse(*stock),
		Prices: make([]dto.PriceResponse, 0, len(prices)),
	}
	for _, p := range prices {
		out.Prices = append(out.Prices, dto.PriceResponse{
			Date:          p.Date.UTC().Format("2006-01-02"),
			Open:          p.Open,
			High:          p.High,
			Low:           p.Low,
			Close:         p.Close,
			Volume:        p.Volume,
			AdjustedClose: p.AdjustedClose,
		})
	}

	c.JSON(http.StatusOK, out)
}
