package router

import (
	analysishandler "stock_collector/internal/feature/analysis/transport/handler"
	newshandler "stock_collector/internal/feature/news/transport/handler"
	stockshandler "stock_collector/internal/feature/stocks/transport/handler"
	healthhandler "stock_collector/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

func NewRouter(health *healthhandler.HealthHandler, stocks *stockshandler.StockHandler,
	news *newshandler.NewsHandler, recs *analysishandler.RecommendationHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health.Health)

	api := r.Group("/api")
	{
		api.GET("/stocks", stocks.List)
		api.GET("/stocks/:ticker/prices", stocks.GetPrices)
		api.GET("/news", news.GetRecent)
		api.GET("/recommendations", recs.GetForDate)
	}

	return r
}
