package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_collector/internal/app/router"
	analysisadapters "stock_collector/internal/feature/analysis/adapters"
	"stock_collector/internal/feature/analysis/adapters/aiserver"
	analysishandler "stock_collector/internal/feature/analysis/transport/handler"
	analysisusecase "stock_collector/internal/feature/analysis/usecase"
	newsadapters "stock_collector/internal/feature/news/adapters"
	newshandler "stock_collector/internal/feature/news/transport/handler"
	newsusecase "stock_collector/internal/feature/news/usecase"
	stocksadapters "stock_collector/internal/feature/stocks/adapters"
	stockshandler "stock_collector/internal/feature/stocks/transport/handler"
	stocksusecase "stock_collector/internal/feature/stocks/usecase"
	"stock_collector/internal/platform/cache"
	infradb "stock_collector/internal/platform/db"
	infrahttp "stock_collector/internal/platform/http"
	healthhandler "stock_collector/internal/platform/http/handler"
	infraredis "stock_collector/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	stockRepo := stocksadapters.NewStockRepository(db)
	priceRepo := stocksadapters.NewPriceRepository(db)
	newsRepo := newsadapters.NewNewsRepository(db)
	stockLookup := newsadapters.NewStockLookup(db)
	recRepo := analysisadapters.NewRecommendationRepository(db)

	// Redisキャッシュでラップ
	ttl := cache.TimeUntilNextMidnightUTC()
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, ttl, priceRepo, "prices")

	// Usecase
	stocksUC := stocksusecase.NewStocksUsecase(stockRepo, cachedPriceRepo)
	newsUC := newsusecase.NewNewsUsecase(newsRepo, stockLookup)
	recsUC := analysisusecase.NewRecommendationsUsecase(recRepo)

	// Handler
	analysisClient := aiserver.NewClient(aiserver.LoadConfig(), infrahttp.NewHTTPClient(0))
	healthH := healthhandler.NewHealthHandler(infradb.NewPinger(db), analysisClient)
	stocksH := stockshandler.NewStockHandler(stocksUC)
	newsH := newshandler.NewNewsHandler(newsUC)
	recsH := analysishandler.NewRecommendationHandler(recsUC)

	// ルータ生成
	r := router.NewRouter(healthH, stocksH, newsH, recsH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
