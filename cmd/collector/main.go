package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"stock_collector/internal/app/di"
	"stock_collector/internal/app/scheduler"
	"stock_collector/internal/feature/stocks/domain/entity"
	stocksusecase "stock_collector/internal/feature/stocks/usecase"
	infradb "stock_collector/internal/platform/db"
)

func main() {
	db := infradb.OpenDB()

	stockUC := di.NewStockCollector(db)
	newsUC := di.NewNewsCollector(db)
	triggerUC := di.NewAnalysisTrigger()
	cleanupUC := di.NewCleanup(db)
	reportUC := di.NewReport(db)

	usFetchers := di.NewUSSourceFetchers(di.DefaultUSSymbols)
	krFetchers := di.NewKRSourceFetchers()
	trendingFetchers := di.NewTrendingFetchers()

	s, err := scheduler.New(scheduler.Jobs{
		CollectPrices: func(ctx context.Context) {
			collectMarket(ctx, stockUC, di.DefaultUSSymbols, entity.MarketUS)
			collectMarket(ctx, stockUC, di.DefaultKRSymbols, entity.MarketKR)
		},
		CollectNews: func(ctx context.Context) {
			newsUC.CollectMarket(ctx, usFetchers, di.DefaultUSSymbols, string(entity.MarketUS))
			newsUC.CollectMarket(ctx, krFetchers, di.DefaultKRSymbols, string(entity.MarketKR))
			newsUC.CollectTrending(ctx, trendingFetchers)
		},
		TriggerAnalysis: func(ctx context.Context) {
			triggerUC.TriggerDaily(ctx)
		},
		Cleanup: func(ctx context.Context) {
			cleanupUC.Run(ctx)
			if _, err := reportUC.Generate(ctx); err != nil {
				slog.Error("日次レポートの生成に失敗しました", "error", err)
			}
		},
	})
	if err != nil {
		log.Fatal("failed to build scheduler:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.Start()
	slog.Info("collector started")

	<-ctx.Done()
	slog.Info("shutting down collector")
	s.Stop()
}

// collectMarket は1市場分の収集サイクル（銘柄情報→過去価格→リアルタイム相場）を実行します。
func collectMarket(ctx context.Context, uc *stocksusecase.CollectorUsecase, symbols []string, market entity.Market) {
	uc.CollectInfo(ctx, symbols, market)
	uc.CollectPrices(ctx, symbols, market)
	uc.CollectRealtime(ctx, symbols, market)
}
