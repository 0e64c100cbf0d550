package di

import (
	"time"

	analysisadapters "stock_collector/internal/feature/analysis/adapters"
	"stock_collector/internal/feature/analysis/adapters/aiserver"
	"stock_collector/internal/feature/analysis/adapters/edgefunc"
	analysisusecase "stock_collector/internal/feature/analysis/usecase"
	maintenanceusecase "stock_collector/internal/feature/maintenance/usecase"
	newsadapters "stock_collector/internal/feature/news/adapters"
	newsusecase "stock_collector/internal/feature/news/usecase"
	stocksadapters "stock_collector/internal/feature/stocks/adapters"
	stocksusecase "stock_collector/internal/feature/stocks/usecase"
	infrahttp "stock_collector/internal/platform/http"
	"stock_collector/internal/shared/pacer"

	"gorm.io/gorm"
)

// 上流への礼儀的ディレイ。操作種別ごとに間隔が異なります。
const (
	infoDelay       = 500 * time.Millisecond
	historyDelay    = 1000 * time.Millisecond
	realtimeDelay   = 200 * time.Millisecond
	newsSourceDelay = 2000 * time.Millisecond
	trendingDelay   = 1000 * time.Millisecond
)

// NewStockCollector は株価収集ユースケースをリポジトリーとペーサー込みで組み立てます。
func NewStockCollector(db *gorm.DB) *stocksusecase.CollectorUsecase {
	return stocksusecase.NewCollectorUsecase(
		NewMarket(),
		stocksadapters.NewStockRepository(db),
		stocksadapters.NewPriceRepository(db),
		stocksadapters.NewQuoteRepository(db),
		pacer.New(infoDelay),
		pacer.New(historyDelay),
		pacer.New(realtimeDelay),
	)
}

// NewNewsCollector はニュース収集ユースケースを組み立てます。
func NewNewsCollector(db *gorm.DB) *newsusecase.CollectorUsecase {
	return newsusecase.NewCollectorUsecase(
		newsadapters.NewNewsRepository(db),
		newsadapters.NewStockLookup(db),
		pacer.New(newsSourceDelay),
		pacer.New(trendingDelay),
	)
}

// NewAnalysisTrigger は分析サービスクライアントとフォールバック込みの
// トリガーユースケースを組み立てます。
// 分析呼び出しは呼び出しごとのcontextでタイムアウトを制御するため、
// HTTPクライアント自体にはタイムアウトを設定しません。
func NewAnalysisTrigger() *analysisusecase.TriggerUsecase {
	client := infrahttp.NewHTTPClient(0)
	primary := aiserver.NewClient(aiserver.LoadConfig(), client)
	fallback := edgefunc.NewClient(edgefunc.LoadConfig(), client)
	return analysisusecase.NewTriggerUsecase(primary, fallback)
}

// NewCleanup は保持期間クリーンアップユースケースを組み立てます。
func NewCleanup(db *gorm.DB) *maintenanceusecase.CleanupUsecase {
	return maintenanceusecase.NewCleanupUsecase(
		newsadapters.NewNewsRepository(db),
		analysisadapters.NewRecommendationRepository(db),
		stocksadapters.NewQuoteRepository(db),
	)
}

// NewReport は日次レポートユースケースを組み立てます。
func NewReport(db *gorm.DB) *maintenanceusecase.ReportUsecase {
	return maintenanceusecase.NewReportUsecase(
		stocksadapters.NewStockRepository(db),
		newsadapters.NewNewsRepository(db),
		analysisadapters.NewRecommendationRepository(db),
	)
}
