package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Report は1日分の収集状況の要約です。運用者向けのログにのみ使われます。
type Report struct {
	Date                 time.Time
	StocksTracked        int64
	NewsCollected24h     int64
	RecommendationsToday int64
	MarketBreakdown      map[string]int64
}

// StockStats は銘柄テーブルの統計読み取りを抽象化します。
type StockStats interface {
	CountByMarket(ctx context.Context) (map[string]int64, error)
}

// NewsStats はニューステーブルの統計読み取りを抽象化します。
type NewsStats interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// RecommendationStats は推奨テーブルの統計読み取りを抽象化します。
type RecommendationStats interface {
	CountForDate(ctx context.Context, date time.Time) (int64, error)
}

// ReportUsecase は日次の収集レポートを生成します。
type ReportUsecase struct {
	stocks StockStats
	news   NewsStats
	recs   RecommendationStats
	now    func() time.Time
}

// NewReportUsecase は新しい ReportUsecase を作成します。
func NewReportUsecase(stocks StockStats, news NewsStats, recs RecommendationStats) *ReportUsecase {
	return &ReportUsecase{stocks: stocks, news: news, recs: recs, now: time.Now}
}

// Generate は現在のストア内容から収集レポートを作成してログに出力します。
func (ru *ReportUsecase) Generate(ctx context.Context) (Report, error) {
	now := ru.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	breakdown, err := ru.stocks.CountByMarket(ctx)
	if err != nil {
		return Report{}, err
	}

	var total int64
	for _, n := range breakdown {
		total += n
	}

	news24h, err := ru.news.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return Report{}, err
	}

	recsToday, err := ru.recs.CountForDate(ctx, today)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Date:                 now,
		StocksTracked:        total,
		NewsCollected24h:     news24h,
		RecommendationsToday: recsToday,
		MarketBreakdown:      breakdown,
	}

	slog.Info("market report generated",
		"stocks_tracked", report.StocksTracked,
		"news_collected_24h", report.NewsCollected24h,
		"recommendations_today", report.RecommendationsToday,
		"market_breakdown", report.MarketBreakdown,
	)
	return report, nil
}
