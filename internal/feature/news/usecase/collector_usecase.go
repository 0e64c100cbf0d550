// Package usecase はニュース収集と参照のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/relevance"
	"stock_collector/internal/shared/pacer"
)

// SourceFetcher は1つのニュースソースを取得し、正規化されたアイテム列を返します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SourceFetcher interface {
	Fetch(ctx context.Context) ([]entity.Item, error)
	Source() entity.Source
}

// NewsRepository はニュース行の書き込みレイヤーを抽象化します。
type NewsRepository interface {
	Upsert(ctx context.Context, item entity.NewsItem) error
}

// StockLookup はtickerから銘柄の格納IDを解決します。
type StockLookup interface {
	LookupID(ctx context.Context, ticker string) (id uint, found bool, err error)
}

// CollectorUsecase は市場ごとのニュースソース群を順に処理し、
// 関連銘柄とのマッチングを経てニュース行をupsertします。
//
// エラーは {ソース, アイテム, 銘柄} の最小の粒度で捕捉してログに出力し、
// 同じ実行内の残りの処理を止めません。
type CollectorUsecase struct {
	news          NewsRepository
	stocks        StockLookup
	sourcePacer   pacer.Delayer // ソース間ディレイ
	trendingPacer pacer.Delayer // トレンド収集のソース間ディレイ
}

// NewCollectorUsecase は新しい CollectorUsecase を作成します。
func NewCollectorUsecase(news NewsRepository, stocks StockLookup, sourcePacer, trendingPacer pacer.Delayer) *CollectorUsecase {
	return &CollectorUsecase{
		news:          news,
		stocks:        stocks,
		sourcePacer:   sourcePacer,
		trendingPacer: trendingPacer,
	}
}

// CollectMarket は1つの市場のソースリストを順に処理します。
// 各ソースの処理後にソース間ディレイを挟み、上流への負荷を分散します。
func (cu *CollectorUsecase) CollectMarket(ctx context.Context, fetchers []SourceFetcher, symbols []string, market string) {
	slog.Info("collecting news", "market", market, "sources", len(fetchers), "symbols", len(symbols))

	for _, f := range fetchers {
		src := f.Source()
		items, err := f.Fetch(ctx)
		if err != nil {
			// ソース単体の失敗。残りのソースの処理は続ける
			slog.Error("failed to collect from source", "source", src.Name, "error", err)
			cu.sourcePacer.Wait()
			continue
		}

		for _, item := range items {
			cu.processItem(ctx, item, symbols)
		}
		cu.sourcePacer.Wait()
	}
}

// processItem は1アイテムを関連銘柄とマッチングし、マッチした銘柄ごとに1行upsertします。
func (cu *CollectorUsecase) processItem(ctx context.Context, item entity.Item, symbols []string) {
	matched := relevance.Match(item.Title+" "+item.Description, symbols)
	if len(matched) == 0 {
		return
	}

	for _, ticker := range matched {
		id, found, err := cu.stocks.LookupID(ctx, ticker)
		if err != nil {
			slog.Error("failed to look up stock", "ticker", ticker, "error", err)
			continue
		}
		if !found {
			// ストア未登録の銘柄はその銘柄分だけ黙って落とす（アイテム全体は落とさない）
			continue
		}

		stockID := id
		if err := cu.news.Upsert(ctx, entity.NewsItem{
			StockID:     &stockID,
			Headline:    item.Title,
			URL:         item.Link,
			Content:     item.Description,
			Source:      item.SourceName,
			PublishedAt: item.PublishedAt,
			Sentiment:   0, // 下流の分析サービスが更新する
			Confidence:  0,
		}); err != nil {
			slog.Error("failed to upsert news", "ticker", ticker, "url", item.Link, "error", err)
			continue
		}
		slog.Info("news stored", "ticker", ticker, "headline", truncate(item.Title, 50))
	}
}

// CollectTrending は銘柄に紐づかない一般ニュースを収集し、stock_id NULLで格納します。
func (cu *CollectorUsecase) CollectTrending(ctx context.Context, fetchers []SourceFetcher) {
	slog.Info("collecting trending news", "sources", len(fetchers))

	for _, f := range fetchers {
		src := f.Source()
		items, err := f.Fetch(ctx)
		if err != nil {
			slog.Error("failed to collect trending news", "source", src.Name, "error", err)
			cu.trendingPacer.Wait()
			continue
		}

		for _, item := range items {
			if err := cu.news.Upsert(ctx, entity.NewsItem{
				StockID:     nil,
				Headline:    item.Title,
				URL:         item.Link,
				Content:     item.Description,
				Source:      "Trending",
				PublishedAt: item.PublishedAt,
			}); err != nil {
				slog.Error("failed to upsert trending news", "url", item.Link, "error", err)
				continue
			}
		}
		cu.trendingPacer.Wait()
	}
}

// truncate はログ出力用にsを最大n文字に切り詰めます。
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
