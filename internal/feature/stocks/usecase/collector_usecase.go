// Package usecase は株価収集と参照のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/shared/pacer"
)

const (
	// HistoryWindowDays は過去価格リフレッシュで取得する日数です。
	HistoryWindowDays = 5
)

// MarketRepository は株価データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error)
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// StockRepository は銘柄レコードの永続化レイヤーを抽象化します。
// FindByTicker は該当なしの場合 (nil, nil) を返します。
type StockRepository interface {
	FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error)
	Create(ctx context.Context, stock *entity.Stock) error
}

// PriceRepository は日足価格の書き込みレイヤーを抽象化します。
type PriceRepository interface {
	UpsertBatch(ctx context.Context, prices []entity.PricePoint) error
}

// QuoteRepository はリアルタイム相場キャッシュの書き込みレイヤーを抽象化します。
type QuoteRepository interface {
	Upsert(ctx context.Context, snapshot entity.QuoteSnapshot) error
}

// CollectorUsecase は銘柄ごとに3つの独立した収集操作
// （情報ブートストラップ・過去価格リフレッシュ・リアルタイム相場更新）を実行します。
type CollectorUsecase struct {
	market MarketRepository
	stocks StockRepository
	prices PriceRepository
	quotes QuoteRepository

	// 操作種別ごとの礼儀的ディレイ
	infoPacer     pacer.Delayer
	historyPacer  pacer.Delayer
	realtimePacer pacer.Delayer
}

// NewCollectorUsecase は新しい CollectorUsecase を作成します。
func NewCollectorUsecase(
	market MarketRepository,
	stocks StockRepository,
	prices PriceRepository,
	quotes QuoteRepository,
	infoPacer, historyPacer, realtimePacer pacer.Delayer,
) *CollectorUsecase {
	return &CollectorUsecase{
		market:        market,
		stocks:        stocks,
		prices:        prices,
		quotes:        quotes,
		infoPacer:     infoPacer,
		historyPacer:  historyPacer,
		realtimePacer: realtimePacer,
	}
}

// CollectInfo は未登録の銘柄の記述情報を取得して銘柄レコードを作成します。
// 登録済みの銘柄は何もしません（作成後の情報更新は行わない）。
// 1銘柄の失敗はログに出力し、残りの銘柄の処理を続けます。
func (cu *CollectorUsecase) CollectInfo(ctx context.Context, symbols []string, market entity.Market) {
	slog.Info("collecting stock info", "market", market, "symbols", len(symbols))
	for _, s := range symbols {
		cu.infoPacer.Wait()
		if err := cu.collectOneInfo(ctx, s, market); err != nil {
			slog.Error("failed to collect stock info", "symbol", s, "error", err)
			continue
		}
	}
}

func (cu *CollectorUsecase) collectOneInfo(ctx context.Context, symbol string, market entity.Market) error {
	existing, err := cu.stocks.FindByTicker(ctx, symbol)
	if err != nil {
		return err
	}
	if existing != nil {
		// 作成済み。ticker/marketは不変なので更新しない
		return nil
	}

	quote, err := cu.market.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if quote.Name == "" {
		// 記述情報のない銘柄は「利用不可」扱い。不完全なレコードは作らない
		slog.Warn("no info available", "symbol", symbol)
		return nil
	}

	return cu.stocks.Create(ctx, &entity.Stock{
		Ticker:    symbol,
		Name:      quote.Name,
		Market:    market,
		Sector:    quote.Sector,
		Industry:  quote.Industry,
		MarketCap: quote.MarketCap,
	})
}

// CollectPrices は登録済み銘柄の直近HistoryWindowDays日分の日足をupsertします。
func (cu *CollectorUsecase) CollectPrices(ctx context.Context, symbols []string, market entity.Market) {
	slog.Info("collecting stock prices", "market", market, "symbols", len(symbols))
	for _, s := range symbols {
		cu.historyPacer.Wait()
		if err := cu.collectOnePrices(ctx, s); err != nil {
			slog.Error("failed to collect prices", "symbol", s, "error", err)
			continue
		}
	}
}

func (cu *CollectorUsecase) collectOnePrices(ctx context.Context, symbol string) error {
	stock, err := cu.stocks.FindByTicker(ctx, symbol)
	if err != nil {
		return err
	}
	if stock == nil {
		slog.Warn("stock not found in database", "symbol", symbol)
		return nil
	}

	bars, err := cu.market.GetDailyBars(ctx, symbol, HistoryWindowDays)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		// 取得期間にデータがないのは警告であってエラーではない
		slog.Warn("no price data available", "symbol", symbol)
		return nil
	}

	for i := range bars {
		bars[i].StockID = stock.ID
	}
	return cu.prices.UpsertBatch(ctx, bars)
}

// CollectRealtime は登録済み銘柄のリアルタイム相場スナップショットを丸ごと置き換えます。
// スナップショットは時系列ではなくキャッシュです。
func (cu *CollectorUsecase) CollectRealtime(ctx context.Context, symbols []string, market entity.Market) {
	slog.Info("collecting realtime quotes", "market", market, "symbols", len(symbols))
	for _, s := range symbols {
		cu.realtimePacer.Wait()
		if err := cu.collectOneRealtime(ctx, s, market); err != nil {
			slog.Error("failed to collect realtime quote", "symbol", s, "error", err)
			continue
		}
	}
}

func (cu *CollectorUsecase) collectOneRealtime(ctx context.Context, symbol string, market entity.Market) error {
	stock, err := cu.stocks.FindByTicker(ctx, symbol)
	if err != nil {
		return err
	}
	if stock == nil {
		slog.Warn("stock not found in database", "symbol", symbol)
		return nil
	}

	quote, err := cu.market.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if quote.CurrentPrice == 0 {
		slog.Warn("no realtime data available", "symbol", symbol)
		return nil
	}

	return cu.quotes.Upsert(ctx, entity.QuoteSnapshot{
		Symbol:        symbol,
		Market:        market,
		CurrentPrice:  quote.CurrentPrice,
		PreviousClose: quote.PreviousClose,
		DayHigh:       quote.DayHigh,
		DayLow:        quote.DayLow,
		Volume:        quote.Volume,
		MarketCap:     quote.MarketCap,
		PERatio:       quote.PERatio,
		UpdatedAt:     time.Now().UTC(),
	})
}
