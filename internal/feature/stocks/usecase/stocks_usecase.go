package usecase

import (
	"context"

	"stock_collector/internal/feature/stocks/domain/entity"
)

const (
	// DefaultPriceLimit は価格クエリのデフォルト返却件数です。
	DefaultPriceLimit = 30
	// MaxPriceLimit は価格クエリの最大返却件数です。
	MaxPriceLimit = 365
)

// StockReader は銘柄の読み取りレイヤーを抽象化します。
type StockReader interface {
	List(ctx context.Context) ([]entity.Stock, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error)
}

// PriceReader は日足価格の読み取りレイヤーを抽象化します。
type PriceReader interface {
	FindRecent(ctx context.Context, stockID uint, limit int) ([]entity.PricePoint, error)
}

// stocksUsecase は参照系APIのユースケースを定義します。
type stocksUsecase struct {
	stocks StockReader
	prices PriceReader
}

// NewStocksUsecase はstocksUsecaseの新しいインスタンスを生成します。
func NewStocksUsecase(stocks StockReader, prices PriceReader) *stocksUsecase {
	return &stocksUsecase{stocks: stocks, prices: prices}
}

// ListStocks は追跡中の全銘柄を返します。
func (su *stocksUsecase) ListStocks(ctx context.Context) ([]entity.Stock, error) {
	return su.stocks.List(ctx)
}

// GetPrices は指定された銘柄の直近の日足を新しい順に返します。
// 銘柄が未登録の場合は (nil, nil, nil) を返します。
func (su *stocksUsecase) GetPrices(ctx context.Context, ticker string, limit int) (*entity.Stock, []entity.PricePoint, error) {
	if limit <= 0 || limit > MaxPriceLimit {
		limit = DefaultPriceLimit
	}

	stock, err := su.stocks.FindByTicker(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}
	if stock == nil {
		return nil, nil, nil
	}

	prices, err := su.prices.FindRecent(ctx, stock.ID, limit)
	if err != nil {
		return nil, nil, err
	}
	return stock, prices, nil
}
