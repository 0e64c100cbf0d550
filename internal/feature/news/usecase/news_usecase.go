package usecase

import (
	"context"

	"stock_collector/internal/feature/news/domain/entity"
)

const (
	// DefaultNewsLimit はニュースクエリのデフォルト返却件数です。
	DefaultNewsLimit = 50
	// MaxNewsLimit はニュースクエリの最大返却件数です。
	MaxNewsLimit = 200
)

// NewsReader はニュースの読み取りレイヤーを抽象化します。
type NewsReader interface {
	FindRecent(ctx context.Context, stockID *uint, limit int) ([]entity.NewsItem, error)
}

// newsUsecase は参照系APIのユースケースを定義します。
type newsUsecase struct {
	news   NewsReader
	stocks StockLookup
}

// NewNewsUsecase はnewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(news NewsReader, stocks StockLookup) *newsUsecase {
	return &newsUsecase{news: news, stocks: stocks}
}

// GetRecent は公開日時の新しい順にニュースを返します。
// tickerが空でない場合はその銘柄に絞り込みます。未登録のtickerは空の結果になります。
func (nu *newsUsecase) GetRecent(ctx context.Context, ticker string, limit int) ([]entity.NewsItem, error) {
	if limit <= 0 || limit > MaxNewsLimit {
		limit = DefaultNewsLimit
	}

	if ticker == "" {
		return nu.news.FindRecent(ctx, nil, limit)
	}

	id, found, err := nu.stocks.LookupID(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return nu.news.FindRecent(ctx, &id, limit)
}
