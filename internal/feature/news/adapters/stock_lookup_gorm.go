package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stock_collector/internal/feature/news/usecase"
)

// stockLookupGorm はtickerから銘柄IDを解決するStockLookup実装です。
// stocksフィーチャーのテーブルを読み取り専用で参照します。
type stockLookupGorm struct {
	db *gorm.DB
}

var _ usecase.StockLookup = (*stockLookupGorm)(nil)

func NewStockLookup(db *gorm.DB) *stockLookupGorm {
	return &stockLookupGorm{db: db}
}

// LookupID はtickerに対応する銘柄IDを返します。
// 未登録の場合は found=false を返します（エラーではありません）。
func (r *stockLookupGorm) LookupID(ctx context.Context, ticker string) (uint, bool, error) {
	var id uint
	err := r.db.WithContext(ctx).
		Table("stocks").
		Select("id").
		Where("ticker = ?", ticker).
		Take(&id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
