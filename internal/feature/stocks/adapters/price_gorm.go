package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/usecase"
)

type priceGorm struct {
	db *gorm.DB
}

var (
	_ usecase.PriceRepository = (*priceGorm)(nil)
	_ usecase.PriceReader     = (*priceGorm)(nil)
)

func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

// PriceModel は日足価格テーブルのgormモデルです。
// 自然キーは (stock_id, date) で、同じ日のupsertは上書きになります。
type PriceModel struct {
	ID            uint      `gorm:"primaryKey"`
	StockID       uint      `gorm:"not null;uniqueIndex:price_stock_date,priority:1"`
	Date          time.Time `gorm:"not null;uniqueIndex:price_stock_date,priority:2"`
	Open          float64   `gorm:"not null"`
	High          float64   `gorm:"not null"`
	Low           float64   `gorm:"not null"`
	Close         float64   `gorm:"not null"`
	Volume        int64     `gorm:"not null;default:0"`
	AdjustedClose float64   `gorm:"not null"`
}

func (PriceModel) TableName() string {
	return "stock_prices"
}

func toPriceModel(e entity.PricePoint) PriceModel {
	return PriceModel{
		StockID:       e.StockID,
		Date:          e.Date,
		Open:          e.Open,
		High:          e.High,
		Low:           e.Low,
		Close:         e.Close,
		Volume:        e.Volume,
		AdjustedClose: e.AdjustedClose,
	}
}

func toPriceEntity(m PriceModel) entity.PricePoint {
	return entity.PricePoint{
		StockID:       m.StockID,
		Date:          m.Date,
		Open:          m.Open,
		High:          m.High,
		Low:           m.Low,
		Close:         m.Close,
		Volume:        m.Volume,
		AdjustedClose: m.AdjustedClose,
	}
}

// UpsertBatch は日足価格を一括で挿入し、自然キー衝突時は上書きします（last-write-wins）。
func (r *priceGorm) UpsertBatch(ctx context.Context, prices []entity.PricePoint) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(prices))
	for _, e := range prices {
		ms = append(ms, toPriceModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "adjusted_close"}),
	}).Create(&ms).Error
}

// FindRecent は指定された銘柄の日足を新しい順に最大limit件返します。
func (r *priceGorm) FindRecent(ctx context.Context, stockID uint, limit int) ([]entity.PricePoint, error) {
	var rows []PriceModel
	q := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PricePoint, 0, len(rows))
	for _, m := range rows {
		out = append(out, toPriceEntity(m))
	}
	return out, nil
}
