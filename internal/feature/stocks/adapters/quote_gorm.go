package adapters

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/usecase"
)

type quoteGorm struct {
	db *gorm.DB
}

var _ usecase.QuoteRepository = (*quoteGorm)(nil)

func NewQuoteRepository(db *gorm.DB) *quoteGorm {
	return &quoteGorm{db: db}
}

// QuoteModel はリアルタイム相場キャッシュのgormモデルです。
// 相場の詳細はJSON列に入れ、収集サイクルごとにスナップショット全体を置き換えます。
type QuoteModel struct {
	ID        uint           `gorm:"primaryKey"`
	Symbol    string         `gorm:"size:20;not null;uniqueIndex:quote_sym_market,priority:1"`
	Market    string         `gorm:"size:10;not null;uniqueIndex:quote_sym_market,priority:2"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null;index"`
}

func (QuoteModel) TableName() string {
	return "market_data"
}

// quotePayload はJSON列に格納する相場ペイロードです。
type quotePayload struct {
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	Volume        int64   `json:"volume"`
	MarketCap     int64   `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	UpdatedAt     string  `json:"updated_at"`
}

// Upsert はスナップショットを自然キー (symbol, market) でupsertします。
func (r *quoteGorm) Upsert(ctx context.Context, s entity.QuoteSnapshot) error {
	payload, err := json.Marshal(quotePayload{
		CurrentPrice:  s.CurrentPrice,
		PreviousClose: s.PreviousClose,
		DayHigh:       s.DayHigh,
		DayLow:        s.DayLow,
		Volume:        s.Volume,
		MarketCap:     s.MarketCap,
		PERatio:       s.PERatio,
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	m := QuoteModel{
		Symbol:    s.Symbol,
		Market:    string(s.Market),
		Data:      datatypes.JSON(payload),
		UpdatedAt: s.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "market"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&m).Error
}

// DeleteOlderThan はupdated_atがcutoffより古いキャッシュ行を削除し、削除件数を返します。
func (r *quoteGorm) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&QuoteModel{})
	return res.RowsAffected, res.Error
}
