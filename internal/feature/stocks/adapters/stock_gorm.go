// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/usecase"
)

// stockGorm はStockRepository/StockReaderインターフェースのPostgreSQL実装です。
type stockGorm struct {
	db *gorm.DB
}

var (
	_ usecase.StockRepository = (*stockGorm)(nil)
	_ usecase.StockReader     = (*stockGorm)(nil)
)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// StockModel は銘柄テーブルのgormモデルです。tickerは市場を問わず一意です。
type StockModel struct {
	ID        uint      `gorm:"primaryKey"`
	Ticker    string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:10;not null"`
	Sector    string    `gorm:"size:100"`
	Industry  string    `gorm:"size:100"`
	MarketCap int64     `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StockModel) TableName() string {
	return "stocks"
}

func toStockEntity(m StockModel) entity.Stock {
	return entity.Stock{
		ID:        m.ID,
		Ticker:    m.Ticker,
		Name:      m.Name,
		Market:    entity.Market(m.Market),
		Sector:    m.Sector,
		Industry:  m.Industry,
		MarketCap: m.MarketCap,
	}
}

// FindByTicker はtickerで銘柄を検索します。該当なしの場合は (nil, nil) を返します。
func (r *stockGorm) FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error) {
	var m StockModel
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := toStockEntity(m)
	return &e, nil
}

// Create は新しい銘柄レコードを作成し、採番されたIDをエンティティに書き戻します。
func (r *stockGorm) Create(ctx context.Context, stock *entity.Stock) error {
	m := StockModel{
		Ticker:    stock.Ticker,
		Name:      stock.Name,
		Market:    string(stock.Market),
		Sector:    stock.Sector,
		Industry:  stock.Industry,
		MarketCap: stock.MarketCap,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	stock.ID = m.ID
	return nil
}

// CountByMarket は市場ごとの銘柄数を返します。
func (r *stockGorm) CountByMarket(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Market string
		N      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&StockModel{}).
		Select("market, COUNT(*) AS n").
		Group("market").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Market] = row.N
	}
	return out, nil
}

// List はticker順にすべての銘柄を返します。
func (r *stockGorm) List(ctx context.Context) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Stock, 0, len(rows))
	for _, m := range rows {
		out = append(out, toStockEntity(m))
	}
	return out, nil
}
