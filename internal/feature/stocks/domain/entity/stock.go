// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Market は追跡対象の市場を表します。
type Market string

const (
	MarketUS Market = "US"
	MarketKR Market = "KR"
)

// Stock represents a tracked security. Ticker is unique across the store
// regardless of market; ticker and market never change after creation.
type Stock struct {
	ID        uint
	Ticker    string
	Name      string
	Market    Market
	Sector    string
	Industry  string
	MarketCap int64
}

// PricePoint is one daily OHLCV bar for a stock. The natural key is
// (stock, date); repeated collection runs overwrite the same day.
type PricePoint struct {
	StockID       uint
	Date          time.Time
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        int64
	AdjustedClose float64
}

// Quote は外部APIから取得したリアルタイム相場です。
type Quote struct {
	CurrentPrice  float64
	PreviousClose float64
	DayHigh       float64
	DayLow        float64
	Volume        int64
	MarketCap     int64
	PERatio       float64
	// 銘柄情報ブートストラップ用の記述フィールド
	Name     string
	Sector   string
	Industry string
}

// QuoteSnapshot is the realtime quote cache row. The natural key is
// (symbol, market); each collection cycle replaces the whole snapshot.
type QuoteSnapshot struct {
	Symbol        string
	Market        Market
	CurrentPrice  float64
	PreviousClose float64
	DayHigh       float64
	DayLow        float64
	Volume        int64
	MarketCap     int64
	PERatio       float64
	UpdatedAt     time.Time
}
