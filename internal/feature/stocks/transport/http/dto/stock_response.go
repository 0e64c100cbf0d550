// Package dto はstocksフィーチャーのHTTPレスポンス型を定義します。
package dto

// StockResponse は銘柄1件のレスポンスです。
type StockResponse struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Market    string `json:"market"`
	Sector    string `json:"sector,omitempty"`
	Industry  string `json:"industry,omitempty"`
	MarketCap int64  `json:"market_cap,omitempty"`
}

// PriceResponse は日足1本のレスポンスです。
type PriceResponse struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	AdjustedClose float64 `json:"adjusted_close"`
}

// StockPricesResponse は銘柄と日足リストをまとめたレスポンスです。
type StockPricesResponse struct {
	Stock  StockResponse   `json:"stock"`
	Prices []PriceResponse `json:"prices"`
}
