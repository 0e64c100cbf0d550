package dto

// QuoteResponse はv7クオートAPIのレスポンスです。
// 数値フィールドは銘柄によっては欠落するため、すべてポインタで受けます。
type QuoteResponse struct {
	QuoteResponse struct {
		Result []QuoteResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteResult は1銘柄分のクオートです。
type QuoteResult struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	ShortName                  string   `json:"shortName"`
	Sector                     string   `json:"sector"`
	Industry                   string   `json:"industry"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	MarketCap                  *int64   `json:"marketCap"`
	TrailingPE                 *float64 `json:"trailingPE"`
}
