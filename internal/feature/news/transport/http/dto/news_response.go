// Package dto はnewsフィーチャーのHTTPレスポンス型を定義します。
package dto

// NewsResponse はニュース1件のレスポンスです。
type NewsResponse struct {
	StockID     *uint   `json:"stock_id"`
	Headline    string  `json:"headline"`
	URL         string  `json:"url"`
	Content     string  `json:"content,omitempty"`
	Source      string  `json:"source"`
	PublishedAt string  `json:"published_at"`
	Sentiment   float64 `json:"sentiment"`
	Confidence  float64 `json:"confidence"`
}
