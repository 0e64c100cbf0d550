// Package dto はanalysisフィーチャーのHTTPレスポンス型を定義します。
package dto

// RecommendationResponse は推奨1件のレスポンスです。
type RecommendationResponse struct {
	StockID         uint    `json:"stock_id"`
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
	RecommendedDate string  `json:"recommended_date"`
}
