// Package entity defines the domain models for the analysis feature.
package entity

import "time"

// Recommendation は外部の分析サービスが書き込む推奨行です。
// このリポジトリは読み取りと保持期間の管理のみを行い、スコアリングは行いません。
// 自然キーは (stock_id, recommended_date) です。
type Recommendation struct {
	StockID         uint
	Score           float64
	Reason          string
	RecommendedDate time.Time
}
