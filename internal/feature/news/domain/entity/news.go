// Package entity defines the domain models for the news feature.
package entity

import "time"

// SourceKind はニュースソースの取得方式を表します。
// 方式ごとに対応するアダプター（feed / scrape / query）が選択されます。
type SourceKind string

const (
	KindFeed   SourceKind = "feed"   // RSS/Atomフィード
	KindScrape SourceKind = "scrape" // HTMLスクレイピング
	KindQuery  SourceKind = "query"  // APIキー付きRESTクエリ
)

// Source is the static configuration of one upstream news source.
type Source struct {
	Name string
	URL  string
	Kind SourceKind
}

// Item is the normalized shape every source adapter emits, regardless of
// the upstream format.
type Item struct {
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
	SourceName  string
}

// NewsItem is one stored news row. StockID is nil for trending items with
// no symbol association; the natural key is (stock_id, url), so the same
// article may be stored once per matched symbol.
type NewsItem struct {
	StockID     *uint
	Headline    string
	URL         string
	Content     string
	Source      string
	PublishedAt time.Time
	Sentiment   float64 // 0 = 未スコア。下流の分析サービスが更新する
	Confidence  float64 // 0 = 未スコア
}
