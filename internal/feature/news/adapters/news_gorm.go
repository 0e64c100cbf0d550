// Package adapters はnewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/usecase"
)

type newsGorm struct {
	db *gorm.DB
}

var _ usecase.NewsRepository = (*newsGorm)(nil)

func NewNewsRepository(db *gorm.DB) *newsGorm {
	return &newsGorm{db: db}
}

// NewsModel はニューステーブルのgormモデルです。
// 自然キーは (stock_id, url) で、同じ記事が複数の銘柄にマッチした場合は
// 銘柄ごとに1行ずつ格納されます。トレンドニュースはstock_idがNULLです。
type NewsModel struct {
	ID          uint      `gorm:"primaryKey"`
	StockID     *uint     `gorm:"uniqueIndex:news_stock_url,priority:1"`
	Headline    string    `gorm:"size:512;not null"`
	URL         string    `gorm:"size:1024;not null;uniqueIndex:news_stock_url,priority:2"`
	Content     string    `gorm:"type:text"`
	Source      string    `gorm:"size:100"`
	PublishedAt time.Time `gorm:"not null;index"`
	Sentiment   float64   `gorm:"not null;default:0"`
	Confidence  float64   `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (NewsModel) TableName() string {
	return "news"
}

func toNewsEntity(m NewsModel) entity.NewsItem {
	return entity.NewsItem{
		StockID:     m.StockID,
		Headline:    m.Headline,
		URL:         m.URL,
		Content:     m.Content,
		Source:      m.Source,
		PublishedAt: m.PublishedAt,
		Sentiment:   m.Sentiment,
		Confidence:  m.Confidence,
	}
}

// Upsert はニュース1行を自然キー (stock_id, url) でupsertします。
// 衝突時はsentiment/confidenceを含めて上書きします（last-write-wins）。
func (r *newsGorm) Upsert(ctx context.Context, item entity.NewsItem) error {
	m := NewsModel{
		StockID:     item.StockID,
		Headline:    item.Headline,
		URL:         item.URL,
		Content:     item.Content,
		Source:      item.Source,
		PublishedAt: item.PublishedAt,
		Sentiment:   item.Sentiment,
		Confidence:  item.Confidence,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_id"}, {Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"headline", "content", "source", "published_at", "sentiment", "confidence"}),
	}).Create(&m).Error
}

// FindRecent は公開日時の新しい順にニュースを最大limit件返します。
// stockIDを指定すると、その銘柄に紐づく行に絞り込みます。
func (r *newsGorm) FindRecent(ctx context.Context, stockID *uint, limit int) ([]entity.NewsItem, error) {
	var rows []NewsModel
	q := r.db.WithContext(ctx).Order("published_at DESC")
	if stockID != nil {
		q = q.Where("stock_id = ?", *stockID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.NewsItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, toNewsEntity(m))
	}
	return out, nil
}

// CountSince はsince以降に公開されたニュースの件数を返します。
func (r *newsGorm) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&NewsModel{}).
		Where("published_at >= ?", since).
		Count(&n).Error
	return n, err
}

// DeleteOlderThan はpublished_atがcutoffより古い行を削除し、削除件数を返します。
func (r *newsGorm) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("published_at < ?", cutoff).
		Delete(&NewsModel{})
	return res.RowsAffected, res.Error
}
