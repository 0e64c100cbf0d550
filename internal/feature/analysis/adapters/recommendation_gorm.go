// Package adapters はanalysisフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stock_collector/internal/feature/analysis/domain/entity"
	"stock_collector/internal/feature/analysis/usecase"
)

type recommendationGorm struct {
	db *gorm.DB
}

var _ usecase.RecommendationReader = (*recommendationGorm)(nil)

func NewRecommendationRepository(db *gorm.DB) *recommendationGorm {
	return &recommendationGorm{db: db}
}

// RecommendationModel は推奨テーブルのgormモデルです。
// 行の書き込みは外部の分析サービスが行い、このプロセスは読み取りと削除のみ行います。
type RecommendationModel struct {
	ID              uint      `gorm:"primaryKey"`
	StockID         uint      `gorm:"not null;uniqueIndex:rec_stock_date,priority:1"`
	Score           float64   `gorm:"not null"`
	Reason          string    `gorm:"type:text"`
	RecommendedDate time.Time `gorm:"not null;uniqueIndex:rec_stock_date,priority:2;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (RecommendationModel) TableName() string {
	return "recommendations"
}

// FindByDate は指定日の推奨をスコアの高い順に返します。
func (r *recommendationGorm) FindByDate(ctx context.Context, date time.Time) ([]entity.Recommendation, error) {
	var rows []RecommendationModel
	if err := r.db.WithContext(ctx).
		Where("recommended_date = ?", date).
		Order("score DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Recommendation, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Recommendation{
			StockID:         m.StockID,
			Score:           m.Score,
			Reason:          m.Reason,
			RecommendedDate: m.RecommendedDate,
		})
	}
	return out, nil
}

// CountForDate は指定日の推奨件数を返します。
func (r *recommendationGorm) CountForDate(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&RecommendationModel{}).
		Where("recommended_date = ?", date).
		Count(&n).Error
	return n, err
}

// DeleteOlderThan はrecommended_dateがcutoffより古い行を削除し、削除件数を返します。
func (r *recommendationGorm) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recommended_date < ?", cutoff).
		Delete(&RecommendationModel{})
	return res.RowsAffected, res.Error
}
