package usecase

import (
	"context"
	"time"

	"stock_collector/internal/feature/analysis/domain/entity"
)

// RecommendationReader は推奨行の読み取りレイヤーを抽象化します。
type RecommendationReader interface {
	FindByDate(ctx context.Context, date time.Time) ([]entity.Recommendation, error)
}

// recommendationsUsecase は参照系APIのユースケースを定義します。
type recommendationsUsecase struct {
	recs RecommendationReader
	now  func() time.Time
}

// NewRecommendationsUsecase はrecommendationsUsecaseの新しいインスタンスを生成します。
func NewRecommendationsUsecase(recs RecommendationReader) *recommendationsUsecase {
	return &recommendationsUsecase{recs: recs, now: time.Now}
}

// GetForDate は指定日の推奨を返します。dateがゼロ値の場合は当日分を返します。
func (ru *recommendationsUsecase) GetForDate(ctx context.Context, date time.Time) ([]entity.Recommendation, error) {
	if date.IsZero() {
		n := ru.now().UTC()
		date = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	}
	return ru.recs.FindByDate(ctx, date)
}
