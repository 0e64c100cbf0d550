// Package usecase は保持期間の管理と日次レポートのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"
)

const (
	// NewsRetentionDays はニュース行の保持日数です（published_at基準）。
	NewsRetentionDays = 90
	// RecommendationRetentionDays は推奨行の保持日数です（recommended_date基準）。
	RecommendationRetentionDays = 30
	// QuoteRetentionDays はリアルタイム相場キャッシュの保持日数です（updated_at基準）。
	QuoteRetentionDays = 7
)

// RetentionRepository はタイムスタンプ基準の削除を抽象化します。
// 各実装はそのテーブルの自然なタイムスタンプ列を基準にします。
type RetentionRepository interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (deleted int64, err error)
}

// CleanupUsecase は日次の保持期間クリーンアップを実行します。
type CleanupUsecase struct {
	news   RetentionRepository
	recs   RetentionRepository
	quotes RetentionRepository
	now    func() time.Time // テストで差し替え可能
}

// NewCleanupUsecase は新しい CleanupUsecase を作成します。
func NewCleanupUsecase(news, recs, quotes RetentionRepository) *CleanupUsecase {
	return &CleanupUsecase{news: news, recs: recs, quotes: quotes, now: time.Now}
}

// Run は各テーブルの保持期間を超えた行を削除します。
// 1テーブルの失敗はログに出力し、残りのテーブルの処理を続けます。
func (cu *CleanupUsecase) Run(ctx context.Context) {
	slog.Info("starting data cleanup")
	now := cu.now().UTC()

	targets := []struct {
		name string
		repo RetentionRepository
		days int
	}{
		{"news", cu.news, NewsRetentionDays},
		{"recommendations", cu.recs, RecommendationRetentionDays},
		{"market_data", cu.quotes, QuoteRetentionDays},
	}

	for _, t := range targets {
		cutoff := now.AddDate(0, 0, -t.days)
		deleted, err := t.repo.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			slog.Error("failed to clean up old data", "table", t.name, "error", err)
			continue
		}
		slog.Info("old data cleaned up", "table", t.name, "deleted", deleted, "cutoff", cutoff.Format("2006-01-02"))
	}
}
