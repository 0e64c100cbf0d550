package cache

import (
	"time"
)

// TimeUntilNextMidnightUTC は次のUTC午前0時までの期間を返します。
// 日足価格は1日1回しか変わらないため、キャッシュTTLは日付の切り替わりに合わせます。
func TimeUntilNextMidnightUTC() time.Duration {
	now := time.Now().UTC()

	// 翌日の午前0時を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return next.Sub(now)
}
