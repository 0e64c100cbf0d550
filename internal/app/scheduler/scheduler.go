// Package scheduler は収集・分析・クリーンアップの定期実行を管理します。
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// cron式。平日の市場時間に株価、30分ごとにニュース、毎朝7時に分析、
// 深夜0時に保持期間クリーンアップを実行します。
const (
	pricesSpec   = "0 9-16 * * 1-5"
	newsSpec     = "*/30 * * * *"
	analysisSpec = "0 7 * * *"
	cleanupSpec  = "0 0 * * *"
)

// Jobs はスケジューラーが起動する各ジョブの実体です。
// ジョブ間の排他制御は行いません。実行が重なっても各ジョブは安全である前提です。
type Jobs struct {
	CollectPrices   func(ctx context.Context)
	CollectNews     func(ctx context.Context)
	TriggerAnalysis func(ctx context.Context)
	Cleanup         func(ctx context.Context)
}

// Scheduler はcronベースのジョブスケジューラーです。
type Scheduler struct {
	c *cron.Cron
}

// New はUTC基準のSchedulerの新しいインスタンスを生成します。
// cron式が不正な場合はエラーを返します。
func New(jobs Jobs) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	entries := []struct {
		name string
		spec string
		fn   func(ctx context.Context)
	}{
		{"collect_prices", pricesSpec, jobs.CollectPrices},
		{"collect_news", newsSpec, jobs.CollectNews},
		{"trigger_analysis", analysisSpec, jobs.TriggerAnalysis},
		{"cleanup", cleanupSpec, jobs.Cleanup},
	}
	for _, e := range entries {
		if e.fn == nil {
			continue
		}
		if _, err := c.AddFunc(e.spec, guard(e.name, e.fn)); err != nil {
			return nil, err
		}
	}

	return &Scheduler{c: c}, nil
}

// guard はジョブをpanicから保護するラッパーを返します。
// 1ジョブの失敗がスケジューラー全体を止めないようにします。
func guard(name string, fn func(ctx context.Context)) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("スケジュールジョブがpanicしました", "job", name, "panic", r)
			}
		}()

		start := time.Now()
		slog.Info("スケジュールジョブを開始します", "job", name)
		fn(context.Background())
		slog.Info("スケジュールジョブが完了しました", "job", name, "duration", time.Since(start))
	}
}

// Start はスケジューラーを起動します。各ジョブは自身のgoroutineで実行されます。
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop は新規ジョブの起動を止め、実行中のジョブの完了を待ちます。
func (s *Scheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}
