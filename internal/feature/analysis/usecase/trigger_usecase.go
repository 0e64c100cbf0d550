// Package usecase は日次分析トリガーと推奨参照のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"
)

// AnalysisResult は分析サービスの応答です。
type AnalysisResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AnalysisCount int    `json:"analysis_count"`
	Error         string `json:"error"`
}

// AnalysisTrigger は外部分析サービスの主経路を抽象化します。
type AnalysisTrigger interface {
	TriggerDaily(ctx context.Context, date string) (AnalysisResult, error)
}

// FallbackTrigger は主経路の失敗時に使う代替チャネル（サーバーサイド関数の起動）です。
type FallbackTrigger interface {
	InvokeDaily(ctx context.Context, date string) error
}

// TriggerUsecase は日次分析のトリガーを実行します。
type TriggerUsecase struct {
	primary  AnalysisTrigger
	fallback FallbackTrigger
	now      func() time.Time // テストで差し替え可能
}

// NewTriggerUsecase は新しい TriggerUsecase を作成します。
func NewTriggerUsecase(primary AnalysisTrigger, fallback FallbackTrigger) *TriggerUsecase {
	return &TriggerUsecase{primary: primary, fallback: fallback, now: time.Now}
}

// TriggerDaily は当日分の分析を主経路で起動します。
// 主経路が失敗した場合はちょうど1回だけ代替チャネルを試み、
// それも失敗した場合は両方の失敗をログに出力して正常に戻ります。
// プロセスを落とすことはありません。
func (tu *TriggerUsecase) TriggerDaily(ctx context.Context) {
	date := tu.now().UTC().Format("2006-01-02")
	slog.Info("triggering daily analysis", "date", date)

	result, err := tu.primary.TriggerDaily(ctx, date)
	if err == nil {
		if result.Success {
			slog.Info("daily analysis completed", "message", result.Message, "recommendations", result.AnalysisCount)
		} else {
			slog.Error("daily analysis reported failure", "error", result.Error)
		}
		return
	}

	slog.Error("failed to trigger daily analysis", "error", err)

	// 代替チャネルは1回だけ
	if fbErr := tu.fallback.InvokeDaily(ctx, date); fbErr != nil {
		slog.Error("fallback analysis trigger also failed", "error", fbErr)
		return
	}
	slog.Info("daily analysis triggered via fallback", "date", date)
}
