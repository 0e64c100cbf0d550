package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockStockStats is a mock implementation of the StockStats interface.
type mockStockStats struct {
	CountByMarketFunc func(ctx context.Context) (map[string]int64, error)
}

func (m *mockStockStats) CountByMarket(ctx context.Context) (map[string]int64, error) {
	return m.CountByMarketFunc(ctx)
}

// mockNewsStats is a mock implementation of the NewsStats interface.
type mockNewsStats struct {
	CountSinceFunc func(ctx context.Context, since time.Time) (int64, error)
}

func (m *mockNewsStats) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return m.CountSinceFunc(ctx, since)
}

// mockRecommendationStats is a mock implementation of the RecommendationStats interface.
type mockRecommendationStats struct {
	CountForDateFunc func(ctx context.Context, date time.Time) (int64, error)
}

func (m *mockRecommendationStats) CountForDate(ctx context.Context, date time.Time) (int64, error) {
	return m.CountForDateFunc(ctx, date)
}

func TestReportUsecase_Generate(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC)

	stocks := &mockStockStats{
		CountByMarketFunc: func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{"US": 20, "KR": 18}, nil
		},
	}
	news := &mockNewsStats{
		CountSinceFunc: func(ctx context.Context, since time.Time) (int64, error) {
			want := fixedNow.Add(-24 * time.Hour)
			if !since.Equal(want) {
				t.Errorf("since mismatch: got %v, want %v", since, want)
			}
			return 42, nil
		},
	}
	recs := &mockRecommendationStats{
		CountForDateFunc: func(ctx context.Context, date time.Time) (int64, error) {
			want := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
			if !date.Equal(want) {
				t.Errorf("date mismatch: got %v, want %v", date, want)
			}
			return 5, nil
		},
	}

	uc := NewReportUsecase(stocks, news, recs)
	uc.now = func() time.Time { return fixedNow }

	report, err := uc.Generate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.StocksTracked != 38 {
		t.Errorf("StocksTracked mismatch: got %d, want 38", report.StocksTracked)
	}
	if report.NewsCollected24h != 42 {
		t.Errorf("NewsCollected24h mismatch: got %d, want 42", report.NewsCollected24h)
	}
	if report.RecommendationsToday != 5 {
		t.Errorf("RecommendationsToday mismatch: got %d, want 5", report.RecommendationsToday)
	}
	if report.MarketBreakdown["US"] != 20 || report.MarketBreakdown["KR"] != 18 {
		t.Errorf("MarketBreakdown mismatch: got %v", report.MarketBreakdown)
	}
}

func TestReportUsecase_Generate_StatsError(t *testing.T) {
	ctx := context.Background()

	stocks := &mockStockStats{
		CountByMarketFunc: func(ctx context.Context) (map[string]int64, error) {
			return nil, errors.New("db error")
		},
	}

	uc := NewReportUsecase(stocks, &mockNewsStats{}, &mockRecommendationStats{})
	if _, err := uc.Generate(ctx); err == nil {
		t.Error("expected error when stats reader fails")
	}
}
