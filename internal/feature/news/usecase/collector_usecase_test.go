package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock_collector/internal/feature/news/domain/entity"
)

var ErrSourceDown = errors.New("source unavailable")

// mockSourceFetcher is a mock implementation of the SourceFetcher interface.
type mockSourceFetcher struct {
	src       entity.Source
	FetchFunc func(ctx context.Context) ([]entity.Item, error)
}

func (m *mockSourceFetcher) Fetch(ctx context.Context) ([]entity.Item, error) {
	return m.FetchFunc(ctx)
}

func (m *mockSourceFetcher) Source() entity.Source {
	return m.src
}

// mockNewsRepository is a mock implementation of the NewsRepository interface.
type mockNewsRepository struct {
	UpsertFunc  func(ctx context.Context, item entity.NewsItem) error
	UpsertCalls int
	stored      []entity.NewsItem
}

func (m *mockNewsRepository) Upsert(ctx context.Context, item entity.NewsItem) error {
	m.UpsertCalls++
	m.stored = append(m.stored, item)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, item)
	}
	return nil
}

// mockStockLookup is a mock implementation of the StockLookup interface.
type mockStockLookup struct {
	LookupIDFunc func(ctx context.Context, ticker string) (uint, bool, error)
}

func (m *mockStockLookup) LookupID(ctx context.Context, ticker string) (uint, bool, error) {
	if m.LookupIDFunc != nil {
		return m.LookupIDFunc(ctx, ticker)
	}
	return 0, false, errors.New("LookupIDFunc is not implemented")
}

// mockPacer is a mock implementation of the pacer.Delayer interface.
type mockPacer struct {
	WaitCalls int
}

func (m *mockPacer) Wait() {
	m.WaitCalls++
}

func TestCollectorUsecase_CollectMarket(t *testing.T) {
	ctx := context.Background()
	publishedAt := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	symbols := []string{"AAPL", "MSFT"}

	appleItem := entity.Item{
		Title:       "Apple posts record iPhone sales",
		Description: "Quarterly results beat expectations.",
		Link:        "https://example.com/apple",
		PublishedAt: publishedAt,
		SourceName:  "Yahoo Finance",
	}

	t.Run("success: alias match stores one unscored row per symbol", func(t *testing.T) {
		fetcher := &mockSourceFetcher{
			src: entity.Source{Name: "Yahoo Finance"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{appleItem}, nil
			},
		}
		news := &mockNewsRepository{}
		stocks := &mockStockLookup{
			LookupIDFunc: func(ctx context.Context, ticker string) (uint, bool, error) {
				if ticker != "AAPL" {
					t.Errorf("ticker mismatch: got %s, want AAPL", ticker)
				}
				return 1, true, nil
			},
		}
		p := &mockPacer{}

		uc := NewCollectorUsecase(news, stocks, p, p)
		uc.CollectMarket(ctx, []SourceFetcher{fetcher}, symbols, "US")

		if news.UpsertCalls != 1 {
			t.Fatalf("Upsert calls mismatch: got %d, want 1", news.UpsertCalls)
		}
		got := news.stored[0]
		if got.StockID == nil || *got.StockID != 1 {
			t.Errorf("StockID mismatch: got %v, want 1", got.StockID)
		}
		if got.Headline != appleItem.Title {
			t.Errorf("Headline mismatch: got %s", got.Headline)
		}
		if got.Sentiment != 0 || got.Confidence != 0 {
			t.Errorf("new rows must be unscored: sentiment=%v confidence=%v", got.Sentiment, got.Confidence)
		}
		if p.WaitCalls != 1 {
			t.Errorf("pacer Wait calls mismatch: got %d, want 1", p.WaitCalls)
		}
	})

	t.Run("skip: item with no relevant symbol is dropped", func(t *testing.T) {
		fetcher := &mockSourceFetcher{
			src: entity.Source{Name: "Reuters Business"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{{Title: "Oil prices steady", Link: "https://example.com/oil"}}, nil
			},
		}
		news := &mockNewsRepository{}
		stocks := &mockStockLookup{
			LookupIDFunc: func(ctx context.Context, ticker string) (uint, bool, error) {
				t.Error("LookupID must not be called for an irrelevant item")
				return 0, false, nil
			},
		}
		p := &mockPacer{}

		uc := NewCollectorUsecase(news, stocks, p, p)
		uc.CollectMarket(ctx, []SourceFetcher{fetcher}, symbols, "US")

		if news.UpsertCalls != 0 {
			t.Errorf("Upsert calls mismatch: got %d, want 0", news.UpsertCalls)
		}
	})

	t.Run("skip: unregistered symbol is silently dropped", func(t *testing.T) {
		fetcher := &mockSourceFetcher{
			src: entity.Source{Name: "Yahoo Finance"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{appleItem}, nil
			},
		}
		news := &mockNewsRepository{}
		stocks := &mockStockLookup{
			LookupIDFunc: func(ctx context.Context, ticker string) (uint, bool, error) {
				return 0, false, nil
			},
		}
		p := &mockPacer{}

		uc := NewCollectorUsecase(news, stocks, p, p)
		uc.CollectMarket(ctx, []SourceFetcher{fetcher}, symbols, "US")

		if news.UpsertCalls != 0 {
			t.Errorf("Upsert calls mismatch: got %d, want 0", news.UpsertCalls)
		}
	})

	t.Run("error: failing source does not stop the remaining sources", func(t *testing.T) {
		bad := &mockSourceFetcher{
			src: entity.Source{Name: "MarketWatch"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return nil, ErrSourceDown
			},
		}
		good := &mockSourceFetcher{
			src: entity.Source{Name: "Yahoo Finance"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{appleItem}, nil
			},
		}
		news := &mockNewsRepository{}
		stocks := &mockStockLookup{
			LookupIDFunc: func(ctx context.Context, ticker string) (uint, bool, error) {
				return 1, true, nil
			},
		}
		p := &mockPacer{}

		uc := NewCollectorUsecase(news, stocks, p, p)
		uc.CollectMarket(ctx, []SourceFetcher{bad, good}, symbols, "US")

		if news.UpsertCalls != 1 {
			t.Errorf("Upsert calls mismatch: got %d, want 1", news.UpsertCalls)
		}
		// 失敗したソースの後にもディレイを挟む
		if p.WaitCalls != 2 {
			t.Errorf("pacer Wait calls mismatch: got %d, want 2", p.WaitCalls)
		}
	})

	t.Run("error: failing upsert does not stop the remaining symbols", func(t *testing.T) {
		multiItem := entity.Item{
			Title: "Apple and Microsoft announce partnership",
			Link:  "https://example.com/partnership",
		}
		fetcher := &mockSourceFetcher{
			src: entity.Source{Name: "Yahoo Finance"},
			FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{multiItem}, nil
			},
		}
		news := &mockNewsRepository{
			UpsertFunc: func(ctx context.Context, item entity.NewsItem) error {
				if *item.StockID == 1 {
					return errors.New("insert failed")
				}
				return nil
			},
		}
		ids := map[string]uint{"AAPL": 1, "MSFT": 2}
		stocks := &mockStockLookup{
			LookupIDFunc: func(ctx context.Context, ticker string) (uint, bool, error) {
				return ids[ticker], true, nil
			},
		}
		p := &mockPacer{}

		uc := NewCollectorUsecase(news, stocks, p, p)
		uc.CollectMarket(ctx, []SourceFetcher{fetcher}, symbols, "US")

		// 両銘柄分の試行が行われる
		if news.UpsertCalls != 2 {
			t.Errorf("Upsert calls mismatch: got %d, want 2", news.UpsertCalls)
		}
	})
}

func TestCollectorUsecase_CollectTrending(t *testing.T) {
	ctx := context.Background()

	fetcher := &mockSourceFetcher{
		src: entity.Source{Name: "Yahoo Finance"},
		FetchFunc: func(ctx context.Context) ([]entity.Item, error) {
			return []entity.Item{
				{Title: "Markets rally", Link: "https://example.com/rally", SourceName: "Yahoo Finance"},
			}, nil
		},
	}
	news := &mockNewsRepository{}
	p := &mockPacer{}

	uc := NewCollectorUsecase(news, &mockStockLookup{}, &mockPacer{}, p)
	uc.CollectTrending(ctx, []SourceFetcher{fetcher})

	if news.UpsertCalls != 1 {
		t.Fatalf("Upsert calls mismatch: got %d, want 1", news.UpsertCalls)
	}
	got := news.stored[0]
	if got.StockID != nil {
		t.Errorf("trending rows must have nil StockID, got %v", *got.StockID)
	}
	if got.Source != "Trending" {
		t.Errorf("Source mismatch: got %s, want Trending", got.Source)
	}
	if p.WaitCalls != 1 {
		t.Errorf("trending pacer Wait calls mismatch: got %d, want 1", p.WaitCalls)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate mismatch: got %s", got)
	}
	long := "a very long headline that keeps going and going and going and going"
	got := truncate(long, 10)
	if got != "a very lon..." {
		t.Errorf("truncate mismatch: got %s", got)
	}
}
