package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock_collector/internal/feature/stocks/domain/entity"
)

var ErrMarketAPI = errors.New("market API error")

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	GetDailyBarsFunc  func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error)
	GetQuoteFunc      func(ctx context.Context, symbol string) (entity.Quote, error)
	GetDailyBarsCalls int
	GetQuoteCalls     int
}

func (m *mockMarketRepository) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
	m.GetDailyBarsCalls++
	if m.GetDailyBarsFunc != nil {
		return m.GetDailyBarsFunc(ctx, symbol, days)
	}
	return nil, errors.New("GetDailyBarsFunc is not implemented")
}

func (m *mockMarketRepository) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	m.GetQuoteCalls++
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, symbol)
	}
	return entity.Quote{}, errors.New("GetQuoteFunc is not implemented")
}

// mockStockRepository is a mock implementation of the StockRepository interface.
type mockStockRepository struct {
	FindByTickerFunc func(ctx context.Context, ticker string) (*entity.Stock, error)
	CreateFunc       func(ctx context.Context, stock *entity.Stock) error
	CreateCalls      int
}

func (m *mockStockRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error) {
	if m.FindByTickerFunc != nil {
		return m.FindByTickerFunc(ctx, ticker)
	}
	return nil, errors.New("FindByTickerFunc is not implemented")
}

func (m *mockStockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, stock)
	}
	return nil
}

// mockPriceRepository is a mock implementation of the PriceRepository interface.
type mockPriceRepository struct {
	UpsertBatchFunc  func(ctx context.Context, prices []entity.PricePoint) error
	UpsertBatchCalls int
}

func (m *mockPriceRepository) UpsertBatch(ctx context.Context, prices []entity.PricePoint) error {
	m.UpsertBatchCalls++
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, prices)
	}
	return nil
}

// mockQuoteRepository is a mock implementation of the QuoteRepository interface.
type mockQuoteRepository struct {
	UpsertFunc  func(ctx context.Context, snapshot entity.QuoteSnapshot) error
	UpsertCalls int
}

func (m *mockQuoteRepository) Upsert(ctx context.Context, snapshot entity.QuoteSnapshot) error {
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, snapshot)
	}
	return nil
}

// mockPacer is a mock implementation of the pacer.Delayer interface.
type mockPacer struct {
	WaitCalls int
}

func (m *mockPacer) Wait() {
	m.WaitCalls++
	// For testing purposes, return immediately without waiting
}

func newTestCollector(market *mockMarketRepository, stocks *mockStockRepository,
	prices *mockPriceRepository, quotes *mockQuoteRepository) (*CollectorUsecase, *mockPacer) {
	p := &mockPacer{}
	return NewCollectorUsecase(market, stocks, prices, quotes, p, p, p), p
}

func TestCollectorUsecase_CollectInfo(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name             string
		symbols          []string
		mockFindByTicker func(ctx context.Context, ticker string) (*entity.Stock, error)
		mockGetQuote     func(ctx context.Context, symbol string) (entity.Quote, error)
		expectedCreates  int
		verifyStock      func(t *testing.T, stock *entity.Stock)
	}{
		{
			name:    "success: unknown symbol creates stock record",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return nil, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				return entity.Quote{Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics", MarketCap: 3000}, nil
			},
			expectedCreates: 1,
			verifyStock: func(t *testing.T, stock *entity.Stock) {
				if stock.Ticker != "AAPL" {
					t.Errorf("Ticker mismatch: got %s, want AAPL", stock.Ticker)
				}
				if stock.Name != "Apple Inc." {
					t.Errorf("Name mismatch: got %s, want Apple Inc.", stock.Name)
				}
				if stock.Market != entity.MarketUS {
					t.Errorf("Market mismatch: got %s, want US", stock.Market)
				}
			},
		},
		{
			name:    "skip: existing symbol is not recreated",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 1, Ticker: "AAPL"}, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				t.Error("GetQuote must not be called for an existing stock")
				return entity.Quote{}, nil
			},
			expectedCreates: 0,
		},
		{
			name:    "skip: quote without a name does not create a record",
			symbols: []string{"ZZZZ"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return nil, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				return entity.Quote{}, nil
			},
			expectedCreates: 0,
		},
		{
			name:    "error: one failing symbol does not stop the rest",
			symbols: []string{"BAD", "AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return nil, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				if symbol == "BAD" {
					return entity.Quote{}, ErrMarketAPI
				}
				return entity.Quote{Name: "Apple Inc."}, nil
			},
			expectedCreates: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarketRepository{GetQuoteFunc: tc.mockGetQuote}
			stocks := &mockStockRepository{
				FindByTickerFunc: tc.mockFindByTicker,
				CreateFunc: func(ctx context.Context, stock *entity.Stock) error {
					if tc.verifyStock != nil {
						tc.verifyStock(t, stock)
					}
					return nil
				},
			}

			uc, p := newTestCollector(market, stocks, &mockPriceRepository{}, &mockQuoteRepository{})
			uc.CollectInfo(ctx, tc.symbols, entity.MarketUS)

			if stocks.CreateCalls != tc.expectedCreates {
				t.Errorf("Create calls mismatch: got %d, want %d", stocks.CreateCalls, tc.expectedCreates)
			}
			if p.WaitCalls != len(tc.symbols) {
				t.Errorf("pacer Wait calls mismatch: got %d, want %d", p.WaitCalls, len(tc.symbols))
			}
		})
	}
}

func TestCollectorUsecase_CollectPrices(t *testing.T) {
	ctx := context.Background()
	testTime := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	mockBars := []entity.PricePoint{
		{Date: testTime, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000},
		{Date: testTime.AddDate(0, 0, -1), Open: 95, High: 105, Low: 85, Close: 100, Volume: 900},
	}

	testCases := []struct {
		name             string
		symbols          []string
		mockFindByTicker func(ctx context.Context, ticker string) (*entity.Stock, error)
		mockGetDailyBars func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error)
		expectedUpserts  int
		verifyBars       func(t *testing.T, bars []entity.PricePoint)
	}{
		{
			name:    "success: bars gain the stock id and are upserted",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 7, Ticker: "AAPL"}, nil
			},
			mockGetDailyBars: func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
				if days != HistoryWindowDays {
					t.Errorf("days mismatch: got %d, want %d", days, HistoryWindowDays)
				}
				return append([]entity.PricePoint(nil), mockBars...), nil
			},
			expectedUpserts: 1,
			verifyBars: func(t *testing.T, bars []entity.PricePoint) {
				if len(bars) != 2 {
					t.Errorf("bars count mismatch: got %d, want 2", len(bars))
				}
				for _, b := range bars {
					if b.StockID != 7 {
						t.Errorf("bar StockID not set: got %d, want 7", b.StockID)
					}
				}
			},
		},
		{
			name:    "skip: unregistered symbol is not fetched",
			symbols: []string{"ZZZZ"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return nil, nil
			},
			mockGetDailyBars: func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
				t.Error("GetDailyBars must not be called for an unregistered stock")
				return nil, nil
			},
			expectedUpserts: 0,
		},
		{
			name:    "skip: empty bars are a warning, not an upsert",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 7, Ticker: "AAPL"}, nil
			},
			mockGetDailyBars: func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
				return nil, nil
			},
			expectedUpserts: 0,
		},
		{
			name:    "error: one failing symbol does not stop the rest",
			symbols: []string{"BAD", "AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 7, Ticker: ticker}, nil
			},
			mockGetDailyBars: func(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
				if symbol == "BAD" {
					return nil, ErrMarketAPI
				}
				return append([]entity.PricePoint(nil), mockBars...), nil
			},
			expectedUpserts: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarketRepository{GetDailyBarsFunc: tc.mockGetDailyBars}
			stocks := &mockStockRepository{FindByTickerFunc: tc.mockFindByTicker}
			prices := &mockPriceRepository{
				UpsertBatchFunc: func(ctx context.Context, bars []entity.PricePoint) error {
					if tc.verifyBars != nil {
						tc.verifyBars(t, bars)
					}
					return nil
				},
			}

			uc, p := newTestCollector(market, stocks, prices, &mockQuoteRepository{})
			uc.CollectPrices(ctx, tc.symbols, entity.MarketUS)

			if prices.UpsertBatchCalls != tc.expectedUpserts {
				t.Errorf("UpsertBatch calls mismatch: got %d, want %d", prices.UpsertBatchCalls, tc.expectedUpserts)
			}
			if p.WaitCalls != len(tc.symbols) {
				t.Errorf("pacer Wait calls mismatch: got %d, want %d", p.WaitCalls, len(tc.symbols))
			}
		})
	}
}

func TestCollectorUsecase_CollectRealtime(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name             string
		symbols          []string
		mockFindByTicker func(ctx context.Context, ticker string) (*entity.Stock, error)
		mockGetQuote     func(ctx context.Context, symbol string) (entity.Quote, error)
		expectedUpserts  int
		verifySnapshot   func(t *testing.T, s entity.QuoteSnapshot)
	}{
		{
			name:    "success: quote is stored as a snapshot",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 1, Ticker: "AAPL"}, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				return entity.Quote{CurrentPrice: 230.5, PreviousClose: 228.1, Volume: 5000}, nil
			},
			expectedUpserts: 1,
			verifySnapshot: func(t *testing.T, s entity.QuoteSnapshot) {
				if s.Symbol != "AAPL" {
					t.Errorf("Symbol mismatch: got %s, want AAPL", s.Symbol)
				}
				if s.Market != entity.MarketUS {
					t.Errorf("Market mismatch: got %s, want US", s.Market)
				}
				if s.CurrentPrice != 230.5 {
					t.Errorf("CurrentPrice mismatch: got %v, want 230.5", s.CurrentPrice)
				}
				if s.UpdatedAt.IsZero() {
					t.Error("UpdatedAt must be set")
				}
			},
		},
		{
			name:    "skip: zero current price is treated as unavailable",
			symbols: []string{"AAPL"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return &entity.Stock{ID: 1, Ticker: "AAPL"}, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				return entity.Quote{}, nil
			},
			expectedUpserts: 0,
		},
		{
			name:    "skip: unregistered symbol is not fetched",
			symbols: []string{"ZZZZ"},
			mockFindByTicker: func(ctx context.Context, ticker string) (*entity.Stock, error) {
				return nil, nil
			},
			mockGetQuote: func(ctx context.Context, symbol string) (entity.Quote, error) {
				t.Error("GetQuote must not be called for an unregistered stock")
				return entity.Quote{}, nil
			},
			expectedUpserts: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarketRepository{GetQuoteFunc: tc.mockGetQuote}
			stocks := &mockStockRepository{FindByTickerFunc: tc.mockFindByTicker}
			quotes := &mockQuoteRepository{
				UpsertFunc: func(ctx context.Context, s entity.QuoteSnapshot) error {
					if tc.verifySnapshot != nil {
						tc.verifySnapshot(t, s)
					}
					return nil
				},
			}

			uc, p := newTestCollector(market, stocks, &mockPriceRepository{}, quotes)
			uc.CollectRealtime(ctx, tc.symbols, entity.MarketUS)

			if quotes.UpsertCalls != tc.expectedUpserts {
				t.Errorf("Upsert calls mismatch: got %d, want %d", quotes.UpsertCalls, tc.expectedUpserts)
			}
			if p.WaitCalls != len(tc.symbols) {
				t.Errorf("pacer Wait calls mismatch: got %d, want %d", p.WaitCalls, len(tc.symbols))
			}
		})
	}
}
