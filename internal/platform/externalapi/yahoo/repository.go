package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/usecase"
	"stock_collector/internal/platform/externalapi/yahoo/dto"
	platformhttp "stock_collector/internal/platform/http"
)

// YahooMarket はYahoo Finance APIから株価データを取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// get はGETリクエストを実行し、2xx以外をエラーとしてボディをoutにデコードします。
func (y *YahooMarket) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	// Yahooはブラウザ以外のクライアントを拒否することがある
	req.Header.Set("User-Agent", platformhttp.BrowserUserAgent)

	res, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// GetDailyBars は直近days日分の日足バーを取得します。
// 市場休業日はYahoo側で欠損値（null）となるため、不完全な行は読み飛ばします。
func (y *YahooMarket) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("range", fmt.Sprintf("%dd", days))
	q.Set("interval", "1d")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := y.get(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}

	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]entity.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		bar := entity.PricePoint{
			Date:          time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:          *quote.Open[i],
			High:          *quote.High[i],
			Low:           *quote.Low[i],
			Close:         *quote.Close[i],
			AdjustedClose: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		if i < len(adj) && adj[i] != nil {
			bar.AdjustedClose = *adj[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// GetQuote は1銘柄のリアルタイムクオートと記述情報を取得します。
// 該当銘柄がない場合はゼロ値のQuoteを返します（エラーにはしません）。
func (y *YahooMarket) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbols", symbol)

	u := fmt.Sprintf("%s/v7/finance/quote?%s", y.cfg.BaseURL, q.Encode())

	var body dto.QuoteResponse
	if err := y.get(ctx, u, &body); err != nil {
		return entity.Quote{}, err
	}
	if body.QuoteResponse.Error != nil {
		return entity.Quote{}, fmt.Errorf("yahoo quote: %s", body.QuoteResponse.Error.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return entity.Quote{}, nil
	}

	r := body.QuoteResponse.Result[0]
	out := entity.Quote{
		Name:     r.LongName,
		Sector:   r.Sector,
		Industry: r.Industry,
	}
	if out.Name == "" {
		out.Name = r.ShortName
	}
	if r.RegularMarketPrice != nil {
		out.CurrentPrice = *r.RegularMarketPrice
	}
	if r.RegularMarketPreviousClose != nil {
		out.PreviousClose = *r.RegularMarketPreviousClose
	}
	if r.RegularMarketDayHigh != nil {
		out.DayHigh = *r.RegularMarketDayHigh
	}
	if r.RegularMarketDayLow != nil {
		out.DayLow = *r.RegularMarketDayLow
	}
	if r.RegularMarketVolume != nil {
		out.Volume = *r.RegularMarketVolume
	}
	if r.MarketCap != nil {
		out.MarketCap = *r.MarketCap
	}
	if r.TrailingPE != nil {
		out.PERatio = *r.TrailingPE
	}
	return out, nil
}
