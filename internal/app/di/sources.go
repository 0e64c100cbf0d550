package di

import (
	"net/http"
	"strings"
	"time"

	"stock_collector/internal/feature/news/adapters/sources"
	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/usecase"
	infrahttp "stock_collector/internal/platform/http"
)

// ニュースソースへのリクエストタイムアウト
const newsSourceTimeout = 10 * time.Second

const (
	yahooFeedURL       = "https://feeds.finance.yahoo.com/rss/2.0/headline"
	marketWatchFeedURL = "https://feeds.marketwatch.com/marketwatch/marketpulse/"
	reutersFeedURL     = "https://feeds.reuters.com/reuters/businessNews"
	naverNewsURL       = "https://finance.naver.com/news/news_list.naver"
	daumNewsURL        = "https://finance.daum.net/news"
)

func newsHTTPClient() *http.Client {
	return infrahttp.NewHTTPClient(newsSourceTimeout)
}

// yahooHeadlineURL はYahooのヘッドラインフィードURLを組み立てます。
// フィードは銘柄パラメーターを受け取るため、先頭5銘柄に絞って問い合わせます。
func yahooHeadlineURL(symbols []string) string {
	if len(symbols) > 5 {
		symbols = symbols[:5]
	}
	return yahooFeedURL + "?s=" + strings.Join(symbols, ",")
}

// NewUSSourceFetchers は米国市場のニュースソースフェッチャー群を生成します。
// NEWS_API_KEY が未設定の場合、NewsAPIフェッチャーは警告を出して空の結果を返します。
func NewUSSourceFetchers(symbols []string) []usecase.SourceFetcher {
	client := newsHTTPClient()
	return []usecase.SourceFetcher{
		sources.NewFeedFetcher(entity.Source{
			Name: "Yahoo Finance",
			URL:  yahooHeadlineURL(symbols),
			Kind: entity.KindFeed,
		}, client),
		sources.NewFeedFetcher(entity.Source{
			Name: "MarketWatch",
			URL:  marketWatchFeedURL,
			Kind: entity.KindFeed,
		}, client),
		sources.NewFeedFetcher(entity.Source{
			Name: "Reuters Business",
			URL:  reutersFeedURL,
			Kind: entity.KindFeed,
		}, client),
		sources.NewQueryFetcher(entity.Source{
			Name: "NewsAPI",
			Kind: entity.KindQuery,
		}, sources.LoadQueryConfig(), symbols, client),
	}
}

// NewKRSourceFetchers は韓国市場のニュースソースフェッチャー群を生成します。
func NewKRSourceFetchers() []usecase.SourceFetcher {
	client := newsHTTPClient()
	return []usecase.SourceFetcher{
		sources.NewScrapeFetcher(entity.Source{
			Name: "Naver Finance",
			URL:  naverNewsURL,
			Kind: entity.KindScrape,
		}, client),
		sources.NewScrapeFetcher(entity.Source{
			Name: "Daum Finance",
			URL:  daumNewsURL,
			Kind: entity.KindScrape,
		}, client),
	}
}

// NewTrendingFetchers は銘柄に紐付かないトレンドニュースのフェッチャー群を生成します。
func NewTrendingFetchers() []usecase.SourceFetcher {
	client := newsHTTPClient()
	feeds := []entity.Source{
		{Name: "Yahoo Finance", URL: yahooFeedURL, Kind: entity.KindFeed},
		{Name: "Reuters Business", URL: reutersFeedURL, Kind: entity.KindFeed},
		{Name: "MarketWatch", URL: marketWatchFeedURL, Kind: entity.KindFeed},
	}
	out := make([]usecase.SourceFetcher, 0, len(feeds))
	for _, src := range feeds {
		out = append(out, sources.NewFeedFetcher(src, client))
	}
	return out
}
