package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/usecase"
	platformhttp "stock_collector/internal/platform/http"
)

// feedFetcher はRSS/Atomフィードを取得してエントリごとに1アイテムを生成します。
type feedFetcher struct {
	src    entity.Source
	client *http.Client
	parser *gofeed.Parser
}

var _ usecase.SourceFetcher = (*feedFetcher)(nil)

// NewFeedFetcher は指定されたフィードソース用のフェッチャーを生成します。
func NewFeedFetcher(src entity.Source, client *http.Client) *feedFetcher {
	return &feedFetcher{src: src, client: client, parser: gofeed.NewParser()}
}

func (f *feedFetcher) Source() entity.Source {
	return f.src
}

// Fetch はフィードを取得・パースします。フィードレベルのパースエラーは
// このソースの失敗としてそのまま返します（致命的ではありません）。
func (f *feedFetcher) Fetch(ctx context.Context) ([]entity.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", platformhttp.BrowserUserAgent)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "source", f.src.Name, "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("feed %s: http %d", f.src.Name, res.StatusCode)
	}

	feed, err := f.parser.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("feed %s: parse: %w", f.src.Name, err)
	}

	items := make([]entity.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		published := time.Now().UTC()
		if it.PublishedParsed != nil {
			published = it.PublishedParsed.UTC()
		}
		items = append(items, entity.Item{
			Title:       it.Title,
			Description: it.Description,
			Link:        it.Link,
			PublishedAt: published,
			SourceName:  f.src.Name,
		})
	}
	return items, nil
}
