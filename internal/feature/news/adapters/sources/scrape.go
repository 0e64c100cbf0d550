package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/usecase"
	platformhttp "stock_collector/internal/platform/http"
)

// extractor は1つのスクレイピング対象サイトの抽出ルールです。
// サイトごとにHTML構造が異なるため、汎用の抽出は行いません。
type extractor func(doc *goquery.Document, base *url.URL) []entity.Item

// extractors はソース名から抽出ルールへのレジストリです。
// スクレイピング対象のソースを追加するには、ここにエントリを1つ足します。
var extractors = map[string]extractor{
	"Naver Finance": extractNaverFinance,
	"Daum Finance":  extractDaumFinance,
}

// scrapeFetcher はHTMLページを取得し、ソース固有のセレクタでニュースを抽出します。
type scrapeFetcher struct {
	src    entity.Source
	client *http.Client
}

var _ usecase.SourceFetcher = (*scrapeFetcher)(nil)

// NewScrapeFetcher は指定されたスクレイピングソース用のフェッチャーを生成します。
func NewScrapeFetcher(src entity.Source, client *http.Client) *scrapeFetcher {
	return &scrapeFetcher{src: src, client: client}
}

func (s *scrapeFetcher) Source() entity.Source {
	return s.src
}

func (s *scrapeFetcher) Fetch(ctx context.Context) ([]entity.Item, error) {
	extract, ok := extractors[s.src.Name]
	if !ok {
		return nil, fmt.Errorf("scrape %s: no extractor registered", s.src.Name)
	}

	base, err := url.Parse(s.src.URL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: base url: %w", s.src.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.src.URL, nil)
	if err != nil {
		return nil, err
	}
	// スクレイピング対象はブラウザクライアントを期待する
	req.Header.Set("User-Agent", platformhttp.BrowserUserAgent)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "source", s.src.Name, "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("scrape %s: http %d", s.src.Name, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: parse html: %w", s.src.Name, err)
	}

	items := extract(doc, base)
	for i := range items {
		items[i].SourceName = s.src.Name
	}
	return items, nil
}

// resolveLink は相対リンクをソースのベースURLに対して解決します。
func resolveLink(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// extractNaverFinance はNaver Financeのニュース一覧から見出しとリンクを抽出します。
func extractNaverFinance(doc *goquery.Document, base *url.URL) []entity.Item {
	var items []entity.Item
	doc.Find(".newsList li").Each(func(_ int, sel *goquery.Selection) {
		a := sel.Find("a").First()
		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if title == "" || href == "" {
			return
		}
		link := resolveLink(base, href)
		if link == "" {
			return
		}
		items = append(items, entity.Item{
			Title:       title,
			Link:        link,
			PublishedAt: time.Now().UTC(),
		})
	})
	return items
}

// extractDaumFinance はDaum Financeのニュース一覧から見出しとリンクを抽出します。
func extractDaumFinance(doc *goquery.Document, base *url.URL) []entity.Item {
	var items []entity.Item
	doc.Find(".list_news li").Each(func(_ int, sel *goquery.Selection) {
		a := sel.Find("a.tit_news").First()
		if a.Length() == 0 {
			a = sel.Find("a").First()
		}
		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if title == "" || href == "" {
			return
		}
		link := resolveLink(base, href)
		if link == "" {
			return
		}
		items = append(items, entity.Item{
			Title:       title,
			Link:        link,
			PublishedAt: time.Now().UTC(),
		})
	})
	return items
}
