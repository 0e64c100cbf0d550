package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"stock_collector/internal/feature/news/domain/entity"
	"stock_collector/internal/feature/news/usecase"
)

// QueryConfig はAPIキー付きRESTクエリソースの設定です。
type QueryConfig struct {
	APIKey  string // 認証用APIキー。空の場合、フェッチャーは警告を出してスキップする
	BaseURL string // APIのベースURL（例: "https://newsapi.org"）
}

// LoadQueryConfig は環境変数からクエリソースの設定を読み込みます。
func LoadQueryConfig() QueryConfig {
	base := os.Getenv("NEWS_API_BASE_URL")
	if base == "" {
		base = "https://newsapi.org"
	}
	return QueryConfig{
		APIKey:  os.Getenv("NEWS_API_KEY"),
		BaseURL: base,
	}
}

// queryFetcher は追跡中の銘柄群にマッチする記事をニュースAPIに問い合わせます。
type queryFetcher struct {
	src     entity.Source
	cfg     QueryConfig
	symbols []string
	client  *http.Client
}

var _ usecase.SourceFetcher = (*queryFetcher)(nil)

// NewQueryFetcher は指定された銘柄群を検索語とするクエリフェッチャーを生成します。
func NewQueryFetcher(src entity.Source, cfg QueryConfig, symbols []string, client *http.Client) *queryFetcher {
	return &queryFetcher{src: src, cfg: cfg, symbols: symbols, client: client}
}

func (q *queryFetcher) Source() entity.Source {
	return q.src
}

// queryResponse はNewsAPI互換のレスポンスです。
type queryResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch は銘柄群をORで連結したクエリを発行します。
// APIキーが未設定の場合は警告のみ出して空を返します（失敗にはしません）。
func (q *queryFetcher) Fetch(ctx context.Context) ([]entity.Item, error) {
	if q.cfg.APIKey == "" {
		slog.Warn("news API key not configured, skipping query source", "source", q.src.Name)
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", strings.Join(q.symbols, " OR "))
	params.Set("apiKey", q.cfg.APIKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "20")

	u := fmt.Sprintf("%s/v2/everything?%s", q.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := q.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "source", q.src.Name, "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("query %s: http %d", q.src.Name, res.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("query %s: decode: %w", q.src.Name, err)
	}

	items := make([]entity.Item, 0, len(body.Articles))
	for _, a := range body.Articles {
		published := time.Now().UTC()
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			published = t.UTC()
		}
		items = append(items, entity.Item{
			Title:       a.Title,
			Description: a.Description,
			Link:        a.URL,
			PublishedAt: published,
			SourceName:  q.src.Name,
		})
	}
	return items, nil
}
