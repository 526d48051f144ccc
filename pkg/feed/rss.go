package feed

import (
	"context"
	"crypto/sha1" //nolint:gosec // used for stable ids, not security
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/newsdeck/pkg/domain"
)

// Publisher is an RSS/Atom feed treated as a content source
type Publisher struct {
	ID       string `yaml:"id" json:"id" jsonschema:"required,description=Publisher identifier"`
	Name     string `yaml:"name" json:"name" jsonschema:"description=Display name, defaults to the id"`
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Category string `yaml:"category" json:"category" jsonschema:"description=Default category for entries without one"`
}

// RSSOptions are parameters of RSSFetcher
type RSSOptions struct {
	Timeout       time.Duration
	UserAgent     string
	MaxConcurrent int
	RateLimit     time.Duration // minimal interval between two requests, 0 for no limit
}

// RSSFetcher reads articles from RSS/Atom publishers
type RSSFetcher struct {
	client        *http.Client
	publishers    []Publisher
	userAgent     string
	maxConcurrent int
	limiter       *rate.Limiter
	policy        *bluemonday.Policy
}

// NewRSSFetcher makes a fetcher for the given publishers
func NewRSSFetcher(publishers []Publisher, opts RSSOptions) *RSSFetcher {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Every(opts.RateLimit)
	}

	return &RSSFetcher{
		client:        &http.Client{Timeout: opts.Timeout},
		publishers:    publishers,
		userAgent:     opts.UserAgent,
		maxConcurrent: opts.MaxConcurrent,
		limiter:       rate.NewLimiter(limit, 1),
		policy:        bluemonday.StrictPolicy(),
	}
}

// Sources returns one enabled source per configured publisher
func (f *RSSFetcher) Sources() []domain.Source {
	res := make([]domain.Source, 0, len(f.publishers))
	for _, p := range f.publishers {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		res = append(res, domain.Source{ID: p.ID, Name: name, Enabled: true, Category: p.Category, FeedURL: p.URL})
	}
	return res
}

// FetchContent fetches all publishers and returns their entries as articles, in publisher order.
// A failing publisher is logged and skipped, only context cancellation is returned as error.
func (f *RSSFetcher) FetchContent(ctx context.Context) ([]domain.ContentItem, error) {
	results := make([][]domain.ContentItem, len(f.publishers))

	var g errgroup.Group
	g.SetLimit(f.maxConcurrent)
	for i, p := range f.publishers {
		g.Go(func() error {
			if err := f.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("wait for rate limiter: %w", err)
			}
			items, err := f.fetchPublisher(ctx, p)
			if err != nil {
				lgr.Printf("[WARN] failed to fetch publisher %s: %v", p.ID, err)
				return nil
			}
			lgr.Printf("[DEBUG] fetched %d items from %s", len(items), p.ID)
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &FetchError{Batch: "content", URL: "rss", Err: err}
	}

	var res []domain.ContentItem
	for _, items := range results {
		res = append(res, items...)
	}
	return res, nil
}

// fetchPublisher retrieves and converts a single feed
func (f *RSSFetcher) fetchPublisher(ctx context.Context, p Publisher) ([]domain.ContentItem, error) {
	body, err := f.fetch(ctx, p.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.ContentItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item, ok := f.convert(p, entry)
		if !ok {
			continue
		}
		res = append(res, item)
	}
	return res, nil
}

// convert maps a feed entry to an article, entries without link or date are dropped
func (f *RSSFetcher) convert(p Publisher, entry *gofeed.Item) (domain.ContentItem, bool) {
	if entry == nil || entry.Link == "" {
		return domain.ContentItem{}, false
	}

	var published time.Time
	switch {
	case entry.PublishedParsed != nil:
		published = *entry.PublishedParsed
	case entry.UpdatedParsed != nil:
		published = *entry.UpdatedParsed
	default:
		return domain.ContentItem{}, false
	}

	guid := entry.GUID
	if guid == "" {
		guid = entry.Link
	}

	category := p.Category
	if len(entry.Categories) > 0 && strings.TrimSpace(entry.Categories[0]) != "" {
		category = strings.TrimSpace(entry.Categories[0])
	}

	return domain.ContentItem{
		ID:          p.ID + ":" + shortHash(guid),
		PublisherID: p.ID,
		Kind:        domain.KindArticle,
		Published:   published.UTC(),
		Title:       f.plain(entry.Title),
		Description: f.plain(entry.Description),
		ImageURL:    entryImage(entry),
		Category:    category,
		URL:         entry.Link,
	}, true
}

// plain strips html from s and decodes entities
func (f *RSSFetcher) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(f.policy.Sanitize(s)))
}

// fetch retrieves content from a URL
func (f *RSSFetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, f.userAgent, acceptFeed)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func entryImage(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func shortHash(s string) string {
	h := sha1.Sum([]byte(s)) //nolint:gosec // not for security
	return hex.EncodeToString(h[:8])
}
