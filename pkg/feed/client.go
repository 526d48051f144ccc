package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdeck/pkg/domain"
)

const maxBodySize = 32 * 1024 * 1024

// publishTimeLayouts are accepted formats of publish_time, tried in order
var publishTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC1123Z}

// Client fetches publishers and content from JSON endpoints
type Client struct {
	client     *http.Client
	sourcesURL string
	contentURL string
	userAgent  string
}

// sourceRecord is the wire format of a publisher
type sourceRecord struct {
	ID       string `json:"publisher_id"`
	Name     string `json:"publisher_name"`
	Category string `json:"category"`
	SiteURL  string `json:"site_url"`
	FeedURL  string `json:"feed_url"`
	Enabled  *bool  `json:"enabled"`
}

// contentRecord is the wire format of a content item
type contentRecord struct {
	ID          string `json:"id"`
	PublisherID string `json:"publisher_id"`
	ContentType string `json:"content_type"`
	PublishTime string `json:"publish_time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"img"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// NewClient makes a client for the given endpoints
func NewClient(sourcesURL, contentURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sourcesURL: sourcesURL,
		contentURL: contentURL,
		userAgent:  userAgent,
	}
}

// FetchSources retrieves the publishers list. Malformed records are skipped.
func (c *Client) FetchSources(ctx context.Context) ([]domain.Source, error) {
	records, err := c.getRecords(ctx, c.sourcesURL)
	if err != nil {
		return nil, &FetchError{Batch: "sources", URL: c.sourcesURL, Err: err}
	}

	res := make([]domain.Source, 0, len(records))
	for i, raw := range records {
		src, err := decodeSource(raw)
		if err != nil {
			lgr.Printf("[DEBUG] skip source record %d: %v", i, err)
			continue
		}
		res = append(res, src)
	}
	if skipped := len(records) - len(res); skipped > 0 {
		lgr.Printf("[WARN] skipped %d malformed source records of %d", skipped, len(records))
	}
	return res, nil
}

// FetchContent retrieves content items. Malformed records are skipped.
func (c *Client) FetchContent(ctx context.Context) ([]domain.ContentItem, error) {
	records, err := c.getRecords(ctx, c.contentURL)
	if err != nil {
		return nil, &FetchError{Batch: "content", URL: c.contentURL, Err: err}
	}

	res := make([]domain.ContentItem, 0, len(records))
	for i, raw := range records {
		item, err := decodeContent(raw)
		if err != nil {
			lgr.Printf("[DEBUG] skip content record %d: %v", i, err)
			continue
		}
		res = append(res, item)
	}
	if skipped := len(records) - len(res); skipped > 0 {
		lgr.Printf("[WARN] skipped %d malformed content records of %d", skipped, len(records))
	}
	return res, nil
}

// getRecords loads a JSON array and returns its elements undecoded
func (c *Client) getRecords(ctx context.Context, url string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, c.userAgent, acceptJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var records []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func decodeSource(raw json.RawMessage) (domain.Source, error) {
	var rec sourceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Source{}, fmt.Errorf("unmarshal: %w", err)
	}
	if rec.ID == "" {
		return domain.Source{}, errors.New("missing publisher_id")
	}

	src := domain.Source{
		ID:       rec.ID,
		Name:     strings.TrimSpace(rec.Name),
		Enabled:  true,
		Category: rec.Category,
		SiteURL:  rec.SiteURL,
		FeedURL:  rec.FeedURL,
	}
	if rec.Enabled != nil {
		src.Enabled = *rec.Enabled
	}
	if src.Name == "" {
		src.Name = src.ID
	}
	return src, nil
}

func decodeContent(raw json.RawMessage) (domain.ContentItem, error) {
	var rec contentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.ContentItem{}, fmt.Errorf("unmarshal: %w", err)
	}
	if rec.PublisherID == "" {
		return domain.ContentItem{}, errors.New("missing publisher_id")
	}

	id := rec.ID
	if id == "" {
		id = rec.URL
	}
	if id == "" {
		return domain.ContentItem{}, errors.New("missing id and url")
	}

	kind, err := domain.ParseKind(rec.ContentType)
	if err != nil {
		return domain.ContentItem{}, err
	}

	published, err := parsePublishTime(rec.PublishTime)
	if err != nil {
		return domain.ContentItem{}, err
	}

	return domain.ContentItem{
		ID:          id,
		PublisherID: rec.PublisherID,
		Kind:        kind,
		Published:   published,
		Title:       strings.TrimSpace(rec.Title),
		Description: strings.TrimSpace(rec.Description),
		ImageURL:    rec.Image,
		Category:    rec.Category,
		URL:         rec.URL,
	}, nil
}

func parsePublishTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing publish_time")
	}
	for _, layout := range publishTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad publish_time %q", s)
}
