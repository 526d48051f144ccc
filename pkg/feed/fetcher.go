package feed

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdeck/pkg/domain"
)

// Fetcher combines the JSON endpoints and RSS publishers, either part is optional
type Fetcher struct {
	client *Client
	rss    *RSSFetcher
}

// NewFetcher makes a combined fetcher
func NewFetcher(client *Client, rss *RSSFetcher) *Fetcher {
	return &Fetcher{client: client, rss: rss}
}

// FetchSources returns endpoint publishers followed by RSS publishers not already listed
func (f *Fetcher) FetchSources(ctx context.Context) ([]domain.Source, error) {
	var res []domain.Source
	if f.client != nil {
		sources, err := f.client.FetchSources(ctx)
		if err != nil {
			return nil, err
		}
		res = sources
	}
	if f.rss == nil {
		return res, nil
	}

	seen := make(map[string]struct{}, len(res))
	for _, s := range res {
		seen[s.ID] = struct{}{}
	}
	for _, s := range f.rss.Sources() {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

// FetchContent fetches endpoint content and RSS content concurrently
func (f *Fetcher) FetchContent(ctx context.Context) ([]domain.ContentItem, error) {
	var fromClient, fromRSS []domain.ContentItem

	g, ctx := errgroup.WithContext(ctx)
	if f.client != nil {
		g.Go(func() (err error) {
			fromClient, err = f.client.FetchContent(ctx)
			return err
		})
	}
	if f.rss != nil {
		g.Go(func() (err error) {
			fromRSS, err = f.rss.FetchContent(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]domain.ContentItem, 0, len(fromClient)+len(fromRSS))
	res = append(res, fromClient...)
	return append(res, fromRSS...), nil
}
