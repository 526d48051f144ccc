package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	gen := NewGenerator("https://deck.example.com/")
	gen.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	pubTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	src := domain.Source{ID: "p1", Name: "Daily", Enabled: true}
	item := func(id, title, img string) domain.ScoredItem {
		return domain.ScoredItem{Source: src, Content: domain.ContentItem{ID: id, PublisherID: "p1", Title: title,
			URL: "https://daily.com/" + id, ImageURL: img, Published: pubTime, Category: "news"}}
	}

	cards := []domain.Card{
		domain.HeadlineCard(item("a1", "First & best", "https://img.com/a1.png")),
		domain.GroupCard([]domain.ScoredItem{item("a2", "Second", ""), item("a3", "", "")}, "news", domain.AxisVertical, false),
	}

	rss, err := gen.GenerateRSS(cards, "")
	require.NoError(t, err)

	assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, rss, `<title>Newsdeck</title>`)
	assert.Contains(t, rss, `<link>https://deck.example.com/</link>`)
	assert.Contains(t, rss, `href="https://deck.example.com/rss"`)
	assert.Contains(t, rss, `<title>First &amp; best</title>`)
	assert.Contains(t, rss, `<enclosure url="https://img.com/a1.png" type="image/png" length="0"></enclosure>`)
	assert.Contains(t, rss, `<title>https://daily.com/a3</title>`, "url used as missing title")
	assert.Contains(t, rss, `<category>headline</category>`)
	assert.Contains(t, rss, `<author>Daily</author>`)
	assert.Contains(t, rss, `<pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>`)
	assert.Equal(t, 3, strings.Count(rss, "<item>"))

	// items follow card order
	assert.Less(t, strings.Index(rss, "<guid>a1</guid>"), strings.Index(rss, "<guid>a2</guid>"))
	assert.Less(t, strings.Index(rss, "<guid>a2</guid>"), strings.Index(rss, "<guid>a3</guid>"))

	t.Run("empty", func(t *testing.T) {
		rss, err := gen.GenerateRSS(nil, "Empty")
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>Empty</title>`)
		assert.NotContains(t, rss, "<item>")
	})
}

func TestGenerator_GenerateOPML(t *testing.T) {
	gen := NewGenerator("https://deck.example.com")
	sources := []domain.Source{
		{ID: "a", Name: "Alpha", Enabled: true, FeedURL: "https://a.com/rss", SiteURL: "https://a.com"},
		{ID: "b", Name: "Beta", Enabled: false, FeedURL: "https://b.com/rss"},
		{ID: "c", Name: "Gamma", Enabled: true, SiteURL: "https://gamma.com"},
		{ID: "d", Name: "Delta", Enabled: true, FeedURL: "https://d.com/feed.atom"},
	}

	opml, err := gen.GenerateOPML(sources)
	require.NoError(t, err)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Newsdeck Publishers</title>`)
	assert.Contains(t, opml, `text="Alpha"`)
	assert.Contains(t, opml, `xmlUrl="https://a.com/rss" htmlUrl="https://a.com"`)
	assert.Contains(t, opml, `<outline text="Delta" title="Delta" type="rss" xmlUrl="https://d.com/feed.atom"></outline>`,
		"no htmlUrl without a site")
	assert.NotContains(t, opml, "Beta")
	assert.NotContains(t, opml, "Gamma", "site without a feed is not exported")
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "image/png", imageType("https://x.com/a.png?w=100"))
	assert.Equal(t, "image/jpeg", imageType("https://x.com/a"))
	assert.Equal(t, "image/jpeg", imageType("https://x.com/a.html"))
}
