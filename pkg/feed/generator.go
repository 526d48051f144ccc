package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/newsdeck/pkg/domain"
)

// Generator exports the composed feed as RSS and the publishers as OPML
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of the items referenced by cards, in card order
func (g *Generator) GenerateRSS(cards []domain.Card, title string) (string, error) {
	if title == "" {
		title = "Newsdeck"
	}

	rssItems := make([]*RSSItem, 0, len(cards))
	for _, card := range cards {
		for _, item := range card.AllItems() {
			rssItems = append(rssItems, g.convertToRSSItem(card, item))
		}
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%s, %d cards", title, len(cards)),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a card item to an RSS item
func (g *Generator) convertToRSSItem(card domain.Card, item domain.ScoredItem) *RSSItem {
	title := item.Content.Title
	if title == "" {
		title = item.Content.URL
	}

	var categories []string
	if item.Content.Category != "" {
		categories = append(categories, item.Content.Category)
	}
	categories = append(categories, string(card.Kind))

	res := &RSSItem{
		Title:       title,
		Link:        item.Content.URL,
		GUID:        item.Content.ID,
		Description: item.Content.Description,
		Author:      item.Source.Name,
		PubDate:     item.Content.Published.Format(time.RFC1123Z),
		Categories:  categories,
	}
	if item.Content.ImageURL != "" {
		res.Enclosure = &RSSEnclosure{URL: item.Content.ImageURL, Type: imageType(item.Content.ImageURL)}
	}
	return res
}

// GenerateOPML creates an OPML file with enabled publishers that have a feed URL
func (g *Generator) GenerateOPML(sources []domain.Source) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(sources))
	for _, src := range sources {
		if !src.Enabled || src.FeedURL == "" {
			continue
		}
		outlines = append(outlines, outline{
			Text:    src.Name,
			Title:   src.Name,
			Type:    "rss",
			XMLUrl:  src.FeedURL,
			HTMLUrl: src.SiteURL,
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Newsdeck Publishers",
			DateCreated: g.now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}

// imageType guesses the mime type of an image by its extension
func imageType(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if t := mime.TypeByExtension(path.Ext(u)); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
