package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of content item
type Kind string

// enum of content kinds
const (
	KindArticle Kind = "article"
	KindOffer   Kind = "offer"
	KindProduct Kind = "product"
)

// ParseKind converts a string into a known Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindArticle, KindOffer, KindProduct:
		return k, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// ContentItem represents a single fetched piece of content
type ContentItem struct {
	ID          string    `json:"id"`
	PublisherID string    `json:"publisher_id"`
	Kind        Kind      `json:"kind"`
	Published   time.Time `json:"published"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// HasImage reports whether the item can be shown as a headline
func (c ContentItem) HasImage() bool {
	return c.ImageURL != ""
}

// ScoredItem is a content item with its resolved source and ranking score.
// Lower score means more relevant.
type ScoredItem struct {
	Content ContentItem `json:"content"`
	Source  Source      `json:"source"`
	Score   float64     `json:"score"`
}

// WithSource returns a copy of the item carrying the given source
func (s ScoredItem) WithSource(src Source) ScoredItem {
	s.Source = src
	return s
}
