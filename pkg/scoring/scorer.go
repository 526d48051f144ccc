// Package scoring ranks content items by freshness and by the user's recent browsing domains.
package scoring

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/umputun/newsdeck/pkg/domain"
)

// DefaultRecencyPenalty is subtracted from the score of items whose domain was visited recently
const DefaultRecencyPenalty = 5.0

// Scorer computes ranking scores. Lower score is more relevant.
type Scorer struct {
	RecencyPenalty float64
	Now            func() time.Time
}

// New makes a scorer with default penalty and wall clock
func New() *Scorer {
	return &Scorer{RecencyPenalty: DefaultRecencyPenalty, Now: time.Now}
}

// Score resolves a source for every item and computes its score.
// Items without a matching source are dropped. The result keeps input order.
func (s *Scorer) Score(items []domain.ContentItem, sources []domain.Source, recentDomains []string) []domain.ScoredItem {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	byID := make(map[string]domain.Source, len(sources))
	for _, src := range sources {
		byID[src.ID] = src
	}

	recent := make(map[string]struct{}, len(recentDomains))
	for _, d := range recentDomains {
		if rd := domain.RegistrableDomain(d); rd != "" {
			recent[rd] = struct{}{}
		}
	}

	res := make([]domain.ScoredItem, 0, len(items))
	for _, item := range items {
		src, ok := byID[item.PublisherID]
		if !ok {
			continue
		}
		score := Base(now.Sub(item.Published))
		if _, ok := recent[domain.RegistrableDomain(item.URL)]; ok && item.URL != "" {
			score -= s.RecencyPenalty
		}
		res = append(res, domain.ScoredItem{Content: item, Source: src, Score: score})
	}
	return res
}

// Base is the freshness part of the score, ln of elapsed seconds, 0 for non-positive elapsed time
func Base(elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return math.Log(secs)
}

// SortByScore orders items ascending by score, keeping input order for equal scores
func SortByScore(items []domain.ScoredItem) {
	slices.SortStableFunc(items, func(a, b domain.ScoredItem) int {
		return cmp.Compare(a.Score, b.Score)
	})
}
