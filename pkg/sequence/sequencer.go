package sequence

import (
	"github.com/umputun/newsdeck/pkg/domain"
)

const (
	maxGroupSize = 3
	dealsTitle   = "Deals"
)

// Sequencer turns a sorted list of scored items into cards following a grammar
type Sequencer struct {
	grammar []Element
}

// New makes a sequencer for the given grammar, DefaultGrammar if none given
func New(grammar ...Element) *Sequencer {
	if len(grammar) == 0 {
		grammar = DefaultGrammar()
	}
	return &Sequencer{grammar: grammar}
}

// Generate builds the cards for items sorted ascending by score.
// Items of disabled sources are skipped, every item ends up in at most one card.
func (s *Sequencer) Generate(items []domain.ScoredItem) []domain.Card {
	p := newPools(items)
	return p.evaluate(s.grammar)
}

// pools are the working sets of not yet placed items, each kept in priority order
type pools struct {
	sponsors []domain.ScoredItem
	deals    []domain.ScoredItem
	articles []domain.ScoredItem
}

func newPools(items []domain.ScoredItem) *pools {
	p := &pools{}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if !it.Source.Enabled {
			continue
		}
		if _, dup := seen[it.Content.ID]; dup {
			continue
		}
		seen[it.Content.ID] = struct{}{}

		switch it.Content.Kind {
		case domain.KindOffer:
			p.sponsors = append(p.sponsors, it)
		case domain.KindProduct:
			p.deals = append(p.deals, it)
		case domain.KindArticle:
			p.articles = append(p.articles, it)
		}
	}
	return p
}

func (p *pools) evaluate(elements []Element) []domain.Card {
	var res []domain.Card
	for _, e := range elements {
		res = append(res, p.apply(e)...)
	}
	return res
}

func (p *pools) apply(e Element) []domain.Card {
	switch e.Kind {
	case ElemSponsor:
		if len(p.sponsors) == 0 {
			return nil
		}
		item := p.sponsors[0]
		p.sponsors = p.sponsors[1:]
		return []domain.Card{domain.SponsorCard(item)}

	case ElemHeadline:
		return p.headline(e.Paired)

	case ElemDeals:
		if len(p.deals) == 0 {
			return nil
		}
		n := min(maxGroupSize, len(p.deals))
		items := append([]domain.ScoredItem(nil), p.deals[:n]...)
		p.deals = p.deals[n:]
		title := items[0].Content.Category
		if title == "" {
			title = dealsTitle
		}
		return []domain.Card{domain.DealsCard(items, title)}

	case ElemCategoryGroup:
		if len(p.articles) == 0 {
			return nil
		}
		category := p.articles[0].Content.Category
		items := p.takeArticles(maxGroupSize, func(it domain.ScoredItem) bool { return it.Content.Category == category })
		return []domain.Card{domain.GroupCard(items, category, domain.AxisVertical, false)}

	case ElemBrandedGroup:
		if len(p.articles) == 0 {
			return nil
		}
		src := p.articles[0].Source
		items := p.takeArticles(maxGroupSize, func(it domain.ScoredItem) bool { return it.Source.ID == src.ID })
		if e.Numbered {
			return []domain.Card{domain.NumberedCard(items, src.Name)}
		}
		return []domain.Card{domain.GroupCard(items, "", domain.AxisVertical, true)}

	case ElemGroup:
		if len(p.articles) == 0 {
			return nil
		}
		items := p.takeArticles(maxGroupSize, func(domain.ScoredItem) bool { return true })
		return []domain.Card{domain.GroupCard(items, "", domain.AxisVertical, false)}

	case ElemRepeat:
		return p.repeat(e)
	}
	return nil
}

// headline takes the first image-bearing article, or the first two for a pair.
// The pools are left untouched if there are not enough of them.
func (p *pools) headline(paired bool) []domain.Card {
	first := indexWithImage(p.articles, 0)
	if first < 0 {
		return nil
	}
	if !paired {
		item := p.articles[first]
		p.removeArticles(first)
		return []domain.Card{domain.HeadlineCard(item)}
	}

	second := indexWithImage(p.articles, first+1)
	if second < 0 {
		return nil
	}
	a, b := p.articles[first], p.articles[second]
	p.removeArticles(first, second)
	return []domain.Card{domain.HeadlinePairCard(a, b)}
}

// repeat evaluates the body while articles remain and the previous pass produced cards
func (p *pools) repeat(e Element) []domain.Card {
	var res []domain.Card
	for pass := 0; e.Times <= 0 || pass < e.Times; pass++ {
		if len(p.articles) == 0 {
			break
		}
		cards := p.evaluate(e.Elements)
		if len(cards) == 0 {
			break
		}
		res = append(res, cards...)
	}
	return res
}

// takeArticles removes and returns up to limit articles matching fn, in pool order
func (p *pools) takeArticles(limit int, fn func(domain.ScoredItem) bool) []domain.ScoredItem {
	taken := make([]domain.ScoredItem, 0, limit)
	rest := make([]domain.ScoredItem, 0, len(p.articles))
	for _, it := range p.articles {
		if len(taken) < limit && fn(it) {
			taken = append(taken, it)
			continue
		}
		rest = append(rest, it)
	}
	p.articles = rest
	return taken
}

// removeArticles drops articles at the given ascending indexes
func (p *pools) removeArticles(idx ...int) {
	rest := make([]domain.ScoredItem, 0, len(p.articles))
	next := 0
	for i, it := range p.articles {
		if next < len(idx) && idx[next] == i {
			next++
			continue
		}
		rest = append(rest, it)
	}
	p.articles = rest
}

func indexWithImage(items []domain.ScoredItem, from int) int {
	for i := from; i < len(items); i++ {
		if items[i].Content.HasImage() {
			return i
		}
	}
	return -1
}
