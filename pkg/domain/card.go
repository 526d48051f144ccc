package domain

// CardKind discriminates the variants of Card
type CardKind string

// enum of card kinds
const (
	CardSponsor      CardKind = "sponsor"
	CardDeals        CardKind = "deals"
	CardHeadline     CardKind = "headline"
	CardHeadlinePair CardKind = "headline_pair"
	CardGroup        CardKind = "group"
	CardNumbered     CardKind = "numbered"
)

// Axis is the layout direction of a group card
type Axis string

// enum of group axes
const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// Card is a single display unit of the feed. Kind selects which of the other
// fields are meaningful:
//   - sponsor, headline: exactly one item
//   - headline_pair: exactly two items, both with images
//   - deals, numbered: up to three items and a title
//   - group: up to three items, title, axis and brand display flag
type Card struct {
	Kind         CardKind     `json:"kind"`
	Items        []ScoredItem `json:"items"`
	Title        string       `json:"title,omitempty"`
	Axis         Axis         `json:"axis,omitempty"`
	DisplayBrand bool         `json:"display_brand,omitempty"`
}

// SponsorCard makes a card for one sponsored item
func SponsorCard(item ScoredItem) Card {
	return Card{Kind: CardSponsor, Items: []ScoredItem{item}}
}

// DealsCard makes a card for offer items
func DealsCard(items []ScoredItem, title string) Card {
	return Card{Kind: CardDeals, Items: items, Title: title}
}

// HeadlineCard makes a card for one prominently displayed item
func HeadlineCard(item ScoredItem) Card {
	return Card{Kind: CardHeadline, Items: []ScoredItem{item}}
}

// HeadlinePairCard makes a card showing two items side by side
func HeadlinePairCard(first, second ScoredItem) Card {
	return Card{Kind: CardHeadlinePair, Items: []ScoredItem{first, second}}
}

// GroupCard makes a generic grouping card
func GroupCard(items []ScoredItem, title string, axis Axis, displayBrand bool) Card {
	return Card{Kind: CardGroup, Items: items, Title: title, Axis: axis, DisplayBrand: displayBrand}
}

// NumberedCard makes a numbered list card for items of one publisher
func NumberedCard(items []ScoredItem, title string) Card {
	return Card{Kind: CardNumbered, Items: items, Title: title}
}

// AllItems returns a copy of every item referenced by the card
func (c Card) AllItems() []ScoredItem {
	res := make([]ScoredItem, len(c.Items))
	copy(res, c.Items)
	return res
}

// Replacing returns a card with the item matching item.Content.ID swapped for replacement.
// The original card is returned as is if the item is not referenced by it.
func (c Card) Replacing(item, replacement ScoredItem) Card {
	idx := -1
	for i, it := range c.Items {
		if it.Content.ID == item.Content.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c
	}

	items := make([]ScoredItem, len(c.Items))
	copy(items, c.Items)
	items[idx] = replacement
	c.Items = items
	return c
}

// Metrics holds presentation constants used to estimate card heights
type Metrics struct {
	ImageRatio      float64 `yaml:"image_ratio" json:"image_ratio" jsonschema:"default=0.5625,description=Image height to width ratio"`
	HeadlineText    float64 `yaml:"headline_text" json:"headline_text" jsonschema:"default=120,description=Text block height below a headline image"`
	SponsorText     float64 `yaml:"sponsor_text" json:"sponsor_text" jsonschema:"default=90,description=Text block height below a sponsor image"`
	PairText        float64 `yaml:"pair_text" json:"pair_text" jsonschema:"default=150,description=Text block height below paired images"`
	GroupRow        float64 `yaml:"group_row" json:"group_row" jsonschema:"default=110,description=Height of one row in a group card"`
	NumberedRow     float64 `yaml:"numbered_row" json:"numbered_row" jsonschema:"default=80,description=Height of one row in a numbered card"`
	DealsHeight     float64 `yaml:"deals_height" json:"deals_height" jsonschema:"default=300,description=Fixed height of a deals card"`
	TitleHeight     float64 `yaml:"title_height" json:"title_height" jsonschema:"default=44,description=Height of a card title bar"`
	HorizontalGroup float64 `yaml:"horizontal_group" json:"horizontal_group" jsonschema:"default=280,description=Fixed height of a horizontal group card"`
}

// DefaultMetrics returns the metrics used when no layout config is given
func DefaultMetrics() Metrics {
	return Metrics{
		ImageRatio:      9.0 / 16.0,
		HeadlineText:    120,
		SponsorText:     90,
		PairText:        150,
		GroupRow:        110,
		NumberedRow:     80,
		DealsHeight:     300,
		TitleHeight:     44,
		HorizontalGroup: 280,
	}
}

// EstimatedHeight returns the expected display height of the card for the given width
func (c Card) EstimatedHeight(width float64, m Metrics) float64 {
	if width < 0 {
		width = 0
	}
	title := 0.0
	if c.Title != "" {
		title = m.TitleHeight
	}

	switch c.Kind {
	case CardSponsor:
		return width*m.ImageRatio + m.SponsorText
	case CardHeadline:
		return width*m.ImageRatio + m.HeadlineText
	case CardHeadlinePair:
		return (width/2)*m.ImageRatio + m.PairText
	case CardDeals:
		return m.DealsHeight
	case CardGroup:
		if c.Axis == AxisHorizontal {
			return title + m.HorizontalGroup
		}
		return title + float64(len(c.Items))*m.GroupRow
	case CardNumbered:
		return title + float64(len(c.Items))*m.NumberedRow
	}
	return 0
}
