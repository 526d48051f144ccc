package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id, publisher string) ScoredItem {
	return ScoredItem{
		Content: ContentItem{ID: id, PublisherID: publisher, Kind: KindArticle},
		Source:  Source{ID: publisher, Name: "Publisher " + publisher, Enabled: true},
	}
}

func TestCard_Replacing(t *testing.T) {
	a, b, c := scored("a", "p1"), scored("b", "p2"), scored("c", "p1")

	t.Run("replace matching item", func(t *testing.T) {
		card := GroupCard([]ScoredItem{a, b, c}, "tech", AxisVertical, false)
		relabeled := b.WithSource(Source{ID: "p2", Name: "Renamed", Enabled: false})

		res := card.Replacing(b, relabeled)
		require.Len(t, res.Items, 3)
		assert.Equal(t, "Renamed", res.Items[1].Source.Name)
		assert.False(t, res.Items[1].Source.Enabled)
		assert.Equal(t, a, res.Items[0])
		assert.Equal(t, c, res.Items[2])

		// original is untouched
		assert.Equal(t, "Publisher p2", card.Items[1].Source.Name)
	})

	t.Run("missing item returns card unchanged", func(t *testing.T) {
		cards := []Card{
			SponsorCard(a),
			HeadlineCard(a),
			HeadlinePairCard(a, c),
			DealsCard([]ScoredItem{a, c}, "Deals"),
			NumberedCard([]ScoredItem{a, c}, "Publisher p1"),
			GroupCard([]ScoredItem{a, c}, "", AxisVertical, true),
		}
		for _, card := range cards {
			t.Run(string(card.Kind), func(t *testing.T) {
				assert.Equal(t, card, card.Replacing(b, scored("b", "zzz")))
			})
		}
	})

	t.Run("match by content id only", func(t *testing.T) {
		card := HeadlineCard(a)
		other := a
		other.Score = 42
		other.Source.Name = "stale copy"
		res := card.Replacing(other, scored("a", "p9"))
		assert.Equal(t, "p9", res.Items[0].Source.ID)
	})
}

func TestCard_AllItems(t *testing.T) {
	a, b := scored("a", "p1"), scored("b", "p2")
	card := HeadlinePairCard(a, b)
	items := card.AllItems()
	assert.Equal(t, []ScoredItem{a, b}, items)

	items[0] = b
	assert.Equal(t, a, card.Items[0], "returned slice must be a copy")
}

func TestCard_EstimatedHeight(t *testing.T) {
	m := DefaultMetrics()
	a, b, c := scored("a", "p1"), scored("b", "p1"), scored("c", "p1")

	tbl := []struct {
		name  string
		card  Card
		width float64
		want  float64
	}{
		{"sponsor", SponsorCard(a), 320, 320*9.0/16.0 + 90},
		{"headline", HeadlineCard(a), 320, 180 + 120},
		{"headline pair", HeadlinePairCard(a, b), 320, 90 + 150},
		{"deals fixed", DealsCard([]ScoredItem{a}, "Deals"), 1000, 300},
		{"vertical group with title", GroupCard([]ScoredItem{a, b, c}, "tech", AxisVertical, false), 320, 44 + 330},
		{"vertical group no title", GroupCard([]ScoredItem{a, b}, "", AxisVertical, true), 320, 220},
		{"horizontal group", GroupCard([]ScoredItem{a, b}, "", AxisHorizontal, false), 320, 280},
		{"numbered", NumberedCard([]ScoredItem{a, b, c}, "Publisher"), 320, 44 + 240},
		{"negative width", HeadlineCard(a), -10, 120},
		{"unknown kind", Card{Kind: "other"}, 320, 0},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.card.EstimatedHeight(tt.width, m), 0.0001)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	sources := []Source{
		{ID: "p1", Name: "One", Enabled: true},
		{ID: "p2", Name: "Two", Enabled: true},
		{ID: "p3", Name: "Three", Enabled: false},
	}
	res := ApplyOverrides(sources, []Override{
		{PublisherID: "p2", Enabled: false},
		{PublisherID: "p3", Enabled: true},
		{PublisherID: "unknown", Enabled: false},
	})

	require.Len(t, res, 3)
	assert.True(t, res[0].Enabled)
	assert.False(t, res[1].Enabled)
	assert.True(t, res[2].Enabled)
	assert.True(t, sources[1].Enabled, "input must not be modified")
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"article", "offer", "product"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("video")
	assert.Error(t, err)
}
