// Package sequence arranges scored content items into an ordered list of display cards.
//
// The layout is driven by a grammar: a tree of Element values evaluated in order against
// pools of not yet placed items. Each element either emits cards taking items out of the
// pools or, if the pools can't satisfy it, emits nothing and evaluation moves on.
// Repeat elements hold a child list and evaluate it several times, so repetition composes.
package sequence

import (
	"fmt"
	"strings"
)

// ElementKind discriminates grammar elements
type ElementKind int

// enum of grammar elements
const (
	ElemSponsor ElementKind = iota
	ElemHeadline
	ElemDeals
	ElemCategoryGroup
	ElemBrandedGroup
	ElemGroup
	ElemRepeat
)

// Element is one node of the composition grammar
type Element struct {
	Kind     ElementKind
	Paired   bool      // headline: emit a pair instead of a single item
	Numbered bool      // branded group: emit a numbered list
	Times    int       // repeat: max number of passes, 0 means until exhausted
	Elements []Element // repeat: body evaluated on every pass
}

// Sponsor emits one sponsored item
func Sponsor() Element { return Element{Kind: ElemSponsor} }

// Headline emits one image-bearing article, or two of them side by side if paired
func Headline(paired bool) Element { return Element{Kind: ElemHeadline, Paired: paired} }

// Deals emits up to three product items
func Deals() Element { return Element{Kind: ElemDeals} }

// CategoryGroup emits up to three articles sharing the category of the top article
func CategoryGroup() Element { return Element{Kind: ElemCategoryGroup} }

// BrandedGroup emits up to three articles from the publisher of the top article
func BrandedGroup(numbered bool) Element { return Element{Kind: ElemBrandedGroup, Numbered: numbered} }

// Group emits the next up to three articles
func Group() Element { return Element{Kind: ElemGroup} }

// Repeat evaluates elements up to times passes, times <= 0 repeats until articles run out
func Repeat(times int, elements ...Element) Element {
	return Element{Kind: ElemRepeat, Times: times, Elements: elements}
}

// DefaultGrammar is the standard feed layout
func DefaultGrammar() []Element {
	return []Element{
		Sponsor(),
		Headline(false),
		Deals(),
		Repeat(0,
			Repeat(2, Headline(false)),
			Repeat(2, Headline(true)),
			CategoryGroup(),
			Headline(false),
			Deals(),
			Headline(false),
			Headline(true),
			BrandedGroup(true),
			Group(),
			Headline(false),
			Headline(true),
		),
	}
}

// String renders the element in a compact notation, used in debug logs
func (e Element) String() string {
	switch e.Kind {
	case ElemSponsor:
		return "sponsor"
	case ElemHeadline:
		if e.Paired {
			return "headline(paired)"
		}
		return "headline"
	case ElemDeals:
		return "deals"
	case ElemCategoryGroup:
		return "categoryGroup"
	case ElemBrandedGroup:
		if e.Numbered {
			return "brandedGroup(numbered)"
		}
		return "brandedGroup"
	case ElemGroup:
		return "group"
	case ElemRepeat:
		parts := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			parts = append(parts, el.String())
		}
		times := "*"
		if e.Times > 0 {
			times = fmt.Sprintf("%d", e.Times)
		}
		return fmt.Sprintf("repeat(%s, %s)", times, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("unknown(%d)", e.Kind)
}
