package poker

import (
	"fmt"
	"strings"
)

// HandCategory is one of the ten poker tiers, weakest first.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every tier from strongest to weakest, the order Classify tries them.
var Categories = []HandCategory{
	RoyalFlush,
	StraightFlush,
	FourOfAKind,
	FullHouse,
	Flush,
	Straight,
	ThreeOfAKind,
	TwoPair,
	Pair,
	HighCard,
}

var basePoints = [...]int{
	HighCard:      10,
	Pair:          20,
	TwoPair:       40,
	ThreeOfAKind:  80,
	Straight:      100,
	Flush:         125,
	FullHouse:     175,
	FourOfAKind:   400,
	StraightFlush: 600,
	RoyalFlush:    2000,
}

var categoryNames = [...]string{
	HighCard:      "high_card",
	Pair:          "pair",
	TwoPair:       "two_pair",
	ThreeOfAKind:  "three_of_a_kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
	RoyalFlush:    "royal_flush",
}

// BasePoints is the fixed score of the category before card values and modifiers.
func (h HandCategory) BasePoints() int {
	if int(h) >= len(basePoints) {
		return 0
	}
	return basePoints[h]
}

func (h HandCategory) String() string {
	if int(h) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[h]
}

// Title is the display form, e.g. "Full House".
func (h HandCategory) Title() string {
	words := strings.Split(h.String(), "_")
	for i, w := range words {
		if w == "of" || w == "a" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseHandCategory accepts the snake_case name, case-insensitive, with
// spaces or dashes in place of underscores.
func ParseHandCategory(s string) (HandCategory, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range categoryNames {
		if name == norm {
			return HandCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

// MarshalText encodes the category by name.
func (h HandCategory) MarshalText() ([]byte, error) {
	if int(h) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown hand category %d", h)
	}
	return []byte(h.String()), nil
}

// UnmarshalText parses any form accepted by ParseHandCategory.
func (h *HandCategory) UnmarshalText(b []byte) error {
	parsed, err := ParseHandCategory(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
