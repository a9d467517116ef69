package poker

import (
	"errors"
	"fmt"
)

// HandSize is the number of cards in a complete poker hand.
const HandSize = 5

// ErrTooFewCards is returned when fewer than HandSize distinct cards are classified.
var ErrTooFewCards = errors.New("too few cards to classify")

// Classification is the single best category found in a set of cards.
//
// Core holds the cards that make the category and score their value.
// Used holds Core plus the kickers that complete a five card hand.
// Both are sorted from highest to lowest card.
type Classification struct {
	Category HandCategory `json:"category"`
	Core     []Card       `json:"core"`
	Used     []Card       `json:"used"`
}

// Kickers returns the used cards that are not core.
func (c Classification) Kickers() []Card {
	return Without(c.Used, c.Core)
}

// handView indexes a sorted, duplicate-free hand by suit and by rank.
type handView struct {
	cards  []Card          // highest first
	bySuit map[Suit][]Card // each highest first
	byRank map[Rank][]Card // each highest suit first
	ranks  []Rank          // distinct, highest first
}

func newHandView(cards []Card) handView {
	v := handView{
		cards:  cards,
		bySuit: make(map[Suit][]Card, 4),
		byRank: make(map[Rank][]Card, len(cards)),
	}
	for _, c := range cards {
		v.bySuit[c.Suit()] = append(v.bySuit[c.Suit()], c)
		if _, ok := v.byRank[c.Rank()]; !ok {
			v.ranks = append(v.ranks, c.Rank())
		}
		v.byRank[c.Rank()] = append(v.byRank[c.Rank()], c)
	}
	return v
}

// ranksWith returns the ranks holding at least n cards, highest first.
func (v handView) ranksWith(n int) []Rank {
	var out []Rank
	for _, r := range v.ranks {
		if len(v.byRank[r]) >= n {
			out = append(out, r)
		}
	}
	return out
}

// flushSuits returns the suits holding at least five cards, strongest first.
// Strength compares the suit's cards from the top down; equal suits fall
// back to suit order.
func (v handView) flushSuits() []Suit {
	var out []Suit
	for i := len(Suits) - 1; i >= 0; i-- {
		s := Suits[i]
		if len(v.bySuit[s]) < HandSize {
			continue
		}
		pos := len(out)
		for pos > 0 && strongerRun(v.bySuit[s], v.bySuit[out[pos-1]]) {
			pos--
		}
		out = append(out, 0)
		copy(out[pos+1:], out[pos:])
		out[pos] = s
	}
	return out
}

func strongerRun(a, b []Card) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Rank() != b[i].Rank() {
			return a[i].Rank() > b[i].Rank()
		}
	}
	return false
}

// kickers returns the n highest cards not in core.
func (v handView) kickers(core []Card, n int) []Card {
	out := make([]Card, 0, n)
	for _, c := range v.cards {
		if len(out) == n {
			break
		}
		if !Contains(core, c) {
			out = append(out, c)
		}
	}
	return out
}

// bestRun finds the highest five-rank run among cards (highest first),
// counting the ace low for the wheel. It returns the run and its top rank.
func bestRun(cards []Card) ([]Card, Rank, bool) {
	top := make(map[Rank]Card, len(cards))
	for _, c := range cards {
		if _, ok := top[c.Rank()]; !ok {
			top[c.Rank()] = c
		}
	}
	for high := Ace; high >= 6; high-- {
		run := make([]Card, 0, HandSize)
		for r := high; r > high-HandSize; r-- {
			c, ok := top[r]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) == HandSize {
			return run, high, true
		}
	}
	wheel := []Rank{5, 4, 3, 2, Ace}
	run := make([]Card, 0, HandSize)
	for _, r := range wheel {
		c, ok := top[r]
		if !ok {
			return nil, 0, false
		}
		run = append(run, c)
	}
	return run, 5, true
}

// A check returns the core cards and kickers when the hand holds its category.
type check struct {
	category HandCategory
	match    func(v handView) (core, kickers []Card, ok bool)
}

var checks = []check{
	{RoyalFlush, matchRoyalFlush},
	{StraightFlush, matchStraightFlush},
	{FourOfAKind, matchFourOfAKind},
	{FullHouse, matchFullHouse},
	{Flush, matchFlush},
	{Straight, matchStraight},
	{ThreeOfAKind, matchThreeOfAKind},
	{TwoPair, matchTwoPair},
	{Pair, matchPair},
	{HighCard, matchHighCard},
}

func matchRoyalFlush(v handView) ([]Card, []Card, bool) {
	for _, s := range v.flushSuits() {
		run, high, ok := bestRun(v.bySuit[s])
		if ok && high == Ace {
			return run, nil, true
		}
	}
	return nil, nil, false
}

func matchStraightFlush(v handView) ([]Card, []Card, bool) {
	var best []Card
	var bestHigh Rank
	for _, s := range v.flushSuits() {
		run, high, ok := bestRun(v.bySuit[s])
		if ok && high > bestHigh {
			best, bestHigh = run, high
		}
	}
	return best, nil, best != nil
}

func matchFourOfAKind(v handView) ([]Card, []Card, bool) {
	quads := v.ranksWith(4)
	if len(quads) == 0 {
		return nil, nil, false
	}
	core := v.byRank[quads[0]][:4]
	return core, v.kickers(core, 1), true
}

func matchFullHouse(v handView) ([]Card, []Card, bool) {
	trips := v.ranksWith(3)
	if len(trips) == 0 {
		return nil, nil, false
	}
	core := append([]Card{}, v.byRank[trips[0]][:3]...)
	if len(trips) >= 2 {
		// The second three of a kind supplies the pair.
		return append(core, v.byRank[trips[1]][:2]...), nil, true
	}
	for _, r := range v.ranksWith(2) {
		if r != trips[0] {
			return append(core, v.byRank[r][:2]...), nil, true
		}
	}
	return nil, nil, false
}

func matchFlush(v handView) ([]Card, []Card, bool) {
	suits := v.flushSuits()
	if len(suits) == 0 {
		return nil, nil, false
	}
	return v.bySuit[suits[0]][:HandSize], nil, true
}

func matchStraight(v handView) ([]Card, []Card, bool) {
	run, _, ok := bestRun(v.cards)
	return run, nil, ok
}

func matchThreeOfAKind(v handView) ([]Card, []Card, bool) {
	trips := v.ranksWith(3)
	if len(trips) == 0 {
		return nil, nil, false
	}
	core := v.byRank[trips[0]][:3]
	return core, v.kickers(core, 2), true
}

func matchTwoPair(v handView) ([]Card, []Card, bool) {
	pairs := v.ranksWith(2)
	if len(pairs) < 2 {
		return nil, nil, false
	}
	core := append(append([]Card{}, v.byRank[pairs[0]][:2]...), v.byRank[pairs[1]][:2]...)
	return core, v.kickers(core, 1), true
}

func matchPair(v handView) ([]Card, []Card, bool) {
	pairs := v.ranksWith(2)
	if len(pairs) == 0 {
		return nil, nil, false
	}
	core := v.byRank[pairs[0]][:2]
	return core, v.kickers(core, 3), true
}

func matchHighCard(v handView) ([]Card, []Card, bool) {
	return v.cards[:1], v.cards[1:HandSize], true
}

// Classify returns the strongest category present in cards.
//
// Repeated logical cards are counted once. At least HandSize distinct cards
// are required. Categories are tried from strongest to weakest and the first
// match wins; ties always go to the higher rank, then the higher suit, so the
// result never depends on input order.
func Classify(cards []Card) (Classification, error) {
	hand := Distinct(cards)
	for _, c := range hand {
		if !c.IsValid() {
			return Classification{}, fmt.Errorf("%w: %v", ErrInvalidCard, c.Code())
		}
	}
	if len(hand) < HandSize {
		return Classification{}, fmt.Errorf("%w: got %d, need %d", ErrTooFewCards, len(hand), HandSize)
	}
	SortDesc(hand)
	v := newHandView(hand)

	for _, chk := range checks {
		core, kickers, ok := chk.match(v)
		if !ok {
			continue
		}
		res := Classification{
			Category: chk.category,
			Core:     append([]Card{}, core...),
		}
		res.Used = append(append([]Card{}, core...), kickers...)
		SortDesc(res.Core)
		SortDesc(res.Used)
		return res, nil
	}
	return Classification{}, fmt.Errorf("no category matched %s", FormatCards(hand))
}
