package poker

import (
	"fmt"
	"maps"
)

// Modifiers is the additive bonus registry a player builds up over a run.
// Items add to it when gained and subtract when sold. A nil *Modifiers
// scores with no bonuses at all.
type Modifiers struct {
	HandType         map[HandCategory]int `json:"hand_type" yaml:"hand_type,omitempty"`
	Suit             map[Suit]int         `json:"suit" yaml:"suit,omitempty"`
	CardClass        map[CardClass]int    `json:"card_class" yaml:"card_class,omitempty"`
	CardCount        map[int]int          `json:"card_count" yaml:"card_count,omitempty"`
	RejectionPerCard int                  `json:"rejection_per_card,omitempty" yaml:"rejection_per_card,omitempty"`
}

// NewModifiers returns an empty registry with its maps allocated.
func NewModifiers() *Modifiers {
	return &Modifiers{
		HandType:  map[HandCategory]int{},
		Suit:      map[Suit]int{},
		CardClass: map[CardClass]int{},
		CardCount: map[int]int{},
	}
}

func addEntry[K comparable](m *map[K]int, k K, delta int) {
	if *m == nil {
		*m = map[K]int{}
	}
	(*m)[k] += delta
	if (*m)[k] == 0 {
		delete(*m, k)
	}
}

// AddHandType adjusts the bonus for playing category h.
func (m *Modifiers) AddHandType(h HandCategory, delta int) { addEntry(&m.HandType, h, delta) }

// AddSuit adjusts the bonus for each core card of suit s.
func (m *Modifiers) AddSuit(s Suit, delta int) { addEntry(&m.Suit, s, delta) }

// AddCardClass adjusts the bonus for each core card of class c.
func (m *Modifiers) AddCardClass(c CardClass, delta int) { addEntry(&m.CardClass, c, delta) }

// AddCardCount adjusts the bonus granted when at least minCount cards are played.
func (m *Modifiers) AddCardCount(minCount, delta int) { addEntry(&m.CardCount, minCount, delta) }

// AddRejection adjusts the bonus paid per played card outside the core.
func (m *Modifiers) AddRejection(delta int) { m.RejectionPerCard += delta }

// Clone returns a deep copy.
func (m *Modifiers) Clone() *Modifiers {
	if m == nil {
		return nil
	}
	return &Modifiers{
		HandType:         maps.Clone(m.HandType),
		Suit:             maps.Clone(m.Suit),
		CardClass:        maps.Clone(m.CardClass),
		CardCount:        maps.Clone(m.CardCount),
		RejectionPerCard: m.RejectionPerCard,
	}
}

// IsZero reports whether the registry grants nothing.
func (m *Modifiers) IsZero() bool {
	return m == nil || (len(m.HandType) == 0 && len(m.Suit) == 0 && len(m.CardClass) == 0 &&
		len(m.CardCount) == 0 && m.RejectionPerCard == 0)
}

// ScoreBreakdown records every additive step of a score in the order applied.
type ScoreBreakdown struct {
	Classification Classification `json:"classification"`
	Base           int            `json:"base"`
	CardValues     int            `json:"card_values"`
	HandType       int            `json:"hand_type"`
	Suit           int            `json:"suit"`
	CardClass      int            `json:"card_class"`
	CardCount      int            `json:"card_count"`
	Rejection      int            `json:"rejection"`
	Total          int            `json:"total"`
}

// ScoreDetailed scores selected against mods and reports each step.
//
// Steps, each additive: base points of the category, value of every core
// card, then with mods the hand type bonus, suit and class bonuses per core
// card, every card count threshold reached, and the rejection bonus per
// played card outside the core. The total is never negative.
func ScoreDetailed(selected []Card, mods *Modifiers) (ScoreBreakdown, error) {
	if len(selected) == 0 {
		return ScoreBreakdown{}, nil
	}
	cls, err := Classify(selected)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	b := ScoreBreakdown{
		Classification: cls,
		Base:           cls.Category.BasePoints(),
	}
	for _, c := range cls.Core {
		b.CardValues += c.Value()
	}
	if mods != nil {
		b.HandType = mods.HandType[cls.Category]
		for _, c := range cls.Core {
			b.Suit += mods.Suit[c.Suit()]
			b.CardClass += mods.CardClass[c.Class()]
		}
		played := len(Distinct(selected))
		for minCount, bonus := range mods.CardCount {
			if played >= minCount {
				b.CardCount += bonus
			}
		}
		b.Rejection = mods.RejectionPerCard * (played - len(cls.Core))
	}
	b.Total = b.Base + b.CardValues + b.HandType + b.Suit + b.CardClass + b.CardCount + b.Rejection
	if b.Total < 0 {
		b.Total = 0
	}
	return b, nil
}

// Score returns the damage value of playing selected with mods.
func Score(selected []Card, mods *Modifiers) (int, error) {
	b, err := ScoreDetailed(selected, mods)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// BestPlay searches every size-card subset of hand for the highest score.
// It returns the chosen cards highest first; ties keep the first subset
// found in descending card order.
func BestPlay(hand []Card, size int, mods *Modifiers) ([]Card, ScoreBreakdown, error) {
	cards := Distinct(hand)
	if size < HandSize || len(cards) < size {
		return nil, ScoreBreakdown{}, fmt.Errorf("%w: play of %d from %d cards", ErrTooFewCards, size, len(cards))
	}
	SortDesc(cards)

	var best []Card
	var bestScore ScoreBreakdown
	pick := make([]Card, 0, size)
	var walk func(start int) error
	walk = func(start int) error {
		if len(pick) == size {
			b, err := ScoreDetailed(pick, mods)
			if err != nil {
				return err
			}
			if best == nil || b.Total > bestScore.Total {
				best = append([]Card{}, pick...)
				bestScore = b
			}
			return nil
		}
		for i := start; i <= len(cards)-(size-len(pick)); i++ {
			pick = append(pick, cards[i])
			if err := walk(i + 1); err != nil {
				return err
			}
			pick = pick[:len(pick)-1]
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, ScoreBreakdown{}, err
	}
	return best, bestScore, nil
}
