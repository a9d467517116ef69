package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// StandardSize is the number of slots in a standard deck.
const StandardSize = 52

var (
	// ErrPoolExhausted is returned when no card is left to draw.
	ErrPoolExhausted = errors.New("draw pool exhausted")
	// ErrTooManyCards is returned when more unique cards are requested than the deck holds.
	ErrTooManyCards = errors.New("more cards requested than the deck holds")
	// ErrUnknownCard is returned for a card outside 1..DeckSize.
	ErrUnknownCard = errors.New("card not in deck")
)

// Deck is a pool of DeckSize distinct cards numbered 1..DeckSize.
// Every card is always in exactly one of two sets: available (drawable) or
// in play (held by someone). A Deck is not safe for concurrent use.
type Deck struct {
	DeckSize  int
	rng       *rand.Rand
	available []int
	inPlay    []bool // indexed by card, 0 unused
}

// New creates a deck of size cards, fully available and shuffled with rng.
func New(size int, rng *rand.Rand) *Deck {
	d := &Deck{
		DeckSize: size,
		rng:      rng,
	}
	d.Reset()
	return d
}

// Reset puts every card back in the available set and reshuffles it.
func (d *Deck) Reset() {
	d.inPlay = make([]bool, d.DeckSize+1)
	d.available = permutation(d.rng, d.DeckSize)
}

// Helper function to generate a random permutation of the cards 1..permSize
func permutation(rng *rand.Rand, permSize int) []int {
	perm := rng.Perm(permSize)
	for i := range perm {
		perm[i]++
	}
	return perm
}

// Draw removes one uniformly random card from the available set and puts it
// in play. It fails with ErrPoolExhausted, changing nothing, when no card is
// available.
func (d *Deck) Draw() (int, error) {
	if len(d.available) == 0 {
		return 0, ErrPoolExhausted
	}
	i := d.rng.Intn(len(d.available))
	card := d.available[i]
	last := len(d.available) - 1
	d.available[i] = d.available[last]
	d.available = d.available[:last]
	d.inPlay[card] = true
	return card, nil
}

// DrawUnique draws n distinct cards.
//
// When the available set runs dry before n cards are collected the deck is
// reset exactly once and drawing resumes; the cards collected so far and the
// held cards stay in play across that reset. If the deck is still short, the
// collected cards are returned together with ErrPoolExhausted.
func (d *Deck) DrawUnique(n int, held ...int) ([]int, error) {
	if n > d.DeckSize {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrTooManyCards, n, d.DeckSize)
	}
	for _, c := range held {
		if !d.valid(c) {
			return nil, fmt.Errorf("%w: held card %d", ErrUnknownCard, c)
		}
	}
	drawn := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	reset := false
	for len(drawn) < n {
		card, err := d.Draw()
		if errors.Is(err, ErrPoolExhausted) {
			if reset {
				return drawn, fmt.Errorf("%w: drew %d of %d", ErrPoolExhausted, len(drawn), n)
			}
			reset = true
			d.Reset()
			d.reserve(append(slices.Clone(held), drawn...))
			continue
		}
		if err != nil {
			return drawn, err
		}
		if _, dup := seen[card]; dup {
			continue
		}
		seen[card] = struct{}{}
		drawn = append(drawn, card)
	}
	return drawn, nil
}

// reserve moves cards from the available set into play.
func (d *Deck) reserve(cards []int) {
	for _, c := range cards {
		if d.inPlay[c] {
			continue
		}
		if i := slices.Index(d.available, c); i >= 0 {
			d.available = slices.Delete(d.available, i, i+1)
		}
		d.inPlay[c] = true
	}
}

// Return moves card from play back into the available set at a random
// position. Returning a card that is already available does nothing.
func (d *Deck) Return(card int) error {
	if !d.valid(card) {
		return fmt.Errorf("%w: %d", ErrUnknownCard, card)
	}
	if !d.inPlay[card] {
		return nil
	}
	d.inPlay[card] = false
	d.available = append(d.available, card)
	i := d.rng.Intn(len(d.available))
	last := len(d.available) - 1
	d.available[i], d.available[last] = d.available[last], d.available[i]
	return nil
}

// Available returns the available cards in ascending order.
func (d *Deck) Available() []int {
	out := slices.Clone(d.available)
	slices.Sort(out)
	return out
}

// InPlay returns the cards in play in ascending order.
func (d *Deck) InPlay() []int {
	var out []int
	for c := 1; c <= d.DeckSize; c++ {
		if d.inPlay[c] {
			out = append(out, c)
		}
	}
	return out
}

// Remaining is the number of available cards.
func (d *Deck) Remaining() int {
	return len(d.available)
}

// IsInPlay reports whether card is currently held.
func (d *Deck) IsInPlay(card int) bool {
	return d.valid(card) && d.inPlay[card]
}

// Restore replaces the partition with the given in-play cards; every other
// card becomes available, reshuffled.
func (d *Deck) Restore(inPlay []int) error {
	marks := make([]bool, d.DeckSize+1)
	for _, c := range inPlay {
		if !d.valid(c) {
			return fmt.Errorf("%w: %d", ErrUnknownCard, c)
		}
		if marks[c] {
			return fmt.Errorf("card %d in play twice", c)
		}
		marks[c] = true
	}
	available := make([]int, 0, d.DeckSize-len(inPlay))
	for _, i := range d.rng.Perm(d.DeckSize) {
		if !marks[i+1] {
			available = append(available, i+1)
		}
	}
	d.inPlay = marks
	d.available = available
	return nil
}

// CheckInvariant verifies that available and in-play cards partition the deck.
func (d *Deck) CheckInvariant() error {
	seen := make([]bool, d.DeckSize+1)
	for _, c := range d.available {
		if !d.valid(c) {
			return fmt.Errorf("%w: %d available", ErrUnknownCard, c)
		}
		if seen[c] {
			return fmt.Errorf("card %d available twice", c)
		}
		if d.inPlay[c] {
			return fmt.Errorf("card %d both available and in play", c)
		}
		seen[c] = true
	}
	for c := 1; c <= d.DeckSize; c++ {
		if !seen[c] && !d.inPlay[c] {
			return fmt.Errorf("card %d lost", c)
		}
	}
	return nil
}

func (d *Deck) valid(card int) bool {
	return card >= 1 && card <= d.DeckSize
}
