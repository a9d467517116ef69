package poker

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/luca-patrignani/poker-battler/domain/deck"
)

// PokerDeck wraps the generic slot deck and converts between slot numbers
// and Cards. It is the battler's draw pool: 52 distinct cards split
// between available and in play.
type PokerDeck struct {
	*deck.Deck
}

// NewPokerDeck creates a fully available, shuffled 52-card deck drawing from rng.
func NewPokerDeck(rng *rand.Rand) PokerDeck {
	return PokerDeck{Deck: deck.New(deck.StandardSize, rng)}
}

// IntToCard converts a raw card number (1-52) to a Card. Card numbers map to suits in order
// (clubs, diamonds, hearts, spades) with ranks 2 through Ace within each suit.
//
// Card numbering:
//   - 1-13: Clubs (2 through Ace)
//   - 14-26: Diamonds (2 through Ace)
//   - 27-39: Hearts (2 through Ace)
//   - 40-52: Spades (2 through Ace)
func IntToCard(rawCard int) (Card, error) {
	if rawCard > deck.StandardSize || rawCard < 1 {
		return Card{}, errors.New("the card to convert have an invalid value")
	}
	suit := Suit((rawCard - 1) / 13)
	rank := Rank((rawCard-1)%13) + MinRank
	return NewCard(suit, rank)
}

// CardToInt converts a Card to its integer representation (1-52).
// This is the inverse operation of IntToCard.
func CardToInt(card Card) int {
	return int(card.Suit())*13 + int(card.Rank()-MinRank) + 1
}

// CardsToInts converts cards to their integer representation.
func CardsToInts(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = CardToInt(c)
	}
	return out
}

func intsToCards(raw []int) ([]Card, error) {
	out := make([]Card, len(raw))
	for i, r := range raw {
		c, err := IntToCard(r)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// DrawCard draws one random card from the available set.
func (d PokerDeck) DrawCard() (Card, error) {
	raw, err := d.Deck.Draw()
	if err != nil {
		return Card{}, err
	}
	return IntToCard(raw)
}

// DrawUniqueCards draws n distinct cards, keeping held in play if the deck
// has to be reset midway. On exhaustion the cards collected are returned
// along with the error.
func (d PokerDeck) DrawUniqueCards(n int, held []Card) ([]Card, error) {
	for _, c := range held {
		if !c.IsValid() {
			return nil, fmt.Errorf("%w: held %s", ErrInvalidCard, c.Code())
		}
	}
	raw, drawErr := d.Deck.DrawUnique(n, CardsToInts(held)...)
	cards, err := intsToCards(raw)
	if err != nil {
		return nil, err
	}
	return cards, drawErr
}

// ReturnCards puts cards back into the available set.
func (d PokerDeck) ReturnCards(cards ...Card) error {
	for _, c := range cards {
		if !c.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidCard, c.Code())
		}
	}
	for _, c := range cards {
		if err := d.Deck.Return(CardToInt(c)); err != nil {
			return err
		}
	}
	return nil
}

// AvailableCards lists the available cards in slot order.
func (d PokerDeck) AvailableCards() []Card {
	cards, _ := intsToCards(d.Deck.Available())
	return cards
}

// InPlayCards lists the cards in play in slot order.
func (d PokerDeck) InPlayCards() []Card {
	cards, _ := intsToCards(d.Deck.InPlay())
	return cards
}

// RestoreInPlay rebuilds the partition from the cards in play.
func (d PokerDeck) RestoreInPlay(cards []Card) error {
	for _, c := range cards {
		if !c.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidCard, c.Code())
		}
	}
	return d.Deck.Restore(CardsToInts(cards))
}
