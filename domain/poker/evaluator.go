package poker

import (
	"fmt"

	"github.com/paulhankin/poker"
)

// toEvalCard converts a Card for the paulhankin evaluator, which counts
// the ace as rank 1.
func toEvalCard(c Card) (poker.Card, error) {
	rank := c.Rank()
	if rank == Ace {
		rank = 1
	}
	card, err := poker.MakeCard(poker.Suit(c.Suit()), poker.Rank(rank))
	if err != nil {
		var zero poker.Card
		return zero, fmt.Errorf("invalid card %s: %w", c.Code(), err)
	}
	return card, nil
}

func toEvalCards(cards []Card) ([]poker.Card, error) {
	out := make([]poker.Card, len(cards))
	for i, c := range cards {
		ec, err := toEvalCard(c)
		if err != nil {
			return nil, err
		}
		out[i] = ec
	}
	return out, nil
}

// Describe returns a human-readable name for a five card hand, such as the
// used cards of a Classification.
func Describe(cards []Card) (string, error) {
	if len(cards) != HandSize {
		return "", fmt.Errorf("describe needs %d cards, got %d", HandSize, len(cards))
	}
	ec, err := toEvalCards(cards)
	if err != nil {
		return "", err
	}
	return poker.Describe(ec)
}

// DescribeClassification names the used hand, falling back to the category
// title when the evaluator cannot describe it.
func DescribeClassification(c Classification) string {
	desc, err := Describe(c.Used)
	if err != nil || desc == "" {
		return c.Category.Title()
	}
	return desc
}

// EvalStrength scores a seven card hand with the 7-card evaluator; a
// higher value is a stronger hand.
func EvalStrength(cards []Card) (int16, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("strength needs 7 cards, got %d", len(cards))
	}
	var hand [7]poker.Card
	for i, c := range cards {
		ec, err := toEvalCard(c)
		if err != nil {
			return 0, err
		}
		hand[i] = ec
	}
	return poker.Eval7(&hand), nil
}
