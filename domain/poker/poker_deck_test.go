package poker

import (
	"errors"
	"testing"

	"github.com/luca-patrignani/poker-battler/domain/deck"
)

func TestIntToCard(t *testing.T) {
	expectedCard := Card{suit: Heart, rank: 2}
	testCard, err := IntToCard(27)
	if err != nil {
		t.Fatal(err)
	}
	if testCard != expectedCard {
		t.Fatalf("expected %v, get %v", expectedCard.Code(), testCard.Code())
	}
	for _, bad := range []int{0, 53, -1} {
		if _, err := IntToCard(bad); err == nil {
			t.Fatalf("expected error for %d", bad)
		}
	}
}

func TestAllCardConvert(t *testing.T) {
	seen := map[Card]bool{}
	for i := 1; i <= deck.StandardSize; i++ {
		c, err := IntToCard(i)
		if err != nil {
			t.Fatal(err)
		}
		if seen[c] {
			t.Fatalf("card %s produced twice", c.Code())
		}
		seen[c] = true
		if CardToInt(c) != i {
			t.Fatalf("expected %d, got %d for %s", i, CardToInt(c), c.Code())
		}
	}
}

func TestPokerDeckDrawAndReturn(t *testing.T) {
	d := NewPokerDeck(deck.NewSeededRand(5))
	hand, err := d.DrawUniqueCards(8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(Distinct(hand)) != 8 {
		t.Fatalf("expected 8 distinct cards, got %s", codes(hand))
	}
	if len(d.InPlayCards()) != 8 || len(d.AvailableCards()) != 44 {
		t.Fatalf("unexpected partition %d/%d", len(d.InPlayCards()), len(d.AvailableCards()))
	}

	more, err := d.DrawUniqueCards(5, hand)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range more {
		if Contains(hand, c) {
			t.Fatalf("drew held card %s", c.Code())
		}
	}
	if err := d.ReturnCards(hand...); err != nil {
		t.Fatal(err)
	}
	if len(d.InPlayCards()) != 5 {
		t.Fatalf("expected 5 in play, got %d", len(d.InPlayCards()))
	}
	if err := d.CheckInvariant(); err != nil {
		t.Fatal(err)
	}
}

func TestPokerDeckRejectsInvalidCards(t *testing.T) {
	d := NewPokerDeck(deck.NewSeededRand(5))
	c, err := d.DrawCard()
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ReturnCards(c, Card{}); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if !d.IsInPlay(CardToInt(c)) {
		t.Fatal("failed return changed the deck")
	}
	if _, err := d.DrawUniqueCards(2, []Card{{}}); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
}

func TestPokerDeckRestore(t *testing.T) {
	d := NewPokerDeck(deck.NewSeededRand(5))
	held := mustParse(t, "As Kd 2c")
	if err := d.RestoreInPlay(held); err != nil {
		t.Fatal(err)
	}
	if sortedCodes(d.InPlayCards()) != "As Kd 2c" {
		t.Fatalf("unexpected in-play cards %s", codes(d.InPlayCards()))
	}
	if d.Remaining() != 49 {
		t.Fatalf("expected 49 available, got %d", d.Remaining())
	}
}
