package poker

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Suit of a card. The numeric order only serves deterministic tie-breaks;
// no suit outranks another in play.
type Suit uint8

const (
	Club    Suit = iota // ♣ (black)
	Diamond             // ♦ (red)
	Heart               // ♥ (red)
	Spade               // ♠ (black)
)

// Suits lists every suit in enum order.
var Suits = [4]Suit{Club, Diamond, Heart, Spade}

// Rank of a card, from 2 up to Ace (14).
type Rank uint8

const (
	Ten   Rank = 10
	Jack  Rank = 11 // J
	Queen Rank = 12 // Q
	King  Rank = 13 // K
	Ace   Rank = 14 // A (high, low only inside the wheel straight)
)

// MinRank and MaxRank bound the rank range.
const (
	MinRank Rank = 2
	MaxRank Rank = Ace
)

// CardClass groups ranks for class-based bonuses.
type CardClass uint8

const (
	Number CardClass = iota // 2..10
	Honor                   // J, Q, K, A
)

// ErrInvalidCard is returned when a suit, rank or card string is out of range.
var ErrInvalidCard = errors.New("invalid card")

// Card represents a playing card with suit and rank.
// The zero value is not a valid card.
type Card struct {
	suit Suit
	rank Rank
}

// NewCard creates a new Card with validation.
//
// Parameters:
//   - suit: Club, Diamond, Heart or Spade
//   - rank: 2-14 (2-10 face value, Jack=11, Queen=12, King=13, Ace=14)
//
// Returns the Card or an error if suit or rank is invalid.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if suit > Spade || rank < MinRank || rank > MaxRank {
		return Card{}, fmt.Errorf("%w: suit %d, rank %d", ErrInvalidCard, suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// MustCard is NewCard for literals known to be valid. It panics otherwise.
func MustCard(suit Suit, rank Rank) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Suit returns the suit of the Card.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns the rank of the Card (2-14).
func (c Card) Rank() Rank {
	return c.rank
}

// Value is the numeric scoring value of the card, equal to its rank.
func (c Card) Value() int {
	return int(c.rank)
}

// Class reports whether the card is an honor (J, Q, K, A) or a number card.
func (c Card) Class() CardClass {
	if c.rank >= Jack {
		return Honor
	}
	return Number
}

// IsValid reports whether c holds a real card rather than the zero value.
func (c Card) IsValid() bool {
	return c.rank >= MinRank && c.rank <= MaxRank && c.suit <= Spade
}

// Less orders cards by rank, breaking ties by suit so that any slice of
// distinct cards has exactly one sorted order.
func (c Card) Less(o Card) bool {
	if c.rank != o.rank {
		return c.rank < o.rank
	}
	return c.suit < o.suit
}

// String returns a human-readable representation of the Card using suit symbols
// (♣, ♦, ♥, ♠) colored for the terminal.
func (c Card) String() string {
	if !c.IsValid() {
		return "?"
	}
	var suit string
	switch c.suit {
	case Club:
		suit = pterm.Black("♣")
	case Diamond:
		suit = pterm.LightRed("♦")
	case Heart:
		suit = pterm.LightRed("♥")
	case Spade:
		suit = pterm.Black("♠")
	}
	return c.rank.String() + suit
}

// Code returns the plain two or three character form, e.g. "As", "10h", "2c".
func (c Card) Code() string {
	if !c.IsValid() {
		return "?"
	}
	return c.rank.String() + c.suit.Letter()
}

// MarshalText encodes the card as its Code.
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: cannot marshal zero card", ErrInvalidCard)
	}
	return []byte(c.Code()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses "As", "10h", "Th", "2c" (case-insensitive).
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suit, err := ParseSuit(s[len(s)-1:])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := ParseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	return NewCard(suit, rank)
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// ParseRank accepts 2-10, T, J, Q, K, A.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	case "T":
		return Ten, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(MinRank) || n > int(Ten) {
		return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, s)
	}
	return Rank(n), nil
}

// Letter is the single lowercase letter for the suit.
func (s Suit) Letter() string {
	switch s {
	case Club:
		return "c"
	case Diamond:
		return "d"
	case Heart:
		return "h"
	case Spade:
		return "s"
	}
	return "?"
}

func (s Suit) String() string {
	switch s {
	case Club:
		return "clubs"
	case Diamond:
		return "diamonds"
	case Heart:
		return "hearts"
	case Spade:
		return "spades"
	}
	return "unknown"
}

// ParseSuit accepts a suit letter, its full name (singular or plural) or symbol.
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(s) {
	case "c", "club", "clubs", "♣":
		return Club, nil
	case "d", "diamond", "diamonds", "♦":
		return Diamond, nil
	case "h", "heart", "hearts", "♥":
		return Heart, nil
	case "s", "spade", "spades", "♠":
		return Spade, nil
	}
	return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, s)
}

// MarshalText encodes the suit by name.
func (s Suit) MarshalText() ([]byte, error) {
	if s > Spade {
		return nil, fmt.Errorf("%w: suit %d", ErrInvalidCard, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses any form accepted by ParseSuit.
func (s *Suit) UnmarshalText(b []byte) error {
	parsed, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (c CardClass) String() string {
	if c == Honor {
		return "honor"
	}
	return "number"
}

// MarshalText encodes the class by name.
func (c CardClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses "honor" or "number".
func (c *CardClass) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "honor", "honour":
		*c = Honor
	case "number":
		*c = Number
	default:
		return fmt.Errorf("unknown card class %q", string(b))
	}
	return nil
}

// SortDesc orders cards from highest to lowest, in place.
func SortDesc(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[j].Less(cards[i]) })
}

// Contains reports whether c is in cards.
func Contains(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// Distinct returns cards with repeated logical cards dropped, keeping the first occurrence.
func Distinct(cards []Card) []Card {
	seen := make(map[Card]struct{}, len(cards))
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Without returns the cards of a that are not in b.
func Without(a, b []Card) []Card {
	out := make([]Card, 0, len(a))
	for _, c := range a {
		if !Contains(b, c) {
			out = append(out, c)
		}
	}
	return out
}

// FormatCards joins cards with " - ", the way the board is printed.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " - ")
}
