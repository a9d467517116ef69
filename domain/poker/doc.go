// Package poker holds the card model and the hand rules of the battler.
//
// # Classification
//
// Classify picks the strongest poker category present in one to five cards
// and reports which cards form it. Categories follow the usual ranking, from
// HighCard up to RoyalFlush.
//
// # Scoring
//
// Score turns a classification into damage: the category base, the values of
// the used cards, then the player's modifiers, applied in a fixed order.
//
// # Deck bridge
//
// IntToCard and CardToInt map cards to the 1..52 slots of the draw pool.
package poker
