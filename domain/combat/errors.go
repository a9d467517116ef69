package combat

import "errors"

var (
	// ErrInvalidSelection is returned for a play or discard that is the
	// wrong size, repeats a card or names a card not in hand.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrWrongState is returned for an action outside the state it is legal in.
	ErrWrongState = errors.New("action not allowed in current state")
	// ErrDiscardLimit is returned once the per-encounter discards are spent.
	ErrDiscardLimit = errors.New("discard limit reached")
	// ErrInventoryFull is returned when an item would exceed the inventory cap.
	ErrInventoryFull = errors.New("inventory full")
	// ErrNotEnoughGold is returned when the player cannot pay for an item.
	ErrNotEnoughGold = errors.New("not enough gold")
	// ErrNoSuchItem is returned for an item index out of range.
	ErrNoSuchItem = errors.New("no such item")
)
