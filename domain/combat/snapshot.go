package combat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

// ErrBadSnapshot is returned when a snapshot cannot be restored.
var ErrBadSnapshot = errors.New("bad snapshot")

// Snapshot is the serializable state of a game. Cards in play are exactly
// the cards in hand, so the pool is rebuilt from the hand on restore.
type Snapshot struct {
	State  State  `json:"state"`
	Level  int    `json:"level"`
	Player Player `json:"player"`
	Enemy  *Enemy `json:"enemy,omitempty"`
	Stock  []Item `json:"stock,omitempty"`
}

// Snapshot captures the current game.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:  c.state,
		Level:  c.level,
		Player: c.player.Clone(),
		Stock:  c.ShopStock(),
	}
	if e, ok := c.Enemy(); ok {
		s.Enemy = &e
	}
	return s
}

// MarshalJSON encodes the current game as a snapshot.
func (c *Controller) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

// Restore creates a controller that continues the game in s.
func Restore(cfg config.Config, rng *rand.Rand, s Snapshot, opts ...Option) (*Controller, error) {
	c, err := NewController(cfg, rng, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.check(cfg.Rules); err != nil {
		return nil, err
	}
	if err := c.deck.RestoreInPlay(s.Player.Hand); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	p := s.Player.Clone()
	if p.Mods == nil {
		p.Mods = poker.NewModifiers()
	}
	c.player = &p
	c.level = s.Level
	c.state = s.State
	if s.Enemy != nil {
		e := *s.Enemy
		c.enemy = &e
	}
	c.stock = slices.Clone(s.Stock)
	c.logger.Debug("game restored", slog.String("state", string(c.state)), slog.Int("level", c.level))
	return c, nil
}

// RestoreJSON decodes a snapshot written by MarshalJSON and restores it.
func RestoreJSON(cfg config.Config, rng *rand.Rand, data []byte, opts ...Option) (*Controller, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return Restore(cfg, rng, s, opts...)
}

func (s Snapshot) check(rules config.Rules) error {
	switch s.State {
	case Init, ShopVisit, Victory, GameOver:
		if len(s.Player.Hand) != 0 && s.State != GameOver {
			return fmt.Errorf("%w: cards in hand outside combat", ErrBadSnapshot)
		}
	case SelectingHand:
		if s.Enemy == nil {
			return fmt.Errorf("%w: combat without an enemy", ErrBadSnapshot)
		}
	default:
		return fmt.Errorf("%w: state %q cannot be resumed", ErrBadSnapshot, s.State)
	}
	if s.Level < 1 || s.Level > rules.FinalLevel+1 {
		return fmt.Errorf("%w: level %d", ErrBadSnapshot, s.Level)
	}
	if len(s.Player.Hand) > rules.HandSize {
		return fmt.Errorf("%w: %d cards in hand", ErrBadSnapshot, len(s.Player.Hand))
	}
	if len(poker.Distinct(s.Player.Hand)) != len(s.Player.Hand) {
		return fmt.Errorf("%w: repeated card in hand", ErrBadSnapshot)
	}
	if s.Player.HP < 0 || s.Player.HP > s.Player.MaxHP {
		return fmt.Errorf("%w: player hp %d of %d", ErrBadSnapshot, s.Player.HP, s.Player.MaxHP)
	}
	if len(s.Player.Inventory) > s.Player.InventoryCap {
		return fmt.Errorf("%w: inventory over capacity", ErrBadSnapshot)
	}
	return nil
}
