package combat

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

type State string

const (
	Init          State = "init"
	SelectingHand State = "selecting_hand"
	PlayerTurn    State = "player_turn"
	EnemyTurn     State = "enemy_turn"
	ShopVisit     State = "shop_visit"
	Victory       State = "victory"
	GameOver      State = "game_over"
)

// Terminal reports whether no further action is accepted.
func (s State) Terminal() bool {
	return s == Victory || s == GameOver
}

// Controller runs a game: one encounter per level, from level 1 until the
// player clears the final level or runs out of HP. It is not safe for
// concurrent use; every call runs to completion and a failed call changes
// nothing.
type Controller struct {
	cfg      config.Config
	rng      *rand.Rand
	deck     poker.PokerDeck
	player   *Player
	enemy    *Enemy
	level    int
	state    State
	stock    []Item
	logger   *slog.Logger
	recorder Recorder
}

type Option func(*Controller)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sends every event to r, typically a ledger.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// NewController validates cfg and prepares a game at level 1 in the Init
// state. All randomness (deck order, enemy choice, shop stock) comes from rng.
func NewController(cfg config.Config, rng *rand.Rand, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("nil random generator")
	}
	c := &Controller{
		cfg:    cfg,
		rng:    rng,
		deck:   poker.NewPokerDeck(rng),
		player: NewPlayer(cfg.Rules),
		level:  1,
		state:  Init,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TurnResult reports everything a played hand caused.
type TurnResult struct {
	Score         poker.ScoreBreakdown `json:"score"`
	DamageDealt   int                  `json:"damage_dealt"`
	ThornsDamage  int                  `json:"thorns_damage,omitempty"`
	Regenerated   int                  `json:"regenerated,omitempty"`
	EnemyAttack   *Attack              `json:"enemy_attack,omitempty"`
	EnemyDefeated bool                 `json:"enemy_defeated"`
	GoldEarned    int                  `json:"gold_earned,omitempty"`
	State         State                `json:"state"`
}

// StartEncounter resets the pool, spawns the enemy for the current level
// and deals a full hand. Legal in Init and ShopVisit.
func (c *Controller) StartEncounter() error {
	if c.state != Init && c.state != ShopVisit {
		return fmt.Errorf("%w: cannot start an encounter in %s", ErrWrongState, c.state)
	}
	return c.startEncounter()
}

func (c *Controller) startEncounter() error {
	pool, err := c.cfg.EnemyPool(c.level)
	if err != nil {
		return err
	}
	enemy := SpawnEnemy(pool[c.rng.Intn(len(pool))])

	c.deck.Reset()
	hand, err := c.deck.DrawUniqueCards(c.cfg.Rules.HandSize, nil)
	if err != nil {
		return err
	}
	c.enemy = &enemy
	c.stock = nil
	c.player.Hand = hand
	c.player.Selected = nil
	c.player.DiscardsUsed = 0
	c.state = SelectingHand
	c.emit(Event{Kind: EventEncounterStarted, Cards: slices.Clone(hand)})
	return nil
}

// SelectHand plays exactly five cards from hand against the enemy.
//
// The cards are scored and the damage applied. A defeated enemy pays out
// gold and the game moves on to the shop, the next encounter or victory.
// Otherwise the enemy's cooldown ticks and it may attack; the played cards
// go back to the pool and the hand is refilled.
func (c *Controller) SelectHand(cards []poker.Card) (TurnResult, error) {
	if c.state != SelectingHand {
		return TurnResult{}, fmt.Errorf("%w: cannot play a hand in %s", ErrWrongState, c.state)
	}
	if err := c.checkSelection(cards, poker.HandSize, poker.HandSize); err != nil {
		return TurnResult{}, err
	}
	score, err := poker.ScoreDetailed(cards, c.player.Mods)
	if err != nil {
		return TurnResult{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	c.state = PlayerTurn
	c.player.Selected = slices.Clone(cards)
	res := TurnResult{Score: score}
	res.DamageDealt = c.enemy.TakeHit(score.Total)
	if res.DamageDealt > 0 {
		res.ThornsDamage = c.player.TakeDamage(c.enemy.Thorns())
	}
	c.emit(Event{
		Kind:     EventHandPlayed,
		Cards:    slices.Clone(cards),
		Category: score.Classification.Category.String(),
		Damage:   res.DamageDealt,
	})

	if c.enemy.Defeated() {
		res.EnemyDefeated = true
		res.GoldEarned = c.completeEncounter()
		res.State = c.state
		return res, nil
	}

	c.state = EnemyTurn
	if c.player.Alive() {
		if atk, ok := c.enemy.Tick(); ok {
			dealt := c.player.TakeDamage(atk.Damage)
			res.EnemyAttack = &Attack{Damage: dealt}
			c.emit(Event{Kind: EventEnemyAttacked, Damage: dealt})
		}
		res.Regenerated = c.enemy.Regenerate()
	}
	if !c.player.Alive() {
		c.state = GameOver
		c.emit(Event{Kind: EventGameOver})
		res.State = c.state
		return res, nil
	}

	c.replace(cards)
	c.state = SelectingHand
	res.State = c.state
	return res, nil
}

// Discard swaps up to five cards from hand for new ones. It uses one of
// the encounter's discards and does not give the enemy a turn.
func (c *Controller) Discard(cards []poker.Card) error {
	if c.state != SelectingHand {
		return fmt.Errorf("%w: cannot discard in %s", ErrWrongState, c.state)
	}
	if c.player.DiscardsUsed >= c.cfg.Rules.DiscardLimit {
		return fmt.Errorf("%w: %d of %d used", ErrDiscardLimit, c.player.DiscardsUsed, c.cfg.Rules.DiscardLimit)
	}
	if err := c.checkSelection(cards, 1, poker.HandSize); err != nil {
		return err
	}
	c.replace(cards)
	c.player.DiscardsUsed++
	c.player.DiscardsUsedTotal++
	c.emit(Event{Kind: EventDiscarded, Cards: slices.Clone(cards)})
	return nil
}

// checkSelection verifies that cards are between lo and hi distinct cards, all in hand.
func (c *Controller) checkSelection(cards []poker.Card, lo, hi int) error {
	if len(cards) < lo || len(cards) > hi {
		if lo == hi {
			return fmt.Errorf("%w: need %d cards, got %d", ErrInvalidSelection, lo, len(cards))
		}
		return fmt.Errorf("%w: need %d to %d cards, got %d", ErrInvalidSelection, lo, hi, len(cards))
	}
	if len(poker.Distinct(cards)) != len(cards) {
		return fmt.Errorf("%w: repeated card", ErrInvalidSelection)
	}
	for _, card := range cards {
		if !poker.Contains(c.player.Hand, card) {
			return fmt.Errorf("%w: %s is not in hand", ErrInvalidSelection, card.Code())
		}
	}
	return nil
}

// replace draws unique replacements for the given hand cards, then returns
// those cards to the pool so they cannot come straight back.
func (c *Controller) replace(cards []poker.Card) {
	kept := poker.Without(c.player.Hand, cards)
	drawn, err := c.deck.DrawUniqueCards(len(cards), kept)
	if err != nil {
		c.logger.Warn("hand refill came up short", slog.Int("wanted", len(cards)), slog.Int("drawn", len(drawn)), slog.Any("error", err))
	}
	if err := c.deck.ReturnCards(cards...); err != nil {
		c.logger.Error("failed to return cards", slog.Any("error", err))
	}
	c.player.Hand = append(kept, drawn...)
	c.player.Selected = nil
}

// completeEncounter pays out gold for the cleared level, advances the level
// and routes to victory, the shop or the next encounter.
func (c *Controller) completeEncounter() int {
	gold := c.cfg.Rules.GoldBase + c.level*c.cfg.Rules.GoldPerLevel
	c.player.Gold += gold
	c.emit(Event{Kind: EventEncounterWon, Gold: gold})

	if err := c.deck.ReturnCards(c.player.Hand...); err != nil {
		c.logger.Error("failed to return hand", slog.Any("error", err))
	}
	c.player.Hand = nil
	c.player.Selected = nil
	c.level++

	switch {
	case c.level > c.cfg.Rules.FinalLevel:
		c.state = Victory
		c.emit(Event{Kind: EventVictory})
	case c.cfg.Rules.ShopEnabled:
		c.state = ShopVisit
		c.stock = c.rollStock()
		c.emit(Event{Kind: EventShopOpened})
	default:
		if err := c.startEncounter(); err != nil {
			// The config was validated, so only a broken enemy pool ends up here.
			c.logger.Error("failed to start next encounter", slog.Any("error", err))
			c.state = ShopVisit
		}
	}
	return gold
}

func (c *Controller) rollStock() []Item {
	catalog := c.cfg.Shop.Items
	n := min(c.cfg.Shop.Slots, len(catalog))
	stock := make([]Item, 0, n)
	for _, i := range c.rng.Perm(len(catalog))[:n] {
		def := catalog[i]
		def.Effects = slices.Clone(def.Effects)
		stock = append(stock, Item(def))
	}
	return stock
}

// ShopStock lists the items for sale during a shop visit.
func (c *Controller) ShopStock() []Item {
	return slices.Clone(c.stock)
}

// BuyItem buys the stock item at index i.
func (c *Controller) BuyItem(i int) error {
	if c.state != ShopVisit {
		return fmt.Errorf("%w: cannot buy in %s", ErrWrongState, c.state)
	}
	if i < 0 || i >= len(c.stock) {
		return fmt.Errorf("%w: stock index %d", ErrNoSuchItem, i)
	}
	item := c.stock[i]
	if err := c.player.Buy(item); err != nil {
		return err
	}
	c.stock = slices.Delete(c.stock, i, i+1)
	c.emit(Event{Kind: EventItemBought, Item: item.Name, Gold: -item.Price})
	return nil
}

// SellItem sells the inventory item at index i for half its price.
func (c *Controller) SellItem(i int) (int, error) {
	if c.state != ShopVisit {
		return 0, fmt.Errorf("%w: cannot sell in %s", ErrWrongState, c.state)
	}
	if i < 0 || i >= len(c.player.Inventory) {
		return 0, fmt.Errorf("%w: inventory index %d", ErrNoSuchItem, i)
	}
	name := c.player.Inventory[i].Name
	gain, err := c.player.Sell(i)
	if err != nil {
		return 0, err
	}
	c.emit(Event{Kind: EventItemSold, Item: name, Gold: gain})
	return gain, nil
}

// LeaveShop ends the shop visit and starts the next encounter.
func (c *Controller) LeaveShop() error {
	if c.state != ShopVisit {
		return fmt.Errorf("%w: not in the shop", ErrWrongState)
	}
	return c.startEncounter()
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Level returns the current level, starting at 1.
func (c *Controller) Level() int {
	return c.level
}

// Rules returns the rules the game runs with.
func (c *Controller) Rules() config.Rules {
	return c.cfg.Rules
}

// Player returns a copy of the player.
func (c *Controller) Player() Player {
	return c.player.Clone()
}

// Enemy returns a copy of the current enemy, if an encounter has started.
func (c *Controller) Enemy() (Enemy, bool) {
	if c.enemy == nil {
		return Enemy{}, false
	}
	return *c.enemy, true
}

// Hand returns a copy of the player's hand.
func (c *Controller) Hand() []poker.Card {
	return slices.Clone(c.player.Hand)
}

// DiscardsLeft is the number of discards still allowed in this encounter.
func (c *Controller) DiscardsLeft() int {
	return max(0, c.cfg.Rules.DiscardLimit-c.player.DiscardsUsed)
}

// PoolRemaining is the number of cards left to draw.
func (c *Controller) PoolRemaining() int {
	return c.deck.Remaining()
}

// CheckPool verifies the draw pool invariant.
func (c *Controller) CheckPool() error {
	return c.deck.CheckInvariant()
}

// Suggest returns the highest scoring play in hand under the player's modifiers.
func (c *Controller) Suggest() ([]poker.Card, poker.ScoreBreakdown, error) {
	if c.state != SelectingHand {
		return nil, poker.ScoreBreakdown{}, fmt.Errorf("%w: nothing to suggest in %s", ErrWrongState, c.state)
	}
	return poker.BestPlay(c.player.Hand, poker.HandSize, c.player.Mods)
}
