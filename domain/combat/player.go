package combat

import (
	"fmt"
	"slices"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

// Item is an owned or purchasable item. Its effects are added to the
// player's modifiers while owned.
type Item config.ItemDef

// SellPrice is half the buy price, rounded down.
func (i Item) SellPrice() int {
	return i.Price / 2
}

type Player struct {
	HP                int              `json:"hp"`
	MaxHP             int              `json:"max_hp"`
	Gold              int              `json:"gold"`
	DiscardsUsed      int              `json:"discards_used"`
	DiscardsUsedTotal int              `json:"discards_used_total"`
	Hand              []poker.Card     `json:"hand"`
	Selected          []poker.Card     `json:"selected,omitempty"`
	Inventory         []Item           `json:"inventory"`
	InventoryCap      int              `json:"inventory_cap"`
	Mods              *poker.Modifiers `json:"mods"`
}

// NewPlayer creates a player at full HP with the rules' starting gold.
func NewPlayer(rules config.Rules) *Player {
	return &Player{
		HP:           rules.PlayerMaxHP,
		MaxHP:        rules.PlayerMaxHP,
		Gold:         rules.StartingGold,
		InventoryCap: rules.InventoryCap,
		Mods:         poker.NewModifiers(),
	}
}

// Alive reports whether the player has HP left.
func (p *Player) Alive() bool {
	return p.HP > 0
}

// TakeDamage lowers HP, never below zero, and returns the HP actually lost.
func (p *Player) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, p.HP)
	p.HP -= n
	return n
}

// Heal raises HP up to MaxHP and returns the HP actually gained.
func (p *Player) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, p.MaxHP-p.HP)
	if n < 0 {
		return 0
	}
	p.HP += n
	return n
}

// AddItem puts item in the inventory and applies its effects.
func (p *Player) AddItem(item Item) error {
	if len(p.Inventory) >= p.InventoryCap {
		return fmt.Errorf("%w: %d of %d slots used", ErrInventoryFull, len(p.Inventory), p.InventoryCap)
	}
	p.Inventory = append(p.Inventory, item)
	p.applyEffects(item, 1)
	return nil
}

// RemoveItem takes the item at index i out of the inventory and reverts its effects.
func (p *Player) RemoveItem(i int) (Item, error) {
	if i < 0 || i >= len(p.Inventory) {
		return Item{}, fmt.Errorf("%w: inventory index %d", ErrNoSuchItem, i)
	}
	item := p.Inventory[i]
	p.Inventory = slices.Delete(p.Inventory, i, i+1)
	p.applyEffects(item, -1)
	return item, nil
}

// Buy pays for item and adds it to the inventory. Nothing changes on failure.
func (p *Player) Buy(item Item) error {
	if p.Gold < item.Price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughGold, item.Name, item.Price, p.Gold)
	}
	if err := p.AddItem(item); err != nil {
		return err
	}
	p.Gold -= item.Price
	return nil
}

// Sell removes the item at index i for half its price and returns the gold gained.
func (p *Player) Sell(i int) (int, error) {
	item, err := p.RemoveItem(i)
	if err != nil {
		return 0, err
	}
	gain := item.SellPrice()
	p.Gold += gain
	return gain, nil
}

func (p *Player) applyEffects(item Item, sign int) {
	if p.Mods == nil {
		p.Mods = poker.NewModifiers()
	}
	for _, e := range item.Effects {
		amount := sign * e.Amount
		switch e.Kind {
		case config.EffectHandType:
			p.Mods.AddHandType(e.Hand, amount)
		case config.EffectSuit:
			p.Mods.AddSuit(e.Suit, amount)
		case config.EffectCardClass:
			p.Mods.AddCardClass(e.Class, amount)
		case config.EffectCardCount:
			p.Mods.AddCardCount(e.MinCards, amount)
		case config.EffectRejection:
			p.Mods.AddRejection(amount)
		case config.EffectMaxHP:
			p.MaxHP = max(1, p.MaxHP+amount)
			if amount > 0 {
				p.HP += amount
			}
			p.HP = min(p.HP, p.MaxHP)
		}
	}
}

// Clone returns a deep copy, safe to hand out as a snapshot.
func (p *Player) Clone() Player {
	c := *p
	c.Hand = slices.Clone(p.Hand)
	c.Selected = slices.Clone(p.Selected)
	c.Inventory = make([]Item, len(p.Inventory))
	for i, it := range p.Inventory {
		it.Effects = slices.Clone(it.Effects)
		c.Inventory[i] = it
	}
	c.Mods = p.Mods.Clone()
	return c
}
