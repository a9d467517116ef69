package config

import (
	"fmt"
	"strings"

	"github.com/luca-patrignani/poker-battler/domain/poker"
)

// Default returns the standard balance: 8 card hands, 3 discards per
// encounter, 8 levels and a 6 slot inventory.
func Default() Config {
	return Config{
		Rules: Rules{
			HandSize:     8,
			DiscardLimit: 3,
			InventoryCap: 6,
			FinalLevel:   8,
			PlayerMaxHP:  100,
			StartingGold: 10,
			GoldBase:     10,
			GoldPerLevel: 5,
			ShopEnabled:  true,
		},
		Scaling: Scaling{
			HPPerLevel:     0.25,
			AttackPerLevel: 0.15,
		},
		Enemies: map[int][]EnemyTemplate{
			1: {
				{Name: "Slime", HP: 120, AttackDamage: 8, AttackCooldown: 3},
				{Name: "Rat King", HP: 100, AttackDamage: 10, AttackCooldown: 3},
			},
			2: {
				{Name: "Goblin", HP: 180, AttackDamage: 12, AttackCooldown: 3},
				{Name: "Mossback", HP: 220, AttackDamage: 10, AttackCooldown: 3, Passive: &Passive{Kind: PassiveRegenerate, Amount: 10}},
			},
			3: {
				{Name: "Bandit", HP: 260, AttackDamage: 15, AttackCooldown: 2},
				{Name: "Bramble", HP: 240, AttackDamage: 12, AttackCooldown: 3, Passive: &Passive{Kind: PassiveThorns, Amount: 3}},
			},
			4: {
				{Name: "Knight", HP: 360, AttackDamage: 18, AttackCooldown: 3, Passive: &Passive{Kind: PassiveArmor, Amount: 15}},
				{Name: "Berserker", HP: 320, AttackDamage: 14, AttackCooldown: 2, Passive: &Passive{Kind: PassiveEnrage, Amount: 3}},
			},
			6: {
				{Name: "Warlock", HP: 520, AttackDamage: 22, AttackCooldown: 2, Passive: &Passive{Kind: PassiveRegenerate, Amount: 25}},
				{Name: "Golem", HP: 650, AttackDamage: 25, AttackCooldown: 3, Passive: &Passive{Kind: PassiveArmor, Amount: 30}},
			},
			8: {
				{Name: "Dragon", HP: 1000, AttackDamage: 30, AttackCooldown: 2, Passive: &Passive{Kind: PassiveEnrage, Amount: 5}},
			},
		},
		Shop: Shop{
			Slots: 3,
			Items: []ItemDef{
				{Name: "Red Ribbon", Description: "Hearts hit harder.", Price: 6,
					Effects: []Effect{{Kind: EffectSuit, Suit: poker.Heart, Amount: 5}}},
				{Name: "Black Cat", Description: "Spades hit harder.", Price: 6,
					Effects: []Effect{{Kind: EffectSuit, Suit: poker.Spade, Amount: 5}}},
				{Name: "Crown", Description: "Face cards and aces score more.", Price: 8,
					Effects: []Effect{{Kind: EffectCardClass, Class: poker.Honor, Amount: 4}}},
				{Name: "Abacus", Description: "Number cards score more.", Price: 7,
					Effects: []Effect{{Kind: EffectCardClass, Class: poker.Number, Amount: 3}}},
				{Name: "Twin Dice", Description: "Pairs are worth more.", Price: 5,
					Effects: []Effect{{Kind: EffectHandType, Hand: poker.Pair, Amount: 25}}},
				{Name: "Tide Charm", Description: "Flushes are worth more.", Price: 9,
					Effects: []Effect{{Kind: EffectHandType, Hand: poker.Flush, Amount: 60}}},
				{Name: "Full Quiver", Description: "Playing five cards pays off.", Price: 6,
					Effects: []Effect{{Kind: EffectCardCount, MinCards: 5, Amount: 15}}},
				{Name: "Junk Drawer", Description: "Kickers are not wasted.", Price: 7,
					Effects: []Effect{{Kind: EffectRejection, Amount: 6}}},
				{Name: "Iron Heart", Description: "More maximum HP.", Price: 8,
					Effects: []Effect{{Kind: EffectMaxHP, Amount: 25}}},
			},
		},
	}
}

// Casual gives the player more HP and discards.
func Casual() Config {
	cfg := Default()
	cfg.Rules.PlayerMaxHP = 150
	cfg.Rules.DiscardLimit = 5
	cfg.Rules.StartingGold = 20
	return cfg
}

// Hard shrinks the player's margins and grows enemies faster.
func Hard() Config {
	cfg := Default()
	cfg.Rules.PlayerMaxHP = 80
	cfg.Rules.DiscardLimit = 2
	cfg.Rules.GoldPerLevel = 3
	cfg.Scaling.HPPerLevel = 0.4
	cfg.Scaling.AttackPerLevel = 0.25
	return cfg
}

// Preset returns the named difficulty: "normal" (or empty), "casual" or "hard".
func Preset(name string) (Config, error) {
	switch strings.ToLower(name) {
	case "", "normal", "default":
		return Default(), nil
	case "casual":
		return Casual(), nil
	case "hard":
		return Hard(), nil
	}
	return Config{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
}
