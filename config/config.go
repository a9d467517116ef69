package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/luca-patrignani/poker-battler/domain/poker"
)

// ErrInvalidConfig is returned by Validate and by loaders for rejected configs.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Rules   Rules                   `yaml:"rules" json:"rules"`
	Scaling Scaling                 `yaml:"scaling" json:"scaling"`
	Enemies map[int][]EnemyTemplate `yaml:"enemies" json:"enemies"`
	Shop    Shop                    `yaml:"shop" json:"shop"`
}

type Rules struct {
	HandSize     int  `yaml:"hand_size" json:"hand_size"`
	DiscardLimit int  `yaml:"discard_limit" json:"discard_limit"`
	InventoryCap int  `yaml:"inventory_cap" json:"inventory_cap"`
	FinalLevel   int  `yaml:"final_level" json:"final_level"`
	PlayerMaxHP  int  `yaml:"player_max_hp" json:"player_max_hp"`
	StartingGold int  `yaml:"starting_gold" json:"starting_gold"`
	GoldBase     int  `yaml:"gold_base" json:"gold_base"`
	GoldPerLevel int  `yaml:"gold_per_level" json:"gold_per_level"`
	ShopEnabled  bool `yaml:"shop_enabled" json:"shop_enabled"`
}

// Scaling grows enemies on levels that have no pool of their own. The
// nearest lower pool is used and every missing level adds these fractions
// of the template's base stats.
type Scaling struct {
	HPPerLevel     float64 `yaml:"hp_per_level" json:"hp_per_level"`
	AttackPerLevel float64 `yaml:"attack_per_level" json:"attack_per_level"`
}

type PassiveKind string

const (
	PassiveNone       PassiveKind = ""
	PassiveArmor      PassiveKind = "armor"      // flat reduction of every hit taken
	PassiveRegenerate PassiveKind = "regenerate" // heals after each player action it survives
	PassiveThorns     PassiveKind = "thorns"     // damages the player each time it is hit
	PassiveEnrage     PassiveKind = "enrage"     // attack grows after every attack
)

type Passive struct {
	Kind   PassiveKind `yaml:"kind" json:"kind"`
	Amount int         `yaml:"amount" json:"amount"`
}

type EnemyTemplate struct {
	Name           string   `yaml:"name" json:"name"`
	HP             int      `yaml:"hp" json:"hp"`
	AttackDamage   int      `yaml:"attack_damage" json:"attack_damage"`
	AttackCooldown int      `yaml:"attack_cooldown" json:"attack_cooldown"`
	Passive        *Passive `yaml:"passive,omitempty" json:"passive,omitempty"`
}

type Shop struct {
	Slots int       `yaml:"slots" json:"slots"`
	Items []ItemDef `yaml:"items" json:"items"`
}

type ItemDef struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Price       int      `yaml:"price" json:"price"`
	Effects     []Effect `yaml:"effects" json:"effects"`
}

type EffectKind string

const (
	EffectHandType  EffectKind = "hand_type"
	EffectSuit      EffectKind = "suit"
	EffectCardClass EffectKind = "card_class"
	EffectCardCount EffectKind = "card_count"
	EffectRejection EffectKind = "rejection"
	EffectMaxHP     EffectKind = "max_hp"
)

// Effect is one additive bonus granted while an item is owned. Only the
// field matching Kind is read.
type Effect struct {
	Kind     EffectKind         `yaml:"kind" json:"kind"`
	Hand     poker.HandCategory `yaml:"hand,omitempty" json:"hand,omitempty"`
	Suit     poker.Suit         `yaml:"suit,omitempty" json:"suit,omitempty"`
	Class    poker.CardClass    `yaml:"class,omitempty" json:"class,omitempty"`
	MinCards int                `yaml:"min_cards,omitempty" json:"min_cards,omitempty"`
	Amount   int                `yaml:"amount" json:"amount"`
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	return LoadOver(Default(), path)
}

// LoadOver reads a YAML file over base.
func LoadOver(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseOver(base, data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	return ParseOver(Default(), data)
}

// ParseOver decodes YAML over base and validates the result. Keys absent
// from data keep the base value; enemy levels present in data replace the
// base pool for that level.
func ParseOver(base Config, data []byte) (Config, error) {
	cfg := base
	cfg.Enemies = make(map[int][]EnemyTemplate, len(base.Enemies))
	for l, pool := range base.Enemies {
		cfg.Enemies[l] = pool
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Levels returns the levels that have an enemy pool, ascending.
func (c Config) Levels() []int {
	levels := make([]int, 0, len(c.Enemies))
	for l := range c.Enemies {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}

// EnemyPool returns the templates for level, already scaled. Levels with no
// pool borrow the nearest lower one.
func (c Config) EnemyPool(level int) ([]EnemyTemplate, error) {
	base := 0
	for _, l := range c.Levels() {
		if l <= level {
			base = l
		}
	}
	if base == 0 {
		return nil, fmt.Errorf("%w: no enemy pool at or below level %d", ErrInvalidConfig, level)
	}
	gap := float64(level - base)
	pool := make([]EnemyTemplate, len(c.Enemies[base]))
	for i, t := range c.Enemies[base] {
		t.HP += int(float64(t.HP) * c.Scaling.HPPerLevel * gap)
		t.AttackDamage += int(float64(t.AttackDamage) * c.Scaling.AttackPerLevel * gap)
		if t.Passive != nil {
			p := *t.Passive
			t.Passive = &p
		}
		pool[i] = t
	}
	return pool, nil
}

// Validate checks the rules, every enemy pool reachable up to FinalLevel and the shop catalog.
func (c Config) Validate() error {
	r := c.Rules
	switch {
	case r.HandSize < poker.HandSize || r.HandSize > 52:
		return fmt.Errorf("%w: hand_size must be between %d and 52, got %d", ErrInvalidConfig, poker.HandSize, r.HandSize)
	case r.DiscardLimit < 0:
		return fmt.Errorf("%w: discard_limit must not be negative", ErrInvalidConfig)
	case r.InventoryCap < 0:
		return fmt.Errorf("%w: inventory_cap must not be negative", ErrInvalidConfig)
	case r.FinalLevel < 1:
		return fmt.Errorf("%w: final_level must be at least 1", ErrInvalidConfig)
	case r.PlayerMaxHP < 1:
		return fmt.Errorf("%w: player_max_hp must be positive", ErrInvalidConfig)
	case r.StartingGold < 0 || r.GoldBase < 0 || r.GoldPerLevel < 0:
		return fmt.Errorf("%w: gold amounts must not be negative", ErrInvalidConfig)
	case c.Scaling.HPPerLevel < 0 || c.Scaling.AttackPerLevel < 0:
		return fmt.Errorf("%w: scaling must not be negative", ErrInvalidConfig)
	}
	if _, ok := c.Enemies[1]; !ok {
		return fmt.Errorf("%w: level 1 needs an enemy pool", ErrInvalidConfig)
	}
	for level, pool := range c.Enemies {
		if level < 1 {
			return fmt.Errorf("%w: enemy level %d", ErrInvalidConfig, level)
		}
		if len(pool) == 0 {
			return fmt.Errorf("%w: empty enemy pool at level %d", ErrInvalidConfig, level)
		}
		for _, t := range pool {
			if err := t.validate(); err != nil {
				return fmt.Errorf("level %d: %w", level, err)
			}
		}
	}
	if c.Shop.Slots < 0 {
		return fmt.Errorf("%w: shop slots must not be negative", ErrInvalidConfig)
	}
	for _, item := range c.Shop.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t EnemyTemplate) validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: enemy without a name", ErrInvalidConfig)
	case t.HP < 1:
		return fmt.Errorf("%w: enemy %s hp must be positive", ErrInvalidConfig, t.Name)
	case t.AttackDamage < 0:
		return fmt.Errorf("%w: enemy %s attack must not be negative", ErrInvalidConfig, t.Name)
	case t.AttackCooldown < 1:
		return fmt.Errorf("%w: enemy %s cooldown must be at least 1", ErrInvalidConfig, t.Name)
	}
	if t.Passive != nil {
		switch t.Passive.Kind {
		case PassiveNone, PassiveArmor, PassiveRegenerate, PassiveThorns, PassiveEnrage:
		default:
			return fmt.Errorf("%w: enemy %s has unknown passive %q", ErrInvalidConfig, t.Name, t.Passive.Kind)
		}
		if t.Passive.Amount < 0 {
			return fmt.Errorf("%w: enemy %s passive amount must not be negative", ErrInvalidConfig, t.Name)
		}
	}
	return nil
}

// Validate checks the item's price and effects.
func (i ItemDef) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: item without a name", ErrInvalidConfig)
	}
	if i.Price < 0 {
		return fmt.Errorf("%w: item %s price must not be negative", ErrInvalidConfig, i.Name)
	}
	for _, e := range i.Effects {
		switch e.Kind {
		case EffectHandType, EffectSuit, EffectCardClass, EffectRejection, EffectMaxHP:
		case EffectCardCount:
			if e.MinCards < 1 || e.MinCards > poker.HandSize {
				return fmt.Errorf("%w: item %s min_cards must be between 1 and %d", ErrInvalidConfig, i.Name, poker.HandSize)
			}
		default:
			return fmt.Errorf("%w: item %s has unknown effect %q", ErrInvalidConfig, i.Name, e.Kind)
		}
	}
	return nil
}
