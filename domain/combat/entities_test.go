package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

func TestEnemyArmor(t *testing.T) {
	e := SpawnEnemy(config.EnemyTemplate{Name: "Knight", HP: 50, AttackDamage: 1, AttackCooldown: 1,
		Passive: &config.Passive{Kind: config.PassiveArmor, Amount: 15}})

	require.Equal(t, 0, e.TakeHit(10))
	require.Equal(t, 50, e.HP)
	require.Equal(t, 5, e.TakeHit(20))
	require.Equal(t, 45, e.HP)
	require.Equal(t, 45, e.TakeHit(1000))
	require.Equal(t, 0, e.HP)
	require.True(t, e.Defeated())
	require.Equal(t, 0, e.Regenerate())
}

func TestEnemyEnrage(t *testing.T) {
	e := SpawnEnemy(config.EnemyTemplate{Name: "Berserker", HP: 50, AttackDamage: 10, AttackCooldown: 2,
		Passive: &config.Passive{Kind: config.PassiveEnrage, Amount: 3}})

	_, ok := e.Tick()
	require.False(t, ok)
	atk, ok := e.Tick()
	require.True(t, ok)
	require.Equal(t, 10, atk.Damage)
	require.Equal(t, 2, e.CurrentCooldown)
	e.Tick()
	atk, ok = e.Tick()
	require.True(t, ok)
	require.Equal(t, 13, atk.Damage)
}

func TestEnemyRegenerateCapsAtMax(t *testing.T) {
	e := SpawnEnemy(config.EnemyTemplate{Name: "Troll", HP: 50, AttackDamage: 1, AttackCooldown: 1,
		Passive: &config.Passive{Kind: config.PassiveRegenerate, Amount: 10}})
	e.TakeHit(4)
	require.Equal(t, 4, e.Regenerate())
	require.Equal(t, 50, e.HP)
	require.Equal(t, 0, e.Thorns())
}

func TestPlayerDamageAndHeal(t *testing.T) {
	p := NewPlayer(config.Default().Rules)
	require.Equal(t, 30, p.TakeDamage(30))
	require.Equal(t, 0, p.TakeDamage(-5))
	require.Equal(t, 20, p.Heal(20))
	require.Equal(t, 10, p.Heal(50))
	require.Equal(t, 100, p.HP)
	require.Equal(t, 100, p.TakeDamage(500))
	require.False(t, p.Alive())
}

func TestPlayerItemsDriveModifiers(t *testing.T) {
	rules := config.Default().Rules
	rules.InventoryCap = 2
	p := NewPlayer(rules)
	p.Gold = 20

	ribbon := Item{Name: "Red Ribbon", Price: 6, Effects: []config.Effect{
		{Kind: config.EffectSuit, Suit: poker.Heart, Amount: 5},
		{Kind: config.EffectCardCount, MinCards: 5, Amount: 10},
	}}
	heart := Item{Name: "Iron Heart", Price: 8, Effects: []config.Effect{{Kind: config.EffectMaxHP, Amount: 25}}}
	dice := Item{Name: "Twin Dice", Price: 5, Effects: []config.Effect{{Kind: config.EffectHandType, Hand: poker.Pair, Amount: 25}}}

	require.NoError(t, p.Buy(ribbon))
	require.Equal(t, 14, p.Gold)
	require.Equal(t, 5, p.Mods.Suit[poker.Heart])
	require.Equal(t, 10, p.Mods.CardCount[5])

	require.NoError(t, p.Buy(heart))
	require.Equal(t, 6, p.Gold)
	require.Equal(t, 125, p.MaxHP)
	require.Equal(t, 125, p.HP)

	err := p.Buy(dice)
	require.ErrorIs(t, err, ErrInventoryFull)
	require.Equal(t, 6, p.Gold)
	require.Empty(t, p.Mods.HandType)

	gain, err := p.Sell(0)
	require.NoError(t, err)
	require.Equal(t, 3, gain)
	require.Equal(t, 9, p.Gold)
	require.Empty(t, p.Mods.Suit)
	require.Empty(t, p.Mods.CardCount)

	p.TakeDamage(10)
	_, err = p.Sell(0)
	require.NoError(t, err)
	require.Equal(t, 100, p.MaxHP)
	require.Equal(t, 100, p.HP)
	require.True(t, p.Mods.IsZero())

	_, err = p.Sell(0)
	require.ErrorIs(t, err, ErrNoSuchItem)

	p.Gold = 1
	require.ErrorIs(t, p.Buy(dice), ErrNotEnoughGold)
	require.Empty(t, p.Inventory)
}

func TestPlayerCloneIsDeep(t *testing.T) {
	p := NewPlayer(config.Default().Rules)
	p.Hand = []poker.Card{poker.MustCard(poker.Spade, poker.Ace)}
	require.NoError(t, p.AddItem(Item{Name: "Crown", Effects: []config.Effect{{Kind: config.EffectCardClass, Class: poker.Honor, Amount: 4}}}))

	c := p.Clone()
	c.Hand[0] = poker.MustCard(poker.Club, 2)
	c.Mods.AddCardClass(poker.Honor, 100)
	c.Inventory[0].Effects[0].Amount = 99

	require.Equal(t, poker.MustCard(poker.Spade, poker.Ace), p.Hand[0])
	require.Equal(t, 4, p.Mods.CardClass[poker.Honor])
	require.Equal(t, 4, p.Inventory[0].Effects[0].Amount)
}
