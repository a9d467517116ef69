package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/deck"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

// testConfig has one enemy per level so encounters are predictable.
func testConfig(enemy config.EnemyTemplate) config.Config {
	cfg := config.Default()
	cfg.Enemies = map[int][]config.EnemyTemplate{1: {enemy}}
	cfg.Rules.FinalLevel = 3
	cfg.Scaling = config.Scaling{}
	return cfg
}

var dummy = config.EnemyTemplate{Name: "Dummy", HP: 100000, AttackDamage: 5, AttackCooldown: 2}

type eventLog struct {
	events []Event
	err    error
}

func (l *eventLog) Record(ev Event) error {
	l.events = append(l.events, ev)
	return l.err
}

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func started(t *testing.T, cfg config.Config, opts ...Option) *Controller {
	t.Helper()
	c, err := NewController(cfg, deck.NewSeededRand(1), opts...)
	require.NoError(t, err)
	require.NoError(t, c.StartEncounter())
	return c
}

func notInHand(hand []poker.Card) poker.Card {
	for _, s := range poker.Suits {
		for r := poker.MinRank; r <= poker.MaxRank; r++ {
			c := poker.MustCard(s, r)
			if !poker.Contains(hand, c) {
				return c
			}
		}
	}
	panic("hand holds every card")
}

func TestNewControllerValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.HandSize = 3
	_, err := NewController(cfg, deck.NewSeededRand(1))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = NewController(config.Default(), nil)
	require.Error(t, err)

	c, err := NewController(config.Default(), deck.NewSeededRand(1))
	require.NoError(t, err)
	require.Equal(t, Init, c.State())
	require.Equal(t, 1, c.Level())
	_, ok := c.Enemy()
	require.False(t, ok)
}

func TestStartEncounter(t *testing.T) {
	c := started(t, testConfig(dummy))

	require.Equal(t, SelectingHand, c.State())
	hand := c.Hand()
	require.Len(t, hand, 8)
	require.Len(t, poker.Distinct(hand), 8)
	require.Equal(t, deck.StandardSize-8, c.PoolRemaining())
	require.NoError(t, c.CheckPool())

	e, ok := c.Enemy()
	require.True(t, ok)
	require.Equal(t, "Dummy", e.Name)
	require.Equal(t, e.MaxHP, e.HP)

	require.ErrorIs(t, c.StartEncounter(), ErrWrongState)
}

func TestActionsBeforeEncounter(t *testing.T) {
	c, err := NewController(testConfig(dummy), deck.NewSeededRand(1))
	require.NoError(t, err)

	_, err = c.SelectHand(nil)
	require.ErrorIs(t, err, ErrWrongState)
	require.ErrorIs(t, c.Discard(nil), ErrWrongState)
	require.ErrorIs(t, c.BuyItem(0), ErrWrongState)
	require.ErrorIs(t, c.LeaveShop(), ErrWrongState)
	_, _, err = c.Suggest()
	require.ErrorIs(t, err, ErrWrongState)
}

func TestSelectHandRejectsInvalidSelection(t *testing.T) {
	c := started(t, testConfig(dummy))
	hand := c.Hand()
	enemy, _ := c.Enemy()

	bad := [][]poker.Card{
		hand[:4],
		hand[:6],
		{hand[0], hand[0], hand[1], hand[2], hand[3]},
		{hand[0], hand[1], hand[2], hand[3], notInHand(hand)},
	}
	for _, sel := range bad {
		_, err := c.SelectHand(sel)
		require.ErrorIs(t, err, ErrInvalidSelection)
	}

	require.Equal(t, hand, c.Hand())
	after, _ := c.Enemy()
	require.Equal(t, enemy, after)
	require.Equal(t, SelectingHand, c.State())
	require.NoError(t, c.CheckPool())
}

func TestSelectHandDamagesAndRefills(t *testing.T) {
	c := started(t, testConfig(dummy))
	hand := c.Hand()
	played := hand[:5]
	want, err := poker.Score(played, nil)
	require.NoError(t, err)

	res, err := c.SelectHand(played)
	require.NoError(t, err)
	require.Equal(t, want, res.Score.Total)
	require.Equal(t, want, res.DamageDealt)
	require.False(t, res.EnemyDefeated)
	require.Equal(t, SelectingHand, res.State)

	e, _ := c.Enemy()
	require.Equal(t, dummy.HP-want, e.HP)

	newHand := c.Hand()
	require.Len(t, newHand, 8)
	require.Len(t, poker.Distinct(newHand), 8)
	for _, card := range played {
		require.False(t, poker.Contains(newHand, card), "played card %s came straight back", card.Code())
	}
	for _, card := range hand[5:] {
		require.True(t, poker.Contains(newHand, card))
	}
	require.Equal(t, deck.StandardSize-8, c.PoolRemaining())
	require.NoError(t, c.CheckPool())
}

func TestEnemyAttacksOnCooldown(t *testing.T) {
	c := started(t, testConfig(dummy))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Nil(t, res.EnemyAttack)
	e, _ := c.Enemy()
	require.Equal(t, 1, e.CurrentCooldown)

	res, err = c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.NotNil(t, res.EnemyAttack)
	require.Equal(t, 5, res.EnemyAttack.Damage)
	require.Equal(t, 95, c.Player().HP)
	e, _ = c.Enemy()
	require.Equal(t, 2, e.CurrentCooldown)
}

func TestDiscard(t *testing.T) {
	c := started(t, testConfig(dummy))
	enemy, _ := c.Enemy()

	for i := range 3 {
		hand := c.Hand()
		discarded := hand[:3]
		require.NoError(t, c.Discard(discarded))
		newHand := c.Hand()
		require.Len(t, newHand, 8)
		for _, card := range discarded {
			require.False(t, poker.Contains(newHand, card))
		}
		require.Equal(t, i+1, c.Player().DiscardsUsed)
		require.NoError(t, c.CheckPool())
	}
	require.Equal(t, 0, c.DiscardsLeft())

	// the enemy gets no turn from discarding
	after, _ := c.Enemy()
	require.Equal(t, enemy.CurrentCooldown, after.CurrentCooldown)

	hand := c.Hand()
	err := c.Discard(hand[:1])
	require.ErrorIs(t, err, ErrDiscardLimit)
	require.Equal(t, hand, c.Hand())
	require.Equal(t, 3, c.Player().DiscardsUsed)
	require.Equal(t, 3, c.Player().DiscardsUsedTotal)
}

func TestDiscardRejectsInvalidSelection(t *testing.T) {
	c := started(t, testConfig(dummy))
	hand := c.Hand()

	require.ErrorIs(t, c.Discard(nil), ErrInvalidSelection)
	require.ErrorIs(t, c.Discard(hand[:6]), ErrInvalidSelection)
	require.ErrorIs(t, c.Discard([]poker.Card{notInHand(hand)}), ErrInvalidSelection)
	require.Equal(t, 0, c.Player().DiscardsUsed)
	require.Equal(t, hand, c.Hand())
}

func TestDefeatPaysGoldAndOpensShop(t *testing.T) {
	weak := config.EnemyTemplate{Name: "Weakling", HP: 1, AttackDamage: 5, AttackCooldown: 2}
	log := &eventLog{}
	c := started(t, testConfig(weak), WithRecorder(log))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.True(t, res.EnemyDefeated)
	require.Equal(t, 1, res.DamageDealt)
	require.Equal(t, 15, res.GoldEarned)
	require.Equal(t, ShopVisit, res.State)

	require.Equal(t, 2, c.Level())
	require.Equal(t, 25, c.Player().Gold)
	require.Empty(t, c.Hand())
	require.Equal(t, deck.StandardSize, c.PoolRemaining())
	require.Len(t, c.ShopStock(), 3)
	require.Equal(t, []EventKind{EventEncounterStarted, EventHandPlayed, EventEncounterWon, EventShopOpened}, log.kinds())

	require.NoError(t, c.LeaveShop())
	require.Equal(t, SelectingHand, c.State())
	require.Len(t, c.Hand(), 8)
}

func TestNoShopStartsNextEncounter(t *testing.T) {
	weak := config.EnemyTemplate{Name: "Weakling", HP: 1, AttackDamage: 5, AttackCooldown: 2}
	cfg := testConfig(weak)
	cfg.Rules.ShopEnabled = false
	c := started(t, cfg)

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, SelectingHand, res.State)
	require.Equal(t, 2, c.Level())
	require.Len(t, c.Hand(), 8)
	require.Equal(t, 0, c.Player().DiscardsUsed)
	require.NoError(t, c.CheckPool())
}

func TestVictoryAfterFinalLevel(t *testing.T) {
	weak := config.EnemyTemplate{Name: "Weakling", HP: 1, AttackDamage: 5, AttackCooldown: 2}
	cfg := testConfig(weak)
	cfg.Rules.FinalLevel = 1
	log := &eventLog{}
	c := started(t, cfg, WithRecorder(log))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, Victory, res.State)
	require.True(t, c.State().Terminal())
	require.Equal(t, EventVictory, log.kinds()[len(log.events)-1])

	require.ErrorIs(t, c.StartEncounter(), ErrWrongState)
	_, err = c.SelectHand(nil)
	require.ErrorIs(t, err, ErrWrongState)
}

func TestGameOver(t *testing.T) {
	brute := config.EnemyTemplate{Name: "Brute", HP: 100000, AttackDamage: 500, AttackCooldown: 1}
	c := started(t, testConfig(brute))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, GameOver, res.State)
	require.Equal(t, 100, res.EnemyAttack.Damage)
	require.Equal(t, 0, c.Player().HP)
	require.ErrorIs(t, c.Discard(c.Hand()[:1]), ErrWrongState)
}

func TestThornsCanEndTheGame(t *testing.T) {
	spiky := config.EnemyTemplate{Name: "Spiky", HP: 100000, AttackDamage: 1, AttackCooldown: 5,
		Passive: &config.Passive{Kind: config.PassiveThorns, Amount: 60}}
	c := started(t, testConfig(spiky))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, 60, res.ThornsDamage)
	require.Equal(t, SelectingHand, res.State)

	res, err = c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, 40, res.ThornsDamage)
	require.Equal(t, GameOver, res.State)
	require.Nil(t, res.EnemyAttack)
}

func TestRegenerateAfterSurvivedTurn(t *testing.T) {
	troll := config.EnemyTemplate{Name: "Troll", HP: 100000, AttackDamage: 1, AttackCooldown: 5,
		Passive: &config.Passive{Kind: config.PassiveRegenerate, Amount: 7}}
	c := started(t, testConfig(troll))

	res, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Equal(t, 7, res.Regenerated)
	e, _ := c.Enemy()
	require.Equal(t, troll.HP-res.DamageDealt+7, e.HP)
}

func TestSuggest(t *testing.T) {
	c := started(t, testConfig(dummy))
	best, score, err := c.Suggest()
	require.NoError(t, err)
	require.Len(t, best, poker.HandSize)
	for _, card := range best {
		require.True(t, poker.Contains(c.Hand(), card))
	}

	res, err := c.SelectHand(best)
	require.NoError(t, err)
	require.Equal(t, score.Total, res.Score.Total)
}

func TestRecorderFailureDoesNotStopTheGame(t *testing.T) {
	log := &eventLog{err: errors.New("disk full")}
	c := started(t, testConfig(dummy), WithRecorder(log))

	_, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.Len(t, log.events, 2)
	require.Equal(t, 1, log.events[1].Level)
	require.Equal(t, "Dummy", log.events[1].Enemy)
	require.Len(t, log.events[1].Cards, 5)
}

func TestSeededGamesAgree(t *testing.T) {
	a := started(t, config.Default())
	b := started(t, config.Default())
	require.Equal(t, a.Hand(), b.Hand())
	ea, _ := a.Enemy()
	eb, _ := b.Enemy()
	require.Equal(t, ea, eb)
}
