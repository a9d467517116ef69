package combat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/deck"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := shopConfig()
	c := started(t, cfg)
	_, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)
	require.NoError(t, c.BuyItem(stockIndex(t, c, "Fair")))
	require.NoError(t, c.LeaveShop())
	require.NoError(t, c.Discard(c.Hand()[:2]))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	restored, err := RestoreJSON(cfg, deck.NewSeededRand(99), data)
	require.NoError(t, err)
	require.Equal(t, c.State(), restored.State())
	require.Equal(t, c.Level(), restored.Level())
	require.Equal(t, c.Hand(), restored.Hand())
	require.Equal(t, c.Player(), restored.Player())
	require.Equal(t, c.DiscardsLeft(), restored.DiscardsLeft())
	e1, _ := c.Enemy()
	e2, ok := restored.Enemy()
	require.True(t, ok)
	require.Equal(t, e1, e2)

	require.Equal(t, deck.StandardSize-len(c.Hand()), restored.PoolRemaining())
	require.NoError(t, restored.CheckPool())

	// the restored game keeps going
	_, err = restored.SelectHand(restored.Hand()[:5])
	require.NoError(t, err)
	require.NoError(t, restored.CheckPool())
}

func TestSnapshotInShop(t *testing.T) {
	cfg := shopConfig()
	c := started(t, cfg)
	_, err := c.SelectHand(c.Hand()[:5])
	require.NoError(t, err)

	restored, err := Restore(cfg, deck.NewSeededRand(2), c.Snapshot())
	require.NoError(t, err)
	require.Equal(t, ShopVisit, restored.State())
	require.Equal(t, c.ShopStock(), restored.ShopStock())
	require.Equal(t, deck.StandardSize, restored.PoolRemaining())
	require.NoError(t, restored.LeaveShop())
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	cfg := testConfig(dummy)
	c := started(t, cfg)
	good := c.Snapshot()

	tests := map[string]func(s *Snapshot){
		"mid turn state":  func(s *Snapshot) { s.State = PlayerTurn },
		"unknown state":   func(s *Snapshot) { s.State = "napping" },
		"no enemy":        func(s *Snapshot) { s.Enemy = nil },
		"level zero":      func(s *Snapshot) { s.Level = 0 },
		"level too high":  func(s *Snapshot) { s.Level = cfg.Rules.FinalLevel + 2 },
		"repeated card":   func(s *Snapshot) { s.Player.Hand[1] = s.Player.Hand[0] },
		"oversized hand":  func(s *Snapshot) { s.Player.Hand = append(s.Player.Hand, notInHand(s.Player.Hand)) },
		"hp above max":    func(s *Snapshot) { s.Player.HP = s.Player.MaxHP + 1 },
		"invalid card":    func(s *Snapshot) { s.Player.Hand[0] = poker.Card{} },
		"hand in the shop": func(s *Snapshot) { s.State = ShopVisit },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := c.Snapshot()
			mutate(&s)
			_, err := Restore(cfg, deck.NewSeededRand(1), s)
			require.ErrorIs(t, err, ErrBadSnapshot)
		})
	}

	_, err := Restore(cfg, deck.NewSeededRand(1), good)
	require.NoError(t, err)

	_, err = RestoreJSON(cfg, deck.NewSeededRand(1), []byte("{"))
	require.ErrorIs(t, err, ErrBadSnapshot)

	bad := config.Default()
	bad.Rules.FinalLevel = 0
	_, err = Restore(bad, deck.NewSeededRand(1), good)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
