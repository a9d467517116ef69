package combat

import (
	"log/slog"

	"github.com/luca-patrignani/poker-battler/domain/poker"
)

type EventKind string

const (
	EventEncounterStarted EventKind = "encounter_started"
	EventHandPlayed       EventKind = "hand_played"
	EventDiscarded        EventKind = "discarded"
	EventEnemyAttacked    EventKind = "enemy_attacked"
	EventEncounterWon     EventKind = "encounter_won"
	EventShopOpened       EventKind = "shop_opened"
	EventItemBought       EventKind = "item_bought"
	EventItemSold         EventKind = "item_sold"
	EventVictory          EventKind = "victory"
	EventGameOver         EventKind = "game_over"
)

// Event describes one thing that happened in a game, with the HP of both
// sides after it.
type Event struct {
	Kind     EventKind    `json:"kind"`
	Level    int          `json:"level"`
	Enemy    string       `json:"enemy,omitempty"`
	Cards    []poker.Card `json:"cards,omitempty"`
	Category string       `json:"category,omitempty"`
	Damage   int          `json:"damage,omitempty"`
	Gold     int          `json:"gold,omitempty"`
	Item     string       `json:"item,omitempty"`
	PlayerHP int          `json:"player_hp"`
	EnemyHP  int          `json:"enemy_hp"`
}

// Recorder receives every event the controller emits, in order.
type Recorder interface {
	Record(ev Event) error
}

func (ev Event) attrs() []any {
	args := []any{"level", ev.Level, "player_hp", ev.PlayerHP, "enemy_hp", ev.EnemyHP}
	if ev.Enemy != "" {
		args = append(args, "enemy", ev.Enemy)
	}
	if len(ev.Cards) > 0 {
		args = append(args, "cards", cardCodes(ev.Cards))
	}
	if ev.Category != "" {
		args = append(args, "category", ev.Category)
	}
	if ev.Damage != 0 {
		args = append(args, "damage", ev.Damage)
	}
	if ev.Gold != 0 {
		args = append(args, "gold", ev.Gold)
	}
	if ev.Item != "" {
		args = append(args, "item", ev.Item)
	}
	return args
}

func cardCodes(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

func (c *Controller) emit(ev Event) {
	ev.Level = c.level
	ev.PlayerHP = c.player.HP
	if c.enemy != nil {
		ev.EnemyHP = c.enemy.HP
		if ev.Enemy == "" {
			ev.Enemy = c.enemy.Name
		}
	}
	c.logger.Info(string(ev.Kind), ev.attrs()...)
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ev); err != nil {
		c.logger.Error("failed to record event", slog.String("kind", string(ev.Kind)), slog.Any("error", err))
	}
}
