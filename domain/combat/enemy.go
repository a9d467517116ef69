package combat

import "github.com/luca-patrignani/poker-battler/config"

// Enemy is the opponent of one encounter. It attacks when its cooldown,
// counted down once per player action, reaches zero.
type Enemy struct {
	Name            string         `json:"name"`
	HP              int            `json:"hp"`
	MaxHP           int            `json:"max_hp"`
	AttackDamage    int            `json:"attack_damage"`
	AttackCooldown  int            `json:"attack_cooldown"`
	CurrentCooldown int            `json:"current_cooldown"`
	Passive         config.Passive `json:"passive"`
}

// Attack is what an enemy deals on its turn; the controller applies it.
type Attack struct {
	Damage int `json:"damage"`
}

// SpawnEnemy creates a full-health enemy from a template.
func SpawnEnemy(t config.EnemyTemplate) Enemy {
	e := Enemy{
		Name:            t.Name,
		HP:              t.HP,
		MaxHP:           t.HP,
		AttackDamage:    t.AttackDamage,
		AttackCooldown:  t.AttackCooldown,
		CurrentCooldown: t.AttackCooldown,
	}
	if t.Passive != nil {
		e.Passive = *t.Passive
	}
	return e
}

// Defeated reports whether the enemy has no HP left.
func (e *Enemy) Defeated() bool {
	return e.HP <= 0
}

// TakeHit applies damage after armor, never below zero HP, and returns the
// HP actually removed.
func (e *Enemy) TakeHit(damage int) int {
	if e.Passive.Kind == config.PassiveArmor {
		damage -= e.Passive.Amount
	}
	if damage <= 0 {
		return 0
	}
	damage = min(damage, e.HP)
	e.HP -= damage
	return damage
}

// Thorns is the damage reflected to the player by a hit that landed.
func (e *Enemy) Thorns() int {
	if e.Passive.Kind == config.PassiveThorns {
		return e.Passive.Amount
	}
	return 0
}

// Regenerate heals a regenerating enemy and returns the HP gained.
func (e *Enemy) Regenerate() int {
	if e.Passive.Kind != config.PassiveRegenerate || e.Defeated() {
		return 0
	}
	gain := min(e.Passive.Amount, e.MaxHP-e.HP)
	e.HP += gain
	return gain
}

// Tick counts the cooldown down by one. When it reaches zero the enemy
// attacks, the cooldown starts over and an enraged enemy grows stronger.
func (e *Enemy) Tick() (Attack, bool) {
	e.CurrentCooldown--
	if e.CurrentCooldown > 0 {
		return Attack{}, false
	}
	e.CurrentCooldown = e.AttackCooldown
	atk := Attack{Damage: e.AttackDamage}
	if e.Passive.Kind == config.PassiveEnrage {
		e.AttackDamage += e.Passive.Amount
	}
	return atk, true
}
