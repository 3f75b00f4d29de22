package tui

import (
	"fmt"

	"questchronicles/internal/engine"
)

// DescribeTurn turns a turn report into log lines.
func DescribeTurn(b *engine.Battle, rep engine.TurnReport) []string {
	c, e := b.Character, b.Enemy
	var lines []string

	switch rep.Action {
	case engine.ActionAttack:
		lines = append(lines, fmt.Sprintf("%s attacks the %s for %d damage.", c.Name, e.Name, rep.PlayerDamage))
	case engine.ActionAbility:
		ability := c.Class.AbilityName()
		switch {
		case rep.OnCooldown > 0:
			lines = append(lines, fmt.Sprintf("%s is not ready (%d turns left).", ability, rep.OnCooldown))
		case rep.Missed:
			lines = append(lines, fmt.Sprintf("%s misses!", ability))
		case rep.Healed > 0 || c.Class == engine.ClassCleric:
			lines = append(lines, fmt.Sprintf("%s restores %d health.", ability, rep.Healed))
		default:
			lines = append(lines, fmt.Sprintf("%s hits the %s for %d damage.", ability, e.Name, rep.PlayerDamage))
		}
	case engine.ActionEscape:
		if rep.EscapeFailed {
			lines = append(lines, fmt.Sprintf("%s fails to escape.", c.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s escapes from the %s.", c.Name, e.Name))
		}
	}

	if rep.EnemyActed {
		lines = append(lines, fmt.Sprintf("The %s strikes back for %d damage.", e.Name, rep.EnemyDamage))
	}

	switch rep.State {
	case engine.BattlePlayerWon:
		lines = append(lines, fmt.Sprintf("The %s is defeated! +%d XP, +%d gold.", e.Name, rep.Rewards.XP, rep.Rewards.Gold))
	case engine.BattleEnemyWon:
		lines = append(lines, fmt.Sprintf("%s has fallen.", c.Name))
	}
	return lines
}
