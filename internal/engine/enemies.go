package engine

import (
	"fmt"
	"strings"
)

type EnemyKind string

const (
	EnemyGoblin EnemyKind = "goblin"
	EnemyOrc    EnemyKind = "orc"
	EnemyDragon EnemyKind = "dragon"
)

type Enemy struct {
	Kind       EnemyKind
	Name       string
	Health     int
	MaxHealth  int
	Strength   int
	Magic      int
	XPReward   int
	GoldReward int
}

var enemyTable = map[EnemyKind]Enemy{
	EnemyGoblin: {Kind: EnemyGoblin, Name: "Goblin", Health: 50, MaxHealth: 50, Strength: 8, Magic: 2, XPReward: 25, GoldReward: 10},
	EnemyOrc:    {Kind: EnemyOrc, Name: "Orc", Health: 80, MaxHealth: 80, Strength: 12, Magic: 5, XPReward: 50, GoldReward: 25},
	EnemyDragon: {Kind: EnemyDragon, Name: "Dragon", Health: 200, MaxHealth: 200, Strength: 25, Magic: 15, XPReward: 200, GoldReward: 100},
}

// NewEnemy returns a fresh enemy of the given archetype.
func NewEnemy(kind string) (*Enemy, error) {
	k := EnemyKind(strings.TrimSpace(strings.ToLower(kind)))
	e, ok := enemyTable[k]
	if !ok {
		return nil, &Error{
			Code:     CodeInvalidTarget,
			Message:  fmt.Sprintf("enemy type '%s' not recognized", kind),
			Metadata: map[string]string{"enemy": kind},
		}
	}
	return &e, nil
}

// EnemyKindForLevel picks the archetype matched to a character level.
func EnemyKindForLevel(level int) EnemyKind {
	switch {
	case level <= 2:
		return EnemyGoblin
	case level <= 5:
		return EnemyOrc
	default:
		return EnemyDragon
	}
}

func EnemyForLevel(level int) *Enemy {
	e := enemyTable[EnemyKindForLevel(level)]
	return &e
}

func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}
