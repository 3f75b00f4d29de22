package engine

import (
	"fmt"

	"github.com/google/uuid"
)

type BattleState int

const (
	BattleIdle BattleState = iota
	BattleActive
	BattlePlayerWon
	BattleEnemyWon
	BattleEscaped
)

func (s BattleState) String() string {
	switch s {
	case BattleIdle:
		return "idle"
	case BattleActive:
		return "active"
	case BattlePlayerWon:
		return "player won"
	case BattleEnemyWon:
		return "enemy won"
	case BattleEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Terminal reports whether the battle has ended.
func (s BattleState) Terminal() bool {
	return s == BattlePlayerWon || s == BattleEnemyWon || s == BattleEscaped
}

type Action int

const (
	ActionAttack Action = iota
	ActionAbility
	ActionEscape
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// TurnReport describes one resolved turn.
type TurnReport struct {
	Turn   int
	Action Action

	PlayerDamage int
	Healed       int
	Missed       bool
	OnCooldown   int
	EscapeFailed bool

	EnemyActed  bool
	EnemyDamage int

	State   BattleState
	Rewards Rewards
}

// Battle is one encounter between a character and an enemy. It mutates the
// character in place.
type Battle struct {
	ID        string
	Character *Character
	Enemy     *Enemy

	svc      *Service
	state    BattleState
	turn     int
	cooldown int
	rewards  Rewards
}

// NewBattle starts an encounter. Dead characters cannot fight.
func (s *Service) NewBattle(c *Character, e *Enemy) (*Battle, error) {
	if c.IsDead() {
		return nil, newError(CodeCharacterDead, "%s is dead and cannot start a battle", c.Name)
	}
	b := &Battle{
		ID:        uuid.NewString(),
		Character: c,
		Enemy:     e,
		svc:       s,
		state:     BattleActive,
		turn:      1,
	}
	s.infof("battle %s: %s (level %d) vs %s", b.ID, c.Name, c.Level, e.Name)
	return b, nil
}

func (b *Battle) State() BattleState { return b.state }
func (b *Battle) TurnNumber() int    { return b.turn }
func (b *Battle) Cooldown() int      { return b.cooldown }
func (b *Battle) Rewards() Rewards   { return b.rewards }

// Damage is the basic attack formula shared by both sides.
func Damage(attackerStrength, defenderStrength int) int {
	return atLeastOne(attackerStrength - defenderStrength/4)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func hit(health *int, dmg int) {
	*health -= dmg
	if *health < 0 {
		*health = 0
	}
}

// Turn resolves the player's action, the enemy's reply if the battle is still
// on, and the end-of-turn bookkeeping.
func (b *Battle) Turn(action Action) (TurnReport, error) {
	if b.state != BattleActive {
		return TurnReport{}, newError(CodeCombatNotActive, "battle %s is over (%s)", b.ID, b.state)
	}
	rep := TurnReport{Turn: b.turn, Action: action}

	switch action {
	case ActionAttack:
		rep.PlayerDamage = Damage(b.Character.Strength, b.Enemy.Strength)
		hit(&b.Enemy.Health, rep.PlayerDamage)
	case ActionAbility:
		if b.cooldown > 0 {
			rep.OnCooldown = b.cooldown
			break
		}
		b.useAbility(&rep)
		b.cooldown = b.svc.rules.AbilityCooldown
	case ActionEscape:
		if b.svc.chance(b.svc.rules.EscapeChance) {
			b.finish(BattleEscaped)
			rep.State = b.state
			return rep, nil
		}
		rep.EscapeFailed = true
	default:
		return TurnReport{}, newError(CodeInvalidData, "unknown action %d", action)
	}

	if b.checkEnd() {
		rep.State, rep.Rewards = b.state, b.rewards
		return rep, nil
	}

	rep.EnemyActed = true
	rep.EnemyDamage = Damage(b.Enemy.Strength, b.Character.Strength)
	hit(&b.Character.Health, rep.EnemyDamage)

	if b.checkEnd() {
		rep.State, rep.Rewards = b.state, b.rewards
		return rep, nil
	}

	b.turn++
	if b.cooldown > 0 {
		b.cooldown--
	}
	rep.State = b.state
	return rep, nil
}

func (b *Battle) useAbility(rep *TurnReport) {
	c, e := b.Character, b.Enemy
	switch c.Class {
	case ClassWarrior:
		rep.PlayerDamage = atLeastOne(c.Strength*2 - e.Strength/4)
		hit(&e.Health, rep.PlayerDamage)
	case ClassMage:
		rep.PlayerDamage = atLeastOne(c.Magic*2 - e.Magic/4)
		hit(&e.Health, rep.PlayerDamage)
	case ClassRogue:
		if !b.svc.chance(b.svc.rules.CriticalChance) {
			rep.Missed = true
			return
		}
		rep.PlayerDamage = atLeastOne(c.Strength*3 - e.Strength/4)
		hit(&e.Health, rep.PlayerDamage)
	case ClassCleric:
		rep.Healed = c.Heal(b.svc.rules.ClericHeal)
	}
}

// checkEnd applies the end-of-turn rule: the character's death is checked
// before the enemy's.
func (b *Battle) checkEnd() bool {
	switch {
	case b.Character.IsDead():
		b.finish(BattleEnemyWon)
	case b.Enemy.IsDefeated():
		b.finish(BattlePlayerWon)
	default:
		return false
	}
	return true
}

func (b *Battle) finish(state BattleState) {
	b.state = state
	if state == BattlePlayerWon {
		b.payout()
	}
	b.svc.infof("battle %s ended on turn %d: %s", b.ID, b.turn, state)
}

func (b *Battle) payout() {
	c := b.Character
	if _, err := b.svc.GrantExperience(c, b.Enemy.XPReward); err != nil {
		b.svc.warnf("battle %s: xp reward not granted: %v", b.ID, err)
		return
	}
	if _, err := c.AddGold(b.Enemy.GoldReward); err != nil {
		b.svc.warnf("battle %s: gold reward not granted: %v", b.ID, err)
		return
	}
	b.rewards = Rewards{XP: b.Enemy.XPReward, Gold: b.Enemy.GoldReward}
}

// Result is the final outcome of a battle.
type Result struct {
	BattleID string
	State    BattleState
	Turns    int
	Rewards  Rewards
}

func (b *Battle) Result() Result {
	return Result{BattleID: b.ID, State: b.state, Turns: b.turn, Rewards: b.rewards}
}

// Run plays turns with actions from choose until the battle ends.
func (b *Battle) Run(choose func(*Battle) Action) (Result, error) {
	for b.state == BattleActive {
		if _, err := b.Turn(choose(b)); err != nil {
			return b.Result(), fmt.Errorf("turn %d: %w", b.turn, err)
		}
	}
	return b.Result(), nil
}

// AlwaysAttack is a chooser for Run that only uses basic attacks.
func AlwaysAttack(*Battle) Action { return ActionAttack }

// PreferAbility uses the class ability whenever it is off cooldown.
func PreferAbility(b *Battle) Action {
	if b.Cooldown() == 0 {
		return ActionAbility
	}
	return ActionAttack
}
