package engine

import (
	"fmt"
	"strings"
	"unicode"
)

const StartingGold = 100

type baseStats struct {
	Health   int
	Strength int
	Magic    int
}

var classBaseStats = map[Class]baseStats{
	ClassWarrior: {Health: 120, Strength: 15, Magic: 5},
	ClassMage:    {Health: 80, Strength: 8, Magic: 20},
	ClassRogue:   {Health: 90, Strength: 12, Magic: 10},
	ClassCleric:  {Health: 100, Strength: 10, Magic: 15},
}

// NewCharacter creates a level 1 character with the class base stats.
// The class is parsed case-insensitively.
func NewCharacter(name string, class string) (*Character, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, newError(CodeInvalidData, "character name is required")
	}
	if strings.ContainsFunc(n, unicode.IsControl) {
		return nil, invalidField("name", "must not contain control characters")
	}
	cls, err := ParseClass(class)
	if err != nil {
		return nil, err
	}
	stats := classBaseStats[cls]
	return &Character{
		Name:            n,
		Class:           cls,
		Level:           1,
		Experience:      0,
		Health:          stats.Health,
		MaxHealth:       stats.Health,
		Strength:        stats.Strength,
		Magic:           stats.Magic,
		Gold:            StartingGold,
		Inventory:       []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
	}, nil
}

// AddGold adds delta (negative to spend) and returns the new total.
func (c *Character) AddGold(delta int) (int, error) {
	total := c.Gold + delta
	if total < 0 {
		return c.Gold, &Error{
			Code:    CodeInsufficientFunds,
			Message: fmt.Sprintf("cannot spend %d gold; %s only has %d", -delta, c.Name, c.Gold),
			Metadata: map[string]string{
				"needed": fmt.Sprint(-delta),
				"gold":   fmt.Sprint(c.Gold),
			},
		}
	}
	c.Gold = total
	return c.Gold, nil
}

// Heal restores up to amount health, capped at MaxHealth, and returns the
// change actually applied. Dead characters are not healed; only Revive brings
// them back. A negative amount lowers health but never below 1.
func (c *Character) Heal(amount int) int {
	if c.IsDead() {
		return 0
	}
	next := c.Health + amount
	if next > c.MaxHealth {
		next = c.MaxHealth
	}
	if next < 1 {
		next = 1
	}
	healed := next - c.Health
	c.Health = next
	return healed
}

func (c *Character) IsDead() bool {
	return c.Health <= 0
}

// Revive brings a dead character back at half health (at least 1).
func (c *Character) Revive() bool {
	if !c.IsDead() {
		return false
	}
	c.Health = c.MaxHealth / 2
	if c.Health < 1 {
		c.Health = 1
	}
	return true
}

// Validate checks the structural invariants of a character record. Field
// presence and numeric parsing are checked where records are decoded.
func (c *Character) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return invalidField("name", "must not be empty")
	case !c.Class.IsValid():
		return invalidField("class", fmt.Sprintf("unknown class %q", c.Class))
	case c.Level < 1:
		return invalidField("level", "must be at least 1")
	case c.Experience < 0:
		return invalidField("experience", "must not be negative")
	case c.MaxHealth <= 0:
		return invalidField("max_health", "must be positive")
	case c.Health < 0 || c.Health > c.MaxHealth:
		return invalidField("health", fmt.Sprintf("must be between 0 and %d", c.MaxHealth))
	case c.Gold < 0:
		return invalidField("gold", "must not be negative")
	case c.Inventory == nil:
		return invalidField("inventory", "must be a list")
	case c.ActiveQuests == nil:
		return invalidField("active_quests", "must be a list")
	case c.CompletedQuests == nil:
		return invalidField("completed_quests", "must be a list")
	}
	for _, id := range c.ActiveQuests {
		if containsID(c.CompletedQuests, id) {
			return invalidField("active_quests", fmt.Sprintf("quest '%s' is also completed", id))
		}
	}
	return nil
}

func invalidField(field, reason string) *Error {
	return &Error{
		Code:     CodeInvalidData,
		Message:  fmt.Sprintf("field '%s' %s", field, reason),
		Metadata: map[string]string{"field": field},
	}
}

// InvalidField reports a malformed or missing record field. Decoders use it so
// their failures carry the same code and metadata as Validate.
func InvalidField(field, reason string) error {
	return invalidField(field, reason)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeFirst(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
