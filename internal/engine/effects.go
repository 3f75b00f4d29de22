package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Effect is a parsed "stat:value" item effect.
type Effect struct {
	Stat  string
	Value int
}

func (e Effect) Negate() Effect {
	return Effect{Stat: e.Stat, Value: -e.Value}
}

func (e Effect) String() string {
	return fmt.Sprintf("%s:%+d", e.Stat, e.Value)
}

// ParseEffect parses an effect string such as "strength:+5" or "health:20".
func ParseEffect(s string) (Effect, error) {
	stat, value, ok := strings.Cut(s, ":")
	stat = strings.TrimSpace(stat)
	if !ok || stat == "" {
		return Effect{}, fmt.Errorf("invalid effect %q: want stat:value", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Effect{}, fmt.Errorf("invalid effect %q: %w", s, err)
	}
	return Effect{Stat: strings.ToLower(stat), Value: n}, nil
}

// ApplyStatEffect applies a stat delta to the character. Health goes through
// Heal so the MaxHealth cap holds; max_health raises the cap and heals by the
// same amount. Strength and magic may go negative when an equip is reversed.
// Unknown stats change nothing and are logged.
func (s *Service) ApplyStatEffect(c *Character, e Effect) {
	switch e.Stat {
	case StatHealth:
		c.Heal(e.Value)
	case StatMaxHealth:
		c.MaxHealth += e.Value
		if c.MaxHealth < 1 {
			c.MaxHealth = 1
		}
		c.Heal(e.Value)
		if c.Health > c.MaxHealth {
			c.Health = c.MaxHealth
		}
	case StatStrength:
		c.Strength += e.Value
	case StatMagic:
		c.Magic += e.Value
	default:
		s.warnf("ignoring effect on unknown stat %q for %s", e.Stat, c.Name)
	}
}
