package engine

const (
	// XPPerLevel scales the level-up threshold: reaching level L+1 costs L*XPPerLevel.
	XPPerLevel = 100

	LevelUpMaxHealth = 10
	LevelUpStrength  = 2
	LevelUpMagic     = 2

	// ReviveCostPerLevel is the gold price of a revive, per character level.
	ReviveCostPerLevel = 100
)

// XPToNextLevel returns the experience needed to leave the given level.
// Experience resets on every level up, so this is not a running total.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// levelUp applies one level of stat growth and restores full health.
func (c *Character) levelUp() {
	c.Level++
	c.MaxHealth += LevelUpMaxHealth
	c.Strength += LevelUpStrength
	c.Magic += LevelUpMagic
	c.Health = c.MaxHealth
}

// GainExperience adds XP and applies as many level ups as it pays for. The
// threshold is recomputed against the new level after each one. It returns
// the number of levels gained.
func (c *Character) GainExperience(amount int) (int, error) {
	if c.IsDead() {
		return 0, newError(CodeCharacterDead, "%s is dead and cannot gain XP", c.Name)
	}
	c.Experience += amount
	return c.applyLevelUps(), nil
}

func (c *Character) applyLevelUps() int {
	gained := 0
	for c.Experience >= XPToNextLevel(c.Level) {
		c.Experience -= XPToNextLevel(c.Level)
		c.levelUp()
		gained++
	}
	return gained
}

// ReviveCost is the gold price of reviving the character at its current level.
func (c *Character) ReviveCost() int {
	return c.Level * ReviveCostPerLevel
}
