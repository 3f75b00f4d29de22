package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"log"
	"math/rand"
)

// Rules holds the tunable constants of the game.
type Rules struct {
	InventoryCapacity int
	AbilityCooldown   int
	EscapeChance      float64
	CriticalChance    float64
	ClericHeal        int
}

func DefaultRules() Rules {
	return Rules{
		InventoryCapacity: 20,
		AbilityCooldown:   3,
		EscapeChance:      0.5,
		CriticalChance:    0.5,
		ClericHeal:        30,
	}
}

// Service applies the inventory, quest and combat rules. It holds no
// character or catalog state; both are passed to every call.
type Service struct {
	rules   Rules
	log     *log.Logger
	rng     *rand.Rand
	verbose bool
}

type Option func(*Service)

// WithVerbose enables info-level log lines (level ups, battle results).
func WithVerbose(v bool) Option {
	return func(s *Service) { s.verbose = v }
}

// NewService builds a Service. A nil logger discards output and a nil rng is
// seeded from crypto/rand.
func NewService(rules Rules, logger *log.Logger, rng *rand.Rand, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(NewSeed()))
	}
	if rules.InventoryCapacity <= 0 {
		rules.InventoryCapacity = DefaultRules().InventoryCapacity
	}
	if rules.AbilityCooldown < 0 {
		rules.AbilityCooldown = 0
	}
	s := &Service{rules: rules, log: logger, rng: rng}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Rules() Rules { return s.rules }

func (s *Service) warnf(format string, args ...any) {
	s.log.Printf("WARN "+format, args...)
}

func (s *Service) infof(format string, args ...any) {
	if s.verbose {
		s.log.Printf("INFO "+format, args...)
	}
}

// chance reports whether a roll in [0,1) lands under p.
func (s *Service) chance(p float64) bool {
	return s.rng.Float64() < p
}

// NewSeed returns a seed read from crypto/rand, falling back to a fixed value
// if the system source is unavailable.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// GrantExperience gives XP through the character model and logs level ups.
func (s *Service) GrantExperience(c *Character, amount int) (int, error) {
	before := c.Level
	gained, err := c.GainExperience(amount)
	if err != nil {
		return 0, err
	}
	if gained > 0 {
		s.infof("%s reached level %d (from %d)", c.Name, c.Level, before)
	}
	return gained, nil
}

// ReviveForGold charges the revive cost and revives a dead character.
func (s *Service) ReviveForGold(c *Character) (int, error) {
	if !c.IsDead() {
		return 0, nil
	}
	cost := c.ReviveCost()
	if _, err := c.AddGold(-cost); err != nil {
		return 0, err
	}
	c.Revive()
	s.infof("%s revived for %d gold", c.Name, cost)
	return cost, nil
}
