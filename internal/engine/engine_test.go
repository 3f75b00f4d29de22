package engine

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"strings"
	"testing"
)

func newTestService(t *testing.T, seed int64) *Service {
	t.Helper()
	return NewService(DefaultRules(), nil, rand.New(rand.NewSource(seed)))
}

func newTestCharacter(t *testing.T, class string) *Character {
	t.Helper()
	c, err := NewCharacter("Aria", class)
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	return c
}

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *Error with code %s, got %T: %v", code, err, err)
	}
	if ge.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, ge.Code, err)
	}
}

func TestNewCharacterBaseStats(t *testing.T) {
	cases := []struct {
		class                   string
		want                    Class
		health, strength, magic int
	}{
		{"Warrior", ClassWarrior, 120, 15, 5},
		{"mage", ClassMage, 80, 8, 20},
		{"ROGUE", ClassRogue, 90, 12, 10},
		{"cleric", ClassCleric, 100, 10, 15},
	}
	for _, tc := range cases {
		c, err := NewCharacter("Hero", tc.class)
		if err != nil {
			t.Fatalf("NewCharacter(%q): %v", tc.class, err)
		}
		if c.Class != tc.want || c.Health != tc.health || c.MaxHealth != tc.health || c.Strength != tc.strength || c.Magic != tc.magic {
			t.Fatalf("%s: unexpected stats %+v", tc.class, c)
		}
		if c.Level != 1 || c.Experience != 0 || c.Gold != StartingGold {
			t.Fatalf("%s: unexpected progression %+v", tc.class, c)
		}
		if len(c.Inventory) != 0 || len(c.ActiveQuests) != 0 || len(c.CompletedQuests) != 0 {
			t.Fatalf("%s: expected empty collections", tc.class)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("%s: new character invalid: %v", tc.class, err)
		}
	}
}

func TestNewCharacterInvalidClass(t *testing.T) {
	_, err := NewCharacter("Hero", "Bard")
	wantCode(t, err, CodeInvalidClass)
	if !errors.Is(err, ErrInvalidClass) {
		t.Fatalf("expected errors.Is(ErrInvalidClass), got %v", err)
	}

	_, err = NewCharacter("  ", "Warrior")
	wantCode(t, err, CodeInvalidData)

	_, err = NewCharacter("Ari\nEVIL", "Warrior")
	wantCode(t, err, CodeInvalidData)
}

func TestGainExperienceThresholds(t *testing.T) {
	cases := []struct {
		xp        int
		level     int
		remaining int
		gained    int
	}{
		{99, 1, 99, 0},
		{100, 2, 0, 1},
		{250, 2, 150, 1},
		{300, 3, 0, 2},
		{600, 4, 0, 3},
	}
	for _, tc := range cases {
		c := newTestCharacter(t, "warrior")
		gained, err := c.GainExperience(tc.xp)
		if err != nil {
			t.Fatalf("gain %d: %v", tc.xp, err)
		}
		if gained != tc.gained || c.Level != tc.level || c.Experience != tc.remaining {
			t.Fatalf("gain %d: got level %d xp %d gained %d, want level %d xp %d gained %d",
				tc.xp, c.Level, c.Experience, gained, tc.level, tc.remaining, tc.gained)
		}
	}
}

func TestLevelUpStatGrowth(t *testing.T) {
	c := newTestCharacter(t, "warrior")
	c.Health = 10
	if _, err := c.GainExperience(300); err != nil {
		t.Fatalf("gain: %v", err)
	}
	if c.MaxHealth != 140 || c.Strength != 19 || c.Magic != 9 {
		t.Fatalf("unexpected stats after two levels: %+v", c)
	}
	if c.Health != c.MaxHealth {
		t.Fatalf("expected full heal on level up, got %d/%d", c.Health, c.MaxHealth)
	}
}

func TestGainExperienceWhileDead(t *testing.T) {
	c := newTestCharacter(t, "mage")
	c.Health = 0
	_, err := c.GainExperience(50)
	wantCode(t, err, CodeCharacterDead)
	if c.Experience != 0 {
		t.Fatalf("xp must be unchanged, got %d", c.Experience)
	}
}

func TestAddGold(t *testing.T) {
	c := newTestCharacter(t, "rogue")
	total, err := c.AddGold(-30)
	if err != nil || total != 70 {
		t.Fatalf("spend 30: total %d err %v", total, err)
	}
	_, err = c.AddGold(-71)
	wantCode(t, err, CodeInsufficientFunds)
	if c.Gold != 70 {
		t.Fatalf("gold must be unchanged on failure, got %d", c.Gold)
	}
}

func TestHealAndRevive(t *testing.T) {
	c := newTestCharacter(t, "warrior")
	c.Health = 100
	if got := c.Heal(50); got != 20 || c.Health != 120 {
		t.Fatalf("heal capped: healed %d health %d", got, c.Health)
	}
	if c.Revive() {
		t.Fatal("revive must fail for a living character")
	}

	c.Health = 0
	if got := c.Heal(50); got != 0 || c.Health != 0 {
		t.Fatalf("dead heal: healed %d health %d", got, c.Health)
	}
	if !c.IsDead() {
		t.Fatal("expected dead")
	}
	if !c.Revive() || c.Health != 60 {
		t.Fatalf("revive: health %d, want 60", c.Health)
	}
}

func TestReviveForGold(t *testing.T) {
	svc := newTestService(t, 1)
	c := newTestCharacter(t, "cleric")
	c.Health = 0

	cost, err := svc.ReviveForGold(c)
	if err != nil || cost != 100 {
		t.Fatalf("revive: cost %d err %v", cost, err)
	}
	if c.Gold != 0 || c.Health != 50 {
		t.Fatalf("unexpected state after revive: gold %d health %d", c.Gold, c.Health)
	}

	c.Health = 0
	_, err = svc.ReviveForGold(c)
	wantCode(t, err, CodeInsufficientFunds)
	if !c.IsDead() {
		t.Fatal("failed revive must leave the character dead")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(c *Character)
	}{
		{"name", func(c *Character) { c.Name = "" }},
		{"class", func(c *Character) { c.Class = "Bard" }},
		{"level", func(c *Character) { c.Level = 0 }},
		{"health", func(c *Character) { c.Health = c.MaxHealth + 1 }},
		{"gold", func(c *Character) { c.Gold = -1 }},
		{"inventory", func(c *Character) { c.Inventory = nil }},
		{"active_quests", func(c *Character) {
			c.ActiveQuests = []string{"q1"}
			c.CompletedQuests = []string{"q1"}
		}},
	}
	for _, tc := range cases {
		c := newTestCharacter(t, "warrior")
		tc.mutate(c)
		err := c.Validate()
		wantCode(t, err, CodeInvalidData)
		var ge *Error
		errors.As(err, &ge)
		if ge.Metadata["field"] != tc.field {
			t.Fatalf("expected field %s, got %q (%v)", tc.field, ge.Metadata["field"], err)
		}
	}
}

func TestParseEffect(t *testing.T) {
	e, err := ParseEffect("Strength:+5")
	if err != nil || e.Stat != StatStrength || e.Value != 5 {
		t.Fatalf("parse: %+v %v", e, err)
	}
	if e.Negate().Value != -5 || e.String() != "strength:+5" {
		t.Fatalf("unexpected negate/string: %v %s", e.Negate(), e)
	}
	for _, bad := range []string{"strength", ":5", "magic:lots"} {
		if _, err := ParseEffect(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestUnknownStatIsLogged(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(DefaultRules(), log.New(&buf, "", 0), rand.New(rand.NewSource(1)))
	c := newTestCharacter(t, "warrior")
	before := *c

	svc.ApplyStatEffect(c, Effect{Stat: "luck", Value: 3})
	if c.Strength != before.Strength || c.Health != before.Health || c.Magic != before.Magic {
		t.Fatalf("unknown stat must not change stats: %+v", c)
	}
	if !strings.Contains(buf.String(), "WARN") || !strings.Contains(buf.String(), "luck") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestInfoLogsOnlyWhenVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	q := NewService(DefaultRules(), log.New(&quiet, "", 0), nil)
	l := NewService(DefaultRules(), log.New(&loud, "", 0), nil, WithVerbose(true))

	if _, err := q.GrantExperience(newTestCharacter(t, "mage"), 100); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := l.GrantExperience(newTestCharacter(t, "mage"), 100); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if quiet.Len() != 0 {
		t.Fatalf("expected no output without verbose, got %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "reached level 2") {
		t.Fatalf("expected level up line, got %q", loud.String())
	}
}
