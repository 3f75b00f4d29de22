package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"questchronicles/internal/engine"
)

func newSavedCharacter(t *testing.T) *engine.Character {
	t.Helper()
	c, err := engine.NewCharacter("Aria", "warrior")
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	c.Level = 3
	c.Experience = 42
	c.Health = 77
	c.MaxHealth = 140
	c.Strength = 22
	c.Gold = 310
	c.Inventory = []string{"potion_health_1", "potion_health_1", "leather_armor"}
	c.ActiveQuests = []string{"orc_leader"}
	c.CompletedQuests = []string{"goblin_slayer_1"}
	c.EquippedWeapon = &engine.Equipment{ItemID: "sword_basic", Effect: "strength:3"}
	return c
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := newSavedCharacter(t)

	if err := SaveCharacter(dir, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadCharacter(dir, "Aria")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestSaveOverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	c := newSavedCharacter(t)
	if err := SaveCharacter(dir, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	c.Gold = 5
	if err := SaveCharacter(dir, c); err != nil {
		t.Fatalf("save again: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "Aria_save.txt" {
		t.Fatalf("unexpected files in save dir: %v", entries)
	}
	got, err := LoadCharacter(dir, "Aria")
	if err != nil || got.Gold != 5 {
		t.Fatalf("reload: gold %v err %v", got, err)
	}
}

func TestDecodeEmptyListsAndOldSaves(t *testing.T) {
	data := strings.Join([]string{
		"NAME: Bo",
		"CLASS: Mage",
		"LEVEL: 1",
		"HEALTH: 80",
		"MAX_HEALTH: 80",
		"STRENGTH: 8",
		"MAGIC: 20",
		"EXPERIENCE: 0",
		"GOLD: 100",
		"INVENTORY:",
		"ACTIVE_QUESTS:",
		"COMPLETED_QUESTS:",
	}, "\n")
	c, err := DecodeCharacter([]byte(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Inventory == nil || len(c.Inventory) != 0 || c.EquippedWeapon != nil || c.EquippedArmor != nil {
		t.Fatalf("unexpected decoded character %+v", c)
	}
}

func TestDecodeErrors(t *testing.T) {
	good := string(EncodeCharacter(newSavedCharacter(t)))

	cases := []struct {
		name    string
		data    string
		field   string
		corrupt bool
	}{
		{"missing key", strings.Replace(good, "GOLD: 310\n", "", 1), "gold", false},
		{"non-integer", strings.Replace(good, "LEVEL: 3", "LEVEL: three", 1), "level", false},
		{"bad equipment", strings.Replace(good, "EQUIPPED_WEAPON: sword_basic|strength:3", "EQUIPPED_WEAPON: sword_basic", 1), "equipped_weapon", false},
		{"health over max", strings.Replace(good, "HEALTH: 77", "HEALTH: 500", 1), "health", false},
		{"malformed line", good + "this line has no separator\n", "", true},
	}
	for _, tc := range cases {
		_, err := DecodeCharacter([]byte(tc.data))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if tc.corrupt {
			if !errors.Is(err, ErrSaveFileCorrupted) {
				t.Fatalf("%s: expected corrupted, got %v", tc.name, err)
			}
			continue
		}
		var ge *engine.Error
		if !errors.As(err, &ge) || ge.Code != engine.CodeInvalidData {
			t.Fatalf("%s: expected invalid data, got %v", tc.name, err)
		}
		if ge.Metadata["field"] != tc.field {
			t.Fatalf("%s: expected field %s, got %q", tc.name, tc.field, ge.Metadata["field"])
		}
	}
}

func TestLoadMissingCharacter(t *testing.T) {
	_, err := LoadCharacter(t.TempDir(), "Nobody")
	if !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSavePathRejectsTraversal(t *testing.T) {
	for _, name := range []string{"", "..", "a/b", `a\b`, "Ari\nEVIL", "tab\tname"} {
		if _, err := SavePath(t.TempDir(), name); !errors.Is(err, engine.ErrInvalidData) {
			t.Fatalf("%q: expected invalid data, got %v", name, err)
		}
	}
}

func TestLoadRejectsMismatchedName(t *testing.T) {
	dir := t.TempDir()
	c := newSavedCharacter(t)
	if err := os.WriteFile(filepath.Join(dir, "Bob_save.txt"), EncodeCharacter(c), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadCharacter(dir, "Bob")
	var ge *engine.Error
	if !errors.As(err, &ge) || ge.Code != engine.CodeInvalidData || ge.Metadata["field"] != "name" {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestListAndDeleteSaves(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")

	names, err := ListSavedCharacters(dir)
	if err != nil || len(names) != 0 {
		t.Fatalf("missing dir: %v %v", names, err)
	}

	for _, n := range []string{"Zed", "Aria", "Mo"} {
		c, err := engine.NewCharacter(n, "rogue")
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if err := SaveCharacter(dir, c); err != nil {
			t.Fatalf("save %s: %v", n, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	names, err = ListSavedCharacters(dir)
	if err != nil || !reflect.DeepEqual(names, []string{"Aria", "Mo", "Zed"}) {
		t.Fatalf("list: %v %v", names, err)
	}

	if err := DeleteCharacter(dir, "Mo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteCharacter(dir, "Mo"); !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
	names, _ = ListSavedCharacters(dir)
	if !reflect.DeepEqual(names, []string{"Aria", "Zed"}) {
		t.Fatalf("after delete: %v", names)
	}
}
