package root

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"questchronicles/internal/engine"
	"questchronicles/internal/storage"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("qc %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func setupWorld(t *testing.T) (dataDir, saveDir string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	dataDir = filepath.Join(dir, "data")
	saveDir = filepath.Join(dir, "saves")
	t.Setenv("QC_DATA_DIR", dataDir)
	t.Setenv("QC_SAVE_DIR", saveDir)
	t.Setenv("QC_SEED", "1")
	return dataDir, saveDir
}

func TestPlaythrough(t *testing.T) {
	_, saveDir := setupWorld(t)

	mustRun(t, "init-data")
	mustRun(t, "new", "Aria", "--class", "mage")
	if out := mustRun(t, "-c", "Aria", "buy", "sword_basic"); !strings.Contains(out, "Bought") {
		t.Fatalf("unexpected buy output %q", out)
	}
	mustRun(t, "-c", "Aria", "equip", "sword_basic")
	mustRun(t, "-c", "Aria", "accept", "goblin_slayer_1")
	mustRun(t, "-c", "Aria", "complete", "goblin_slayer_1")
	if out := mustRun(t, "-c", "Aria", "explore", "--auto", "--enemy", "goblin"); !strings.Contains(out, "Victory") {
		t.Fatalf("expected a win:\n%s", out)
	}
	mustRun(t, "-c", "Aria", "status")

	c, err := storage.LoadCharacter(saveDir, "Aria")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Level != 2 || c.Experience != 25 || c.Gold != 140 {
		t.Fatalf("unexpected saved character: level %d xp %d gold %d", c.Level, c.Experience, c.Gold)
	}
	if c.EquippedWeapon == nil || c.EquippedWeapon.ItemID != "sword_basic" || c.Strength != 13 {
		t.Fatalf("unexpected equipment: %+v strength %d", c.EquippedWeapon, c.Strength)
	}
	if !engine.IsQuestCompleted(c, "goblin_slayer_1") {
		t.Fatalf("quest not completed: %v", c.CompletedQuests)
	}
}

func TestCommandErrorsLeaveSaveUntouched(t *testing.T) {
	_, saveDir := setupWorld(t)
	mustRun(t, "init-data")
	mustRun(t, "new", "Bo", "--class", "rogue")

	_, err := run(t, "-c", "Bo", "accept", "orc_leader")
	if !errors.Is(err, engine.ErrInsufficientLevel) {
		t.Fatalf("expected level gate, got %v", err)
	}
	_, err = run(t, "-c", "Bo", "buy", "tonic_vigor")
	if err != nil {
		t.Fatalf("buy tonic: %v", err)
	}
	_, err = run(t, "-c", "Bo", "buy", "potion_health_1")
	if !errors.Is(err, engine.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	c, err := storage.LoadCharacter(saveDir, "Bo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Gold != 25 || len(c.Inventory) != 1 || len(c.ActiveQuests) != 0 {
		t.Fatalf("unexpected state: gold %d inv %v active %v", c.Gold, c.Inventory, c.ActiveQuests)
	}
}

func TestCharacterRequired(t *testing.T) {
	setupWorld(t)
	mustRun(t, "init-data")
	if _, err := run(t, "status"); err == nil || !strings.Contains(err.Error(), "--character") {
		t.Fatalf("expected missing character error, got %v", err)
	}
	if _, err := run(t, "new", "Cy", "--class", "bard"); !errors.Is(err, engine.ErrInvalidClass) {
		t.Fatalf("expected invalid class, got %v", err)
	}
}

func TestSavesAndDelete(t *testing.T) {
	setupWorld(t)
	mustRun(t, "new", "Aria")
	mustRun(t, "new", "Bo", "--class", "cleric")
	if _, err := run(t, "new", "Bo"); err == nil {
		t.Fatal("expected duplicate name error")
	}

	out := mustRun(t, "saves")
	if !strings.Contains(out, "Aria") || !strings.Contains(out, "Bo") {
		t.Fatalf("unexpected saves output:\n%s", out)
	}
	mustRun(t, "delete", "Aria")
	if _, err := run(t, "delete", "Aria"); !errors.Is(err, storage.ErrCharacterNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuestBrowsingByLevel(t *testing.T) {
	setupWorld(t)
	mustRun(t, "init-data")
	out := mustRun(t, "quests", "--min-level", "5", "--max-level", "10")
	if !strings.Contains(out, "orc_leader") || !strings.Contains(out, "dragon_hunt") || strings.Contains(out, "Goblin Menace") {
		t.Fatalf("unexpected level listing:\n%s", out)
	}
	out = mustRun(t, "shop", "--type", "weapon")
	if !strings.Contains(out, "Rusty Sword") || strings.Contains(out, "Leather Tunic") {
		t.Fatalf("unexpected shop listing:\n%s", out)
	}
}

func TestDiscard(t *testing.T) {
	_, saveDir := setupWorld(t)
	mustRun(t, "init-data")
	mustRun(t, "new", "Di", "--class", "warrior")
	mustRun(t, "-c", "Di", "buy", "sword_basic")
	mustRun(t, "-c", "Di", "buy", "sword_basic")

	if _, err := run(t, "-c", "Di", "discard", "oak_staff"); !errors.Is(err, engine.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
	mustRun(t, "-c", "Di", "discard", "sword_basic")
	c, err := storage.LoadCharacter(saveDir, "Di")
	if err != nil || len(c.Inventory) != 1 {
		t.Fatalf("after discard: %v %v", c, err)
	}

	mustRun(t, "-c", "Di", "discard", "--all")
	c, err = storage.LoadCharacter(saveDir, "Di")
	if err != nil || len(c.Inventory) != 0 {
		t.Fatalf("after discard --all: %v %v", c, err)
	}
}

func TestLoadOverCapacity(t *testing.T) {
	setupWorld(t)
	mustRun(t, "init-data")
	mustRun(t, "new", "Ed", "--class", "rogue")
	mustRun(t, "-c", "Ed", "buy", "sword_basic")
	mustRun(t, "-c", "Ed", "buy", "sword_basic")

	t.Setenv("QC_INVENTORY_CAPACITY", "1")
	if _, err := run(t, "-c", "Ed", "inventory"); !errors.Is(err, engine.ErrInvalidData) {
		t.Fatalf("expected invalid data for an over-full inventory, got %v", err)
	}
}

func TestQuestLevelFilterWithCharacter(t *testing.T) {
	setupWorld(t)
	mustRun(t, "init-data")
	mustRun(t, "new", "Fi")

	out := mustRun(t, "-c", "Fi", "quests", "--max-level", "1")
	if !strings.Contains(out, "goblin_slayer_1") || !strings.Contains(out, "available") || strings.Contains(out, "The Orc Warlord") {
		t.Fatalf("unexpected filtered quest log:\n%s", out)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
}
