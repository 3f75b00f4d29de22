package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultQuests = `QUEST_ID: goblin_slayer_1
TITLE: Goblin Menace
DESCRIPTION: Goblins are harassing travelers. Clear them out!
REWARD_XP: 100
REWARD_GOLD: 50
REQUIRED_LEVEL: 1
PREREQUISITE: NONE

QUEST_ID: orc_leader
TITLE: The Orc Warlord
DESCRIPTION: Defeat the Orc Warlord ruling the cursed plains.
REWARD_XP: 500
REWARD_GOLD: 250
REQUIRED_LEVEL: 5
PREREQUISITE: goblin_slayer_1

QUEST_ID: dragon_hunt
TITLE: The Red Dragon
DESCRIPTION: A great red dragon is terrorizing the mountain. Slay it.
REWARD_XP: 2000
REWARD_GOLD: 1000
REQUIRED_LEVEL: 10
PREREQUISITE: orc_leader
`

const defaultItems = `ITEM_ID: potion_health_1
NAME: Small Health Potion
TYPE: consumable
EFFECT: health:25
COST: 50
DESCRIPTION: A simple potion that restores 25 HP.

ITEM_ID: sword_basic
NAME: Rusty Sword
TYPE: weapon
EFFECT: strength:3
COST: 20
DESCRIPTION: An old, rusty sword. Better than nothing.

ITEM_ID: leather_armor
NAME: Leather Tunic
TYPE: armor
EFFECT: max_health:10
COST: 30
DESCRIPTION: A tunic made of boiled leather.

ITEM_ID: oak_staff
NAME: Oak Staff
TYPE: weapon
EFFECT: magic:+4
COST: 40
DESCRIPTION: A gnarled staff that hums with faint power.

ITEM_ID: tonic_vigor
NAME: Tonic of Vigor
TYPE: consumable
EFFECT: max_health:+5
COST: 75
DESCRIPTION: Permanently toughens the drinker.
`

// CreateDefaultDataFiles writes the default catalogs into dir. Existing
// files are left alone. It returns the paths it created.
func CreateDefaultDataFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	files := []struct {
		name    string
		content string
	}{
		{QuestsFile, defaultQuests},
		{ItemsFile, defaultItems},
	}
	var created []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}
