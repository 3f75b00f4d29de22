package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"questchronicles/internal/engine"
)

const (
	QuestsFile = "quests.txt"
	ItemsFile  = "items.txt"
)

var questKeys = map[string]string{
	"QUEST_ID":       "quest_id",
	"TITLE":          "title",
	"DESCRIPTION":    "description",
	"REWARD_XP":      "reward_xp",
	"REWARD_GOLD":    "reward_gold",
	"REQUIRED_LEVEL": "required_level",
	"PREREQUISITE":   "prerequisite",
}

var questFieldOrder = []string{"quest_id", "title", "description", "reward_xp", "reward_gold", "required_level", "prerequisite"}

var itemKeys = map[string]string{
	"ITEM_ID":     "item_id",
	"NAME":        "name",
	"TYPE":        "type",
	"EFFECT":      "effect",
	"COST":        "cost",
	"DESCRIPTION": "description",
}

var itemFieldOrder = []string{"item_id", "name", "type", "effect", "cost", "description"}

// LoadQuests reads a quest catalog file.
func LoadQuests(path string) (engine.QuestCatalog, error) {
	blocks, err := readBlocks(path, questKeys)
	if err != nil {
		return nil, err
	}
	catalog := engine.QuestCatalog{}
	for _, b := range blocks {
		if err := requireFields(b, questFieldOrder); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		q := engine.Quest{
			ID:           b["quest_id"],
			Title:        b["title"],
			Description:  b["description"],
			Prerequisite: b["prerequisite"],
		}
		if q.RewardXP, err = intField(b, "reward_xp"); err != nil {
			return nil, fmt.Errorf("%s: quest %s: %w", path, q.ID, err)
		}
		if q.RewardGold, err = intField(b, "reward_gold"); err != nil {
			return nil, fmt.Errorf("%s: quest %s: %w", path, q.ID, err)
		}
		if q.RequiredLevel, err = intField(b, "required_level"); err != nil {
			return nil, fmt.Errorf("%s: quest %s: %w", path, q.ID, err)
		}
		if _, dup := catalog[q.ID]; dup {
			return nil, fmt.Errorf("%s: %w", path, engine.InvalidField("quest_id", fmt.Sprintf("duplicate id %q", q.ID)))
		}
		catalog[q.ID] = q
	}
	return catalog, nil
}

// LoadItems reads an item catalog file.
func LoadItems(path string) (engine.ItemCatalog, error) {
	blocks, err := readBlocks(path, itemKeys)
	if err != nil {
		return nil, err
	}
	catalog := engine.ItemCatalog{}
	for _, b := range blocks {
		if err := requireFields(b, itemFieldOrder); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		it := engine.Item{
			ID:          b["item_id"],
			Name:        b["name"],
			Effect:      b["effect"],
			Description: b["description"],
		}
		if it.Type, err = engine.ParseItemType(b["type"]); err != nil {
			return nil, fmt.Errorf("%s: item %s: %w", path, it.ID, err)
		}
		if it.Cost, err = intField(b, "cost"); err != nil {
			return nil, fmt.Errorf("%s: item %s: %w", path, it.ID, err)
		}
		if it.Cost < 0 {
			return nil, fmt.Errorf("%s: item %s: %w", path, it.ID, engine.InvalidField("cost", "must not be negative"))
		}
		if _, dup := catalog[it.ID]; dup {
			return nil, fmt.Errorf("%s: %w", path, engine.InvalidField("item_id", fmt.Sprintf("duplicate id %q", it.ID)))
		}
		catalog[it.ID] = it
	}
	return catalog, nil
}

// LoadCatalogs loads both catalogs from dir and checks the quest graph.
func LoadCatalogs(dir string) (engine.QuestCatalog, engine.ItemCatalog, error) {
	quests, err := LoadQuests(filepath.Join(dir, QuestsFile))
	if err != nil {
		return nil, nil, err
	}
	items, err := LoadItems(filepath.Join(dir, ItemsFile))
	if err != nil {
		return nil, nil, err
	}
	if err := engine.ValidatePrerequisites(quests); err != nil {
		return nil, nil, err
	}
	return quests, items, nil
}

// readBlocks splits a catalog file into blank-line separated blocks and maps
// each KEY to its field name.
func readBlocks(path string, keys map[string]string) ([]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDataFile, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var blocks []map[string]string
	var cur map[string]string
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			cur = nil
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		field, known := keys[strings.TrimSpace(key)]
		if !ok || !known {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, engine.InvalidField(strings.ToLower(strings.TrimSpace(key)), fmt.Sprintf("bad line %q", line)))
		}
		if cur == nil {
			cur = map[string]string{}
			blocks = append(blocks, cur)
		}
		cur[field] = strings.TrimSpace(value)
	}
	return blocks, nil
}

func requireFields(b map[string]string, fields []string) error {
	for _, f := range fields {
		if _, ok := b[f]; !ok {
			return engine.InvalidField(f, "is missing")
		}
	}
	return nil
}

func intField(b map[string]string, field string) (int, error) {
	n, err := strconv.Atoi(b[field])
	if err != nil {
		return 0, engine.InvalidField(field, fmt.Sprintf("must be an integer, got %q", b[field]))
	}
	return n, nil
}
