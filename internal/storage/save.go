package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"questchronicles/internal/engine"
)

const saveSuffix = "_save.txt"

// Save file keys, in write order.
const (
	keyName            = "NAME"
	keyClass           = "CLASS"
	keyLevel           = "LEVEL"
	keyHealth          = "HEALTH"
	keyMaxHealth       = "MAX_HEALTH"
	keyStrength        = "STRENGTH"
	keyMagic           = "MAGIC"
	keyExperience      = "EXPERIENCE"
	keyGold            = "GOLD"
	keyInventory       = "INVENTORY"
	keyActiveQuests    = "ACTIVE_QUESTS"
	keyCompletedQuests = "COMPLETED_QUESTS"
	keyEquippedWeapon  = "EQUIPPED_WEAPON"
	keyEquippedArmor   = "EQUIPPED_ARMOR"
)

var requiredSaveKeys = []string{
	keyName, keyClass, keyLevel, keyHealth, keyMaxHealth, keyStrength,
	keyMagic, keyExperience, keyGold, keyInventory, keyActiveQuests, keyCompletedQuests,
}

// SavePath returns the save file path for a character name.
func SavePath(dir, name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" || strings.ContainsAny(n, `/\`) || n == "." || n == ".." || strings.ContainsFunc(n, unicode.IsControl) {
		return "", engine.InvalidField("name", fmt.Sprintf("%q cannot be used as a save name", name))
	}
	return filepath.Join(dir, n+saveSuffix), nil
}

// EncodeCharacter renders the key-value save format.
func EncodeCharacter(c *engine.Character) []byte {
	var b bytes.Buffer
	line := func(key, value string) {
		fmt.Fprintf(&b, "%s: %s\n", key, value)
	}
	line(keyName, c.Name)
	line(keyClass, string(c.Class))
	line(keyLevel, strconv.Itoa(c.Level))
	line(keyHealth, strconv.Itoa(c.Health))
	line(keyMaxHealth, strconv.Itoa(c.MaxHealth))
	line(keyStrength, strconv.Itoa(c.Strength))
	line(keyMagic, strconv.Itoa(c.Magic))
	line(keyExperience, strconv.Itoa(c.Experience))
	line(keyGold, strconv.Itoa(c.Gold))
	line(keyInventory, strings.Join(c.Inventory, ","))
	line(keyActiveQuests, strings.Join(c.ActiveQuests, ","))
	line(keyCompletedQuests, strings.Join(c.CompletedQuests, ","))
	line(keyEquippedWeapon, encodeEquipment(c.EquippedWeapon))
	line(keyEquippedArmor, encodeEquipment(c.EquippedArmor))
	return b.Bytes()
}

func encodeEquipment(e *engine.Equipment) string {
	if e == nil {
		return ""
	}
	return e.ItemID + "|" + e.Effect
}

// SaveCharacter writes the character to <dir>/<name>_save.txt. The file is
// written to a temp file and renamed into place, so a failed save leaves the
// previous one intact.
func SaveCharacter(dir string, c *engine.Character) error {
	path, err := SavePath(dir, c.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(EncodeCharacter(c)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename save: %w", err)
	}
	committed = true
	return nil
}

// LoadCharacter reads and validates a saved character.
func LoadCharacter(dir, name string) (*engine.Character, error) {
	path, err := SavePath(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no save for %s", ErrCharacterNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrSaveFileCorrupted, err)
	}
	c, err := DecodeCharacter(data)
	if err != nil {
		return nil, err
	}
	if want := strings.TrimSpace(name); c.Name != want {
		return nil, engine.InvalidField("name", fmt.Sprintf("save for %q holds character %q", want, c.Name))
	}
	return c, nil
}

// DecodeCharacter parses the save format. Missing keys and non-integer stats
// are reported as invalid data naming the field.
func DecodeCharacter(data []byte) (*engine.Character, error) {
	kv, err := parseKeyValues(data)
	if err != nil {
		return nil, err
	}
	for _, k := range requiredSaveKeys {
		if _, ok := kv[k]; !ok {
			return nil, engine.InvalidField(strings.ToLower(k), "is missing")
		}
	}

	c := &engine.Character{
		Name:            kv[keyName],
		Class:           engine.Class(kv[keyClass]),
		Inventory:       splitList(kv[keyInventory]),
		ActiveQuests:    splitList(kv[keyActiveQuests]),
		CompletedQuests: splitList(kv[keyCompletedQuests]),
	}
	if cls, err := engine.ParseClass(kv[keyClass]); err == nil {
		c.Class = cls
	}

	ints := []struct {
		key string
		dst *int
	}{
		{keyLevel, &c.Level},
		{keyHealth, &c.Health},
		{keyMaxHealth, &c.MaxHealth},
		{keyStrength, &c.Strength},
		{keyMagic, &c.Magic},
		{keyExperience, &c.Experience},
		{keyGold, &c.Gold},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(kv[f.key])
		if err != nil {
			return nil, engine.InvalidField(strings.ToLower(f.key), fmt.Sprintf("must be an integer, got %q", kv[f.key]))
		}
		*f.dst = n
	}

	if c.EquippedWeapon, err = decodeEquipment(keyEquippedWeapon, kv[keyEquippedWeapon]); err != nil {
		return nil, err
	}
	if c.EquippedArmor, err = decodeEquipment(keyEquippedArmor, kv[keyEquippedArmor]); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeEquipment(key, v string) (*engine.Equipment, error) {
	if v == "" {
		return nil, nil
	}
	id, effect, ok := strings.Cut(v, "|")
	if !ok || strings.TrimSpace(id) == "" {
		return nil, engine.InvalidField(strings.ToLower(key), fmt.Sprintf("want item|effect, got %q", v))
	}
	return &engine.Equipment{ItemID: strings.TrimSpace(id), Effect: strings.TrimSpace(effect)}, nil
}

// parseKeyValues reads "KEY: value" lines. "KEY:" alone is an empty value.
func parseKeyValues(data []byte) (map[string]string, error) {
	kv := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: malformed line %d: %q", ErrSaveFileCorrupted, n, line)
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFileCorrupted, err)
	}
	return kv, nil
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListSavedCharacters returns the names of saved characters, sorted. A
// missing directory has no saves.
func ListSavedCharacters(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list saves: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), saveSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), saveSuffix))
	}
	sort.Strings(names)
	return names, nil
}

func DeleteCharacter(dir, name string) error {
	path, err := SavePath(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: no save for %s", ErrCharacterNotFound, name)
		}
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}
