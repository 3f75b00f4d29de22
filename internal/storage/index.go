package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"questchronicles/internal/engine"
)

// Index is a queryable, in-memory copy of the quest and item catalogs. It is
// rebuilt from the text catalogs each run and never written to disk.
type Index struct {
	db *sql.DB
}

// OpenIndex creates an empty index.
func OpenIndex(ctx context.Context) (*Index, error) {
	db, err := OpenMemory(ctx)
	if err != nil {
		return nil, err
	}
	return &Index{db: db}, nil
}

// BuildIndex opens an index and loads both catalogs into it.
func BuildIndex(ctx context.Context, quests engine.QuestCatalog, items engine.ItemCatalog) (*Index, error) {
	idx, err := OpenIndex(ctx)
	if err != nil {
		return nil, err
	}
	if err := idx.Load(ctx, quests, items); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return idx, nil
}

func (i *Index) Close() error {
	return i.db.Close()
}

// Load replaces the index contents with the given catalogs.
func (i *Index) Load(ctx context.Context, quests engine.QuestCatalog, items engine.ItemCatalog) error {
	return WithTx(ctx, i.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM quests`); err != nil {
			return fmt.Errorf("index clear quests: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
			return fmt.Errorf("index clear items: %w", err)
		}
		for _, id := range quests.IDs() {
			q := quests[id]
			prereq := q.Prerequisite
			if !q.HasPrerequisite() {
				prereq = engine.NoPrerequisite
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO quests (id, title, description, reward_xp, reward_gold, required_level, prerequisite)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, q.ID, q.Title, q.Description, q.RewardXP, q.RewardGold, q.RequiredLevel, prereq)
			if err != nil {
				return fmt.Errorf("index insert quest %s: %w", q.ID, err)
			}
		}
		for _, id := range items.IDs() {
			it := items[id]
			_, err := tx.ExecContext(ctx, `
				INSERT INTO items (id, name, type, effect, cost, description)
				VALUES (?, ?, ?, ?, ?, ?)
			`, it.ID, it.Name, string(it.Type), it.Effect, it.Cost, it.Description)
			if err != nil {
				return fmt.Errorf("index insert item %s: %w", it.ID, err)
			}
		}
		return nil
	})
}

// ShopFilter narrows a shop listing. Zero values match everything.
type ShopFilter struct {
	Type    engine.ItemType
	MaxCost int
}

// ShopListing returns items ordered by cost, then id.
func (i *Index) ShopListing(ctx context.Context, f ShopFilter) ([]engine.Item, error) {
	var where []string
	var args []any
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.MaxCost > 0 {
		where = append(where, "cost <= ?")
		args = append(args, f.MaxCost)
	}
	q := `SELECT id, name, type, effect, cost, description FROM items`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY cost, id"

	rows, err := i.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("shop listing: %w", err)
	}
	defer rows.Close()

	var out []engine.Item
	for rows.Next() {
		var it engine.Item
		var typ string
		if err := rows.Scan(&it.ID, &it.Name, &typ, &it.Effect, &it.Cost, &it.Description); err != nil {
			return nil, fmt.Errorf("shop listing scan: %w", err)
		}
		it.Type = engine.ItemType(typ)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shop listing rows: %w", err)
	}
	return out, nil
}

// QuestsByLevel returns quests whose required level lies in [min, max],
// ordered by level, then id.
func (i *Index) QuestsByLevel(ctx context.Context, min, max int) ([]engine.Quest, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, title, description, reward_xp, reward_gold, required_level, prerequisite
		FROM quests
		WHERE required_level BETWEEN ? AND ?
		ORDER BY required_level, id
	`, min, max)
	if err != nil {
		return nil, fmt.Errorf("quests by level: %w", err)
	}
	defer rows.Close()

	var out []engine.Quest
	for rows.Next() {
		var q engine.Quest
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.RewardXP, &q.RewardGold, &q.RequiredLevel, &q.Prerequisite); err != nil {
			return nil, fmt.Errorf("quests by level scan: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quests by level rows: %w", err)
	}
	return out, nil
}
