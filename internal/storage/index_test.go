package storage

import (
	"context"
	"path/filepath"
	"testing"

	"questchronicles/internal/engine"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	if _, err := CreateDefaultDataFiles(dir); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	quests, items, err := LoadCatalogs(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	idx, err := BuildIndex(context.Background(), quests, items)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func itemIDs(items []engine.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestShopListing(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter ShopFilter
		want   []string
	}{
		{"all", ShopFilter{}, []string{"sword_basic", "leather_armor", "oak_staff", "potion_health_1", "tonic_vigor"}},
		{"weapons", ShopFilter{Type: engine.ItemWeapon}, []string{"sword_basic", "oak_staff"}},
		{"cheap", ShopFilter{MaxCost: 30}, []string{"sword_basic", "leather_armor"}},
		{"cheap consumables", ShopFilter{Type: engine.ItemConsumable, MaxCost: 50}, []string{"potion_health_1"}},
	}
	for _, tc := range cases {
		list, err := idx.ShopListing(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		got := itemIDs(list)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestQuestsByLevel(t *testing.T) {
	idx := newTestIndex(t)

	list, err := idx.QuestsByLevel(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 2 || list[0].ID != "goblin_slayer_1" || list[1].ID != "orc_leader" {
		t.Fatalf("unexpected quests %+v", list)
	}
	if list[1].Prerequisite != "goblin_slayer_1" || list[1].RewardGold != 250 {
		t.Fatalf("unexpected row %+v", list[1])
	}
}

func TestIndexReload(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	items := engine.ItemCatalog{"gem": {ID: "gem", Name: "Gem", Type: engine.ItemConsumable, Effect: "magic:1", Cost: 5}}
	if err := idx.Load(ctx, engine.QuestCatalog{}, items); err != nil {
		t.Fatalf("reload: %v", err)
	}
	list, err := idx.ShopListing(ctx, ShopFilter{})
	if err != nil || len(list) != 1 || list[0].ID != "gem" {
		t.Fatalf("after reload: %+v %v", list, err)
	}
	quests, err := idx.QuestsByLevel(ctx, 1, 100)
	if err != nil || len(quests) != 0 {
		t.Fatalf("expected no quests, got %+v %v", quests, err)
	}
}
