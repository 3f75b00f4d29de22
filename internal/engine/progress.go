package engine

// Derived, read-only views over a character's quest log.

func questsByID(ids []string, catalog QuestCatalog) []Quest {
	out := make([]Quest, 0, len(ids))
	for _, id := range ids {
		if q, ok := catalog.Get(id); ok {
			out = append(out, q)
		}
	}
	return out
}

// ActiveQuests returns the catalog entries of active quests, in accept order.
func ActiveQuests(c *Character, catalog QuestCatalog) []Quest {
	return questsByID(c.ActiveQuests, catalog)
}

// CompletedQuests returns the catalog entries of completed quests, in
// completion order.
func CompletedQuests(c *Character, catalog QuestCatalog) []Quest {
	return questsByID(c.CompletedQuests, catalog)
}

// AvailableQuests returns every quest the character could accept right now.
func AvailableQuests(c *Character, catalog QuestCatalog) []Quest {
	var out []Quest
	for _, id := range catalog.IDs() {
		if CanAcceptQuest(c, id, catalog) {
			out = append(out, catalog[id])
		}
	}
	return out
}

// CompletionPercentage is completed/total*100, or 0 for an empty catalog.
func CompletionPercentage(c *Character, catalog QuestCatalog) float64 {
	if len(catalog) == 0 {
		return 0
	}
	return float64(len(c.CompletedQuests)) / float64(len(catalog)) * 100
}

// TotalQuestRewards sums rewards over completed quests still in the catalog.
func TotalQuestRewards(c *Character, catalog QuestCatalog) Rewards {
	var total Rewards
	for _, q := range CompletedQuests(c, catalog) {
		total.XP += q.RewardXP
		total.Gold += q.RewardGold
	}
	return total
}

// QuestsInLevelRange returns quests whose required level lies in [min, max],
// in id order.
func QuestsInLevelRange(catalog QuestCatalog, min, max int) []Quest {
	all := make([]Quest, 0, len(catalog))
	for _, id := range catalog.IDs() {
		all = append(all, catalog[id])
	}
	return FilterByLevel(all, min, max)
}

// FilterByLevel keeps the quests whose required level lies in [min, max],
// preserving order.
func FilterByLevel(quests []Quest, min, max int) []Quest {
	var out []Quest
	for _, q := range quests {
		if q.RequiredLevel >= min && q.RequiredLevel <= max {
			out = append(out, q)
		}
	}
	return out
}

// Progress summarizes a character's quest log.
type Progress struct {
	Active     int
	Completed  int
	Available  int
	Total      int
	Percentage float64
	Earned     Rewards
}

func QuestProgress(c *Character, catalog QuestCatalog) Progress {
	return Progress{
		Active:     len(c.ActiveQuests),
		Completed:  len(c.CompletedQuests),
		Available:  len(AvailableQuests(c, catalog)),
		Total:      len(catalog),
		Percentage: CompletionPercentage(c, catalog),
		Earned:     TotalQuestRewards(c, catalog),
	}
}
