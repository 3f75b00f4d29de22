package engine

import (
	"sort"
	"strings"
)

// NoPrerequisite marks a quest without a prerequisite. Comparison is
// case-insensitive, so catalog files may write NONE.
const NoPrerequisite = "none"

type QuestCatalog map[string]Quest

type ItemCatalog map[string]Item

// IDs returns the quest ids in lexical order.
func (qc QuestCatalog) IDs() []string {
	ids := make([]string, 0, len(qc))
	for id := range qc {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (qc QuestCatalog) Get(id string) (Quest, bool) {
	q, ok := qc[id]
	return q, ok
}

// IDs returns the item ids in lexical order.
func (ic ItemCatalog) IDs() []string {
	ids := make([]string, 0, len(ic))
	for id := range ic {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ic ItemCatalog) Get(id string) (Item, bool) {
	it, ok := ic[id]
	return it, ok
}

// HasPrerequisite reports whether the quest depends on another quest.
func (q Quest) HasPrerequisite() bool {
	p := strings.TrimSpace(q.Prerequisite)
	return p != "" && !strings.EqualFold(p, NoPrerequisite)
}
