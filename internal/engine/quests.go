package engine

import (
	"fmt"
	"strings"
)

// Rewards is what completing a quest granted.
type Rewards struct {
	XP   int
	Gold int
}

func questNotFound(questID string) *Error {
	return &Error{
		Code:     CodeQuestNotFound,
		Message:  fmt.Sprintf("quest '%s' does not exist", questID),
		Metadata: map[string]string{"quest_id": questID},
	}
}

func questNotActive(questID string) *Error {
	return &Error{
		Code:     CodeQuestNotActive,
		Message:  fmt.Sprintf("quest '%s' is not active", questID),
		Metadata: map[string]string{"quest_id": questID},
	}
}

func IsQuestActive(c *Character, questID string) bool {
	return containsID(c.ActiveQuests, questID)
}

func IsQuestCompleted(c *Character, questID string) bool {
	return containsID(c.CompletedQuests, questID)
}

// checkAccept runs the acceptance gates in order and returns the first failure.
func checkAccept(c *Character, questID string, catalog QuestCatalog) error {
	q, ok := catalog.Get(questID)
	if !ok {
		return questNotFound(questID)
	}
	if IsQuestCompleted(c, questID) {
		return &Error{
			Code:     CodeQuestAlreadyCompleted,
			Message:  fmt.Sprintf("quest '%s' has already been completed", questID),
			Metadata: map[string]string{"quest_id": questID},
		}
	}
	if IsQuestActive(c, questID) {
		return &Error{
			Code:     CodeQuestUnavailable,
			Message:  fmt.Sprintf("quest '%s' is already active", questID),
			Metadata: map[string]string{"quest_id": questID},
		}
	}
	if c.Level < q.RequiredLevel {
		return LevelGateError(questID, q.RequiredLevel, c.Level)
	}
	if q.HasPrerequisite() && !IsQuestCompleted(c, strings.TrimSpace(q.Prerequisite)) {
		return &Error{
			Code:    CodeQuestUnavailable,
			Message: fmt.Sprintf("quest '%s' requires '%s' to be completed first", questID, q.Prerequisite),
			Metadata: map[string]string{
				"quest_id":     questID,
				"prerequisite": q.Prerequisite,
			},
		}
	}
	return nil
}

// AcceptQuest adds the quest to the active set if every gate passes.
func (s *Service) AcceptQuest(c *Character, questID string, catalog QuestCatalog) error {
	if err := checkAccept(c, questID, catalog); err != nil {
		return err
	}
	c.ActiveQuests = append(c.ActiveQuests, questID)
	s.infof("%s accepted quest %s", c.Name, questID)
	return nil
}

// CanAcceptQuest is AcceptQuest's gate check without the error.
func CanAcceptQuest(c *Character, questID string, catalog QuestCatalog) bool {
	return checkAccept(c, questID, catalog) == nil
}

// CompleteQuest moves an active quest to the completed set and grants its
// rewards. A dead character still banks the XP, but levels are only applied
// once it is alive again.
func (s *Service) CompleteQuest(c *Character, questID string, catalog QuestCatalog) (Rewards, error) {
	q, ok := catalog.Get(questID)
	if !ok {
		return Rewards{}, questNotFound(questID)
	}
	if !IsQuestActive(c, questID) {
		return Rewards{}, questNotActive(questID)
	}
	if c.Gold+q.RewardGold < 0 {
		return Rewards{}, newError(CodeInsufficientFunds, "quest '%s' reward would leave negative gold", questID)
	}

	c.ActiveQuests, _ = removeFirst(c.ActiveQuests, questID)
	c.CompletedQuests = append(c.CompletedQuests, questID)

	if c.IsDead() {
		c.Experience += q.RewardXP
		s.infof("%s banked %d XP from %s while dead", c.Name, q.RewardXP, questID)
	} else if _, err := s.GrantExperience(c, q.RewardXP); err != nil {
		return Rewards{}, err
	}
	if _, err := c.AddGold(q.RewardGold); err != nil {
		return Rewards{}, err
	}

	s.infof("%s completed quest %s (+%d XP, +%d gold)", c.Name, questID, q.RewardXP, q.RewardGold)
	return Rewards{XP: q.RewardXP, Gold: q.RewardGold}, nil
}

func (s *Service) AbandonQuest(c *Character, questID string) error {
	next, ok := removeFirst(c.ActiveQuests, questID)
	if !ok {
		return questNotActive(questID)
	}
	c.ActiveQuests = next
	return nil
}

// PrerequisiteChain walks prerequisite edges back to the root and returns the
// ids ordered earliest prerequisite first, questID last.
func PrerequisiteChain(questID string, catalog QuestCatalog) ([]string, error) {
	if _, ok := catalog.Get(questID); !ok {
		return nil, questNotFound(questID)
	}

	var chain []string
	seen := map[string]bool{}
	cur := questID
	for {
		if seen[cur] {
			return nil, &Error{
				Code:     CodePrerequisiteCycle,
				Message:  fmt.Sprintf("prerequisite cycle detected at '%s' in chain for '%s'", cur, questID),
				Metadata: map[string]string{"quest_id": questID, "repeated": cur},
			}
		}
		q, ok := catalog.Get(cur)
		if !ok {
			return nil, &Error{
				Code:     CodeQuestNotFound,
				Message:  fmt.Sprintf("prerequisite '%s' in chain for '%s' does not exist", cur, questID),
				Metadata: map[string]string{"quest_id": cur},
			}
		}
		seen[cur] = true
		chain = append(chain, cur)
		if !q.HasPrerequisite() {
			break
		}
		cur = strings.TrimSpace(q.Prerequisite)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// ValidatePrerequisites checks that every prerequisite names a quest in the
// catalog, then that no chain loops back on itself. Quests are checked in id
// order so the reported quest is stable.
func ValidatePrerequisites(catalog QuestCatalog) error {
	ids := catalog.IDs()
	for _, id := range ids {
		q := catalog[id]
		if !q.HasPrerequisite() {
			continue
		}
		prereq := strings.TrimSpace(q.Prerequisite)
		if _, ok := catalog.Get(prereq); !ok {
			return &Error{
				Code:    CodeQuestNotFound,
				Message: fmt.Sprintf("quest '%s' requires '%s', which does not exist", id, prereq),
				Metadata: map[string]string{
					"quest_id":     id,
					"prerequisite": prereq,
				},
			}
		}
	}
	for _, id := range ids {
		if _, err := PrerequisiteChain(id, catalog); err != nil {
			return err
		}
	}
	return nil
}
