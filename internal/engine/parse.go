package engine

import (
	"strings"
)

// ParseClass parses user input to a Class. Matching is case-insensitive.
func ParseClass(input string) (Class, error) {
	s := strings.TrimSpace(input)
	for _, c := range Classes {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &Error{
		Code:     CodeInvalidClass,
		Message:  "invalid class '" + s + "'; valid classes are Warrior, Mage, Rogue, Cleric",
		Metadata: map[string]string{"class": s},
	}
}

// ParseItemType parses a catalog TYPE value.
func ParseItemType(input string) (ItemType, error) {
	t := ItemType(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return "", newError(CodeInvalidData, "invalid item type %q; must be weapon, armor or consumable", input)
	}
	return t, nil
}
