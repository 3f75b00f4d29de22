package engine

type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
	ClassRogue   Class = "Rogue"
	ClassCleric  Class = "Cleric"
)

// Classes lists the playable classes in menu order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue, ClassCleric}

func (c Class) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassRogue, ClassCleric:
		return true
	default:
		return false
	}
}

// AbilityName is the display name of the class special ability.
func (c Class) AbilityName() string {
	switch c {
	case ClassWarrior:
		return "Power Strike"
	case ClassMage:
		return "Fireball"
	case ClassRogue:
		return "Critical Strike"
	case ClassCleric:
		return "Heal"
	default:
		return "None"
	}
}

type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemConsumable ItemType = "consumable"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemWeapon, ItemArmor, ItemConsumable:
		return true
	default:
		return false
	}
}

// Stat names understood by item effects.
const (
	StatHealth    = "health"
	StatMaxHealth = "max_health"
	StatStrength  = "strength"
	StatMagic     = "magic"
)

// Equipment is what sits in a weapon or armor slot. The effect string is kept
// so the bonus can be reversed exactly on unequip.
type Equipment struct {
	ItemID string
	Effect string
}

type Character struct {
	Name            string
	Class           Class
	Level           int
	Experience      int
	Health          int
	MaxHealth       int
	Strength        int
	Magic           int
	Gold            int
	Inventory       []string
	ActiveQuests    []string
	CompletedQuests []string
	EquippedWeapon  *Equipment
	EquippedArmor   *Equipment
}

type Quest struct {
	ID            string
	Title         string
	Description   string
	RewardXP      int
	RewardGold    int
	RequiredLevel int
	Prerequisite  string
}

type Item struct {
	ID          string
	Name        string
	Type        ItemType
	Effect      string
	Cost        int
	Description string
}
