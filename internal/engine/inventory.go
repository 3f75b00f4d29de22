package engine

import "fmt"

// ItemCount is one inventory line for display.
type ItemCount struct {
	ItemID   string
	Quantity int
}

func (s *Service) SpaceRemaining(c *Character) int {
	return s.rules.InventoryCapacity - len(c.Inventory)
}

func HasItem(c *Character, itemID string) bool {
	return containsID(c.Inventory, itemID)
}

func CountItem(c *Character, itemID string) int {
	n := 0
	for _, id := range c.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// ItemCounts groups the inventory by item id, in first-seen order.
func ItemCounts(c *Character) []ItemCount {
	idx := map[string]int{}
	var out []ItemCount
	for _, id := range c.Inventory {
		if i, ok := idx[id]; ok {
			out[i].Quantity++
			continue
		}
		idx[id] = len(out)
		out = append(out, ItemCount{ItemID: id, Quantity: 1})
	}
	return out
}

// CheckCapacity reports an inventory holding more items than the configured
// capacity, as can happen when a save is loaded under a smaller limit.
func (s *Service) CheckCapacity(c *Character) error {
	if n := len(c.Inventory); n > s.rules.InventoryCapacity {
		return invalidField("inventory", fmt.Sprintf("holds %d items, capacity is %d", n, s.rules.InventoryCapacity))
	}
	return nil
}

// ClearInventory empties the inventory and returns what was removed.
func ClearInventory(c *Character) []string {
	removed := c.Inventory
	c.Inventory = []string{}
	return removed
}

func (s *Service) AddItem(c *Character, itemID string) error {
	if s.SpaceRemaining(c) <= 0 {
		return &Error{
			Code:     CodeInventoryFull,
			Message:  fmt.Sprintf("cannot add %s: inventory is full (%d/%d)", itemID, len(c.Inventory), s.rules.InventoryCapacity),
			Metadata: map[string]string{"item_id": itemID},
		}
	}
	c.Inventory = append(c.Inventory, itemID)
	return nil
}

func (s *Service) RemoveItem(c *Character, itemID string) error {
	next, ok := removeFirst(c.Inventory, itemID)
	if !ok {
		return itemNotFound(itemID)
	}
	c.Inventory = next
	return nil
}

func itemNotFound(itemID string) *Error {
	return &Error{
		Code:     CodeItemNotFound,
		Message:  fmt.Sprintf("item %s is not in the inventory", itemID),
		Metadata: map[string]string{"item_id": itemID},
	}
}

func wrongItemType(itemID string, got, want ItemType) *Error {
	return &Error{
		Code:     CodeInvalidItemType,
		Message:  fmt.Sprintf("item %s is a %s, not a %s", itemID, got, want),
		Metadata: map[string]string{"item_id": itemID, "type": string(got)},
	}
}

// UseItem consumes one consumable and applies its effect.
func (s *Service) UseItem(c *Character, itemID string, item Item) (Effect, error) {
	if !HasItem(c, itemID) {
		return Effect{}, itemNotFound(itemID)
	}
	if item.Type != ItemConsumable {
		return Effect{}, wrongItemType(itemID, item.Type, ItemConsumable)
	}
	eff, err := ParseEffect(item.Effect)
	if err != nil {
		return Effect{}, wrapError(CodeInvalidItemType, err, "item %s has an invalid effect", itemID)
	}
	s.ApplyStatEffect(c, eff)
	c.Inventory, _ = removeFirst(c.Inventory, itemID)
	return eff, nil
}

// Slot selects an equipment slot.
type Slot int

const (
	SlotWeapon Slot = iota
	SlotArmor
)

func (sl Slot) String() string {
	if sl == SlotArmor {
		return "armor"
	}
	return "weapon"
}

func (sl Slot) itemType() ItemType {
	if sl == SlotArmor {
		return ItemArmor
	}
	return ItemWeapon
}

func (sl Slot) ref(c *Character) **Equipment {
	if sl == SlotArmor {
		return &c.EquippedArmor
	}
	return &c.EquippedWeapon
}

// EquipResult reports what an equip changed.
type EquipResult struct {
	Equipped   string
	Unequipped string
	Effect     Effect
}

func (s *Service) EquipWeapon(c *Character, itemID string, item Item) (EquipResult, error) {
	return s.equip(c, SlotWeapon, itemID, item)
}

func (s *Service) EquipArmor(c *Character, itemID string, item Item) (EquipResult, error) {
	return s.equip(c, SlotArmor, itemID, item)
}

func (s *Service) equip(c *Character, slot Slot, itemID string, item Item) (EquipResult, error) {
	if !HasItem(c, itemID) {
		return EquipResult{}, itemNotFound(itemID)
	}
	if item.Type != slot.itemType() {
		return EquipResult{}, wrongItemType(itemID, item.Type, slot.itemType())
	}
	eff, err := ParseEffect(item.Effect)
	if err != nil {
		return EquipResult{}, wrapError(CodeInvalidItemType, err, "item %s has an invalid effect", itemID)
	}

	var res EquipResult
	if *slot.ref(c) != nil {
		old, _, err := s.unequip(c, slot)
		if err != nil {
			return EquipResult{}, err
		}
		res.Unequipped = old
	}

	s.ApplyStatEffect(c, eff)
	*slot.ref(c) = &Equipment{ItemID: itemID, Effect: item.Effect}
	c.Inventory, _ = removeFirst(c.Inventory, itemID)

	res.Equipped = itemID
	res.Effect = eff
	return res, nil
}

// UnequipWeapon returns the equipped weapon to the inventory. ok is false
// when nothing was equipped.
func (s *Service) UnequipWeapon(c *Character) (itemID string, ok bool, err error) {
	return s.unequip(c, SlotWeapon)
}

func (s *Service) UnequipArmor(c *Character) (itemID string, ok bool, err error) {
	return s.unequip(c, SlotArmor)
}

// Unequip dispatches on slot.
func (s *Service) Unequip(c *Character, slot Slot) (string, bool, error) {
	return s.unequip(c, slot)
}

func (s *Service) unequip(c *Character, slot Slot) (string, bool, error) {
	ref := slot.ref(c)
	current := *ref
	if current == nil {
		return "", false, nil
	}
	if s.SpaceRemaining(c) <= 0 {
		return "", false, &Error{
			Code:     CodeInventoryFull,
			Message:  fmt.Sprintf("cannot unequip %s: inventory is full", current.ItemID),
			Metadata: map[string]string{"item_id": current.ItemID, "slot": slot.String()},
		}
	}
	if eff, err := ParseEffect(current.Effect); err != nil {
		s.warnf("could not reverse effect of equipped %s %s: %v", slot, current.ItemID, err)
	} else {
		s.ApplyStatEffect(c, eff.Negate())
	}
	c.Inventory = append(c.Inventory, current.ItemID)
	*ref = nil
	return current.ItemID, true, nil
}

func (s *Service) PurchaseItem(c *Character, itemID string, item Item) error {
	if c.Gold < item.Cost {
		return &Error{
			Code:    CodeInsufficientFunds,
			Message: fmt.Sprintf("cannot buy %s: costs %d gold, %s has %d", itemID, item.Cost, c.Name, c.Gold),
			Metadata: map[string]string{
				"item_id": itemID,
				"needed":  fmt.Sprint(item.Cost),
				"gold":    fmt.Sprint(c.Gold),
			},
		}
	}
	if err := s.AddItem(c, itemID); err != nil {
		return err
	}
	c.Gold -= item.Cost
	return nil
}

// SellItem removes one item and credits half its cost, rounded down.
func (s *Service) SellItem(c *Character, itemID string, item Item) (int, error) {
	if err := s.RemoveItem(c, itemID); err != nil {
		return 0, err
	}
	price := item.Cost / 2
	c.Gold += price
	return price, nil
}
