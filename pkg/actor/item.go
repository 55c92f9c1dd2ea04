package actor

// ItemType is the category of an item. Values match the oracle wire format.
type ItemType string

const (
	ItemWeapon     ItemType = "WEAPON"
	ItemArmor      ItemType = "ARMOR"
	ItemAccessory  ItemType = "ACCESSORY"
	ItemMaterial   ItemType = "MATERIAL"
	ItemConsumable ItemType = "CONSUMABLE"
)

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Item is a value object. Inventories hold owned copies, and two items
// compare equal with == when every field matches.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Type        ItemType `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Rarity      Rarity   `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Bonus       Stats    `json:"stats,omitzero" yaml:"stats,omitempty"`
	HealAmount  int      `json:"healAmount,omitempty" yaml:"heal_amount,omitempty"`
	Quantity    int      `json:"quantity,omitempty" yaml:"quantity,omitempty"` // 0 means a single unit
	Cost        int      `json:"cost,omitempty" yaml:"cost,omitempty"`
	SellValue   int      `json:"sellValue,omitempty" yaml:"sell_value,omitempty"`
}

// Count returns the stack size, treating an absent quantity as one.
func (it Item) Count() int {
	if it.Quantity <= 0 {
		return 1
	}
	return it.Quantity
}

// Slot names an equipment slot.
type Slot string

const (
	SlotMainHand  Slot = "main_hand"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// SlotFor maps an item category to the slot it occupies.
func SlotFor(t ItemType) (Slot, bool) {
	switch t {
	case ItemWeapon:
		return SlotMainHand, true
	case ItemArmor:
		return SlotArmor, true
	case ItemAccessory:
		return SlotAccessory, true
	}
	return "", false
}

// ParseSlot accepts the slot names used by intents and console commands.
func ParseSlot(s string) (Slot, bool) {
	switch s {
	case "main_hand", "mainhand", "weapon":
		return SlotMainHand, true
	case "armor":
		return SlotArmor, true
	case "accessory":
		return SlotAccessory, true
	}
	return "", false
}

// Equipment holds at most one item per slot.
type Equipment struct {
	MainHand  *Item `json:"mainHand"`
	Armor     *Item `json:"armor"`
	Accessory *Item `json:"accessory"`
}

func (e *Equipment) slot(s Slot) **Item {
	switch s {
	case SlotMainHand:
		return &e.MainHand
	case SlotArmor:
		return &e.Armor
	case SlotAccessory:
		return &e.Accessory
	}
	return nil
}

// Get returns the item in slot s, or nil.
func (e Equipment) Get(s Slot) *Item {
	if p := e.slot(s); p != nil {
		return *p
	}
	return nil
}

// Items returns the equipped items in slot order.
func (e Equipment) Items() []Item {
	out := make([]Item, 0, 3)
	for _, it := range []*Item{e.MainHand, e.Armor, e.Accessory} {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}

func (e Equipment) clone() Equipment {
	cp := func(it *Item) *Item {
		if it == nil {
			return nil
		}
		c := *it
		return &c
	}
	return Equipment{MainHand: cp(e.MainHand), Armor: cp(e.Armor), Accessory: cp(e.Accessory)}
}

// Inventory is an ordered list of owned items.
type Inventory []Item

// IndexOf returns the position of the first entry equal to it, or -1.
func (inv Inventory) IndexOf(it Item) int {
	for i := range inv {
		if inv[i] == it {
			return i
		}
	}
	return -1
}

// FindStack returns the first entry with the same name and type, or -1.
// Rarity is ignored, so same-named items of different rarity share a stack.
func (inv Inventory) FindStack(name string, t ItemType) int {
	for i := range inv {
		if inv[i].Name == name && inv[i].Type == t {
			return i
		}
	}
	return -1
}

// FindByName returns the first entry with the given display name, or -1.
func (inv Inventory) FindByName(name string) int {
	for i := range inv {
		if inv[i].Name == name {
			return i
		}
	}
	return -1
}

// FindByID returns the first entry with the given ID, or -1.
func (inv Inventory) FindByID(id string) int {
	for i := range inv {
		if inv[i].ID == id {
			return i
		}
	}
	return -1
}

func (inv Inventory) without(i int) Inventory {
	out := make(Inventory, 0, len(inv)-1)
	out = append(out, inv[:i]...)
	return append(out, inv[i+1:]...)
}
