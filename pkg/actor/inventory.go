package actor

import "strings"

// ManaRestore is the MP restored by consumables whose ID contains "mana".
const ManaRestore = 30

// Recipe consumes materials by name and produces a single item.
type Recipe struct {
	ID            string     `json:"id" yaml:"id"`
	RequiredLevel int        `json:"requiredLevel" yaml:"required_level"`
	Materials     []Material `json:"materials" yaml:"materials"`
	Result        Item       `json:"result" yaml:"result"`
}

type Material struct {
	Name  string `json:"itemName" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Requirements totals the recipe's materials per item name, in first-seen
// order.
func (r Recipe) Requirements() []Material {
	out := make([]Material, 0, len(r.Materials))
	seen := make(map[string]int, len(r.Materials))
	for _, m := range r.Materials {
		if i, ok := seen[m.Name]; ok {
			out[i].Count += m.Count
			continue
		}
		seen[m.Name] = len(out)
		out = append(out, m)
	}
	return out
}

// Equip moves item from the inventory into its slot, returning any
// displaced item to the end of the inventory. It does nothing if the item's
// category has no slot or the player does not own the item.
func Equip(p *Player, item Item) bool {
	slot, ok := SlotFor(item.Type)
	if !ok {
		return false
	}
	idx := p.Inventory.IndexOf(item)
	if idx < 0 {
		return false
	}
	p.Inventory = p.Inventory.without(idx)

	ref := p.Equipment.slot(slot)
	if prev := *ref; prev != nil {
		p.Inventory = append(p.Inventory, *prev)
	}
	equipped := item
	*ref = &equipped
	p.Recompute()
	return true
}

// Unequip returns the item in slot to the end of the inventory.
func Unequip(p *Player, slot Slot) bool {
	ref := p.Equipment.slot(slot)
	if ref == nil || *ref == nil {
		return false
	}
	p.Inventory = append(p.Inventory, **ref)
	*ref = nil
	p.Recompute()
	return true
}

// Use consumes one unit of a consumable. Healing is clamped to MaxHP; items
// whose ID contains "mana" also restore ManaRestore MP. Both may apply.
func Use(p *Player, item Item) bool {
	if item.Type != ItemConsumable {
		return false
	}
	idx := p.Inventory.IndexOf(item)
	if idx < 0 {
		return false
	}

	if n := p.Inventory[idx].Count(); n > 1 {
		p.Inventory[idx].Quantity = n - 1
	} else {
		p.Inventory = p.Inventory.without(idx)
	}

	if item.HealAmount > 0 {
		p.AdjustHP(item.HealAmount)
	}
	if strings.Contains(item.ID, "mana") {
		p.AdjustMP(ManaRestore)
	}
	return true
}

// CanCraft reports whether every material is held in sufficient quantity
// and the player meets the recipe's level gate.
func CanCraft(p *Player, r Recipe) bool {
	if p.Level < r.RequiredLevel {
		return false
	}
	for _, m := range r.Requirements() {
		idx := p.Inventory.FindByName(m.Name)
		if idx < 0 || p.Inventory[idx].Count() < m.Count {
			return false
		}
	}
	return true
}

// Craft consumes the recipe's materials and appends its result. Nothing is
// consumed unless every material check passes first.
func Craft(p *Player, r Recipe) bool {
	if !CanCraft(p, r) {
		return false
	}
	for _, m := range r.Requirements() {
		idx := p.Inventory.FindByName(m.Name)
		if held := p.Inventory[idx].Count(); held == m.Count {
			p.Inventory = p.Inventory.without(idx)
		} else {
			p.Inventory[idx].Quantity = held - m.Count
		}
	}
	p.Inventory = append(p.Inventory, r.Result)
	return true
}

// Buy deducts cost and appends the item.
func Buy(p *Player, item Item, cost int) bool {
	if p.Gold < cost {
		return false
	}
	p.Gold -= cost
	p.Inventory = append(p.Inventory, item)
	return true
}

// AddItem adds a found item. When an entry with the same name and type
// exists and the found item carries a quantity, the quantities merge;
// otherwise the item is appended as a new entry.
func AddItem(p *Player, item Item) {
	if item.Quantity > 0 {
		if idx := p.Inventory.FindStack(item.Name, item.Type); idx >= 0 {
			p.Inventory[idx].Quantity = p.Inventory[idx].Count() + item.Quantity
			return
		}
	}
	p.Inventory = append(p.Inventory, item)
}
