package oracle

// The schemas below are plain JSON Schema maps. Providers that support
// structured output pass them through; the rest embed them in the prompt.

func str(desc string, enum ...string) map[string]any {
	s := map[string]any{"type": "string"}
	if desc != "" {
		s["description"] = desc
	}
	if len(enum) > 0 {
		s["enum"] = enum
	}
	return s
}

func integer(desc string) map[string]any {
	s := map[string]any{"type": "integer"}
	if desc != "" {
		s["description"] = desc
	}
	return s
}

func boolean(desc string) map[string]any {
	s := map[string]any{"type": "boolean"}
	if desc != "" {
		s["description"] = desc
	}
	return s
}

func object(props map[string]any, required ...string) map[string]any {
	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func itemSchema() map[string]any {
	return object(map[string]any{
		"id":          str(""),
		"name":        str(""),
		"type":        str("", "WEAPON", "ARMOR", "ACCESSORY", "MATERIAL", "CONSUMABLE"),
		"description": str(""),
		"rarity":      str("", "COMMON", "RARE", "EPIC", "LEGENDARY"),
		"stats": object(map[string]any{
			"strength":     integer(""),
			"resistance":   integer(""),
			"perception":   integer(""),
			"intelligence": integer(""),
		}),
		"healAmount": integer(""),
		"quantity":   integer(""),
		"cost":       integer(""),
		"sellValue":  integer(""),
	}, "id", "name", "type", "description", "rarity")
}

// EventSchema describes an EventResponse.
func EventSchema() map[string]any {
	outcome := object(map[string]any{
		"playerName": str(""),
		"hpChange":   integer(""),
		"mpChange":   integer(""),
		"xpChange":   integer(""),
		"goldChange": integer("Gold found or earned"),
		"foundItem":  itemSchema(),
		"newSkill":   str(""),
	}, "playerName", "hpChange", "xpChange")

	choice := object(map[string]any{
		"id":        str(""),
		"text":      str(""),
		"riskLevel": str("", string(RiskLow), string(RiskHigh), string(RiskExtreme)),
	}, "id", "text", "riskLevel")

	companion := object(map[string]any{
		"name":             str(""),
		"role":             str(""),
		"action":           str("", string(CompanionJoin), string(CompanionBetray), string(CompanionLeave)),
		"targetPlayerName": str(""),
	})

	enemy := object(map[string]any{
		"name":        str(""),
		"description": str(""),
		"hp":          integer(""),
		"weakness":    str("", "PHYSICAL", "MAGIC", "NONE"),
		"isBoss":      boolean(""),
	})

	return object(map[string]any{
		"narrative":         str(""),
		"outcomes":          array(outcome),
		"choices":           array(choice),
		"companionEvent":    companion,
		"isBossEncounter":   boolean(""),
		"isCombatEncounter": boolean("True for a special enemy (not the floor boss) that starts turn-based combat."),
		"enemyDetails":      enemy,
		"questUpdate":       str(""),
	}, "narrative", "outcomes", "isBossEncounter")
}

// CombatSchema describes a CombatResponse.
func CombatSchema() map[string]any {
	damage := object(map[string]any{
		"playerName": str(""),
		"damage":     integer(""),
	}, "playerName", "damage")

	option := object(map[string]any{
		"id":          str(""),
		"text":        str(""),
		"description": str(""),
	}, "id", "text", "description")

	event := object(map[string]any{
		"title":       str(""),
		"description": str(""),
		"options":     array(option),
	}, "title", "description", "options")
	event["description"] = "A special enemy move, such as a fire breath"

	return object(map[string]any{
		"narrative":        str(""),
		"playersDmgToBoss": integer(""),
		"bossDmgToPlayers": array(damage),
		"escapeSuccess":    boolean(""),
		"interactiveEvent": event,
	}, "narrative", "playersDmgToBoss", "bossDmgToPlayers", "escapeSuccess")
}
