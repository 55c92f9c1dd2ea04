package actor

// XPTable maps level-1 to the XP needed to leave that level. Past the end of
// the table the threshold is XPCeiling.
var XPTable = []int{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 4500, 10000}

const (
	XPCeiling          = 100000
	StatPointsPerLevel = 4
	startingMaxXP      = 100
)

// XPThreshold returns the XP needed to advance past level. Level 1 uses the
// fixed starting threshold; higher levels read XPTable[level-1].
func XPThreshold(level int) int {
	if level <= StartingLevel {
		return startingMaxXP
	}
	if level-1 < len(XPTable) {
		return XPTable[level-1]
	}
	return XPCeiling
}

// GainXP adds experience and loops over every threshold it crosses. Each
// level awards StatPointsPerLevel points. Any level-up ends with a full heal
// against the recomputed maximums. It returns the number of levels gained.
func GainXP(p *Player, amount int) int {
	if amount <= 0 {
		return 0
	}
	p.CurrentXP += amount

	gained := 0
	for p.MaxXP > 0 && p.CurrentXP >= p.MaxXP {
		p.CurrentXP -= p.MaxXP
		p.Level++
		p.StatPoints += StatPointsPerLevel
		p.MaxXP = XPThreshold(p.Level)
		gained++
	}
	if gained > 0 {
		p.Recompute()
		p.HP = p.MaxHP
		p.MP = p.MaxMP
	}
	return gained
}

// SpendStatPoint moves one unspent point into a base attribute.
func SpendStatPoint(p *Player, stat StatName) bool {
	if p.StatPoints <= 0 {
		return false
	}
	if !p.BaseStats.inc(stat, 1) {
		return false
	}
	p.StatPoints--
	p.Recompute()
	return true
}
