package state

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// TraitorChance is the probability that a joining companion is a traitor.
const TraitorChance = 0.2

// OutcomeWorker applies an oracle outcome batch to the roster. Outcomes are
// matched by player name; unknown names are skipped.
type OutcomeWorker struct {
	roster   Roster
	outcomes []oracle.PlayerOutcome
	journal  *Journal
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewOutcomeWorker creates a worker for one batch.
func NewOutcomeWorker(roster Roster, outcomes []oracle.PlayerOutcome, logger *slog.Logger) *OutcomeWorker {
	return &OutcomeWorker{
		roster:   roster,
		outcomes: outcomes,
		journal:  &Journal{},
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   logger,
	}
}

// WithJournal sets where log lines and cues are collected.
// Returns the OutcomeWorker for method chaining
func (w *OutcomeWorker) WithJournal(j *Journal) *OutcomeWorker {
	w.journal = j
	return w
}

// WithRand sets the source for companion loyalty rolls.
// Returns the OutcomeWorker for method chaining
func (w *OutcomeWorker) WithRand(r *rand.Rand) *OutcomeWorker {
	w.rng = r
	return w
}

// Apply reconciles every outcome in order.
func (w *OutcomeWorker) Apply() {
	for _, o := range w.outcomes {
		p := w.roster.ByName(o.PlayerName)
		if p == nil {
			w.logger.Warn("Outcome for unknown player skipped", "player", o.PlayerName)
			continue
		}
		w.applyOutcome(p, o)
	}
}

func (w *OutcomeWorker) applyOutcome(p *actor.Player, o oracle.PlayerOutcome) {
	if o.HPChange != 0 {
		p.AdjustHP(o.HPChange)
		if o.HPChange < 0 {
			w.journal.Logf(LogLoss, "%s: %d HP", p.Name, o.HPChange)
			w.journal.Cue(CueDamageTaken, p.Name, fmt.Sprint(-o.HPChange))
		} else {
			w.journal.Logf(LogGain, "%s: +%d HP", p.Name, o.HPChange)
		}
	}

	if o.MPChange != 0 {
		p.AdjustMP(o.MPChange)
	}

	if o.XPChange > 0 {
		grantXP(w.journal, p, o.XPChange)
	}

	if o.GoldChange != 0 {
		p.Gold += o.GoldChange
		w.journal.Logf(LogGain, "%s gained %d G.", p.Name, o.GoldChange)
	}

	if o.FoundItem != nil {
		actor.AddItem(p, *o.FoundItem)
		w.journal.Logf(LogGain, "%s found: %s", p.Name, o.FoundItem.Name)
		w.journal.Cue(CueItemAcquired, p.Name, o.FoundItem.Name)
	}

	if o.NewSkill != "" {
		p.Skills = append(p.Skills, o.NewSkill)
		w.journal.Logf(LogGain, "%s learned: %s", p.Name, o.NewSkill)
	}

	w.logger.Debug("Outcome applied",
		"player", p.Name,
		"hp", p.HP,
		"mp", p.MP,
		"level", p.Level,
		"gold", p.Gold)
}

// JoinCompanion attaches a new companion to the named player, falling back
// to the first player in the roster. It returns the leader, or nil for an
// empty roster.
func (w *OutcomeWorker) JoinCompanion(ev oracle.CompanionEvent) *actor.Player {
	if len(w.roster) == 0 {
		return nil
	}
	leader := w.roster[0]
	if ev.TargetPlayerName != "" {
		if p := w.roster.ByName(ev.TargetPlayerName); p != nil {
			leader = p
		}
	}

	leader.Companions = append(leader.Companions, actor.Companion{
		Name:      ev.Name,
		Role:      ev.Role,
		IsTraitor: w.rng.Float64() < TraitorChance,
		Power:     actor.CompanionPower(leader.Level),
	})
	w.journal.Logf(LogGain, "%s joined the party (leader: %s).", ev.Name, leader.Name)
	return leader
}

// grantXP awards experience and records any level-up.
func grantXP(j *Journal, p *actor.Player, amount int) {
	if levels := actor.GainXP(p, amount); levels > 0 {
		j.Logf(LogGain, "%s reached level %d!", p.Name, p.Level)
		j.Cue(CueLevelUp, p.Name, fmt.Sprint(p.Level))
	}
}
