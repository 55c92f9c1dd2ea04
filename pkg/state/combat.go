package state

import (
	"context"
	"fmt"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// CombatOutcome is where a resolved combat turn left the fight.
type CombatOutcome string

const (
	CombatContinues    CombatOutcome = "continues"
	CombatWon          CombatOutcome = "won"
	CombatFled         CombatOutcome = "fled"
	CombatWiped        CombatOutcome = "wiped"
	CombatEventPending CombatOutcome = "event_pending"
	// CombatNoResult means the oracle call failed and nothing was applied.
	CombatNoResult CombatOutcome = ""
)

// guardCombat checks that a combat turn may start in phase want. Must hold mu.
func (s *Session) guardCombat(want Phase) error {
	if s.phase.IsTerminal() {
		return ErrGameOver
	}
	if s.phase != want || s.encounter == nil {
		return ErrWrongPhase
	}
	if s.busy {
		return ErrBusy
	}
	if s.roster.AllDown() {
		return ErrPartyDowned
	}
	return nil
}

// CombatTurn submits the party's actions for one turn. An empty list means
// a basic attack from every living player.
func (s *Session) CombatTurn(ctx context.Context, actions []oracle.CombatAction) (CombatOutcome, error) {
	var req *oracle.CombatRequest
	err := s.update(ctx, func(j *Journal) error {
		if err := s.guardCombat(PhaseBossCombat); err != nil {
			return err
		}
		prepared := s.prepareActions(j, actions)
		req = s.beginCombat(oracle.TurnActions, prepared, "")
		return nil
	})
	if err != nil {
		return CombatNoResult, err
	}
	return s.runCombat(ctx, req), nil
}

// Flee tries to escape the current fight.
func (s *Session) Flee(ctx context.Context) (CombatOutcome, error) {
	var req *oracle.CombatRequest
	err := s.update(ctx, func(j *Journal) error {
		if err := s.guardCombat(PhaseBossCombat); err != nil {
			return err
		}
		req = s.beginCombat(oracle.TurnFlee, nil, "")
		return nil
	})
	if err != nil {
		return CombatNoResult, err
	}
	return s.runCombat(ctx, req), nil
}

// ResolveBossEvent answers the enemy's interactive event with one of its
// options and resolves the turn.
func (s *Session) ResolveBossEvent(ctx context.Context, optionID string) (CombatOutcome, error) {
	var req *oracle.CombatRequest
	err := s.update(ctx, func(j *Journal) error {
		if err := s.guardCombat(PhaseBossEventResolve); err != nil {
			return err
		}
		var option *oracle.EventOption
		if s.bossEvent != nil {
			for i := range s.bossEvent.Options {
				if s.bossEvent.Options[i].ID == optionID {
					option = &s.bossEvent.Options[i]
					break
				}
			}
		}
		if option == nil {
			return fmt.Errorf("%w: %q", ErrUnknownChoice, optionID)
		}
		j.Logf(LogSystem, "The party chose: %s", option.Text)
		req = s.beginCombat(oracle.TurnEventResolution, nil, option.Text)
		return nil
	})
	if err != nil {
		return CombatNoResult, err
	}
	return s.runCombat(ctx, req), nil
}

// prepareActions drops actions for unknown or downed players and pays for
// skills. A skill without enough MP becomes a basic attack. Must hold mu.
func (s *Session) prepareActions(j *Journal, actions []oracle.CombatAction) []oracle.CombatAction {
	living := s.roster.Living()
	if len(actions) == 0 {
		out := make([]oracle.CombatAction, 0, len(living))
		for _, p := range living {
			out = append(out, oracle.CombatAction{PlayerName: p.Name, ActionType: oracle.CombatAttack})
		}
		return out
	}

	out := make([]oracle.CombatAction, 0, len(actions))
	for _, a := range actions {
		p := living.ByName(a.PlayerName)
		if p == nil {
			s.logger.Warn("Combat action for unavailable player dropped", "player", a.PlayerName)
			continue
		}
		if a.ActionType == oracle.CombatSkill {
			if p.MP >= actor.SkillManaCost {
				p.AdjustMP(-actor.SkillManaCost)
			} else {
				a.ActionType = oracle.CombatAttack
				a.SkillName = ""
				j.Logf(LogSystem, "%s is out of mana! Used a basic attack.", p.Name)
			}
		}
		out = append(out, a)
	}
	return out
}

// beginCombat marks the session busy and captures the request. Must hold mu.
func (s *Session) beginCombat(kind oracle.TurnKind, actions []oracle.CombatAction, eventContext string) *oracle.CombatRequest {
	s.busy = true
	return &oracle.CombatRequest{
		Players:      s.roster.Living().Summaries(),
		EnemyName:    s.encounter.Name,
		EnemyHP:      s.encounter.HP,
		Kind:         kind,
		Actions:      actions,
		EventContext: eventContext,
	}
}

func (s *Session) runCombat(ctx context.Context, req *oracle.CombatRequest) CombatOutcome {
	s.logger.Info("Dispatching combat turn", "kind", req.Kind, "enemy", req.EnemyName, "enemy_hp", req.EnemyHP)

	octx, cancel := s.oracleContext(ctx)
	resp, err := s.oracle.CombatTurn(octx, req)
	cancel()

	outcome := CombatNoResult
	_ = s.update(ctx, func(j *Journal) error {
		s.busy = false
		if err != nil || resp == nil {
			s.logger.Error("Combat oracle call failed", "kind", req.Kind, "error", err)
			j.Log(LogSystem, oracleLostMessage)
			return nil
		}
		outcome = s.applyCombat(j, req.Kind, resp)
		return nil
	})
	return outcome
}

// applyCombat folds a combat response into the session. A wipe outranks a
// defeated enemy. Must hold mu.
func (s *Session) applyCombat(j *Journal, kind oracle.TurnKind, resp *oracle.CombatResponse) CombatOutcome {
	if s.phase == PhaseBossEventResolve {
		s.bossEvent = nil
		s.setPhase(j, PhaseBossCombat)
	}

	j.Log(LogCombat, resp.Narrative)
	j.Cue(CueCombatSlash, "", "")

	if kind == oracle.TurnFlee && resp.EscapeSuccess {
		s.encounter = nil
		s.setPhase(j, PhaseExploration)
		j.Log(LogSystem, "The party escaped.")
		return CombatFled
	}

	enc := s.encounter
	enc.TakeDamage(resp.PlayersDmgToBoss)

	for _, d := range resp.BossDmgToPlayers {
		p := s.roster.ByName(d.PlayerName)
		if p == nil || d.Damage <= 0 {
			continue
		}
		wasUp := !p.IsDown()
		p.AdjustHP(-d.Damage)
		j.Cue(CueDamageTaken, p.Name, fmt.Sprint(d.Damage))
		if wasUp && p.IsDown() {
			j.Logf(LogLoss, "%s fell unconscious!", p.Name)
		}
	}

	if s.roster.AllDown() {
		j.Log(LogLoss, "The whole party has fallen.")
		s.setPhase(j, PhaseGameOver)
		return CombatWiped
	}

	if enc.IsDefeated() {
		s.rewardVictory(j, enc)
		return CombatWon
	}

	if ev := resp.PendingEvent(); ev != nil {
		s.bossEvent = ev
		s.setPhase(j, PhaseBossEventResolve)
		j.Logf(LogCombat, "%s: %s", ev.Title, ev.Description)
		return CombatEventPending
	}
	return CombatContinues
}

// rewardVictory pays out the defeated enemy and moves on. Must hold mu.
func (s *Session) rewardVictory(j *Journal, enc *actor.Encounter) {
	if enc.IsBoss {
		j.Log(LogVictory, "BOSS DEFEATED!")
	} else {
		j.Log(LogVictory, "ENEMY DEFEATED!")
	}
	j.Cue(CueEnemyDefeated, "", enc.Name)

	xp, gold := enc.Rewards(s.floor)
	for _, p := range s.roster.Living() {
		grantXP(j, p, xp)
		p.Gold += gold
	}
	j.Logf(LogGain, "Reward: %d Gold.", gold)
	s.logger.Info("Enemy defeated", "enemy", enc.Name, "boss", enc.IsBoss, "floor", s.floor, "xp", xp, "gold", gold)

	switch {
	case enc.IsBoss && s.floor >= FinalFloor:
		s.setPhase(j, PhaseVictory)
	case enc.IsBoss:
		s.floor++
		s.encounter = nil
		s.setPhase(j, PhaseExploration)
		j.Logf(LogSystem, "Advancing to floor %d...", s.floor)
	default:
		s.encounter = nil
		s.setPhase(j, PhaseExploration)
	}
}
