package state

import (
	"context"
	"fmt"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// guardDungeon checks that a dungeon call may start from phase want. A
// pending dilemma only lets ResolveDilemma through. Must hold mu.
func (s *Session) guardDungeon(want Phase) error {
	if s.phase.IsTerminal() {
		return ErrGameOver
	}
	if s.phase != want {
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

// SubmitDungeonAction resolves a party action. In multiplayer it opens a
// vote instead and the submitted action is not used.
func (s *Session) SubmitDungeonAction(ctx context.Context, action oracle.Action) error {
	var req *oracle.DungeonRequest
	err := s.update(ctx, func(j *Journal) error {
		if err := s.guardDungeon(PhaseExploration); err != nil {
			return err
		}
		if s.mode == oracle.ModeMultiplayer {
			if s.vote != nil && !s.vote.Resolved {
				return fmt.Errorf("%w: a vote is already open", ErrWrongPhase)
			}
			s.vote = NewVoteSession(s.roster.Living().Names())
			j.Log(LogSystem, "The party is voting.")
			return nil
		}
		req = s.beginDungeon(action, "")
		return nil
	})
	if err != nil || req == nil {
		return err
	}
	s.runDungeon(ctx, req)
	return nil
}

// CastVote records the current voter's choice. The last vote resolves the
// session and dispatches the winning action.
func (s *Session) CastVote(ctx context.Context, choice oracle.Action) error {
	var req *oracle.DungeonRequest
	err := s.update(ctx, func(j *Journal) error {
		if s.phase.IsTerminal() {
			return ErrGameOver
		}
		if s.vote == nil || s.vote.Resolved {
			return ErrVoteClosed
		}
		if err := s.guardDungeon(PhaseExploration); err != nil {
			return err
		}

		voter := s.vote.CurrentVoter()
		done, err := s.vote.Cast(choice)
		if err != nil {
			return err
		}
		s.logger.Debug("Vote cast", "player", voter, "choice", choice)
		if !done {
			return nil
		}

		action, fallback := ResolveVotes(s.vote.Votes, s.rng)
		if fallback {
			j.Logf(LogSystem, "The vote is tied. The System imposes its will: %s.", action)
		} else {
			j.Logf(LogSystem, "Party decision: %s.", action)
		}
		req = s.beginDungeon(action, "")
		return nil
	})
	if err != nil || req == nil {
		return err
	}
	s.runDungeon(ctx, req)
	return nil
}

// ResolveDilemma answers the pending dilemma. The choice text goes back to
// the oracle as an EXPLORE follow-up that should close the arc.
func (s *Session) ResolveDilemma(ctx context.Context, choiceID string) error {
	var req *oracle.DungeonRequest
	err := s.update(ctx, func(j *Journal) error {
		if s.phase.IsTerminal() {
			return ErrGameOver
		}
		if s.phase != PhaseEventChoice {
			return ErrWrongPhase
		}
		var choice *oracle.Choice
		for i := range s.dilemma {
			if s.dilemma[i].ID == choiceID {
				choice = &s.dilemma[i]
				break
			}
		}
		if choice == nil {
			return fmt.Errorf("%w: %q", ErrUnknownChoice, choiceID)
		}
		if err := s.guardDungeon(PhaseEventChoice); err != nil {
			return err
		}
		j.Logf(LogSystem, "Decision: %s", choice.Text)
		req = s.beginDungeon(oracle.ActionExplore, choice.Text)
		return nil
	})
	if err != nil || req == nil {
		return err
	}
	s.runDungeon(ctx, req)
	return nil
}

// beginDungeon marks the session busy and captures the request from the
// living players. Must hold mu.
func (s *Session) beginDungeon(action oracle.Action, choiceContext string) *oracle.DungeonRequest {
	s.busy = true
	mode := s.mode
	if mode == "" {
		mode = oracle.ModeSolo
	}
	return &oracle.DungeonRequest{
		Players:       s.roster.Living().Summaries(),
		Floor:         s.floor,
		Action:        action,
		Mode:          mode,
		ChoiceContext: choiceContext,
	}
}

// runDungeon calls the oracle without the lock and applies the result.
func (s *Session) runDungeon(ctx context.Context, req *oracle.DungeonRequest) {
	s.logger.Info("Dispatching dungeon action", "action", req.Action, "floor", req.Floor, "players", len(req.Players))

	octx, cancel := s.oracleContext(ctx)
	resp, err := s.oracle.DungeonEvent(octx, req)
	cancel()

	_ = s.update(ctx, func(j *Journal) error {
		s.busy = false
		if err != nil || resp == nil {
			s.logger.Error("Dungeon oracle call failed", "action", req.Action, "error", err)
			j.Log(LogSystem, oracleLostMessage)
			return nil
		}
		s.applyDungeonEvent(j, req.Action, resp)
		return nil
	})
}

// applyDungeonEvent drives the phase machine from an event response. Must
// hold mu.
func (s *Session) applyDungeonEvent(j *Journal, action oracle.Action, resp *oracle.EventResponse) {
	j.Log(LogNarrative, resp.Narrative)
	if resp.QuestUpdate != "" {
		j.Logf(LogSystem, "Quest: %s", resp.QuestUpdate)
	}

	triggers := resp.Triggers()
	if d, ok := triggers[0].(oracle.DilemmaOffered); ok {
		s.dilemma = d.Choices
		s.setPhase(j, PhaseEventChoice)
		return
	}

	s.dilemma = nil
	s.setPhase(j, PhaseExploration)

	worker := NewOutcomeWorker(s.roster, resp.Outcomes, s.logger).
		WithJournal(j).
		WithRand(s.rng)
	worker.Apply()
	if action == oracle.ActionExplore && !j.HasCue(CueDamageTaken) {
		j.Cue(CueCombatSlash, "", "")
	}

	if s.roster.AllDown() {
		j.Log(LogLoss, "The whole party has fallen.")
		s.setPhase(j, PhaseGameOver)
		return
	}

	started := false
	for _, t := range triggers {
		switch t := t.(type) {
		case oracle.CompanionJoined:
			worker.JoinCompanion(t.Event)
		case oracle.EncounterTriggered:
			enc := actor.NewEncounter(t.Enemy.Name, t.Enemy.HP, t.IsBoss)
			enc.Description = t.Enemy.Description
			enc.Weakness = t.Enemy.Weakness
			s.startEncounter(j, enc)
			started = true
		}
	}

	if action == oracle.ActionAdvanceBoss && !started {
		s.startEncounter(j, actor.FloorGuardian(s.floor, len(s.roster)))
	}
}

// startEncounter activates enc and enters combat. Must hold mu.
func (s *Session) startEncounter(j *Journal, enc *actor.Encounter) {
	s.encounter = enc
	s.bossEvent = nil
	s.setPhase(j, PhaseBossCombat)
	j.Logf(LogCombat, "ALERT: HOSTILE ENEMY %s DETECTED!", enc.Name)
	j.Cue(CueEncounterStarted, "", enc.Name)
	s.logger.Info("Encounter started", "enemy", enc.Name, "hp", enc.HP, "boss", enc.IsBoss)
}
