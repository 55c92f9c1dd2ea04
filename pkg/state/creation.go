package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// SelectMode picks solo or multiplayer. Solo goes straight to creation with
// a party of one.
func (s *Session) SelectMode(ctx context.Context, mode oracle.GameMode) error {
	return s.update(ctx, func(j *Journal) error {
		if s.phase != PhaseModeSelect {
			return ErrWrongPhase
		}
		switch mode {
		case oracle.ModeSolo:
			s.mode = mode
			s.partySize = 1
			s.setPhase(j, PhaseCreation)
		case oracle.ModeMultiplayer:
			s.mode = mode
			s.setPhase(j, PhasePlayerCount)
		default:
			return fmt.Errorf("%w: unknown mode %q", ErrInvalidIntent, mode)
		}
		s.logger.Info("Game mode selected", "mode", mode)
		return nil
	})
}

// SetPartySize fixes how many characters a multiplayer party will create.
func (s *Session) SetPartySize(ctx context.Context, n int) error {
	return s.update(ctx, func(j *Journal) error {
		if s.phase != PhasePlayerCount {
			return ErrWrongPhase
		}
		if n < MinPartySize || n > MaxPartySize {
			return fmt.Errorf("%w: party size must be between %d and %d", ErrInvalidIntent, MinPartySize, MaxPartySize)
		}
		s.partySize = n
		s.setPhase(j, PhaseCreation)
		return nil
	})
}

// CreateCharacter adds the next party member. When the party is complete
// the game enters exploration on floor 1.
func (s *Session) CreateCharacter(ctx context.Context, name string, traitIDs []string) error {
	return s.update(ctx, func(j *Journal) error {
		if s.phase != PhaseCreation {
			return ErrWrongPhase
		}

		name = strings.TrimSpace(name)
		if s.roster.ByName(name) != nil {
			return fmt.Errorf("%w: name %q is taken", ErrInvalidCharacter, name)
		}
		traits, err := s.catalog.ResolveTraits(traitIDs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
		}
		p, err := actor.NewPlayer(name, traits, s.catalog.Kit())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
		}

		s.roster = append(s.roster, p)
		s.logger.Info("Character created", "player", p.Name, "slot", len(s.roster), "party_size", s.partySize)

		if len(s.roster) < s.partySize {
			j.Logf(LogSystem, "Player %s registered. Next...", p.Name)
			return nil
		}
		s.setPhase(j, PhaseExploration)
		j.Log(LogSystem, "Party formed. The System has chosen you.")
		j.Logf(LogNarrative, "Entering floor %d...", s.floor)
		return nil
	})
}
