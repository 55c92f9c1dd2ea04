package state

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

func TestCombatTurnDefaultsToBasicAttacks(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Rat King", HP: 300}, false)
	o.QueueCombat(&oracle.CombatResponse{
		Narrative:        "Blades flash.",
		PlayersDmgToBoss: 40,
		BossDmgToPlayers: []oracle.PlayerDamage{{PlayerName: "Ayla", Damage: 15}},
	})

	outcome, err := s.CombatTurn(context.Background(), nil)
	if err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	if outcome != CombatContinues {
		t.Errorf("expected continues, got %q", outcome)
	}

	_, combats := o.Calls()
	req := combats[0]
	if req.Kind != oracle.TurnActions || req.EnemyHP != 300 || len(req.Actions) != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if a := req.Actions[0]; a.PlayerName != "Ayla" || a.ActionType != oracle.CombatAttack {
		t.Errorf("unexpected default action: %+v", a)
	}

	snap := s.Snapshot()
	if snap.Encounter.HP != 260 {
		t.Errorf("expected enemy at 260 HP, got %d", snap.Encounter.HP)
	}
	if snap.Player("Ayla").HP != testMaxHP-15 {
		t.Errorf("expected Ayla at %d HP, got %d", testMaxHP-15, snap.Player("Ayla").HP)
	}
	if e := lastLog(s); e.Kind != LogCombat || e.Text != "Blades flash." {
		t.Errorf("unexpected last log entry: %+v", e)
	}
}

func TestCombatSkillCostsMana(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Rat King", HP: 300}, false)
	ctx := context.Background()
	fireball := []oracle.CombatAction{{PlayerName: "Ayla", ActionType: oracle.CombatSkill, SkillName: "Fireball"}}

	if _, err := s.CombatTurn(ctx, fireball); err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	if mp := s.Snapshot().Player("Ayla").MP; mp != testMaxMP-actor.SkillManaCost {
		t.Errorf("expected %d MP after a skill, got %d", testMaxMP-actor.SkillManaCost, mp)
	}

	s.mu.Lock()
	s.roster[0].MP = actor.SkillManaCost - 1
	s.mu.Unlock()

	if _, err := s.CombatTurn(ctx, fireball); err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	_, combats := o.Calls()
	last := combats[len(combats)-1].Actions[0]
	if last.ActionType != oracle.CombatAttack || last.SkillName != "" {
		t.Errorf("expected downgrade to a basic attack, got %+v", last)
	}
	if mp := s.Snapshot().Player("Ayla").MP; mp != actor.SkillManaCost-1 {
		t.Errorf("expected MP untouched by the downgrade, got %d", mp)
	}
	if !logContains(s, "Ayla is out of mana! Used a basic attack.") {
		t.Error("expected out of mana line in the log")
	}
}

func TestCombatDropsActionsForDownedPlayers(t *testing.T) {
	o := oracle.NewMockOracle()
	s := partySession(t, o, "Ayla", "Bo")
	s.mu.Lock()
	s.mode = oracle.ModeSolo // skip the vote
	s.mu.Unlock()
	o.QueueEvent(&oracle.EventResponse{
		Narrative:         "An ogre.",
		IsCombatEncounter: true,
		EnemyDetails:      &oracle.EnemyDetails{Name: "Ogre", HP: 400},
	})
	ctx := context.Background()
	if err := s.SubmitDungeonAction(ctx, oracle.ActionExplore); err != nil {
		t.Fatalf("SubmitDungeonAction: %v", err)
	}

	s.mu.Lock()
	s.roster.ByName("Bo").HP = 0
	s.mu.Unlock()

	_, err := s.CombatTurn(ctx, []oracle.CombatAction{
		{PlayerName: "Ayla", ActionType: oracle.CombatAttack},
		{PlayerName: "Bo", ActionType: oracle.CombatAttack},
		{PlayerName: "Zed", ActionType: oracle.CombatAttack},
	})
	if err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	_, combats := o.Calls()
	req := combats[0]
	if len(req.Actions) != 1 || req.Actions[0].PlayerName != "Ayla" || len(req.Players) != 1 {
		t.Errorf("expected only Ayla in the request, got %+v", req)
	}
}

func TestSpecialEnemyDefeat(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Gargoyle", HP: 100}, false)
	o.QueueCombat(&oracle.CombatResponse{Narrative: "The gargoyle crumbles.", PlayersDmgToBoss: 150})

	outcome, err := s.CombatTurn(context.Background(), nil)
	if err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	if outcome != CombatWon {
		t.Fatalf("expected won, got %q", outcome)
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseExploration || snap.Encounter != nil || snap.Floor != 1 {
		t.Errorf("expected exploration on floor 1, got %s floor %d", snap.Phase, snap.Floor)
	}
	// 500 XP from level 1 crosses 100, 100 and 300.
	p := snap.Player("Ayla")
	if p.Level != 4 || p.CurrentXP != 0 || p.Gold != 200 {
		t.Errorf("unexpected rewards: level %d xp %d gold %d", p.Level, p.CurrentXP, p.Gold)
	}
	if !logContains(s, "ENEMY DEFEATED!") || !logContains(s, "Reward: 100 Gold.") {
		t.Error("expected victory lines in the log")
	}
}

func TestBossDefeatAdvancesFloor(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Iron Warden", HP: 500}, true)
	o.QueueCombat(&oracle.CombatResponse{Narrative: "The warden falls.", PlayersDmgToBoss: 500})

	outcome, err := s.CombatTurn(context.Background(), nil)
	if err != nil || outcome != CombatWon {
		t.Fatalf("expected won, got %q %v", outcome, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseExploration || snap.Floor != 2 || snap.Encounter != nil {
		t.Errorf("expected floor 2 exploration, got %s floor %d", snap.Phase, snap.Floor)
	}
	if snap.Player("Ayla").Gold != 600 {
		t.Errorf("expected 600 gold, got %d", snap.Player("Ayla").Gold)
	}
	if !logContains(s, "BOSS DEFEATED!") || !logContains(s, "Advancing to floor 2...") {
		t.Error("expected boss lines in the log")
	}
}

func TestFinalBossWinsTheGame(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Castle Lord", HP: 500}, true)
	s.mu.Lock()
	s.floor = FinalFloor
	s.mu.Unlock()
	o.QueueCombat(&oracle.CombatResponse{Narrative: "The lord kneels.", PlayersDmgToBoss: 9999})

	outcome, err := s.CombatTurn(context.Background(), nil)
	if err != nil || outcome != CombatWon {
		t.Fatalf("expected won, got %q %v", outcome, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseVictory || snap.Floor != FinalFloor {
		t.Errorf("expected victory on floor %d, got %s floor %d", FinalFloor, snap.Phase, snap.Floor)
	}
	if snap.Encounter == nil || snap.Encounter.Name != "Castle Lord" {
		t.Error("expected the defeated boss to stay on record")
	}

	if _, err := s.CombatTurn(context.Background(), nil); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after victory, got %v", err)
	}
}

func TestFlee(t *testing.T) {
	tests := []struct {
		name      string
		escaped   bool
		want      CombatOutcome
		wantPhase Phase
	}{
		{"escape", true, CombatFled, PhaseExploration},
		{"caught", false, CombatContinues, PhaseBossCombat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := oracle.NewMockOracle()
			s := combatSession(t, o, oracle.EnemyDetails{Name: "Wraith", HP: 300}, false)
			o.QueueCombat(&oracle.CombatResponse{
				Narrative:        "The party runs.",
				PlayersDmgToBoss: 50,
				EscapeSuccess:    tt.escaped,
			})

			outcome, err := s.Flee(context.Background())
			if err != nil {
				t.Fatalf("Flee: %v", err)
			}
			if outcome != tt.want {
				t.Errorf("expected %q, got %q", tt.want, outcome)
			}

			_, combats := o.Calls()
			if combats[0].Kind != oracle.TurnFlee || len(combats[0].Actions) != 0 {
				t.Errorf("unexpected flee request: %+v", combats[0])
			}

			snap := s.Snapshot()
			if snap.Phase != tt.wantPhase {
				t.Errorf("expected phase %s, got %s", tt.wantPhase, snap.Phase)
			}
			if tt.escaped && snap.Encounter != nil {
				t.Error("expected encounter cleared after escape")
			}
			if !tt.escaped && snap.Encounter.HP != 250 {
				t.Errorf("expected damage applied on a failed escape, got %d", snap.Encounter.HP)
			}
		})
	}
}

func TestInteractiveEvent(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Hydra", HP: 1000}, true)
	ctx := context.Background()
	o.QueueCombat(&oracle.CombatResponse{
		Narrative: "The hydra rears back.",
		InteractiveEvent: &oracle.InteractiveEvent{
			Title:       "Acid Breath",
			Description: "A wave of acid builds in its throats.",
			Options: []oracle.EventOption{
				{ID: "dodge", Text: "Dive aside"},
				{ID: "shield", Text: "Raise shields"},
			},
		},
	})

	outcome, err := s.CombatTurn(ctx, nil)
	if err != nil || outcome != CombatEventPending {
		t.Fatalf("expected event_pending, got %q %v", outcome, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseBossEventResolve || snap.BossEvent == nil || len(snap.BossEvent.Options) != 2 {
		t.Fatalf("expected a pending event, got %s", snap.Phase)
	}
	if !logContains(s, "Acid Breath: A wave of acid builds in its throats.") {
		t.Error("expected event line in the log")
	}

	if _, err := s.CombatTurn(ctx, nil); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase while the event is pending, got %v", err)
	}
	if _, err := s.ResolveBossEvent(ctx, "pray"); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("expected ErrUnknownChoice, got %v", err)
	}

	o.QueueCombat(&oracle.CombatResponse{Narrative: "The gamble pays off.", PlayersDmgToBoss: 400})
	outcome, err = s.ResolveBossEvent(ctx, "shield")
	if err != nil || outcome != CombatContinues {
		t.Fatalf("expected continues, got %q %v", outcome, err)
	}

	_, combats := o.Calls()
	req := combats[len(combats)-1]
	if req.Kind != oracle.TurnEventResolution || req.EventContext != "Raise shields" {
		t.Errorf("unexpected resolution request: %+v", req)
	}
	snap = s.Snapshot()
	if snap.Phase != PhaseBossCombat || snap.BossEvent != nil || snap.Encounter.HP != 600 {
		t.Errorf("expected back in combat with the enemy at 600, got %s %+v", snap.Phase, snap.Encounter)
	}
}

func TestResolveBossEventErrorKeepsEvent(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Hydra", HP: 1000}, true)
	ctx := context.Background()
	o.QueueCombat(&oracle.CombatResponse{
		Narrative: "The hydra rears back.",
		InteractiveEvent: &oracle.InteractiveEvent{
			Title:   "Acid Breath",
			Options: []oracle.EventOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		},
	})
	if _, err := s.CombatTurn(ctx, nil); err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}

	o.SetError(errors.New("timeout"))
	outcome, err := s.ResolveBossEvent(ctx, "a")
	if err != nil || outcome != CombatNoResult {
		t.Fatalf("expected no result, got %q %v", outcome, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseBossEventResolve || snap.BossEvent == nil || snap.Busy {
		t.Errorf("expected the event to stay pending, got %s", snap.Phase)
	}
	if lastLog(s).Text != oracleLostMessage {
		t.Errorf("unexpected last log entry: %+v", lastLog(s))
	}
}

func TestSingleOptionEventIgnored(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Hydra", HP: 1000}, true)
	o.QueueCombat(&oracle.CombatResponse{
		Narrative: "The hydra hesitates.",
		InteractiveEvent: &oracle.InteractiveEvent{
			Title:   "Feint",
			Options: []oracle.EventOption{{ID: "only", Text: "Wait"}},
		},
	})
	outcome, err := s.CombatTurn(context.Background(), nil)
	if err != nil || outcome != CombatContinues {
		t.Fatalf("expected continues, got %q %v", outcome, err)
	}
	if snap := s.Snapshot(); snap.Phase != PhaseBossCombat || snap.BossEvent != nil {
		t.Errorf("expected the event to be ignored, got %s", snap.Phase)
	}
}

func TestWipeOutranksDefeat(t *testing.T) {
	o := oracle.NewMockOracle()
	s, n := soloSession(t, o)
	o.QueueEvent(&oracle.EventResponse{
		Narrative:         "A mimic.",
		IsCombatEncounter: true,
		EnemyDetails:      &oracle.EnemyDetails{Name: "Mimic", HP: 10},
	})
	ctx := context.Background()
	if err := s.SubmitDungeonAction(ctx, oracle.ActionExplore); err != nil {
		t.Fatalf("SubmitDungeonAction: %v", err)
	}
	o.QueueCombat(&oracle.CombatResponse{
		Narrative:        "Both strike at once.",
		PlayersDmgToBoss: 100,
		BossDmgToPlayers: []oracle.PlayerDamage{{PlayerName: "Ayla", Damage: 500}},
	})

	outcome, err := s.CombatTurn(ctx, nil)
	if err != nil || outcome != CombatWiped {
		t.Fatalf("expected wiped, got %q %v", outcome, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseGameOver || snap.Player("Ayla").HP != 0 || snap.Player("Ayla").Gold != 100 {
		t.Errorf("expected game over without rewards, got %s", snap.Phase)
	}
	if !logContains(s, "Ayla fell unconscious!") {
		t.Error("expected knockout line in the log")
	}
	if n.has(CueEnemyDefeated) {
		t.Error("expected no defeat cue")
	}
}

func TestCombatIgnoresNonPositiveDamage(t *testing.T) {
	o := oracle.NewMockOracle()
	s := combatSession(t, o, oracle.EnemyDetails{Name: "Slime", HP: 300}, false)
	o.QueueCombat(&oracle.CombatResponse{
		Narrative:        "The slime jiggles.",
		PlayersDmgToBoss: -50,
		BossDmgToPlayers: []oracle.PlayerDamage{
			{PlayerName: "Ayla", Damage: -40},
			{PlayerName: "Ghost", Damage: 10},
		},
	})
	if _, err := s.CombatTurn(context.Background(), nil); err != nil {
		t.Fatalf("CombatTurn: %v", err)
	}
	snap := s.Snapshot()
	if snap.Encounter.HP != 300 || snap.Player("Ayla").HP != testMaxHP {
		t.Errorf("expected no change, got enemy %d Ayla %d", snap.Encounter.HP, snap.Player("Ayla").HP)
	}
}

func TestCombatRequiresEncounter(t *testing.T) {
	s, _ := soloSession(t, oracle.NewMockOracle())
	if _, err := s.CombatTurn(context.Background(), nil); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
	if _, err := s.Flee(context.Background()); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
}
