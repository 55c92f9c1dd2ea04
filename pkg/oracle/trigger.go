package oracle

// Trigger is one phase-relevant signal carried by an EventResponse. The
// concrete types are DilemmaOffered, CompanionJoined, EncounterTriggered and
// PlainContinue.
type Trigger interface {
	trigger()
}

// DilemmaOffered means the party must choose before exploration resumes.
// It is exclusive: a response offering choices carries no other trigger.
type DilemmaOffered struct {
	Choices []Choice
}

// CompanionJoined means a new companion attaches to a player.
type CompanionJoined struct {
	Event CompanionEvent
}

// EncounterTriggered means a turn-based fight begins.
type EncounterTriggered struct {
	Enemy  EnemyDetails
	IsBoss bool
}

// PlainContinue means nothing beyond the outcomes happened.
type PlainContinue struct{}

func (DilemmaOffered) trigger()     {}
func (CompanionJoined) trigger()    {}
func (EncounterTriggered) trigger() {}
func (PlainContinue) trigger()      {}

// Triggers classifies the response in the order the orchestrator applies
// them. It always returns at least one trigger.
func (r *EventResponse) Triggers() []Trigger {
	if len(r.Choices) > 0 {
		return []Trigger{DilemmaOffered{Choices: r.Choices}}
	}

	var out []Trigger
	if r.CompanionEvent != nil && r.CompanionEvent.Action == CompanionJoin {
		out = append(out, CompanionJoined{Event: *r.CompanionEvent})
	}
	if (r.IsBossEncounter || r.IsCombatEncounter) && r.EnemyDetails != nil {
		out = append(out, EncounterTriggered{
			Enemy:  *r.EnemyDetails,
			IsBoss: r.EnemyDetails.IsBoss,
		})
	}
	if len(out) == 0 {
		out = append(out, PlainContinue{})
	}
	return out
}
