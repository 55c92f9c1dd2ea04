package state

import (
	"fmt"

	"github.com/google/uuid"
)

// LogKind classifies an adventure log line for presentation.
type LogKind string

const (
	LogSystem    LogKind = "system"
	LogNarrative LogKind = "narrative"
	LogCombat    LogKind = "combat"
	LogGain      LogKind = "gain"
	LogLoss      LogKind = "loss"
	LogVictory   LogKind = "victory"
)

type LogEntry struct {
	ID   uuid.UUID `json:"id"`
	Kind LogKind   `json:"kind"`
	Text string    `json:"text"`
}

// Journal collects the log lines and cues produced by one operation. The
// session commits entries under its lock and emits cues after releasing it.
type Journal struct {
	Entries []LogEntry
	Cues    []Cue
}

func (j *Journal) Log(kind LogKind, text string) {
	j.Entries = append(j.Entries, LogEntry{ID: uuid.New(), Kind: kind, Text: text})
}

func (j *Journal) Logf(kind LogKind, format string, args ...any) {
	j.Log(kind, fmt.Sprintf(format, args...))
}

func (j *Journal) Cue(kind CueKind, player, detail string) {
	j.Cues = append(j.Cues, Cue{Kind: kind, Player: player, Detail: detail})
}

// HasCue reports whether a cue of kind was collected.
func (j *Journal) HasCue(kind CueKind) bool {
	for _, c := range j.Cues {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
