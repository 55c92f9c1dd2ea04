package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// TestSuite is one scripted game. Can either be a regular test with Steps,
// or a suite that references other Cases.
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"`
	Cases []string   `json:"cases,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep sends one intent and checks the result.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Intent       state.Intent `json:"intent"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a step executes. Unset fields
// are not checked.
type Expectations struct {
	// Status defaults to 200.
	Status        *int          `json:"status,omitempty"`
	ErrorContains string        `json:"error_contains,omitempty"`
	Phase         *state.Phase  `json:"phase,omitempty"`
	PhaseIn       []state.Phase `json:"phase_in,omitempty"`
	Floor         *int          `json:"floor,omitempty"`
	PlayerCount   *int          `json:"player_count,omitempty"`
	// Gold maps player names to their expected gold.
	Gold        map[string]int `json:"gold,omitempty"`
	LogContains []string       `json:"log_contains,omitempty"`
	LogGrew     bool           `json:"log_grew,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	Error     error
	Duration  time.Duration
	SessionID uuid.UUID
}
