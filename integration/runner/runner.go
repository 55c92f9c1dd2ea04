package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays scripted games against a running dungeon-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 120 * time.Second},
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}
	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		subJobs, err := LoadTestSuiteWithExpansion(filepath.Join(casesDir, caseFile), casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}
	return jobs, nil
}

// RunSuite plays a suite in a fresh session, which is deleted afterwards.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	snap, err := r.createSession(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.SessionID = snap.ID
	defer r.deleteSession(context.WithoutCancel(ctx), snap.ID)

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult, next := r.runStep(ctx, snap, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
		} else {
			r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
		}
		if next != nil {
			snap = next
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// runStep posts one intent. It returns the snapshot after the step, or nil
// when the step was rejected.
func (r *Runner) runStep(ctx context.Context, prev *state.Snapshot, step TestStep) (TestResult, *state.Snapshot) {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	status, body, err := r.postIntent(ctx, prev.ID, step.Intent)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, nil
	}

	var snap *state.Snapshot
	if status == http.StatusOK {
		snap = &state.Snapshot{}
		if err := json.Unmarshal(body, snap); err != nil {
			result.Error = fmt.Errorf("failed to decode snapshot: %w", err)
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	if err := checkExpectations(step.Expectations, status, body, prev, snap); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
	} else {
		result.Success = true
	}
	result.Duration = time.Since(start)
	return result, snap
}

func checkExpectations(exp Expectations, status int, body []byte, prev, snap *state.Snapshot) error {
	want := http.StatusOK
	if exp.Status != nil {
		want = *exp.Status
	}
	if status != want {
		return fmt.Errorf("status %d, want %d: %s", status, want, strings.TrimSpace(string(body)))
	}
	if exp.ErrorContains != "" && !strings.Contains(string(body), exp.ErrorContains) {
		return fmt.Errorf("error body %q does not contain %q", strings.TrimSpace(string(body)), exp.ErrorContains)
	}
	if snap == nil {
		return nil
	}

	var errs []error
	if exp.Phase != nil && snap.Phase != *exp.Phase {
		errs = append(errs, fmt.Errorf("phase %s, want %s", snap.Phase, *exp.Phase))
	}
	if len(exp.PhaseIn) > 0 && !slices.Contains(exp.PhaseIn, snap.Phase) {
		errs = append(errs, fmt.Errorf("phase %s, want one of %v", snap.Phase, exp.PhaseIn))
	}
	if exp.Floor != nil && snap.Floor != *exp.Floor {
		errs = append(errs, fmt.Errorf("floor %d, want %d", snap.Floor, *exp.Floor))
	}
	if exp.PlayerCount != nil && len(snap.Players) != *exp.PlayerCount {
		errs = append(errs, fmt.Errorf("%d players, want %d", len(snap.Players), *exp.PlayerCount))
	}
	for name, gold := range exp.Gold {
		p := snap.Player(name)
		if p == nil {
			errs = append(errs, fmt.Errorf("no player named %s", name))
			continue
		}
		if p.Gold != gold {
			errs = append(errs, fmt.Errorf("%s has %d gold, want %d", name, p.Gold, gold))
		}
	}
	for _, text := range exp.LogContains {
		if !slices.ContainsFunc(snap.Log, func(e state.LogEntry) bool { return strings.Contains(e.Text, text) }) {
			errs = append(errs, fmt.Errorf("log does not contain %q", text))
		}
	}
	if exp.LogGrew && len(snap.Log) <= len(prev.Log) {
		errs = append(errs, fmt.Errorf("log did not grow past %d entries", len(prev.Log)))
	}
	return errors.Join(errs...)
}

func (r *Runner) createSession(ctx context.Context) (*state.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create session returned %d: %s", resp.StatusCode, string(body))
	}

	var snap state.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode created session: %w", err)
	}
	return &snap, nil
}

func (r *Runner) postIntent(ctx context.Context, id uuid.UUID, intent state.Intent) (int, []byte, error) {
	payload, err := json.Marshal(intent)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal intent: %w", err)
	}
	url := fmt.Sprintf("%s/v1/sessions/%s/intents", r.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to post intent: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (r *Runner) deleteSession(ctx context.Context, id uuid.UUID) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.BaseURL+"/v1/sessions/"+id.String(), nil)
	if err != nil {
		return
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		r.Logger("    Warning: failed to delete session %s: %v", id, err)
		return
	}
	_ = resp.Body.Close()
}
