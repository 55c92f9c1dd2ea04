package oracle

import (
	"context"
	"sync"
)

// MockOracle is a scripted oracle for tests and offline play. Queued
// responses are served first, then the ...Func overrides, then a quiet
// default.
type MockOracle struct {
	DungeonEventFunc func(ctx context.Context, req *DungeonRequest) (*EventResponse, error)
	CombatTurnFunc   func(ctx context.Context, req *CombatRequest) (*CombatResponse, error)

	// Track calls for testing
	DungeonCalls []DungeonRequest
	CombatCalls  []CombatRequest

	events  []*EventResponse
	combats []*CombatResponse

	mu sync.Mutex
}

func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

// QueueEvent appends responses served by DungeonEvent in order.
func (m *MockOracle) QueueEvent(resps ...*EventResponse) *MockOracle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, resps...)
	return m
}

// QueueCombat appends responses served by CombatTurn in order.
func (m *MockOracle) QueueCombat(resps ...*CombatResponse) *MockOracle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.combats = append(m.combats, resps...)
	return m
}

func (m *MockOracle) DungeonEvent(ctx context.Context, req *DungeonRequest) (*EventResponse, error) {
	m.mu.Lock()
	m.DungeonCalls = append(m.DungeonCalls, *req)
	if len(m.events) > 0 {
		resp := m.events[0]
		m.events = m.events[1:]
		m.mu.Unlock()
		return resp, nil
	}
	fn := m.DungeonEventFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return &EventResponse{
		Narrative: "The corridor stretches on in silence.",
		Outcomes:  []PlayerOutcome{},
	}, nil
}

func (m *MockOracle) CombatTurn(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	m.mu.Lock()
	m.CombatCalls = append(m.CombatCalls, *req)
	if len(m.combats) > 0 {
		resp := m.combats[0]
		m.combats = m.combats[1:]
		m.mu.Unlock()
		return resp, nil
	}
	fn := m.CombatTurnFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return &CombatResponse{
		Narrative:        "Steel meets steel.",
		BossDmgToPlayers: []PlayerDamage{},
	}, nil
}

// SetError makes both exchanges fail with err.
func (m *MockOracle) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DungeonEventFunc = func(ctx context.Context, req *DungeonRequest) (*EventResponse, error) {
		return nil, err
	}
	m.CombatTurnFunc = func(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
		return nil, err
	}
}

// Calls returns copies of the recorded requests.
func (m *MockOracle) Calls() ([]DungeonRequest, []CombatRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DungeonRequest(nil), m.DungeonCalls...), append([]CombatRequest(nil), m.CombatCalls...)
}

// Reset clears queued responses and call tracking.
func (m *MockOracle) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DungeonCalls = nil
	m.CombatCalls = nil
	m.events = nil
	m.combats = nil
}
