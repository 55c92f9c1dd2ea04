package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/dungeon-engine/pkg/chat"
)

// Canned replies used by MockLLMAPI when no override is set. They parse as
// a quiet dungeon event and an uneventful combat turn.
const (
	MockEventReply  = `{"narrative":"The torches flicker. Nothing stirs.","outcomes":[],"isBossEncounter":false}`
	MockCombatReply = `{"narrative":"Blows are traded without effect.","playersDmgToBoss":0,"bossDmgToPlayers":[],"escapeSuccess":false}`
)

// MockLLMAPI is a mock implementation of LLMService for testing and
// offline play
type MockLLMAPI struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatJSONFunc  func(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      []ChatCall

	mu sync.Mutex // protects all fields above
}

// ChatCall records one ChatJSON call.
type ChatCall struct {
	Messages []chat.ChatMessage
	Schema   chat.Schema
}

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([]ChatCall, 0),
	}
}

// InitModel mocks model initialization
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	fn := m.InitModelFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, modelName)
	}
	return nil
}

// ChatJSON mocks a structured reply. By default it answers with a canned
// reply matching the requested schema.
func (m *MockLLMAPI) ChatJSON(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, ChatCall{Messages: messages, Schema: schema})
	fn := m.ChatJSONFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages, schema)
	}
	switch schema.Name {
	case EventSchemaName:
		return &chat.ChatResponse{Message: MockEventReply}, nil
	case CombatSchemaName:
		return &chat.ChatResponse{Message: MockCombatReply}, nil
	}
	return &chat.ChatResponse{Message: "{}"}, nil
}

// SetChatError makes every chat call fail with err
func (m *MockLLMAPI) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatJSONFunc = func(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetJSONReply makes ChatJSON return reply verbatim
func (m *MockLLMAPI) SetJSONReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatJSONFunc = func(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: reply}, nil
	}
}

// Calls returns a copy of the recorded chat calls
func (m *MockLLMAPI) Calls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatCall(nil), m.ChatCalls...)
}

// Reset clears all call tracking and overrides
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCalls = make([]ChatCall, 0)
	m.InitModelFunc = nil
	m.ChatJSONFunc = nil
}
