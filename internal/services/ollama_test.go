package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/dungeon-engine/pkg/chat"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

func TestNewOllamaService(t *testing.T) {
	s := NewOllamaService("", "llama3.1", testLogger())
	assert.Equal(t, DefaultOllamaURL, s.baseURL)
	assert.Equal(t, "llama3.1", s.modelName)
}

func TestOllamaService_ChatJSON(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"{\"narrative\":\"Bats scatter.\"}"},"done":true}`))
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, "llama3.1", testLogger())
	resp, err := s.ChatJSON(context.Background(),
		[]chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "Party action: EXPLORE."}},
		chat.Schema{Name: EventSchemaName, Definition: oracle.EventSchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"narrative":"Bats scatter."}`, resp.Message)

	assert.Equal(t, "llama3.1", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, "object", got.Format["type"])
	assert.NotNil(t, got.Options)
}

func TestOllamaService_Replies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"reply", http.StatusOK, `{"message":{"content":"Hello, adventurer."}}`, "Hello, adventurer.", false},
		{"empty reply", http.StatusOK, `{"message":{"content":""}}`, msgNoResponse, false},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "", true},
		{"bad json", http.StatusOK, `not json`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := NewOllamaService(server.URL, "llama3.1", testLogger())
			resp, err := s.ChatJSON(context.Background(), []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "hi"}}, combatSchema)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestOllamaService_InitModel(t *testing.T) {
	var pulled atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[{"name":"mistral"}]}`))
		case "/api/pull":
			pulled.Store(true)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, "mistral", testLogger())
	require.NoError(t, s.InitModel(context.Background(), ""))
	assert.False(t, pulled.Load(), "available model should not be pulled")

	require.NoError(t, s.InitModel(context.Background(), "llama3.1"))
	assert.True(t, pulled.Load())
}

func TestOllamaService_InitModelNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, "mistral", testLogger())
	s.retryDelay = time.Millisecond

	err := s.InitModel(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}
