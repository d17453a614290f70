package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nulocaldev/deenquest/internal/analysis"
	"github.com/nulocaldev/deenquest/internal/chat"
	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/generation"
	"github.com/nulocaldev/deenquest/internal/prompt"
	"github.com/nulocaldev/deenquest/internal/storage"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

func newTestHandler() *Handler {
	store := storage.NewMemoryStore()
	catalog := unlock.DefaultCatalog()
	conversations := conversation.NewService(store, conversation.NewAggregator())
	unlocks := unlock.NewService(catalog, unlock.NewEvaluator(), store)
	recommender := unlock.NewRecommender(catalog, store)
	chats := chat.NewService(chat.Config{
		Analyzer:      analysis.NewAnalyzer(),
		Conversations: conversations,
		Unlocks:       unlocks,
		Recommender:   recommender,
		Generator:     generation.NewService(nil, prompt.NewBuilder(10)),
		History:       store,
	})
	return New(chats, conversations, unlocks, recommender)
}

func TestChatEndpoint(t *testing.T) {
	h := newTestHandler()
	body := `{"user_id": "user-1", "message": "I am struggling with patience during this hardship"}`

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reply         string `json:"reply"`
		SessionID     string `json:"session_id"`
		Notifications []struct {
			ID string `json:"id"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Reply == "" {
		t.Fatal("reply is empty")
	}
	if resp.SessionID == "" {
		t.Fatal("session_id is empty")
	}
	if len(resp.Notifications) == 0 {
		t.Fatal("no notifications, want at least the patience card")
	}
}

func TestChatEndpointRejectsBadInput(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"user_id": `},
		{"missing user id", `{"message": "hello"}`},
		{"missing message", `{"user_id": "user-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?user_id=user-1&limit=2", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Items   []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(resp.Items))
	}
}

func TestRecommendationsEndpointValidation(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d without user_id, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/recommendations?user_id=user-1&limit=zero", nil)
	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d with bad limit, want 400", rec.Code)
	}
}

func TestForceUnlockAndListEndpoints(t *testing.T) {
	h := newTestHandler()

	body := `{"user_id": "user-1", "content_id": "game_surah_match"}`
	req := httptest.NewRequest(http.MethodPost, "/api/unlocks/force", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("force status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var forced struct {
		Success      bool `json:"success"`
		Notification *struct {
			ID string `json:"id"`
		} `json:"notification"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &forced); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !forced.Success || forced.Notification == nil || forced.Notification.ID != "game_surah_match" {
		t.Fatalf("force response = %+v, want notification for game_surah_match", forced)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/unlocks?user_id=user-1", nil)
	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].ID != "game_surah_match" {
		t.Fatalf("listed = %+v, want the forced item", listed.Items)
	}
}

func TestForceUnlockUnknownContent(t *testing.T) {
	h := newTestHandler()

	body := `{"user_id": "user-1", "content_id": "no_such_item"}`
	req := httptest.NewRequest(http.MethodPost, "/api/unlocks/force", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var forced struct {
		Success      bool            `json:"success"`
		Notification json.RawMessage `json:"notification"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &forced); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !forced.Success || string(forced.Notification) != "null" {
		t.Fatalf("response = %+v, want success with null notification", forced)
	}
}
