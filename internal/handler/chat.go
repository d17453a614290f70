package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nulocaldev/deenquest/internal/chat"
	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/types"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

// Handler serves the companion API.
type Handler struct {
	chats         *chat.Service
	conversations *conversation.Service
	unlocks       *unlock.Service
	recommender   *unlock.Recommender
}

// New returns a Handler.
func New(chats *chat.Service, conversations *conversation.Service, unlocks *unlock.Service, recommender *unlock.Recommender) *Handler {
	return &Handler{
		chats:         chats,
		conversations: conversations,
		unlocks:       unlocks,
		recommender:   recommender,
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", h.Chat)
	mux.HandleFunc("GET /api/recommendations", h.Recommendations)
	mux.HandleFunc("GET /api/unlocks", h.Unlocked)
	mux.HandleFunc("POST /api/unlocks/force", h.ForceUnlock)
	return mux
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Chat runs one full message cycle.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, "Missing user_id or message", http.StatusBadRequest)
		return
	}

	resp, err := h.chats.HandleMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		slog.Error("failed to handle message", "user_id", req.UserID, "error", err.Error())
		writeError(w, "Could not process message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type recommendationsResponse struct {
	Success bool                      `json:"success"`
	Items   []types.UnlockableContent `json:"items"`
}

// Recommendations returns the top-N relevant locked items for the user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, "Missing user_id", http.StatusBadRequest)
		return
	}
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	conv, err := h.conversations.GetOrCreate(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load context", "user_id", userID, "error", err.Error())
		writeError(w, "Could not load conversation context", http.StatusInternalServerError)
		return
	}

	items, err := h.recommender.Recommend(r.Context(), userID, conv, limit)
	if err != nil {
		slog.Error("failed to compute recommendations", "user_id", userID, "error", err.Error())
		writeError(w, "Could not compute recommendations", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{Success: true, Items: items})
}

type unlockedResponse struct {
	Success bool                      `json:"success"`
	Items   []types.UnlockableContent `json:"items"`
}

// Unlocked lists the user's unlocked content.
func (h *Handler) Unlocked(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	items, err := h.unlocks.Unlocked(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list unlocks", "user_id", userID, "error", err.Error())
		writeError(w, "Could not list unlocked content", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, unlockedResponse{Success: true, Items: items})
}

type forceUnlockRequest struct {
	UserID    string `json:"user_id"`
	ContentID string `json:"content_id"`
}

type forceUnlockResponse struct {
	Success      bool                      `json:"success"`
	Notification *types.UnlockNotification `json:"notification"`
}

// ForceUnlock is the administrative unlock override. An unknown content ID
// is a benign no-op, reported with a null notification.
func (h *Handler) ForceUnlock(w http.ResponseWriter, r *http.Request) {
	var req forceUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.ContentID == "" {
		writeError(w, "Missing user_id or content_id", http.StatusBadRequest)
		return
	}

	notification, err := h.unlocks.ForceUnlock(r.Context(), req.UserID, req.ContentID)
	if err != nil {
		slog.Error("failed to force unlock", "user_id", req.UserID, "content_id", req.ContentID, "error", err.Error())
		writeError(w, "Could not force unlock", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, forceUnlockResponse{Success: true, Notification: notification})
}
