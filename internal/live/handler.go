package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/pathconv/internal/auth"
	"github.com/inamate/pathconv/internal/typeid"
)

// Authenticator resolves the optional token a websocket client connects
// with.
type Authenticator interface {
	ValidateToken(token string) (string, error)
	GetUser(ctx context.Context, userID string) (*auth.User, error)
}

type Handler struct {
	hub            *Hub
	auth           Authenticator
	originPatterns []string
	readLimit      int64
}

// NewHandler serves sessions on hub. origins are full origins such as
// "http://localhost:5173".
func NewHandler(hub *Hub, authenticator Authenticator, origins []string) *Handler {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		patterns = append(patterns, o)
	}

	// Room for the JSON envelope around the path data
	readLimit := int64(hub.maxPathLength)*2 + 4096
	if hub.maxPathLength <= 0 {
		readLimit = 1 << 20
	}

	return &Handler{
		hub:            hub,
		auth:           authenticator,
		originPatterns: patterns,
		readLimit:      readLimit,
	}
}

// CreateSession handles POST /sessions and returns a new session id.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": typeid.NewSessionID()})
}

// ServeWS handles GET /ws/session/{sessionId}. A token query parameter
// identifies the user; without one the client joins anonymously.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		http.Error(w, "invalid session id", http.StatusNotFound)
		return
	}

	userID, displayName, ok := h.identify(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, userID, displayName, sessionID)
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx, h.readLimit)
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request) (userID, displayName string, ok bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return "anon-" + uuid.NewString()[:8], "Anonymous", true
	}

	userID, err := h.auth.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return "", "", false
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusUnauthorized)
		return "", "", false
	}
	return userID, user.DisplayName, true
}
