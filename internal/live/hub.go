package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

type Hub struct {
	conv          pathdata.Converter
	maxPathLength int

	mu    sync.RWMutex
	rooms map[string]*Room // sessionID -> room

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(conv pathdata.Converter, maxPathLength int) *Hub {
	return &Hub{
		conv:          conv,
		maxPathLength: maxPathLength,
		rooms:         make(map[string]*Room),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		done:          make(chan struct{}),
	}
}

// Run processes joins and leaves until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		room = NewRoom(client.SessionID, h.conv)
		h.rooms[client.SessionID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID:  client.ClientID,
		SessionID: client.SessionID,
	}))

	// Late joiners start from the current path
	if state, seq := room.state(); state != nil {
		msg := newMessage(TypePathState, state)
		msg.Seq = seq
		client.Send(msg)
	}

	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID = client.UserID
	h.broadcastToRoom(client.SessionID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "session", client.SessionID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	if len(room.clients) == 0 {
		delete(h.rooms, client.SessionID)
	}
	h.mu.Unlock()

	leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.UserID})
	leaveMsg.UserID = client.UserID
	h.broadcastToRoom(client.SessionID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "session", client.SessionID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, room := range h.rooms {
		for _, c := range room.clients {
			close(c.send)
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePathUpdate:
		h.handlePathUpdate(sender, msg)
	case TypeTransformUpdate:
		h.handleTransformUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		h.reply(sender, errorMessage(fmt.Errorf("unknown message type %q", msg.Type)))
	}
}

func (h *Hub) handlePathUpdate(sender *Client, msg *Message) {
	var update PathUpdatePayload
	if err := json.Unmarshal(msg.Payload, &update); err != nil {
		slog.Warn("invalid path payload", "error", err)
		h.reply(sender, errorMessage(fmt.Errorf("invalid payload: %w", err)))
		return
	}
	if h.maxPathLength > 0 && len(update.D) > h.maxPathLength {
		h.reply(sender, errorMessage(fmt.Errorf("path data too long (max %d bytes)", h.maxPathLength)))
		return
	}

	room := h.room(sender.SessionID)
	if room == nil {
		return
	}

	result, seq, err := room.apply(sender.UserID, update)
	if err != nil {
		slog.Debug("path update rejected", "error", err, "user", sender.UserID)
		h.reply(sender, errorMessage(err))
		return
	}

	h.broadcastResult(sender, result, seq)
}

func (h *Hub) handleTransformUpdate(sender *Client, msg *Message) {
	var t engine.Transform
	if err := json.Unmarshal(msg.Payload, &t); err != nil {
		slog.Warn("invalid transform payload", "error", err)
		h.reply(sender, errorMessage(fmt.Errorf("invalid payload: %w", err)))
		return
	}

	room := h.room(sender.SessionID)
	if room == nil {
		return
	}

	result, seq := room.applyTransform(sender.UserID, t)
	h.broadcastResult(sender, result, seq)
}

func (h *Hub) broadcastResult(sender *Client, result *PathResultPayload, seq int64) {
	out := newMessage(TypePathResult, result)
	out.UserID = sender.UserID
	out.SessionID = sender.SessionID
	out.Seq = seq
	h.broadcastToRoom(sender.SessionID, out, "")
}

func (h *Hub) room(sessionID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[sessionID]
}

// broadcastToRoom sends under the read lock so that removeClient cannot
// close a send channel mid-broadcast. Send never blocks.
func (h *Hub) broadcastToRoom(sessionID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}

// reply sends msg to client if it is still connected.
func (h *Hub) reply(client *Client, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[client.SessionID]; ok && room.clients[client.ClientID] == client {
		client.Send(msg)
	}
}
