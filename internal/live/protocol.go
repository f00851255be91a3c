package live

import (
	"encoding/json"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Presence
	TypePresenceJoin  = "presence.join"
	TypePresenceLeave = "presence.leave"

	// Path editing
	TypePathUpdate      = "path.update"
	TypeTransformUpdate = "transform.update"
	TypePathResult      = "path.result"
	TypePathState       = "path.state"
)

type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

// PathUpdatePayload replaces the session's path. A transform, when
// present, is applied along with it.
type PathUpdatePayload struct {
	D         string            `json:"d"`
	Transform *engine.Transform `json:"transform,omitempty"`
}

// PathResultPayload is the converted session path, sent as path.result
// after every accepted update and as path.state to joiners.
type PathResultPayload struct {
	Source    string             `json:"source"`
	Formatted string             `json:"formatted"`
	Transform engine.Transform   `json:"transform"`
	Draw      engine.DrawCommand `json:"draw"`
	UpdatedBy string             `json:"updatedBy,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
}

func newMessage(msgType string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: msgType, Payload: data}
}

func errorMessage(err error) *Message {
	p := ErrorPayload{Message: err.Error()}
	if kind := pathdata.Kind(err); kind != "" {
		offset := pathdata.Offset(err)
		p.Kind = kind
		p.Offset = &offset
	}
	return newMessage(TypeError, p)
}
