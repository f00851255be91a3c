package live

import (
	"sync"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

// Room is one live session: the clients connected to it and the path they
// are editing together.
type Room struct {
	sessionID string
	clients   map[string]*Client // clientID -> client, guarded by Hub.mu

	mu        sync.Mutex // guards eng, seq and updatedBy
	eng       *engine.Engine
	seq       int64
	updatedBy string
}

func NewRoom(sessionID string, conv pathdata.Converter) *Room {
	return &Room{
		sessionID: sessionID,
		clients:   make(map[string]*Client),
		eng:       engine.NewEngine(conv),
	}
}

// apply converts an update into the room's path. A rejected update leaves
// the room unchanged.
func (r *Room) apply(userID string, update PathUpdatePayload) (*PathResultPayload, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.eng.SetPath(update.D); err != nil {
		return nil, 0, err
	}
	if update.Transform != nil {
		r.eng.SetTransform(*update.Transform)
	}
	return r.commitLocked(userID), r.seq, nil
}

func (r *Room) applyTransform(userID string, t engine.Transform) (*PathResultPayload, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.eng.SetTransform(t)
	return r.commitLocked(userID), r.seq
}

func (r *Room) commitLocked(userID string) *PathResultPayload {
	r.seq++
	r.updatedBy = userID
	return r.resultLocked()
}

// state returns the current path, or nil before the first update.
func (r *Room) state() (*PathResultPayload, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq == 0 {
		return nil, 0
	}
	return r.resultLocked(), r.seq
}

func (r *Room) resultLocked() *PathResultPayload {
	return &PathResultPayload{
		Source:    r.eng.Source(),
		Formatted: r.eng.Formatted(),
		Transform: r.eng.Transform(),
		Draw:      r.eng.DrawCommand(r.sessionID),
		UpdatedBy: r.updatedBy,
	}
}
