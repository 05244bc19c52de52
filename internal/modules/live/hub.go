// Package live pushes schedule change events to connected admin sessions so
// several people editing the same day grid see each other's writes without
// polling.
package live

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"venueops/internal/domain"
)

// ChangeEvent tells a client which day grid went stale; the client re-fetches
// the day view rather than patching local state.
type ChangeEvent struct {
	Kind      domain.ResourceKind `json:"resource_kind"`
	BranchID  int64               `json:"branch_id"`
	EventDate string              `json:"event_date"`
}

// session serializes writes to its connection: gorilla/websocket allows at
// most one concurrent writer, and broadcasts come from many request
// goroutines.
type session struct {
	writeMu  sync.Mutex
	conn     *websocket.Conn
	branchID int64
}

func (s *session) write(ev ChangeEvent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(ev)
}

type Hub struct {
	mutex    sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

// Register attaches a connection filtered to one branch. A reconnect with
// the same session id replaces the old connection.
func (h *Hub) Register(id string, branchID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.sessions[id]; exists && old.conn != nil {
		_ = old.conn.Close()
	}
	h.sessions[id] = &session{conn: conn, branchID: branchID}
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if s, exists := h.sessions[id]; exists {
		if s.conn != nil {
			_ = s.conn.Close()
		}
		delete(h.sessions, id)
	}
}

// ScheduleChanged implements the schedule service's event sink.
func (h *Hub) ScheduleChanged(kind domain.ResourceKind, branchID int64, date string) {
	ev := ChangeEvent{Kind: kind, BranchID: branchID, EventDate: date}

	h.mutex.RLock()
	targets := make(map[string]*session)
	for id, s := range h.sessions {
		if s.branchID == branchID {
			targets[id] = s
		}
	}
	h.mutex.RUnlock()

	for id, s := range targets {
		if err := s.write(ev); err != nil {
			logrus.WithError(err).WithField("session", id).Debug("dropping dead schedule feed")
			h.Unregister(id)
		}
	}
}

func (h *Hub) SessionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.sessions)
}
