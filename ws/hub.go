package ws

import (
	"sync"

	"backend/pkg/logger"

	"github.com/google/uuid"
)

// Event is what subscribed sessions receive.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Session is one connected viewer (a customer at a table, or the staff
// dashboard). Outbound is buffered; a session that cannot keep up loses
// messages instead of stalling publishers.
type Session struct {
	ID       uuid.UUID
	Outbound chan Event
	channels map[string]bool // guarded by hub.mu
}

// Hub maps channel names to the sessions subscribed to them. One hub is
// created at service start and injected wherever a Publisher is needed;
// there is no package-level instance.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*Session]bool
	log           *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*Session]bool),
		log:           log.With("component", "Hub"),
	}
}

func (h *Hub) NewSession() *Session {
	return &Session{
		ID:       uuid.New(),
		Outbound: make(chan Event, 16),
		channels: make(map[string]bool),
	}
}

// Subscribe adds the session to a channel. Subscribing twice is a no-op.
func (h *Hub) Subscribe(s *Session, channel string) {
	if channel == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	s.channels[channel] = true
	sessions, ok := h.subscriptions[channel]
	if !ok {
		sessions = make(map[*Session]bool)
		h.subscriptions[channel] = sessions
	}
	sessions[s] = true

	h.log.Debug("session subscribed", "sessionID", s.ID, "channel", channel)
}

// Unsubscribe removes the session from a channel. Unsubscribing a
// non-member is a no-op.
func (h *Hub) Unsubscribe(s *Session, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(s.channels, channel)
	if sessions, ok := h.subscriptions[channel]; ok {
		delete(sessions, s)
		if len(sessions) == 0 {
			delete(h.subscriptions, channel)
		}
	}

	h.log.Debug("session unsubscribed", "sessionID", s.ID, "channel", channel)
}

// RemoveSession tears down all of a session's subscriptions.
func (h *Hub) RemoveSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range s.channels {
		if sessions, ok := h.subscriptions[ch]; ok {
			delete(sessions, s)
			if len(sessions) == 0 {
				delete(h.subscriptions, ch)
			}
		}
	}
	s.channels = make(map[string]bool)
}

// CloseSession removes the session everywhere and closes its outbound
// channel. Safe against concurrent Publish: once RemoveSession returns,
// no publisher can still see the session.
func (h *Hub) CloseSession(s *Session) {
	h.RemoveSession(s)
	close(s.Outbound)
}

// Publish delivers the event to every session subscribed at the moment
// of the call. Later subscribers receive nothing; there is no backlog.
func (h *Hub) Publish(channel, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sessions, ok := h.subscriptions[channel]
	if !ok {
		return
	}
	ev := Event{Event: event, Data: payload}
	for s := range sessions {
		select {
		case s.Outbound <- ev:
		default:
			h.log.Warn("dropping event, session buffer full", "sessionID", s.ID, "channel", channel, "event", event)
		}
	}
}
