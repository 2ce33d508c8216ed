package core

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type EventType string

const (
	EventMessage     EventType = "message"
	EventComposing   EventType = "composing"
	EventApplication EventType = "application"
	EventNavigate    EventType = "navigate"
)

// Event is one state change pushed to session subscribers.
type Event struct {
	Type        EventType           `json:"type"`
	At          time.Time           `json:"at"`
	Message     *Message            `json:"message,omitempty"`
	Composing   *bool               `json:"composing,omitempty"`
	Application *BenefitApplication `json:"application,omitempty"`
	View        string              `json:"view,omitempty"`
}

// Emitter receives simulator events. Emit must not block.
type Emitter interface {
	Emit(Event)
}

type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}

const defaultSubscriptionBuffer = 64

// Hub fans session events out to subscribers. A subscriber whose buffer is
// full is dropped and its channel closed.
type Hub struct {
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{logger: logger, subs: make(map[*Subscription]struct{})}
}

type Subscription struct {
	hub *Hub
	ch  chan Event
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event { return s.ch }

func (s *Subscription) Close() { s.hub.remove(s) }

// Subscribe registers a new subscriber. On a closed hub the returned
// subscription is already closed.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultSubscriptionBuffer
	}
	sub := &Subscription{hub: h, ch: make(chan Event, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

func (h *Hub) Emit(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
			h.logger.Warn("dropping slow event subscriber", zap.String("event", string(e.Type)))
			delete(h.subs, sub)
			close(sub.ch)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.ch)
	}
	h.subs = make(map[*Subscription]struct{})
}
