// Package realtime fans domain events out to live subscribers (websocket streams).
package realtime

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"calmwave/utils"

	"go.uber.org/zap"
)

const defaultBuffer = 32

// Event is a single change notification pushed to subscribers.
type Event struct {
	Topic string          `json:"topic"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	At    time.Time       `json:"at"`
}

// Publisher is the side of the hub services depend on.
type Publisher interface {
	Publish(topic, eventType string, data any)
}

// Hub keeps subscriptions per topic. Publish never blocks on a slow subscriber.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	buffer  int
	closed  bool
	dropped atomic.Int64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{}), buffer: defaultBuffer}
}

// Subscription receives the events of one topic until cancelled.
type Subscription struct {
	hub    *Hub
	topic  string
	events chan Event
	once   sync.Once
}

// Subscribe registers a new subscription. On a closed hub the subscription is returned already cancelled.
func (h *Hub) Subscribe(topic string) *Subscription {
	s := &Subscription{hub: h, topic: topic, events: make(chan Event, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		s.once.Do(func() { close(s.events) })
		return s
	}
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][s] = struct{}{}
	return s
}

func (s *Subscription) Topic() string { return s.topic }

// Events is closed when the subscription is cancelled.
func (s *Subscription) Events() <-chan Event { return s.events }

// Cancel removes the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.cancelLocked()
}

// cancelLocked requires hub.mu held for writing.
func (s *Subscription) cancelLocked() {
	s.once.Do(func() {
		if set := s.hub.subs[s.topic]; set != nil {
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.subs, s.topic)
			}
		}
		close(s.events)
	})
}

// Publish delivers an event to every subscriber of topic. Full buffers drop the event.
func (h *Hub) Publish(topic, eventType string, data any) {
	ev := Event{Topic: topic, Type: eventType, At: time.Now().UTC()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			utils.GetLogger().Error("realtime: failed to encode event", zap.String("topic", topic), zap.Error(err))
			return
		}
		ev.Data = raw
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[topic] {
		select {
		case s.events <- ev:
		default:
			h.dropped.Add(1)
			utils.GetLogger().Warn("realtime: subscriber buffer full, dropping event",
				zap.String("topic", topic), zap.String("type", eventType))
		}
	}
}

// Dropped reports how many events were discarded because a subscriber was too slow.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Subscribers returns the current number of subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Close cancels every subscription. Later subscriptions are born cancelled.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, set := range h.subs {
		for s := range set {
			s.cancelLocked()
		}
	}
}
