// Package events fans out write notifications to readers so that list,
// detail and score views can be refreshed without polling.
package events

import (
	"sync"
)

const (
	TableProjects    = "projects"
	TableEvaluations = "evaluations"
)

// Change identifies a written table and, for evaluations, the project the
// rows belong to.
type Change struct {
	Table     string `json:"table"`
	ProjectID int64  `json:"projectId,omitempty"`
}

// Filter selects changes by table and optionally by project. Empty fields
// match everything.
type Filter struct {
	Table     string
	ProjectID int64
}

func (f Filter) Matches(c Change) bool {
	if f.Table != "" && f.Table != c.Table {
		return false
	}
	if f.ProjectID != 0 && f.ProjectID != c.ProjectID {
		return false
	}
	return true
}

type Publisher interface {
	Publish(change Change)
}

type subscriber struct {
	filter Filter
	ch     chan Change
}

type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscriber
	buffer int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: map[int]subscriber{}, buffer: 16}
}

// Subscribe registers a reader. The returned cancel func must be called to
// release the subscription; it closes the channel. After Close the channel
// comes back already closed.
func (h *Hub) Subscribe(filter Filter) (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	h.nextID++
	id := h.nextID
	h.subs[id] = subscriber{filter: filter, ch: ch}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
}

// Close ends every subscription so long-lived readers return. It is safe to
// call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// Publish never blocks: a reader whose buffer is full misses the change,
// which is harmless since every change only means "query again".
func (h *Hub) Publish(change Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.filter.Matches(change) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
