package web

import "sync"

// Message is one update pushed to websocket subscribers of a running query.
type Message struct {
	// Type is "status" while the query runs, then "done" or "error".
	Type string `json:"type"`

	// Text carries the status line, final answer, or error message.
	Text string `json:"text,omitempty"`

	// TaskID accompanies "done" so the UI can offer a follow-up.
	TaskID string `json:"task_id,omitempty"`
}

// Hub fans query progress out to websocket subscribers, keyed by history
// entry id. Subscribers that fall behind lose intermediate messages rather
// than stalling the dispatcher.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]map[chan Message]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan Message]struct{})}
}

// Subscribe registers for updates about one query. The returned cancel
// function must be called when the subscriber is done; it is safe to call
// after Close.
func (h *Hub) Subscribe(id int64) (<-chan Message, func()) {
	ch := make(chan Message, 16)

	h.mu.Lock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan Message]struct{})
	}
	h.subs[id][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[id]; ok {
			if _, live := set[ch]; live {
				delete(set, ch)
				close(ch)
				if len(set) == 0 {
					delete(h.subs, id)
				}
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers msg to every subscriber of id. Full subscriber buffers
// are skipped.
func (h *Hub) Publish(id int64, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[id] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Close drops every subscriber of id, closing their channels.
func (h *Hub) Close(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[id] {
		close(ch)
	}
	delete(h.subs, id)
}
