package events

import (
	"sync"

	"leadconsole/internal/console"
)

// Hub fans events out to SSE subscribers. Slow subscribers miss events
// rather than block publishers.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify publishes a toast; Hub satisfies console.Notifier.
func (h *Hub) Notify(t console.Toast) {
	h.Publish(MakeEvent("", TypeToast, 1, t))
}

// PublishState is meant for console.Options.OnChange.
func (h *Hub) PublishState(s console.Snapshot) {
	h.Publish(MakeEvent("", TypeLeadsState, 1, s))
}

type SessionChange struct {
	SignedIn    bool   `json:"signedIn"`
	DisplayName string `json:"displayName,omitempty"`
	Redirect    string `json:"redirect,omitempty"`
}

func (h *Hub) PublishSession(c SessionChange) {
	h.Publish(MakeEvent("", TypeSession, 1, c))
}
