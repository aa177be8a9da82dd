// Package broadcast is the read side for displays: it recomputes the snapshot
// whenever the bus announces a delta and streams the result to connected
// overlay clients over SSE.
package broadcast

import (
	"net/http"
	"sync"
)

// Hub fans snapshot frames out to connected SSE clients. Slow clients are
// skipped rather than blocking the fan-out; they resync from the next frame.
type Hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	latest  []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]struct{})}
}

// Subscribe registers a client and returns its frame channel and a cancel
// function. A client joining mid-stream immediately receives the latest frame.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 8)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	if h.latest != nil {
		ch <- h.latest
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a frame to every connected client.
func (h *Hub) Publish(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = frame
	for ch := range h.clients {
		select {
		case ch <- frame:
		default:
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP streams snapshot frames as SSE events until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	frames, cancel := h.Subscribe()
	defer cancel()

	w.WriteHeader(http.StatusOK)
	// Initial keepalive comment so proxies open the stream.
	if _, err := w.Write([]byte(":\n\n")); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if _, err := w.Write([]byte("event: snapshot\ndata: ")); err != nil {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
