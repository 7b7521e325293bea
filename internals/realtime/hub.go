package realtime

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Broadcaster adalah port event keluar yang dipanggil service SETELAH
// transaksi commit — observer tidak pernah melihat event dari mutasi
// yang di-rollback.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Event adalah frame yang dikirim ke setiap client websocket.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub menyiarkan event lifecycle ke semua client yang terhubung.
// Tanpa targeting per-user, tanpa replay saat reconnect.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan Event)}
}

// Broadcast mengirim event ke semua client. Client yang buffer-nya penuh
// di-skip, bukan diblok.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- Event{Event: event, Payload: payload}:
		default:
		}
	}
}

// ClientCount mengembalikan jumlah client yang sedang terhubung.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *websocket.Conn) chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[c] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(ch)
	}
	h.mu.Unlock()
}

// Handler melayani satu koneksi websocket sampai client menutupnya.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		log.Println("[INFO] Client terhubung untuk realtime update")
		ch := h.register(c)
		defer func() {
			h.unregister(c)
			log.Println("[INFO] Client realtime terputus")
		}()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				// baca hanya untuk mendeteksi close dari client
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := c.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
