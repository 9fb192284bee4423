package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many events a client may fall behind before it is
	// dropped.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type subscriber struct {
	role   string
	handle string
}

type client struct {
	conn *websocket.Conn
	sub  subscriber
	send chan []byte
}

// Hub keeps the live websocket connections of staff screens and suppliers.
// Every client has its own writer goroutine, so a stalled socket never holds
// up Publish.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// ServeWS upgrades the request and blocks until the client disconnects.
// handle is the supplierId for suppliers and ignored for staff.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, role, handle string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, sub: subscriber{role: role, handle: handle}, send: make(chan []byte, sendBuffer)}
	h.register(cl)
	go cl.writeLoop()
	defer h.unregister(cl)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
	utils.InfoLogger.Printf("Live feed client connected (role=%s handle=%s, total=%d)", cl.sub.role, cl.sub.handle, len(h.clients))
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(cl)
}

// drop removes the client and ends its writer. Callers hold h.mu.
func (h *Hub) drop(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues evt for every staff client and the addressed supplier. A
// client whose queue is full is disconnected.
func (h *Hub) Publish(ctx context.Context, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(Message{Event: evt.Type, Data: evt.Data})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.clients {
		if !cl.sub.wants(evt) {
			continue
		}
		select {
		case cl.send <- data:
		default:
			utils.ErrorLogger.Warnf("Dropping slow live feed client (role=%s handle=%s)", cl.sub.role, cl.sub.handle)
			h.drop(cl)
		}
	}
	return nil
}

// writeLoop drains the send queue until the hub closes it.
func (cl *client) writeLoop() {
	defer cl.conn.Close()
	for data := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Warnf("Live feed write failed (role=%s handle=%s): %v", cl.sub.role, cl.sub.handle, err)
			return
		}
	}
	cl.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (s subscriber) wants(evt Event) bool {
	if s.role == utils.RoleStaff {
		return true
	}
	return s.role == utils.RoleSupplier && evt.SupplierID != "" && evt.SupplierID == s.handle
}
