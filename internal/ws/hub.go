package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event types pushed to kitchen and cashier displays
const (
	EventOrderCreated    = "order_created"
	EventOrderCheckedOut = "order_checked_out"
	EventOrderPaid       = "order_paid"
	EventOrderDeleted    = "order_deleted"
	EventStockChanged    = "stock_changed"
)

// Event is the JSON envelope every broadcast uses.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Publish serializes an event and hands it to the broadcast loop without
// blocking the caller. Safe on a nil hub so services can run without one.
func (h *Hub) Publish(eventType string, payload interface{}) {
	if h == nil {
		return
	}
	go func() {
		msg, err := json.Marshal(Event{Type: eventType, Payload: payload})
		if err != nil {
			log.Println("ws: failed to marshal event:", err)
			return
		}
		h.Broadcast <- msg
	}()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
