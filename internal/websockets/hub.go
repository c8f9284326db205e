package websockets

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// Event types pushed to kitchen display clients.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload broadcast when an order changes.
type OrderEvent struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order"`
}

// Hub fans order events out to connected kitchen display clients. The
// socket supplements the polling endpoints; clients that miss an event pick
// the change up on their next refresh.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// BroadcastOrder pushes an order event to every connected client.
func (h *Hub) BroadcastOrder(eventType string, order *models.Order) {
	payload, err := json.Marshal(OrderEvent{Type: eventType, Order: order})
	if err != nil {
		logrus.WithError(err).Error("Failed to encode order event")
		return
	}
	h.broadcast <- payload
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
