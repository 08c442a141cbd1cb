package hub

import (
	"encoding/json"
	"sync"

	"popularvideogames/backend/internal/logger"
)

// TopicIngest carries ingestion progress events.
const TopicIngest = "ingest"

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is the channel an SSE handler drains for one connection.
type Client chan []byte

// Hub fans events out to the clients subscribed to a topic.
type Hub struct {
	topics map[string]map[Client]bool
	mu     sync.RWMutex
	log    *logger.Logger
}

func New(baseLog *logger.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[Client]bool),
		log:    baseLog.With("component", "Hub"),
	}
}

// Subscribe registers a new client on topic. buffer bounds how many events
// may queue before the client starts missing them.
func (h *Hub) Subscribe(topic string, buffer int) Client {
	client := make(Client, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]bool)
	}
	h.topics[topic][client] = true
	return client
}

// Unsubscribe removes a client from topic and closes its channel.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}

// Subscribers returns the number of clients on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast sends an event to every client on topic. Slow clients drop
// events instead of blocking the publisher.
func (h *Hub) Broadcast(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[topic]
	if !ok {
		return
	}
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("Failed to encode event", "topic", topic, "type", event.Type, "error", err)
		return
	}
	for client := range clients {
		select {
		case client <- message:
		default:
			h.log.Debug("Dropped event for slow client", "topic", topic, "type", event.Type)
		}
	}
}
