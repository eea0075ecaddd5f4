// Package stream fans catalog change events out to websocket subscribers.
// Topics are coarse ("spots", "reviews"); clients re-fetch the parts of the
// catalog they care about when an event lands.
package stream

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Hub struct {
	redis   *redis.Client
	log     *zap.SugaredLogger
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

// NewHub starts a hub. With a redis client attached, events are also
// relayed through pub/sub so every process instance sees them.
func NewHub(redisClient *redis.Client, log *zap.SugaredLogger) *Hub {
	h := &Hub{
		redis:   redisClient,
		log:     log,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicClients, ok := h.clients[client.Topic]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
		}
	}
	close(client.Send)
}

// Broadcast delivers a payload to every local subscriber of the topic. A
// slow subscriber drops the event rather than blocking the publisher.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[topic]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err != nil && h.log != nil {
			h.log.Warnw("redis publish failed", "topic", topic, "error", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "catalog:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		topic := topicFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[topic]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(topic string) string {
	return "catalog:" + topic + ":events"
}

func topicFromChannel(ch string) string {
	// catalog:{topic}:events
	const prefix = "catalog:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
