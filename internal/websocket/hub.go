package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Initsogar/gutenberg/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// editorEventsChannel is the redis pub/sub channel used to fan pattern
// updates out to every running instance.
const editorEventsChannel = "editor_events"

type patternUpdatedMessage struct {
	Type      string    `json:"type"`
	PatternId uuid.UUID `json:"pattern_id"`
	At        time.Time `json:"at"`
}

// Hub tracks connected editor sessions and pushes pattern change
// notices to them. Every connected editor receives every notice; the
// client decides whether the pattern is on its canvas.
type Hub struct {
	// UserID -> open sessions (an editor may be open in several tabs)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Cross-instance fan-out; nil means single-instance mode.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Editor session registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Editor fully disconnected", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastPatternUpdated tells every connected editor that a pattern
// changed so open canvases can re-render stale occurrences. With redis
// configured the notice goes through the shared channel; the local
// subscriber delivers it alongside every other instance, which keeps
// delivery single-path.
func (h *Hub) BroadcastPatternUpdated(patternId uuid.UUID) {
	data, _ := json.Marshal(patternUpdatedMessage{
		Type:      "pattern_updated",
		PatternId: patternId,
		At:        time.Now(),
	})

	if h.rdb == nil {
		h.broadcastLocal(data)
		return
	}

	if err := h.rdb.Publish(context.Background(), editorEventsChannel, data).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish editor event to redis, delivering locally only", map[string]interface{}{
			"pattern_id": patternId,
			"error":      err.Error(),
		})
		h.broadcastLocal(data)
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Slow consumer, drop the session.
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, editorEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload patternUpdatedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("editor event parse error: %v", err)
			continue
		}
		h.broadcastLocal([]byte(msg.Payload))
	}
}
