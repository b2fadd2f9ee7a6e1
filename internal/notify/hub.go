package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Note is one transient user-facing notification. Notes queue up per session
// until the next page render drains them.
type Note struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type envelope struct {
	Origin    string `json:"origin"`
	SessionID string `json:"sessionId"`
	Note      Note   `json:"note"`
}

type Hub struct {
	id      string
	redis   *redis.Client
	mu      sync.Mutex
	pending map[string][]Note
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		pending: map[string][]Note{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Success(sessionID, message string) {
	h.push(sessionID, Note{Level: LevelSuccess, Message: message})
}

func (h *Hub) Error(sessionID, message string) {
	h.push(sessionID, Note{Level: LevelError, Message: message})
}

// Drain returns and clears the pending notes for a session.
func (h *Hub) Drain(sessionID string) []Note {
	h.mu.Lock()
	defer h.mu.Unlock()

	notes := h.pending[sessionID]
	delete(h.pending, sessionID)
	return notes
}

func (h *Hub) push(sessionID string, note Note) {
	if sessionID == "" {
		return
	}

	h.enqueue(sessionID, note)

	if h.redis != nil {
		payload, _ := json.Marshal(envelope{Origin: h.id, SessionID: sessionID, Note: note})
		err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) enqueue(sessionID string, note Note) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[sessionID] = append(h.pending[sessionID], note)
}

// subscribeRedis mirrors notes published by other instances so a session
// drained on any replica sees them. Own messages are already queued locally.
func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "notify:*")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			continue
		}
		if env.Origin == h.id || env.SessionID == "" {
			continue
		}
		h.enqueue(env.SessionID, env.Note)
	}
}

func redisChannel(sessionID string) string {
	return "notify:" + sessionID
}
