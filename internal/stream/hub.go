package stream

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/H4ckEd666/Twitter-clone-app/internal/presence"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	EventUsersOnline = "users:online"
	EventMessageNew  = "message:new"
)

const (
	channelPattern   = "realtime:*"
	broadcastChannel = "realtime:broadcast"
	sessionPrefix    = "realtime:session:"
)

// Event is the JSON frame written to sockets.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Hub owns the sockets connected to this process. With redis configured,
// every delivery goes through pub/sub so each process delivers to its own
// sockets; without it delivery is local.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	tracker presence.Tracker
	clients map[string]*Client
	mu      sync.RWMutex
}

type Client struct {
	SessionID string
	UserID    string
	Send      chan []byte
}

func NewHub(ctx context.Context, redisClient *redis.Client, tracker presence.Tracker) (*Hub, error) {
	h := &Hub{
		redis:   redisClient,
		tracker: tracker,
		clients: map[string]*Client{},
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, channelPattern)
		if _, err := h.pubsub.Receive(ctx); err != nil {
			_ = h.pubsub.Close()
			return nil, err
		}
		go h.subscribeRedis()
	}
	return h, nil
}

// Connect registers a new session for userID, records it as the user's
// current session and announces the new online set.
func (h *Hub) Connect(ctx context.Context, userID string) (*Client, error) {
	client := &Client{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	h.clients[client.SessionID] = client
	h.mu.Unlock()

	if err := h.tracker.Connect(ctx, userID, client.SessionID); err != nil {
		h.unregister(client)
		return nil, err
	}
	h.BroadcastOnline(ctx)
	return client, nil
}

// Disconnect drops the session and announces the new online set. A user
// whose newer session is still open stays online.
func (h *Hub) Disconnect(ctx context.Context, client *Client) {
	if !h.unregister(client) {
		return
	}
	if _, err := h.tracker.Disconnect(ctx, client.UserID, client.SessionID); err != nil {
		log.Error().Err(err).Str("user_id", client.UserID).Msg("presence disconnect")
	}
	h.BroadcastOnline(ctx)
}

func (h *Hub) unregister(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.SessionID]; !ok {
		return false
	}
	delete(h.clients, client.SessionID)
	close(client.Send)
	return true
}

// SendToUser delivers event to the user's current session. Offline users
// are skipped without error.
func (h *Hub) SendToUser(ctx context.Context, userID, event string, data any) error {
	sessionID, ok, err := h.tracker.Session(ctx, userID)
	if err != nil || !ok {
		return err
	}
	payload, err := json.Marshal(Event{Name: event, Data: data})
	if err != nil {
		return err
	}
	if h.redis == nil {
		h.deliver(sessionID, payload)
		return nil
	}
	return h.redis.Publish(ctx, sessionPrefix+sessionID, payload).Err()
}

// BroadcastOnline sends the full online user list to every socket.
func (h *Hub) BroadcastOnline(ctx context.Context) {
	online, err := h.tracker.Online(ctx)
	if err != nil {
		log.Error().Err(err).Msg("presence online list")
		return
	}
	payload, err := json.Marshal(Event{Name: EventUsersOnline, Data: online})
	if err != nil {
		return
	}
	if h.redis == nil {
		h.broadcast(payload)
		return
	}
	if err := h.redis.Publish(ctx, broadcastChannel, payload).Err(); err != nil {
		log.Error().Err(err).Msg("redis publish")
	}
}

func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[sessionID]; ok {
		trySend(client, payload)
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		trySend(client, payload)
	}
}

// trySend drops the frame when the client's buffer is full. Callers hold
// h.mu so Send cannot be closed concurrently.
func trySend(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		log.Warn().Str("session_id", client.SessionID).Msg("client buffer full, frame dropped")
	}
}

func (h *Hub) subscribeRedis() {
	for msg := range h.pubsub.Channel() {
		payload := []byte(msg.Payload)
		if msg.Channel == broadcastChannel {
			h.broadcast(payload)
			continue
		}
		if sessionID, ok := strings.CutPrefix(msg.Channel, sessionPrefix); ok {
			h.deliver(sessionID, payload)
		}
	}
}
