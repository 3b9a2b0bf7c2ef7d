package stream

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// RegisterRoutes mounts the real-time socket. The user id is taken from the
// userId query parameter as claimed by the client.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID := c.Query("userId")
		if userID == "" {
			_ = c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "userId required"))
			return
		}

		ctx := context.Background()
		client, err := hub.Connect(ctx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("realtime connect")
			return
		}

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Disconnect(ctx, client)
		<-done
	}))
}
