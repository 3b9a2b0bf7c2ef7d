package chat

import (
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/users"
)

type Message struct {
	ID             string        `json:"_id"`
	ConversationID string        `json:"conversation"`
	Sender         users.Summary `json:"sender"`
	Receiver       users.Summary `json:"receiver"`
	Text           string        `json:"text"`
	Read           bool          `json:"read"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Thread is a conversation as seen by one participant. ConversationID is nil
// when the two users have never exchanged a message.
type Thread struct {
	ConversationID *string   `json:"conversationId"`
	Messages       []Message `json:"messages"`
}

type UnreadCount struct {
	SenderID string `json:"senderId"`
	Count    int    `json:"count"`
}

type SendRequest struct {
	Text string `json:"text" validate:"max=2000"`
}
