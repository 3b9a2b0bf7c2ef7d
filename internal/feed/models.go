package feed

import (
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/notifications"
	"github.com/H4ckEd666/Twitter-clone-app/internal/users"
)

// TypePost marks an activity item that is a post rather than a notification.
const TypePost = "post"

type ActivityItem struct {
	ID          string                 `json:"_id"`
	Type        string                 `json:"type"`
	From        users.Summary          `json:"from"`
	Post        *notifications.PostRef `json:"post,omitempty"`
	CommentText string                 `json:"commentText,omitempty"`
	Message     string                 `json:"message,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}
