package notifications

import (
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/users"
)

type Type string

const (
	TypeLike    Type = "like"
	TypeComment Type = "comment"
	TypeFollow  Type = "follow"
	TypeShare   Type = "share"
)

// PostRef is the populated post a notification points at.
type PostRef struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
	Img  string `json:"img"`
}

type Notification struct {
	ID          string        `json:"_id"`
	From        users.Summary `json:"from"`
	To          string        `json:"to"`
	Type        Type          `json:"type"`
	Post        *PostRef      `json:"post,omitempty"`
	CommentID   string        `json:"comment,omitempty"`
	CommentText string        `json:"commentText"`
	Message     string        `json:"message"`
	Read        bool          `json:"read"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// New describes a notification to append to the log.
type New struct {
	From        string
	To          string
	Type        Type
	PostID      string
	CommentID   string
	CommentText string
	Message     string
}
