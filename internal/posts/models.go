package posts

import (
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/users"
)

type Post struct {
	ID        string        `json:"_id"`
	User      users.Summary `json:"user"`
	Text      string        `json:"text"`
	Img       string        `json:"img"`
	Likes     []string      `json:"likes"`
	Shares    []string      `json:"shares"`
	Comments  []Comment     `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Comment struct {
	ID        string        `json:"_id"`
	Text      string        `json:"text"`
	User      users.Summary `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CreateRequest struct {
	Text string `json:"text" validate:"max=1000"`
	Img  string `json:"img"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"max=1000"`
}

type ShareRequest struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message" validate:"max=280"`
}
