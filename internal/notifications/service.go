package notifications

import (
	"context"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create appends n to the log through q, which may be a transaction owned by
// the caller.
func Create(ctx context.Context, q db.Querier, n New) (string, error) {
	id := uuid.NewString()
	_, err := q.Exec(ctx, `
		INSERT INTO notifications (id, from_id, to_id, type, post_id, comment_id, comment_text, message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, id, n.From, n.To, string(n.Type), db.Nullable(n.PostID), db.Nullable(n.CommentID), n.CommentText, n.Message)
	if err != nil {
		return "", err
	}
	return id, nil
}

const selectNotification = `
	SELECT n.id, n.from_id, u.username, u.full_name, u.profile_image, n.to_id, n.type,
	       COALESCE(n.post_id, ''), COALESCE(p.text, ''), COALESCE(p.img, ''),
	       COALESCE(n.comment_id, ''), n.comment_text, n.message, n.read, n.created_at
	FROM notifications n
	JOIN users u ON u.id = n.from_id
	LEFT JOIN posts p ON p.id = n.post_id`

// selfLike hides "you liked your own post" from the recipient.
const selfLike = `NOT (n.type = 'like' AND n.from_id = n.to_id)`

// List returns the recipient's notifications, newest first. It does not
// acknowledge them.
func (s *Service) List(ctx context.Context, recipient string, page request.Page) ([]Notification, error) {
	rows, err := s.db.Query(ctx, selectNotification+`
		WHERE n.to_id = $1 AND `+selfLike+`
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`, recipient, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return scanNotifications(rows)
}

// ByActors returns entries originated by any of actors, newest first.
func (s *Service) ByActors(ctx context.Context, actors []string, page request.Page) ([]Notification, error) {
	if len(actors) == 0 {
		return []Notification{}, nil
	}
	rows, err := s.db.Query(ctx, selectNotification+`
		WHERE n.from_id = ANY($1)
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`, actors, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return scanNotifications(rows)
}

func (s *Service) UnreadCount(ctx context.Context, recipient string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications n
		WHERE n.to_id = $1 AND n.read = false AND `+selfLike, recipient).Scan(&count)
	return count, err
}

func (s *Service) MarkAllRead(ctx context.Context, recipient string) error {
	_, err := s.db.Exec(ctx, `UPDATE notifications SET read = true WHERE to_id = $1 AND read = false`, recipient)
	return err
}

// MarkRead acknowledges the given notifications of recipient.
func (s *Service) MarkRead(ctx context.Context, recipient string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE to_id = $1 AND id = ANY($2) AND read = false
	`, recipient, ids)
	return err
}

// SetRead flips the read flag of one of the recipient's notifications.
func (s *Service) SetRead(ctx context.Context, id, recipient string, read bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE notifications SET read = $3 WHERE id = $1 AND to_id = $2`, id, recipient, read)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id, recipient string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND to_id = $2`, id, recipient)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

func (s *Service) DeleteAll(ctx context.Context, recipient string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM notifications WHERE to_id = $1`, recipient)
	return err
}

func scanNotifications(rows pgx.Rows) ([]Notification, error) {
	defer rows.Close()

	list := []Notification{}
	for rows.Next() {
		var (
			n                 Notification
			typ               string
			postID, text, img string
		)
		if err := rows.Scan(&n.ID, &n.From.ID, &n.From.Username, &n.From.FullName, &n.From.ProfileImage, &n.To, &typ,
			&postID, &text, &img, &n.CommentID, &n.CommentText, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = Type(typ)
		if postID != "" {
			n.Post = &PostRef{ID: postID, Text: text, Img: img}
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
