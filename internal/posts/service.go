package posts

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/media"
	"github.com/H4ckEd666/Twitter-clone-app/internal/notifications"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"
	"github.com/H4ckEd666/Twitter-clone-app/internal/users"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// MutualChecker answers whether two users follow each other.
type MutualChecker interface {
	AreMutuals(ctx context.Context, a, b string) (bool, error)
}

// ImageStore hosts post images.
type ImageStore interface {
	Resolve(ctx context.Context, userID, value, kind string) (string, error)
	Remove(ctx context.Context, owner, url string) error
}

type Service struct {
	db     db.DB
	gate   MutualChecker
	images ImageStore
}

func NewService(db db.DB, gate MutualChecker, images ImageStore) *Service {
	return &Service{db: db, gate: gate, images: images}
}

const selectPost = `
	SELECT p.id, p.text, p.img, p.created_at, p.updated_at, ` + users.SummaryColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (s *Service) Create(ctx context.Context, owner string, req CreateRequest) (Post, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && req.Img == "" {
		return Post{}, apperr.Validation("Post must contain text or an image")
	}
	img, err := s.hostImage(ctx, owner, req.Img)
	if err != nil {
		return Post{}, err
	}

	p := Post{ID: uuid.NewString(), Text: text, Img: img, Likes: []string{}, Shares: []string{}, Comments: []Comment{}}
	err = s.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO posts (id, user_id, text, img)
			SELECT $1, u.id, $3, $4 FROM users u WHERE u.id = $2
			RETURNING created_at, updated_at
		)
		SELECT i.created_at, i.updated_at, `+users.SummaryColumns+`
		FROM inserted i, users u WHERE u.id = $2
	`, p.ID, owner, p.Text, p.Img).Scan(&p.CreatedAt, &p.UpdatedAt, &p.User.ID, &p.User.Username, &p.User.FullName, &p.User.ProfileImage)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) hostImage(ctx context.Context, owner, img string) (string, error) {
	if img == "" {
		return "", nil
	}
	if s.images == nil {
		return "", media.ErrUnavailable
	}
	return s.images.Resolve(ctx, owner, img, "post")
}

func (s *Service) ByID(ctx context.Context, id string) (Post, error) {
	list, err := s.list(ctx, selectPost+` WHERE p.id = $1`, id)
	if err != nil {
		return Post{}, err
	}
	if len(list) == 0 {
		return Post{}, apperr.NotFound("Post not found")
	}
	return list[0], nil
}

func (s *Service) All(ctx context.Context, page request.Page) ([]Post, error) {
	return s.list(ctx, selectPost+`
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
}

// ForYou returns posts by accounts the viewer does not follow yet.
func (s *Service) ForYou(ctx context.Context, viewer string, page request.Page) ([]Post, error) {
	return s.list(ctx, selectPost+`
		WHERE p.user_id <> $1
		  AND p.user_id NOT IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewer, page.Limit, page.Offset)
}

func (s *Service) Following(ctx context.Context, viewer string, page request.Page) ([]Post, error) {
	return s.list(ctx, selectPost+`
		WHERE p.user_id IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewer, page.Limit, page.Offset)
}

// ByAuthors returns posts written by any of authors, newest first.
func (s *Service) ByAuthors(ctx context.Context, authors []string, page request.Page) ([]Post, error) {
	if len(authors) == 0 {
		return []Post{}, nil
	}
	return s.list(ctx, selectPost+`
		WHERE p.user_id = ANY($1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, authors, page.Limit, page.Offset)
}

func (s *Service) ByUsername(ctx context.Context, username string, page request.Page) ([]Post, error) {
	var userID string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username=$1`, username).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return s.list(ctx, selectPost+`
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
}

func (s *Service) Liked(ctx context.Context, viewer string, page request.Page) ([]Post, error) {
	return s.list(ctx, selectPost+`
		JOIN post_likes l ON l.post_id = p.id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewer, page.Limit, page.Offset)
}

func (s *Service) Saved(ctx context.Context, viewer string, page request.Page) ([]Post, error) {
	return s.list(ctx, selectPost+`
		JOIN saved_posts sp ON sp.post_id = p.id
		WHERE sp.user_id = $1
		ORDER BY sp.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewer, page.Limit, page.Offset)
}

func (s *Service) Like(ctx context.Context, actor, postID string) (Post, error) {
	p, err := s.ByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if slices.Contains(p.Likes, actor) {
		return Post{}, apperr.Validation("Post already liked")
	}
	err = db.WithTx(ctx, s.db, func(q db.Querier) error {
		tag, err := q.Exec(ctx, `
			INSERT INTO post_likes (post_id, user_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, postID, actor)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.Validation("Post already liked")
		}
		_, err = notifications.Create(ctx, q, notifications.New{From: actor, To: p.User.ID, Type: notifications.TypeLike, PostID: postID})
		return err
	})
	if err != nil {
		return Post{}, err
	}
	p.Likes = append(p.Likes, actor)
	return p, nil
}

func (s *Service) Unlike(ctx context.Context, actor, postID string) (Post, error) {
	p, err := s.ByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if !slices.Contains(p.Likes, actor) {
		return Post{}, apperr.Validation("Post not liked yet")
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, actor); err != nil {
		return Post{}, err
	}
	p.Likes = slices.DeleteFunc(p.Likes, func(id string) bool { return id == actor })
	return p, nil
}

func (s *Service) Comment(ctx context.Context, actor, postID, text string) (Post, error) {
	owner, _, err := s.owner(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Post{}, apperr.Validation("Comment text is required")
	}
	err = db.WithTx(ctx, s.db, func(q db.Querier) error {
		commentID := uuid.NewString()
		if _, err := q.Exec(ctx, `
			INSERT INTO post_comments (id, post_id, user_id, text) VALUES ($1,$2,$3,$4)
		`, commentID, postID, actor, text); err != nil {
			return err
		}
		_, err := notifications.Create(ctx, q, notifications.New{
			From:        actor,
			To:          owner,
			Type:        notifications.TypeComment,
			PostID:      postID,
			CommentID:   commentID,
			CommentText: text,
		})
		return err
	})
	if err != nil {
		return Post{}, err
	}
	return s.ByID(ctx, postID)
}

// Share sends a post to a mutual follower. Each user shares a given post at
// most once.
func (s *Service) Share(ctx context.Context, actor, postID string, req ShareRequest) (Post, error) {
	to := strings.TrimSpace(req.ToUserID)
	if to == "" {
		return Post{}, apperr.Validation("Recipient is required")
	}
	if to == actor {
		return Post{}, apperr.Validation("You can't share a post with yourself")
	}
	p, err := s.ByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, to).Scan(&exists); err != nil {
		return Post{}, err
	}
	if !exists {
		return Post{}, apperr.NotFound("User not found")
	}
	mutual, err := s.gate.AreMutuals(ctx, actor, to)
	if err != nil {
		return Post{}, err
	}
	if !mutual {
		return Post{}, apperr.Forbidden("You can only share posts with mutual followers")
	}
	if slices.Contains(p.Shares, actor) {
		return Post{}, apperr.Validation("Post already shared")
	}

	message := strings.TrimSpace(req.Message)
	err = db.WithTx(ctx, s.db, func(q db.Querier) error {
		if _, err := q.Exec(ctx, `
			INSERT INTO post_shares (post_id, user_id, to_user_id, message) VALUES ($1,$2,$3,$4)
		`, postID, actor, to, message); err != nil {
			return err
		}
		_, err := notifications.Create(ctx, q, notifications.New{From: actor, To: to, Type: notifications.TypeShare, PostID: postID, Message: message})
		return err
	})
	if err != nil {
		return Post{}, err
	}
	p.Shares = append(p.Shares, actor)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor, postID string) error {
	owner, img, err := s.owner(ctx, postID)
	if err != nil {
		return err
	}
	if owner != actor {
		return apperr.Forbidden("Unauthorized action")
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, postID); err != nil {
		return err
	}
	if img != "" && s.images != nil {
		if err := s.images.Remove(ctx, actor, img); err != nil {
			log.Warn().Err(err).Str("post_id", postID).Msg("remove post image")
		}
	}
	return nil
}

func (s *Service) DeleteComment(ctx context.Context, actor, postID, commentID string) error {
	owner, _, err := s.owner(ctx, postID)
	if err != nil {
		return err
	}
	if owner != actor {
		return apperr.Forbidden("Unauthorized action")
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM post_comments WHERE id=$1 AND post_id=$2`, commentID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}
	return nil
}

func (s *Service) Save(ctx context.Context, actor, postID string) error {
	if _, _, err := s.owner(ctx, postID); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO saved_posts (user_id, post_id) VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, actor, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Validation("Post already saved")
	}
	return nil
}

func (s *Service) Unsave(ctx context.Context, actor, postID string) error {
	if _, _, err := s.owner(ctx, postID); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM saved_posts WHERE user_id=$1 AND post_id=$2`, actor, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Validation("Post is not saved")
	}
	return nil
}

func (s *Service) owner(ctx context.Context, postID string) (string, string, error) {
	var owner, img string
	err := s.db.QueryRow(ctx, `SELECT user_id, img FROM posts WHERE id=$1`, postID).Scan(&owner, &img)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", apperr.NotFound("Post not found")
	}
	return owner, img, err
}

func (s *Service) list(ctx context.Context, sql string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	var ids []string
	for rows.Next() {
		p := Post{Likes: []string{}, Shares: []string{}, Comments: []Comment{}}
		if err := rows.Scan(&p.ID, &p.Text, &p.Img, &p.CreatedAt, &p.UpdatedAt,
			&p.User.ID, &p.User.Username, &p.User.FullName, &p.User.ProfileImage); err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := s.hydrate(ctx, posts, ids); err != nil {
		return nil, err
	}
	return posts, nil
}

// hydrate loads likes, shares and comments for a page of posts.
func (s *Service) hydrate(ctx context.Context, posts []Post, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		index[p.ID] = i
	}

	rows, err := s.db.Query(ctx, `
		SELECT 'like', post_id, user_id FROM post_likes WHERE post_id = ANY($1)
		UNION ALL SELECT 'share', post_id, user_id FROM post_shares WHERE post_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var kind, postID, userID string
		if err := rows.Scan(&kind, &postID, &userID); err != nil {
			rows.Close()
			return err
		}
		p := &posts[index[postID]]
		if kind == "like" {
			p.Likes = append(p.Likes, userID)
		} else {
			p.Shares = append(p.Shares, userID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.Query(ctx, `
		SELECT c.id, c.post_id, c.text, c.created_at, `+users.SummaryColumns+`
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c      Comment
			postID string
		)
		if err := rows.Scan(&c.ID, &postID, &c.Text, &c.CreatedAt, &c.User.ID, &c.User.Username, &c.User.FullName, &c.User.ProfileImage); err != nil {
			return err
		}
		p := &posts[index[postID]]
		p.Comments = append(p.Comments, c)
	}
	return rows.Err()
}
