package social

import (
	"context"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/notifications"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/users"
)

type Service struct {
	db db.DB
}

func NewService(db db.DB) *Service {
	return &Service{db: db}
}

// ToggleFollow follows target when actor does not follow it yet and
// unfollows it otherwise. A new edge and its notification are written in
// the same transaction.
func (s *Service) ToggleFollow(ctx context.Context, actor, target string) (FollowResult, error) {
	if actor == target {
		return FollowResult{}, apperr.Forbidden("You can't follow/unfollow yourself")
	}
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, target).Scan(&exists); err != nil {
		return FollowResult{}, err
	}
	if !exists {
		return FollowResult{}, apperr.NotFound("User not found")
	}

	var result FollowResult
	err := db.WithTx(ctx, s.db, func(q db.Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM user_follows WHERE follower_id=$1 AND following_id=$2`, actor, target)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			result = FollowResult{Following: false, Message: "User unfollowed successfully"}
			return nil
		}

		tag, err = q.Exec(ctx, `
			INSERT INTO user_follows (follower_id, following_id)
			VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, actor, target)
		if err != nil {
			return err
		}
		result = FollowResult{Following: true, Message: "User followed successfully"}
		if tag.RowsAffected() == 0 {
			return nil
		}
		_, err = notifications.Create(ctx, q, notifications.New{From: actor, To: target, Type: notifications.TypeFollow})
		return err
	})
	if err != nil {
		return FollowResult{}, err
	}
	return result, nil
}

// AreMutuals reports whether a and b follow each other. Unknown users have no
// edges, so the answer is false for them.
func (s *Service) AreMutuals(ctx context.Context, a, b string) (bool, error) {
	if a == "" || b == "" || a == b {
		return false, nil
	}
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id=$1 AND following_id=$2)
		   AND EXISTS (SELECT 1 FROM user_follows WHERE follower_id=$2 AND following_id=$1)
	`, a, b).Scan(&ok)
	return ok, err
}

// FollowingIDs returns the ids of the accounts viewer follows.
func (s *Service) FollowingIDs(ctx context.Context, viewer string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT following_id FROM user_follows WHERE follower_id=$1`, viewer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Service) Following(ctx context.Context, viewer string) ([]users.Summary, error) {
	return s.summaries(ctx, `
		SELECT `+users.SummaryColumns+`
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`, viewer)
}

func (s *Service) Mutuals(ctx context.Context, viewer string) ([]users.Summary, error) {
	return s.summaries(ctx, `
		SELECT `+users.SummaryColumns+`
		FROM user_follows f
		JOIN user_follows back ON back.follower_id = f.following_id AND back.following_id = f.follower_id
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`, viewer)
}

// Suggested returns a random sample of accounts viewer could follow.
func (s *Service) Suggested(ctx context.Context, viewer string) ([]users.Summary, error) {
	return s.summaries(ctx, `
		SELECT `+users.SummaryColumns+`
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (SELECT 1 FROM user_follows f WHERE f.follower_id = $1 AND f.following_id = u.id)
		ORDER BY random()
		LIMIT $2
	`, viewer, SuggestedLimit)
}

func (s *Service) summaries(ctx context.Context, sql string, args ...any) ([]users.Summary, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return users.ScanSummaries(rows)
}
