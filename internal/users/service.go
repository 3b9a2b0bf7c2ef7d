package users

import (
	"context"
	"errors"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/media"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// ImageResolver validates a submitted image value, hosting data URLs, and
// returns the URL to store.
type ImageResolver interface {
	Resolve(ctx context.Context, userID, value, kind string) (string, error)
}

type Service struct {
	db     db.Querier
	images ImageResolver
}

func NewService(db db.Querier, images ImageResolver) *Service {
	return &Service{db: db, images: images}
}

const selectUser = `
	SELECT id, username, email, password_hash, full_name, bio, links, profile_image, cover_image, created_at, updated_at
	FROM users`

func (s *Service) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.FullName)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	u.Followers, u.Following, u.LikedPosts, u.SavedPosts = []string{}, []string{}, []string{}, []string{}
	return u, nil
}

// ByID loads a user with its relation sets.
func (s *Service) ByID(ctx context.Context, id string) (User, error) {
	u, err := s.scanOne(ctx, selectUser+` WHERE id=$1`, id)
	if err != nil {
		return User{}, err
	}
	return s.withRelations(ctx, u)
}

func (s *Service) ByUsername(ctx context.Context, username string) (User, error) {
	u, err := s.scanOne(ctx, selectUser+` WHERE username=$1`, username)
	if err != nil {
		return User{}, err
	}
	return s.withRelations(ctx, u)
}

// Credentials returns the user row including the password hash, without
// relation sets. Used by login.
func (s *Service) Credentials(ctx context.Context, username string) (User, error) {
	return s.scanOne(ctx, selectUser+` WHERE username=$1`, username)
}

// Profile is the public view of a user: no email, no password.
func (s *Service) Profile(ctx context.Context, username string) (User, error) {
	u, err := s.ByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	u.Email = ""
	return u, nil
}

func (s *Service) UsernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1 AND id<>$2)`, username, exceptID)
}

func (s *Service) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1 AND id<>$2)`, email, exceptID)
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (User, error) {
	u, err := s.scanOne(ctx, selectUser+` WHERE id=$1`, userID)
	if err != nil {
		return User{}, err
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return User{}, apperr.Validation("Both current and new passwords are required")
	}
	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return User{}, apperr.Validation("Current password is incorrect")
		}
		if len(req.NewPassword) < MinPasswordLength {
			return User{}, apperr.Validation("New password must be at least 6 characters long")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if req.Username != "" && req.Username != u.Username {
		taken, err := s.UsernameTaken(ctx, req.Username, u.ID)
		if err != nil {
			return User{}, err
		}
		if taken {
			return User{}, apperr.Validation("Username is already taken")
		}
		u.Username = req.Username
	}
	if req.Email != "" && req.Email != u.Email {
		taken, err := s.EmailTaken(ctx, req.Email, u.ID)
		if err != nil {
			return User{}, err
		}
		if taken {
			return User{}, apperr.Validation("Email is already taken")
		}
		u.Email = req.Email
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	if req.Links != "" {
		u.Links = req.Links
	}
	if u.ProfileImage, err = s.resolveImage(ctx, u.ID, req.ProfileImage, u.ProfileImage, "profile"); err != nil {
		return User{}, err
	}
	if u.CoverImage, err = s.resolveImage(ctx, u.ID, req.CoverImage, u.CoverImage, "cover"); err != nil {
		return User{}, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE users
		SET username=$2, email=$3, password_hash=$4, full_name=$5, bio=$6, links=$7,
		    profile_image=$8, cover_image=$9, updated_at=now()
		WHERE id=$1
		RETURNING updated_at
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.Bio, u.Links, u.ProfileImage, u.CoverImage)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return User{}, err
	}
	return s.withRelations(ctx, u)
}

func (s *Service) resolveImage(ctx context.Context, userID, value, current, kind string) (string, error) {
	if value == "" || value == current {
		return current, nil
	}
	if s.images == nil {
		return "", media.ErrUnavailable
	}
	return s.images.Resolve(ctx, userID, value, kind)
}

func (s *Service) scanOne(ctx context.Context, sql string, arg string) (User, error) {
	var u User
	err := s.db.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Bio, &u.Links, &u.ProfileImage, &u.CoverImage, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) withRelations(ctx context.Context, u User) (User, error) {
	u.Followers, u.Following, u.LikedPosts, u.SavedPosts = []string{}, []string{}, []string{}, []string{}
	rows, err := s.db.Query(ctx, `
		SELECT 'following', following_id FROM user_follows WHERE follower_id=$1
		UNION ALL SELECT 'followers', follower_id FROM user_follows WHERE following_id=$1
		UNION ALL SELECT 'liked', post_id FROM post_likes WHERE user_id=$1
		UNION ALL SELECT 'saved', post_id FROM saved_posts WHERE user_id=$1
	`, u.ID)
	if err != nil {
		return User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, id string
		if err := rows.Scan(&kind, &id); err != nil {
			return User{}, err
		}
		switch kind {
		case "following":
			u.Following = append(u.Following, id)
		case "followers":
			u.Followers = append(u.Followers, id)
		case "liked":
			u.LikedPosts = append(u.LikedPosts, id)
		case "saved":
			u.SavedPosts = append(u.SavedPosts, id)
		}
	}
	return u, rows.Err()
}

func (s *Service) exists(ctx context.Context, sql string, args ...any) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, sql, args...).Scan(&ok)
	return ok, err
}

// SummaryColumns selects the Summary fields of a users table aliased u.
const SummaryColumns = `u.id, u.username, u.full_name, u.profile_image`

// ScanSummaries drains rows selected with SummaryColumns.
func ScanSummaries(rows pgx.Rows) ([]Summary, error) {
	defer rows.Close()

	list := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.ProfileImage); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
