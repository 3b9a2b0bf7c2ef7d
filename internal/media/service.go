package media

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// ErrUnavailable is returned for uploads when no blob store is configured.
var ErrUnavailable = errors.New("image storage unavailable")

type Service struct {
	db       db.Querier
	blobs    BlobStore
	maxBytes int
}

func NewService(db db.Querier, blobs BlobStore, maxBytes int) *Service {
	return &Service{db: db, blobs: blobs, maxBytes: maxBytes}
}

// Upload stores an image data URL owned by userID and returns its public URL.
func (s *Service) Upload(ctx context.Context, userID, dataURL, kind string) (string, error) {
	data, contentType, err := Decode(dataURL, s.maxBytes)
	if err != nil {
		return "", err
	}
	if s.blobs == nil {
		return "", ErrUnavailable
	}

	id := uuid.NewString()
	if err := s.blobs.Put(ctx, id, kind, contentType, data); err != nil {
		return "", err
	}
	obj := Object{ID: id, UserID: userID, URL: URLPrefix + id, Kind: kind, ContentType: contentType, SizeBytes: int64(len(data))}
	if err := s.SaveObject(ctx, obj); err != nil {
		if derr := s.blobs.Delete(ctx, id); derr != nil {
			log.Warn().Err(derr).Str("object_id", id).Msg("orphaned image blob")
		}
		return "", err
	}
	return obj.URL, nil
}

func (s *Service) SaveObject(ctx context.Context, obj Object) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind, content_type, size_bytes)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, obj.ID, obj.UserID, obj.URL, obj.Kind, obj.ContentType, obj.SizeBytes)
	return err
}

// Open returns the metadata and contents of a hosted image.
func (s *Service) Open(ctx context.Context, id string) (Object, io.ReadCloser, error) {
	var obj Object
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, url, kind, content_type, size_bytes, created_at
		FROM storage_objects WHERE id=$1
	`, id).Scan(&obj.ID, &obj.UserID, &obj.URL, &obj.Kind, &obj.ContentType, &obj.SizeBytes, &obj.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Object{}, nil, apperr.NotFound("Image not found")
	}
	if err != nil {
		return Object{}, nil, err
	}
	if s.blobs == nil {
		return Object{}, nil, ErrUnavailable
	}
	body, err := s.blobs.Open(ctx, id)
	if err != nil {
		return Object{}, nil, err
	}
	return obj, body, nil
}

// Resolve turns a submitted image value into the URL to store for userID.
// Data URLs are uploaded, http(s) URLs pass through and hosted URLs must
// belong to userID. Anything else is rejected.
func (s *Service) Resolve(ctx context.Context, userID, value, kind string) (string, error) {
	switch {
	case value == "":
		return "", nil
	case IsDataURL(value):
		return s.Upload(ctx, userID, value, kind)
	case strings.HasPrefix(value, "https://"), strings.HasPrefix(value, "http://"):
		return value, nil
	}

	id, ok := strings.CutPrefix(value, URLPrefix)
	if !ok || id == "" {
		return "", apperr.Validation("Invalid image format")
	}
	var owned bool
	if err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM storage_objects WHERE id=$1 AND user_id=$2)
	`, id, userID).Scan(&owned); err != nil {
		return "", err
	}
	if !owned {
		return "", apperr.Validation("Invalid image format")
	}
	return value, nil
}

// Remove deletes a hosted image owned by owner once no post or profile
// references it any more. URLs not served by this service are ignored.
func (s *Service) Remove(ctx context.Context, owner, url string) error {
	id, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || id == "" {
		return nil
	}
	tag, err := s.db.Exec(ctx, `
		DELETE FROM storage_objects o
		WHERE o.id=$1 AND o.user_id=$2
		  AND NOT EXISTS (SELECT 1 FROM posts p WHERE p.img = o.url)
		  AND NOT EXISTS (SELECT 1 FROM users u WHERE u.profile_image = o.url OR u.cover_image = o.url)
	`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 || s.blobs == nil {
		return nil
	}
	return s.blobs.Delete(ctx, id)
}
