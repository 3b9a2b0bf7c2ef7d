package media

import (
	"context"
	"errors"
	"io"

	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketName is the GridFS bucket images are written to.
const BucketName = "images"

// GridFSStore keeps blobs in a MongoDB GridFS bucket keyed by object id.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(BucketName))
	if err != nil {
		return nil, err
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (g *GridFSStore) Put(_ context.Context, id, name, contentType string, data []byte) error {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	stream, err := g.bucket.OpenUploadStreamWithID(id, name, opts)
	if err != nil {
		return err
	}
	if _, err := stream.Write(data); err != nil {
		_ = stream.Abort()
		return err
	}
	return stream.Close()
}

func (g *GridFSStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	stream, err := g.bucket.OpenDownloadStream(id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, apperr.NotFound("Image not found")
	}
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func (g *GridFSStore) Delete(_ context.Context, id string) error {
	err := g.bucket.Delete(id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil
	}
	return err
}
