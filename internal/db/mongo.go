package db

import (
	"context"
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo returns nil when no MONGO_URI is configured. The driver
// connects lazily, so an unreachable server surfaces on first use.
func ConnectMongo(cfg config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
}
