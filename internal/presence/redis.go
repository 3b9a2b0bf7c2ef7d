package presence

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the redis hash mapping user id to session id.
const DefaultKey = "presence:sessions"

var disconnectScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call('HDEL', KEYS[1], ARGV[1])
end
return 0
`)

// RedisTracker shares presence between processes through a redis hash.
type RedisTracker struct {
	client *redis.Client
	key    string
}

func NewRedisTracker(client *redis.Client) *RedisTracker {
	return &RedisTracker{client: client, key: DefaultKey}
}

func (r *RedisTracker) Connect(ctx context.Context, userID, sessionID string) error {
	return r.client.HSet(ctx, r.key, userID, sessionID).Err()
}

func (r *RedisTracker) Disconnect(ctx context.Context, userID, sessionID string) (bool, error) {
	n, err := disconnectScript.Run(ctx, r.client, []string{r.key}, userID, sessionID).Int()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisTracker) Session(ctx context.Context, userID string) (string, bool, error) {
	sessionID, err := r.client.HGet(ctx, r.key, userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return sessionID, true, nil
}

func (r *RedisTracker) Online(ctx context.Context) ([]string, error) {
	ids, err := r.client.HKeys(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
