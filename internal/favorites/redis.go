package favorites

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "favorites:spots"

// RedisPersister keeps the favorite id set in a Redis set, independent of
// the Postgres store.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client, key: defaultKey}
}

func (p *RedisPersister) LoadIDs(ctx context.Context) ([]string, error) {
	return p.client.SMembers(ctx, p.key).Result()
}

func (p *RedisPersister) SaveIDs(ctx context.Context, ids []string) error {
	pipe := p.client.TxPipeline()
	pipe.Del(ctx, p.key)
	if len(ids) > 0 {
		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		pipe.SAdd(ctx, p.key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
