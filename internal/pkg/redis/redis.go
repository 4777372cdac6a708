package redis

import (
	"fmt"

	"ticketing-service/config"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

func SetupClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// SetupLocker builds a redsync instance over the shared redis client. Used
// by the expiry sweep so only one service instance sweeps at a time.
func SetupLocker(client *redis.Client) *redsync.Redsync {
	return redsync.New(goredis.NewPool(client))
}
