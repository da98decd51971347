package reference

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StoreOptions: где хранить справочники.
type StoreOptions struct {
	Backend     string // file | redis
	Dir         string
	RedisAddr   string
	RedisPrefix string
}

// OpenStore собирает хранилище по опциям; closeFn освобождает соединение с Redis.
func OpenStore(opt StoreOptions) (st Store, closeFn func() error, err error) {
	switch opt.Backend {
	case "", "file":
		return NewFileStore(opt.Dir), func() error { return nil }, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: opt.RedisAddr})
		return NewRedisStore(rdb, opt.RedisPrefix), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown reference backend %q", opt.Backend)
	}
}
