package localstore

import (
	"context"
	"errors"

	rd "github.com/redis/go-redis/v9"

	"inventory_console/internal/model"
	rediskey "inventory_console/pkg/redis"
)

// Redis 可选的键值后端（LOCAL_STORE=redis）：单个 key，SET 整体覆盖写，不设过期。
type Redis struct {
	rdb *rd.Client
}

// NewRedis 创建 redis 后端。
func NewRedis(rdb *rd.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Load 读出整个兜底订单集合；key 不存在视为空集合。
func (r *Redis) Load(ctx context.Context) ([]model.Order, error) {
	raw, err := r.rdb.Get(ctx, rediskey.LocalOrdersKey()).Bytes()
	if errors.Is(err, rd.Nil) {
		return []model.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// Save 整体覆盖写。
func (r *Redis) Save(ctx context.Context, orders []model.Order) error {
	b, err := encode(orders)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, rediskey.LocalOrdersKey(), b, 0).Err()
}
