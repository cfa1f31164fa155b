// Package localstore 持久化本地兜底订单集合。
// 语义对齐浏览器 localStorage：单一键，启动时整体读入，每次变更整体重写。
package localstore

import (
	"context"
	"encoding/json"
	"sync"

	"inventory_console/internal/model"
)

// OrdersKey 兜底订单集合在键值存储里的唯一键。
const OrdersKey = "orders"

// Store 本地键值存储的读写面。Save 为整体覆盖写，没有局部追加原语。
type Store interface {
	Load(ctx context.Context) ([]model.Order, error)
	Save(ctx context.Context, orders []model.Order) error
}

// encode / decode 统一集合的序列化格式，三个后端共用。
func encode(orders []model.Order) ([]byte, error) {
	if orders == nil {
		orders = []model.Order{}
	}
	return json.Marshal(orders)
}

func decode(raw []byte) ([]model.Order, error) {
	if len(raw) == 0 {
		return []model.Order{}, nil
	}
	var out []model.Order
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Order{}
	}
	return out, nil
}

// Memory 内存实现，测试用。仍然走序列化往返，行为与持久后端一致。
type Memory struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemory 创建空的内存存储。
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.raw)
}

func (m *Memory) Save(ctx context.Context, orders []model.Order) error {
	b, err := encode(orders)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw = b
	m.mu.Unlock()
	return nil
}
