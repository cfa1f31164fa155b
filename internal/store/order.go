package store

import (
	"context"
	"sync"

	"inventory_console/internal/model"
)

// OrderGateway 订单网关的最小依赖面。
type OrderGateway interface {
	Create(ctx context.Context, productID string, quantity int) (model.Order, error)
	Get(ctx context.Context, id string) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
}

// OrderStore 远端订单的内存集合（只存服务端确认过的订单，本地兜底订单不在这里）。
type OrderStore struct {
	mu      sync.Mutex
	gw      OrderGateway
	items   []model.Order
	loading bool
	lastErr error
}

// NewOrderStore 创建空的订单 store。
func NewOrderStore(gw OrderGateway) *OrderStore {
	return &OrderStore{gw: gw}
}

// FetchAll 整体替换内存集合；网关对 list 失败已做空列表降级，这里通常不会出错。
func (s *OrderStore) FetchAll(ctx context.Context) error {
	s.begin()
	items, err := s.gw.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.lastErr = nil
	s.items = items
	return nil
}

// Create 远端下单，成功后把归一化订单追加到内存集合。
func (s *OrderStore) Create(ctx context.Context, productID string, quantity int) (model.Order, error) {
	s.begin()
	o, err := s.gw.Create(ctx, productID, quantity)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return model.Order{}, err
	}
	s.lastErr = nil
	s.items = append(s.items, o)
	return o, nil
}

// GetByID 回源查询单个订单；若内存里已有同 id 订单则就地更新，没有则不插入。
func (s *OrderStore) GetByID(ctx context.Context, id string) (model.Order, error) {
	s.begin()
	o, err := s.gw.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return model.Order{}, err
	}
	s.lastErr = nil
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = o
			break
		}
	}
	return o, nil
}

// Snapshot 返回当前集合的拷贝。
func (s *OrderStore) Snapshot() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.items))
	copy(out, s.items)
	return out
}

// Loading 返回 loading 标记。
func (s *OrderStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err 返回最近一次操作的错误（成功后清空）。
func (s *OrderStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *OrderStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}
