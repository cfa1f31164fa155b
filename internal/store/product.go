// Package store 持有商品与远端订单的内存快照。
// 两个 store 各自带独立的 loading 标记与最近错误，互不阻塞。
package store

import (
	"context"
	"sync"

	"inventory_console/internal/model"
)

// ProductGateway 商品网关的最小依赖面（便于测试替身）。
type ProductGateway interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (model.Product, error)
	Get(ctx context.Context, id string) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductStore 商品内存集合。写入只发生在服务端确认之后（乐观追加/移除，不回源）。
type ProductStore struct {
	mu      sync.Mutex
	gw      ProductGateway
	items   []model.Product
	loading bool
	lastErr error
}

// NewProductStore 创建空的商品 store。
func NewProductStore(gw ProductGateway) *ProductStore {
	return &ProductStore{gw: gw}
}

// FetchAll 整体替换内存集合。
// 失败时记录错误并保留上一次的集合（不做半截覆盖），错误原样返回。
func (s *ProductStore) FetchAll(ctx context.Context) error {
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

// Create 服务端确认后把新商品追加到内存集合；失败时集合不变。
func (s *ProductStore) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	s.begin()
	p, err := s.gw.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return model.Product{}, err
	}
	s.lastErr = nil
	s.items = append(s.items, p)
	return p, nil
}

// DeleteByID 服务端确认后从内存集合移除；失败（含非 1 删除响应）时集合不变。
func (s *ProductStore) DeleteByID(ctx context.Context, id string) error {
	s.begin()
	err := s.gw.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.lastErr = nil
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}

// Get 按 id 拉取单个商品（不写入集合）。
func (s *ProductStore) Get(ctx context.Context, id string) (model.Product, error) {
	s.begin()
	p, err := s.gw.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return model.Product{}, err
	}
	s.lastErr = nil
	return p, nil
}

// Snapshot 返回当前集合的拷贝。
func (s *ProductStore) Snapshot() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Loading 返回 loading 标记。
func (s *ProductStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err 返回最近一次操作的错误（成功后清空）。
func (s *ProductStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *ProductStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}
