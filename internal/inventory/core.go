// Package inventory 是对账核心：把服务端确认订单与本地持久化的兜底订单
// 合并成一份逻辑订单集合，并独占购买流程、本地订单状态机与退款策略。
// 两份集合只允许通过这里读取，杜绝调用方各读各的导致分叉。
package inventory

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"inventory_console/internal/apperr"
	"inventory_console/internal/localstore"
	"inventory_console/internal/model"
	"inventory_console/internal/store"
)

// feeRate 本地兜底订单的手续费率（支付网关的本地近似值）。
const feeRate = 0.03

// Outcome 购买结果的两种落点。
type Outcome string

const (
	// OutcomeCommitted 远端下单成功，订单已在订单服务落库。
	OutcomeCommitted Outcome = "committed"
	// OutcomeDeferred 远端下单失败，订单已降级为本地兜底订单并持久化。
	OutcomeDeferred Outcome = "deferred"
)

// PurchaseResult 购买流程的显式双臂结果：committed(远端订单) | deferred(本地订单)。
// 两条路径对调用方都算成功——业务意图（记下这笔购买）已满足。
type PurchaseResult struct {
	Outcome Outcome     `json:"outcome"`
	Order   model.Order `json:"order"`
}

// Core 对账核心。local 与持久化存储的读改写全程持锁，中途没有挂起点。
type Core struct {
	products *store.ProductStore
	orders   *store.OrderStore

	mu    sync.Mutex // 保护 local 的读改写+落盘
	local []model.Order
	disk  localstore.Store
}

// New 创建对账核心并从本地键值存储读入历史兜底订单。
func New(ctx context.Context, products *store.ProductStore, orders *store.OrderStore, disk localstore.Store) (*Core, error) {
	local, err := disk.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Core{
		products: products,
		orders:   orders,
		local:    local,
		disk:     disk,
	}, nil
}

// PlaceOrder 购买流程：
//  1. 纯客户端前置校验（商品存在、1 <= quantity <= 库存），失败返回 ValidationError，零副作用；
//  2. 尝试远端下单，成功则补上商品名与下单时间后返回 committed；
//  3. 远端失败则降级：按 3% 费率合成本地兜底订单（pending），追加进本地集合并整体落盘，
//     返回 deferred。落盘失败时回滚内存追加——一次调用之后，远端订单与本地订单
//     要么恰有其一，要么（出错时）都不存在。
func (c *Core) PlaceOrder(ctx context.Context, productID string, quantity int) (PurchaseResult, error) {
	product, ok := c.findProduct(productID)
	if !ok {
		return PurchaseResult{}, apperr.Validationf("product not found: %s", productID)
	}
	if quantity < 1 {
		return PurchaseResult{}, apperr.Validationf("quantity must be >= 1, got %d", quantity)
	}
	if quantity > product.Quantity {
		return PurchaseResult{}, apperr.Validationf("insufficient stock: have %d, want %d", product.Quantity, quantity)
	}

	remote, err := c.orders.Create(ctx, productID, quantity)
	if err == nil {
		// 展示用冗余：原始订单已在 OrderStore，返回值额外带上商品名与时间。
		remote.ProductName = product.Name
		remote.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		return PurchaseResult{Outcome: OutcomeCommitted, Order: remote}, nil
	}
	log.Printf("inventory: remote order failed, falling back to local: %v", err)

	subtotal := product.Price * float64(quantity)
	fee := round2(subtotal * feeRate)
	total := round2(subtotal + fee)
	localOrder := model.Order{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: product.Name,
		Price:       product.Price,
		Fee:         fee,
		Total:       total,
		Quantity:    quantity,
		Status:      model.StatusPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.local = append(c.local, localOrder)
	if err := c.disk.Save(ctx, c.local); err != nil {
		c.local = c.local[:len(c.local)-1]
		return PurchaseResult{}, err
	}
	return PurchaseResult{Outcome: OutcomeDeferred, Order: localOrder}, nil
}

// SetStatus 迁移本地兜底订单的状态并整体重新落盘。
// 仅作用于本地订单；id 未命中或迁移不合法时静默 no-op（返回 false）。
func (c *Core) SetStatus(ctx context.Context, orderID, status string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.local {
		if c.local[i].ID != orderID {
			continue
		}
		if !model.CanTransition(c.local[i].Status, status) {
			return false, nil
		}
		prev := c.local[i].Status
		c.local[i].Status = status
		if err := c.disk.Save(ctx, c.local); err != nil {
			c.local[i].Status = prev
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Refund 退款：仅当订单当前状态恰为 completed 时迁移到 refunded 并返回 true。
// pending、已退款的订单会被拒绝；远端订单的状态本客户端不可变更，一律返回 false。
func (c *Core) Refund(ctx context.Context, orderID string) (bool, error) {
	return c.SetStatus(ctx, orderID, model.StatusRefunded)
}

// Orders 合并视图：远端订单在前、本地兜底订单在后，各自保持集合内顺序。
// 不保证跨来源的时间序，需要时间序的调用方自行按 created_at 排序。
func (c *Core) Orders() []model.Order {
	remote := c.orders.Snapshot()
	c.mu.Lock()
	local := make([]model.Order, len(c.local))
	copy(local, c.local)
	c.mu.Unlock()
	return append(remote, local...)
}

// Products 当前商品快照。
func (c *Core) Products() []model.Product {
	return c.products.Snapshot()
}

// AddProduct 创建商品（服务端确认后进入内存集合）。
func (c *Core) AddProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	return c.products.Create(ctx, in)
}

// DeleteProduct 删除商品（服务端确认后移出内存集合）。
func (c *Core) DeleteProduct(ctx context.Context, id string) error {
	return c.products.DeleteByID(ctx, id)
}

// GetProduct 回源查询单个商品（不写入集合）。
func (c *Core) GetProduct(ctx context.Context, id string) (model.Product, error) {
	return c.products.Get(ctx, id)
}

// GetOrder 回源查询远端订单（命中时就地刷新 OrderStore）。
func (c *Core) GetOrder(ctx context.Context, id string) (model.Order, error) {
	return c.orders.GetByID(ctx, id)
}

// Refresh 重新拉取商品与订单两个集合。两次拉取互不阻塞对方的结果，
// 任一失败不影响另一边已替换的数据。
func (c *Core) Refresh(ctx context.Context) error {
	perr := c.products.FetchAll(ctx)
	oerr := c.orders.FetchAll(ctx)
	return errors.Join(perr, oerr)
}

// RunAutoRefresh 周期性刷新两个集合，直到 ctx 结束。失败只记日志，下个周期重试。
func (c *Core) RunAutoRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				log.Printf("inventory: auto refresh: %v", err)
			}
		}
	}
}

func (c *Core) findProduct(id string) (model.Product, bool) {
	for _, p := range c.products.Snapshot() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// round2 四舍五入到 2 位小数（与费率、总额的展示精度一致）。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
