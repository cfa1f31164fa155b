// Package dashboard 从商品快照与合并订单视图纯函数式地推导统计指标。
// 不持有状态、不做网络调用，相同输入必得相同输出。
package dashboard

import (
	"sort"
	"time"

	"inventory_console/internal/model"
)

// LowStockThreshold 低库存阈值（固定值）。
const LowStockThreshold = 10

// topN 低库存榜与最近订单各取前 5。
const topN = 5

// Stats 仪表盘聚合结果。
type Stats struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    float64         `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	LowStockItems []model.Product `json:"low_stock_items"`

	TotalOrders     int           `json:"total_orders"`
	PendingOrders   int           `json:"pending_orders"`
	CompletedOrders int           `json:"completed_orders"`
	TotalRevenue    float64       `json:"total_revenue"`
	RecentOrders    []model.Order `json:"recent_orders"`
}

// Compute 在每次读取时重新计算全部指标。
func Compute(products []model.Product, orders []model.Order) Stats {
	st := Stats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		LowStockItems: []model.Product{},
		RecentOrders:  []model.Order{},
	}

	for _, p := range products {
		st.TotalStock += p.Quantity
		st.TotalValue += p.Price * float64(p.Quantity)
		if p.Quantity < LowStockThreshold {
			st.LowStockCount++
			st.LowStockItems = append(st.LowStockItems, p)
		}
	}
	// 低库存榜：库存升序，取前 5。
	sort.SliceStable(st.LowStockItems, func(i, j int) bool {
		return st.LowStockItems[i].Quantity < st.LowStockItems[j].Quantity
	})
	if len(st.LowStockItems) > topN {
		st.LowStockItems = st.LowStockItems[:topN]
	}

	for _, o := range orders {
		switch o.Status {
		case model.StatusPending:
			st.PendingOrders++
		case model.StatusCompleted:
			st.CompletedOrders++
			st.TotalRevenue += o.Total
		}
	}

	// 最近订单：按下单时间降序，解析失败或缺失的时间按 epoch 0 处理，取前 5。
	recent := make([]model.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return createdAt(recent[i]).After(createdAt(recent[j]))
	})
	if len(recent) > topN {
		recent = recent[:topN]
	}
	st.RecentOrders = recent

	return st
}

func createdAt(o model.Order) time.Time {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
