package model

// 订单状态。远端订单可能出现服务端自定义的其它取值，客户端原样保留。
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
)

// Order 订单。远端订单与本地兜底订单共用同一个逻辑结构：
//   - 远端订单：来自订单服务，pk 归一化为 ID（十进制字符串），状态由服务端所有；
//   - 本地兜底订单：远端下单失败时在本地生成，ID 为 uuid（与服务端 pk 永不冲突），
//     额外冗余 ProductName 与 CreatedAt，便于商品列表未加载时也能展示。
type Order struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Price       float64 `json:"price"`
	Fee         float64 `json:"fee"`
	Total       float64 `json:"total"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// validNext 本地兜底订单的合法状态迁移。
var validNext = map[string]map[string]bool{
	StatusPending:   {StatusCompleted: true},
	StatusCompleted: {StatusRefunded: true},
	StatusRefunded:  {},
}

// CanTransition 判断本地订单状态迁移是否合法。
// 仅允许 pending -> completed 与 completed -> refunded。
func CanTransition(from, to string) bool {
	return validNext[from][to]
}
