package model

// Product 库存商品。ID 为服务端分配的不透明主键（pk 归一化后以字符串保存）。
// 不变式：Quantity >= 0，本地永远不会出现负库存。
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ProductInput 创建商品的入参。
type ProductInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
