package gateway

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"inventory_console/internal/apperr"
	"inventory_console/internal/model"
)

// ProductGateway 商品服务（协作方 A）客户端。
type ProductGateway struct {
	c client
}

// NewProductGateway 创建商品网关，baseURL 不含结尾斜杠。
func NewProductGateway(hc *http.Client, baseURL string) *ProductGateway {
	return &ProductGateway{c: client{hc: hc, baseURL: strings.TrimRight(baseURL, "/")}}
}

// productPayload 商品服务的线上报文。
// list 接口直接返回 id 字段；create/get 返回 pk，需要归一化为 id。
type productPayload struct {
	PK       json.Number `json:"pk"`
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Quantity int         `json:"quantity"`
}

func (p productPayload) toModel() model.Product {
	id := p.ID.String()
	if id == "" {
		id = p.PK.String()
	}
	return model.Product{
		ID:       id,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

// List 拉取全部商品。
func (g *ProductGateway) List(ctx context.Context) ([]model.Product, error) {
	raw, err := g.c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	var payloads []productPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, &apperr.APIError{Status: http.StatusOK, Message: "decode products: " + err.Error()}
	}
	out := make([]model.Product, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toModel())
	}
	return out, nil
}

// Create 创建商品。price/quantity 发送前做数值校验，拒绝非法数值。
// 注意路径是单数 /product（服务端契约如此）。
func (g *ProductGateway) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if in.Name == "" {
		return model.Product{}, apperr.Validationf("product name is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return model.Product{}, apperr.Validationf("invalid price: %v", in.Price)
	}
	if in.Quantity < 0 {
		return model.Product{}, apperr.Validationf("invalid quantity: %d", in.Quantity)
	}

	raw, err := g.c.do(ctx, http.MethodPost, "/product", in)
	if err != nil {
		return model.Product{}, err
	}
	var p productPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Product{}, &apperr.APIError{Status: http.StatusOK, Message: "decode product: " + err.Error()}
	}
	return p.toModel(), nil
}

// Get 按 id 查询单个商品，pk 归一化为 id。
func (g *ProductGateway) Get(ctx context.Context, id string) (model.Product, error) {
	raw, err := g.c.do(ctx, http.MethodGet, "/products/"+id, nil)
	if err != nil {
		return model.Product{}, err
	}
	var p productPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Product{}, &apperr.APIError{Status: http.StatusOK, Message: "decode product: " + err.Error()}
	}
	return p.toModel(), nil
}

// Delete 按 id 删除商品。
// 服务端契约：成功时响应体为字面量 1（数字或字符串 "1"），其余一律视为失败。
func (g *ProductGateway) Delete(ctx context.Context, id string) error {
	raw, err := g.c.do(ctx, http.MethodDelete, "/products/"+id, nil)
	if err != nil {
		return err
	}
	body := strings.TrimSpace(string(raw))
	if body == "1" || body == `"1"` {
		return nil
	}
	return &apperr.APIError{Status: http.StatusOK, Message: "unexpected delete response: " + body}
}
