package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"inventory_console/internal/apperr"
	"inventory_console/internal/model"
)

// OrderHeaders 订单服务要求的固定请求头。
type OrderHeaders struct {
	BranchID       string
	FacilityID     string
	AcceptLanguage string
}

// OrderGateway 订单服务（协作方 B）客户端。每个请求都携带固定的
// Branch-id / Facility-id / Accept-Language 头。
type OrderGateway struct {
	c client
}

// NewOrderGateway 创建订单网关。
func NewOrderGateway(hc *http.Client, baseURL string, h OrderHeaders) *OrderGateway {
	return &OrderGateway{c: client{
		hc:      hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: map[string]string{
			"Branch-id":       h.BranchID,
			"Facility-id":     h.FacilityID,
			"Accept-Language": h.AcceptLanguage,
		},
	}}
}

// orderPayload 订单服务的线上报文，pk 归一化为 id。
type orderPayload struct {
	PK        json.Number `json:"pk"`
	ID        json.Number `json:"id"`
	ProductID json.Number `json:"product_id"`
	Price     float64     `json:"price"`
	Fee       float64     `json:"fee"`
	Total     float64     `json:"total"`
	Quantity  int         `json:"quantity"`
	Status    string      `json:"status"`
}

func (p orderPayload) toModel() model.Order {
	id := p.ID.String()
	if id == "" {
		id = p.PK.String()
	}
	return model.Order{
		ID:        id,
		ProductID: p.ProductID.String(),
		Price:     p.Price,
		Fee:       p.Fee,
		Total:     p.Total,
		Quantity:  p.Quantity,
		Status:    p.Status,
	}
}

// Create 下单。请求体为 {"id": <productId>, "quantity": <n>}；
// productId 若是十进制字符串则按数字发送（服务端 pk 为数字）。
func (g *OrderGateway) Create(ctx context.Context, productID string, quantity int) (model.Order, error) {
	var id any = productID
	if n, err := strconv.ParseInt(productID, 10, 64); err == nil {
		id = n
	}
	body := map[string]any{"id": id, "quantity": quantity}

	raw, err := g.c.do(ctx, http.MethodPost, "/orders", body)
	if err != nil {
		return model.Order{}, err
	}
	var p orderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Order{}, &apperr.APIError{Status: http.StatusOK, Message: "decode order: " + err.Error()}
	}
	return p.toModel(), nil
}

// Get 按 id 查询订单。
func (g *OrderGateway) Get(ctx context.Context, id string) (model.Order, error) {
	raw, err := g.c.do(ctx, http.MethodGet, "/orders/"+id, nil)
	if err != nil {
		return model.Order{}, err
	}
	var p orderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Order{}, &apperr.APIError{Status: http.StatusOK, Message: "decode order: " + err.Error()}
	}
	return p.toModel(), nil
}

// List 拉取全部订单。
// 该接口在部分部署里不存在：请求失败或响应非数组时一律按空列表处理，
// 调用方无需区分「没有订单」和「接口不支持」。
func (g *OrderGateway) List(ctx context.Context) ([]model.Order, error) {
	raw, err := g.c.do(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		log.Printf("order gateway: list degraded to empty: %v", err)
		return []model.Order{}, nil
	}
	if !isJSONArray(raw) {
		return []model.Order{}, nil
	}
	var payloads []orderPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return []model.Order{}, nil
	}
	out := make([]model.Order, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toModel())
	}
	return out, nil
}
