package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result 记录单次请求的 HTTP 结果，便于末尾汇总。
type Result struct {
	Name   string
	Status int
	Body   string
	Err    error
}

// smoke 冒烟脚本：对着运行中的 console 走一遍完整链路——
// 建商品 -> 列商品 -> 购买 -> 订单合并视图 -> 仪表盘。
// 远端服务不可用时购买会落到 deferred（本地兜底），这同样算链路通。
func main() {
	baseURL := flag.String("base", "http://localhost:8080", "console base url")
	token := flag.String("token", "dev-console-token", "console token for write endpoints")
	quantity := flag.Int("quantity", 2, "purchase quantity")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	var results []Result

	// 1) 建一个演示商品
	create := doJSON(client, http.MethodPost, *baseURL+"/api/products", map[string]any{
		"name":     fmt.Sprintf("smoke-%d", time.Now().Unix()),
		"price":    100.0,
		"quantity": 25,
	}, map[string]string{"X-Console-Token": *token})
	create.Name = "create_product"
	results = append(results, create)

	productID := extractID(create.Body)
	if productID == "" {
		fmt.Println("create product failed, falling back to first listed product")
		list := doJSON(client, http.MethodGet, *baseURL+"/api/products", nil, nil)
		list.Name = "list_products"
		results = append(results, list)
		productID = firstListedID(list.Body)
	}

	// 2) 购买
	if productID != "" {
		buy := doJSON(client, http.MethodPost, *baseURL+"/api/orders", map[string]any{
			"product_id": productID,
			"quantity":   *quantity,
		}, nil)
		buy.Name = "place_order"
		results = append(results, buy)
	} else {
		fmt.Println("no product available, skip purchase")
	}

	// 3) 合并订单视图与仪表盘
	orders := doJSON(client, http.MethodGet, *baseURL+"/api/orders", nil, nil)
	orders.Name = "list_orders"
	results = append(results, orders)

	dash := doJSON(client, http.MethodGet, *baseURL+"/api/dashboard", nil, nil)
	dash.Name = "dashboard"
	results = append(results, dash)

	printSummary(results)
}

func doJSON(client *http.Client, method, url string, body any, headers map[string]string) Result {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		return Result{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return Result{Status: resp.StatusCode, Body: string(b)}
}

// extractID 从 {"code":0,"data":{"id":...}} 包体里取出 id。
func extractID(body string) string {
	var out struct {
		Code int `json:"code"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil || out.Code != 0 {
		return ""
	}
	return out.Data.ID
}

// firstListedID 从商品列表包体里取第一个商品的 id。
func firstListedID(body string) string {
	var out struct {
		Code int `json:"code"`
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil || len(out.Data) == 0 {
		return ""
	}
	return out.Data[0].ID
}

func printSummary(results []Result) {
	fmt.Println("\nsmoke summary:")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %-16s error: %v\n", r.Name, r.Err)
			continue
		}
		body := r.Body
		if len(body) > 120 {
			body = body[:120] + "..."
		}
		fmt.Printf("  %-16s %d %s\n", r.Name, r.Status, body)
	}
}
