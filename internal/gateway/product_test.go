package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory_console/internal/apperr"
	"inventory_console/internal/model"
)

func testClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Second}
}

func TestProductList(t *testing.T) {
	// list 接口直接返回 id 字段，不做 pk 归一化
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"widget","price":9.5,"quantity":3}]`))
	}))
	defer srv.Close()

	gw := NewProductGateway(testClient(), srv.URL)
	got, err := gw.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Product{ID: "1", Name: "widget", Price: 9.5, Quantity: 3}, got[0])
}

func TestProductCreateRemapsPK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/product", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "widget", body["name"])
		assert.Equal(t, 9.5, body["price"])
		assert.Equal(t, float64(3), body["quantity"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pk":42,"name":"widget","price":9.5,"quantity":3}`))
	}))
	defer srv.Close()

	gw := NewProductGateway(testClient(), srv.URL)
	got, err := gw.Create(context.Background(), model.ProductInput{Name: "widget", Price: 9.5, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
}

func TestProductCreateRejectsInvalidNumbers(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	gw := NewProductGateway(testClient(), srv.URL)

	_, err := gw.Create(context.Background(), model.ProductInput{Name: "x", Price: -1, Quantity: 1})
	assert.True(t, apperr.IsValidation(err))

	_, err = gw.Create(context.Background(), model.ProductInput{Name: "x", Price: 1, Quantity: -1})
	assert.True(t, apperr.IsValidation(err))

	_, err = gw.Create(context.Background(), model.ProductInput{Name: "", Price: 1, Quantity: 1})
	assert.True(t, apperr.IsValidation(err))

	// 校验失败不触达服务端
	assert.False(t, called)
}

func TestProductGetRemapsPK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pk":7,"name":"bolt","price":1.25,"quantity":100}`))
	}))
	defer srv.Close()

	gw := NewProductGateway(testClient(), srv.URL)
	got, err := gw.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "bolt", got.Name)
}

func TestProductDeleteSignal(t *testing.T) {
	// 服务端契约：响应体字面量 1 或 "1" 才算成功
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"number one", `1`, true},
		{"string one", `"1"`, true},
		{"zero", `0`, false},
		{"json object", `{"deleted":true}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			gw := NewProductGateway(testClient(), srv.URL)
			err := gw.Delete(context.Background(), "5")
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsAPI(err))
			}
		})
	}
}

func TestProductGatewayStructuredFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such product"}`))
	}))
	defer srv.Close()

	gw := NewProductGateway(testClient(), srv.URL)
	_, err := gw.Get(context.Background(), "404")
	var ae *apperr.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "no such product", ae.Message)

	// 网络错误 -> Status=0 的 APIError，永不返回裸错误
	srv.Close()
	_, err = gw.List(context.Background())
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 0, ae.Status)
}
