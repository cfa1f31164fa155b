package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory_console/internal/apperr"
	"inventory_console/internal/model"
)

// fakeProductGW 函数字段式测试替身，未设置的方法 panic 以暴露意外调用。
type fakeProductGW struct {
	listFn   func(ctx context.Context) ([]model.Product, error)
	createFn func(ctx context.Context, in model.ProductInput) (model.Product, error)
	getFn    func(ctx context.Context, id string) (model.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeProductGW) List(ctx context.Context) ([]model.Product, error) { return f.listFn(ctx) }
func (f *fakeProductGW) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	return f.createFn(ctx, in)
}
func (f *fakeProductGW) Get(ctx context.Context, id string) (model.Product, error) {
	return f.getFn(ctx, id)
}
func (f *fakeProductGW) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestProductFetchAllReplacesCollection(t *testing.T) {
	first := []model.Product{{ID: "1", Name: "a", Quantity: 1}}
	second := []model.Product{{ID: "2", Name: "b", Quantity: 2}, {ID: "3", Name: "c", Quantity: 3}}

	calls := 0
	s := NewProductStore(&fakeProductGW{listFn: func(ctx context.Context) ([]model.Product, error) {
		calls++
		if calls == 1 {
			return first, nil
		}
		return second, nil
	}})

	require.NoError(t, s.FetchAll(context.Background()))
	assert.Equal(t, first, s.Snapshot())

	require.NoError(t, s.FetchAll(context.Background()))
	assert.Equal(t, second, s.Snapshot())
}

func TestProductFetchAllFailurePreservesPrevious(t *testing.T) {
	ok := true
	s := NewProductStore(&fakeProductGW{listFn: func(ctx context.Context) ([]model.Product, error) {
		if ok {
			return []model.Product{{ID: "1", Name: "a"}}, nil
		}
		return nil, &apperr.APIError{Status: 500, Message: "boom"}
	}})

	require.NoError(t, s.FetchAll(context.Background()))

	ok = false
	err := s.FetchAll(context.Background())
	require.Error(t, err)
	// 失败不做半截覆盖：上一次的集合保留，错误被记录
	assert.Len(t, s.Snapshot(), 1)
	assert.Equal(t, err, s.Err())
	assert.False(t, s.Loading(), "loading 标记必须在失败后清掉")
}

func TestProductCreateAppendsOnSuccessOnly(t *testing.T) {
	fail := false
	s := NewProductStore(&fakeProductGW{createFn: func(ctx context.Context, in model.ProductInput) (model.Product, error) {
		if fail {
			return model.Product{}, &apperr.APIError{Status: 500, Message: "boom"}
		}
		return model.Product{ID: "10", Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
	}})

	p, err := s.Create(context.Background(), model.ProductInput{Name: "widget", Price: 2, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "10", p.ID)
	assert.Len(t, s.Snapshot(), 1)

	fail = true
	_, err = s.Create(context.Background(), model.ProductInput{Name: "x"})
	require.Error(t, err)
	assert.Len(t, s.Snapshot(), 1, "失败时集合不变")
}

func TestProductDeleteRemovesOnSuccessOnly(t *testing.T) {
	fail := false
	s := NewProductStore(&fakeProductGW{
		listFn: func(ctx context.Context) ([]model.Product, error) {
			return []model.Product{{ID: "1"}, {ID: "2"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			if fail {
				return &apperr.APIError{Status: 200, Message: "unexpected delete response: 0"}
			}
			return nil
		},
	})
	require.NoError(t, s.FetchAll(context.Background()))

	require.NoError(t, s.DeleteByID(context.Background(), "1"))
	assert.Equal(t, []model.Product{{ID: "2"}}, s.Snapshot())

	fail = true
	require.Error(t, s.DeleteByID(context.Background(), "2"))
	assert.Len(t, s.Snapshot(), 1, "非 1 删除响应视为失败，集合不变")
}

func TestProductQuantityNeverNegative(t *testing.T) {
	// 商品只通过服务端确认的值进入集合；任何操作序列后 quantity >= 0
	s := NewProductStore(&fakeProductGW{
		listFn: func(ctx context.Context) ([]model.Product, error) {
			return []model.Product{{ID: "1", Quantity: 0}, {ID: "2", Quantity: 7}}, nil
		},
		createFn: func(ctx context.Context, in model.ProductInput) (model.Product, error) {
			return model.Product{ID: "3", Quantity: in.Quantity}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	})
	require.NoError(t, s.FetchAll(context.Background()))
	_, err := s.Create(context.Background(), model.ProductInput{Name: "n", Quantity: 4})
	require.NoError(t, err)
	require.NoError(t, s.DeleteByID(context.Background(), "2"))

	for _, p := range s.Snapshot() {
		assert.GreaterOrEqual(t, p.Quantity, 0)
	}
}
