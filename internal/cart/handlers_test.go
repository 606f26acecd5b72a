package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-register/internal/cart"
	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/common"
)

type cartResponse struct {
	Data struct {
		Items []struct {
			ProductID  int64  `json:"productId"`
			Name       string `json:"name"`
			Qty        int    `json:"qty"`
			UnitPrice  string `json:"unitPrice"`
			GrossPrice string `json:"grossPrice"`
		} `json:"items"`
		TotalNet   string `json:"totalNet"`
		TotalGross string `json:"totalGross"`
	} `json:"data"`
}

type errorResponse struct {
	Error common.ErrorBody `json:"error"`
}

type fakeResolver struct {
	products map[int64]*catalog.Product
}

func (f *fakeResolver) Ref(id int64) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, common.NewAppError(common.CodeNotFound, "product not found", http.StatusNotFound, nil)
	}
	return p, nil
}

func newCartHandler(t *testing.T) (*cart.Handler, *fakeResolver) {
	t.Helper()
	resolver := &fakeResolver{products: map[int64]*catalog.Product{
		1: {ID: 1, Name: "Iphone XYZ", UnitPrice: decimal.RequireFromString("799.99"), Quantity: 50},
		2: {ID: 2, Name: "MacBook XYZ", UnitPrice: decimal.RequireFromString("1299.99"), Quantity: 30},
	}}
	return &cart.Handler{
		Cart:     cart.New(),
		Products: resolver,
		Validate: validator.New(),
	}, resolver
}

func TestCartHandlers(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		rec := httptest.NewRecorder()
		handler.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp cartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Empty(t, resp.Data.Items)
		require.Equal(t, "0", resp.Data.TotalNet)
	})

	t.Run("add item merges lines", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		rec := postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postJSON(t, handler.AddItem, `{"productId":1,"qty":3}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp cartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 1)
		require.Equal(t, 5, resp.Data.Items[0].Qty)
		require.Equal(t, "3999.95", resp.Data.TotalNet)
	})

	t.Run("add rejects non-positive qty", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		rec := postJSON(t, handler.AddItem, `{"productId":1,"qty":0}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, common.CodeInvalidArgument, resp.Error.Code)
		require.Equal(t, 0, handler.Cart.Len())
	})

	t.Run("add unknown product", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		rec := postJSON(t, handler.AddItem, `{"productId":99,"qty":1}`)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, common.CodeNotFound, resp.Error.Code)
	})

	t.Run("add rejects malformed body", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		rec := postJSON(t, handler.AddItem, `{"productId":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update overwrites quantity", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)

		rec := itemRequest(t, handler.UpdateItem, http.MethodPut, "1", `{"qty":7}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp cartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 1)
		require.Equal(t, 7, resp.Data.Items[0].Qty)
	})

	t.Run("update to zero removes line", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)

		rec := itemRequest(t, handler.UpdateItem, http.MethodPut, "1", `{"qty":0}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp cartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Empty(t, resp.Data.Items)
	})

	t.Run("update absent line is a no-op", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)

		rec := itemRequest(t, handler.UpdateItem, http.MethodPut, "42", `{"qty":5}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, handler.Cart.Len())
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)

		rec := itemRequest(t, handler.RemoveItem, http.MethodDelete, "1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 0, handler.Cart.Len())

		rec = itemRequest(t, handler.RemoveItem, http.MethodDelete, "1", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid product id in path", func(t *testing.T) {
		rec := itemRequest(t, func(w http.ResponseWriter, r *http.Request) {
			handler, _ := newCartHandler(t)
			handler.RemoveItem(w, r)
		}, http.MethodDelete, "abc", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("clear empties cart", func(t *testing.T) {
		handler, _ := newCartHandler(t)
		postJSON(t, handler.AddItem, `{"productId":1,"qty":2}`)
		postJSON(t, handler.AddItem, `{"productId":2,"qty":1}`)

		rec := httptest.NewRecorder()
		handler.Clear(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 0, handler.Cart.Len())
	})
}

func postJSON(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func itemRequest(t *testing.T, fn http.HandlerFunc, method, productID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/cart/items/"+productID, reader)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productID", productID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}
