package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/common"
)

// ProductResolver resolves a product id to the live inventory record, so cart
// lines reference the same record the store mutates.
type ProductResolver interface {
	Ref(id int64) (*catalog.Product, error)
}

// Handler wires the shared cart to HTTP.
type Handler struct {
	Cart     *Cart
	Products ProductResolver
	Validate *validator.Validate
}

type itemView struct {
	ProductID  int64  `json:"productId"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  string `json:"unitPrice"`
	NetPrice   string `json:"netPrice"`
	GrossPrice string `json:"grossPrice"`
}

func (h *Handler) view() map[string]any {
	items := make([]itemView, 0, h.Cart.Len())
	for _, item := range h.Cart.Items() {
		items = append(items, itemView{
			ProductID:  item.Product.ID,
			Name:       item.Product.Name,
			Qty:        item.Quantity,
			UnitPrice:  item.Product.UnitPrice.String(),
			NetPrice:   item.NetPrice().String(),
			GrossPrice: item.GrossPrice().String(),
		})
	}
	return map[string]any{
		"items":      items,
		"totalNet":   h.Cart.TotalNet().String(),
		"totalGross": h.Cart.TotalGross().String(),
	}
}

// Get returns the cart contents and totals.
func (h *Handler) Get(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view()})
}

// AddItem inserts or increments a cart line for an inventory product.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID int64 `json:"productId" validate:"required"`
		Qty       int   `json:"qty" validate:"required,gt=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "qty must be positive", nil)
			return
		}
	}
	ref, err := h.Products.Ref(payload.ProductID)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "product not in inventory", nil)
		return
	}
	h.Cart.Add(ref, payload.Qty)
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.view()})
}

// UpdateItem overwrites the quantity on a cart line. A non-positive quantity
// removes the line; an absent product id is a no-op, mirroring the in-process
// behavior.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid product id", nil)
		return
	}
	var payload struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid json body", nil)
		return
	}
	for _, item := range h.Cart.Items() {
		if item.Product.ID == productID {
			h.Cart.UpdateQuantity(item.Product, payload.Qty)
			break
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view()})
}

// RemoveItem deletes the cart line for a product id. Idempotent.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid product id", nil)
		return
	}
	for _, item := range h.Cart.Items() {
		if item.Product.ID == productID {
			h.Cart.Remove(item.Product)
			break
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view()})
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, _ *http.Request) {
	h.Cart.Clear()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view()})
}
