package catalog

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/common"
	"github.com/noah-isme/toko-register/internal/pricing"
)

// ProductInput is the wire payload for building a product through the
// factory. All override fields are optional; they apply in the factory's
// fixed order.
type ProductInput struct {
	Kind     string  `json:"kind" validate:"required"`
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Price    *string `json:"price,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Pricing  *string `json:"pricing,omitempty"`
}

// Build resolves the input into a product via the factory.
func (in ProductInput) Build() (*Product, error) {
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	o := Overrides{ID: in.ID, Name: in.Name, Quantity: in.Quantity}
	if in.Price != nil {
		price, err := decimal.NewFromString(*in.Price)
		if err != nil {
			return nil, err
		}
		o.UnitPrice = &price
	}
	if in.Pricing != nil {
		mode, err := pricing.ParseMode(*in.Pricing)
		if err != nil {
			return nil, err
		}
		o.Pricing = &mode
	}
	return Create(kind, o)
}

// Handler wires the product factory to HTTP.
type Handler struct {
	Validate *validator.Validate
}

// Create builds a product from a preset plus overrides without touching any
// inventory. Callers deliver the result to a store separately.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ProductInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, err.Error(), nil)
			return
		}
	}
	p, err := payload.Build()
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": p})
}
