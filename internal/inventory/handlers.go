package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-register/internal/cart"
	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/common"
)

// Handler wires the store to HTTP.
type Handler struct {
	Store    *Store
	Cart     *cart.Cart
	Validate *validator.Validate
}

// Deliver takes a batch of factory-built products into inventory.
func (h *Handler) Deliver(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Products []catalog.ProductInput `json:"products" validate:"required,min=1,dive"`
	}
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

	batch := make([]*catalog.Product, 0, len(payload.Products))
	for _, input := range payload.Products {
		p, err := input.Build()
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, err.Error(), nil)
			return
		}
		batch = append(batch, p)
	}

	if err := h.Store.TakeDelivery(r.Context(), batch); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"received": len(batch)}})
}

// Purchase processes the shared cart against inventory and returns the
// receipt. A failed report write surfaces as SINK_FAILURE while the stock
// and sales mutations stay committed.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.Store.ProcessPurchase(r.Context(), h.Cart)
	if err != nil {
		var sinkErr *SinkError
		if errors.As(err, &sinkErr) {
			common.JSONError(w, http.StatusBadGateway, common.CodeSinkFailure, sinkErr.Error(),
				map[string]any{"invoiceId": receipt.InvoiceID, "committed": true})
			return
		}
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to process purchase", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": receipt})
}

// Products lists inventory in delivery order, or ranked by value density
// when sort=unit-value is requested.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	var products []catalog.Product
	switch strings.TrimSpace(r.URL.Query().Get("sort")) {
	case "unit-value":
		products = h.Store.RankByUnitValue()
	default:
		products = h.Store.Products()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products})
}

// LowStock regenerates and returns the reorder listing.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	low, err := h.Store.GenerateLowStockReport(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": low, "threshold": h.Store.ReorderThreshold()})
}

// Stock regenerates and returns the full inventory snapshot report.
func (h *Handler) Stock(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GenerateStockReport(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products})
}

// SalesHistory returns the cumulative per-product units-sold counters.
func (h *Handler) SalesHistory(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.SalesHistory()})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var sinkErr *SinkError
	switch {
	case errors.As(err, &sinkErr):
		common.JSONError(w, http.StatusBadGateway, common.CodeSinkFailure, sinkErr.Error(),
			map[string]any{"committed": true})
	case errors.Is(err, ErrInvalidDelivery):
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, err.Error(), nil)
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "internal error", nil)
	}
}
