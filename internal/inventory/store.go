// Package inventory implements the store side of the register: stock owned
// by the store, delivery intake, purchase processing against a cart, and the
// report side effects that must observe a consistent snapshot of that state.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/cart"
	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/events"
	"github.com/noah-isme/toko-register/internal/obs"
	"github.com/noah-isme/toko-register/internal/report"
)

// ErrProductNotFound indicates a product id missing from inventory.
var ErrProductNotFound = errors.New("product not found in inventory")

// ErrInvalidDelivery is returned when a delivery batch fails validation.
var ErrInvalidDelivery = errors.New("invalid delivery")

// SinkError reports a failed report write. State mutations committed before
// the write stay committed; the error only describes the reporting failure.
type SinkError struct {
	Dest string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("write %s report: %v", e.Dest, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// LineStatus classifies the outcome of one purchase line.
type LineStatus string

// Purchase line outcomes.
const (
	LineFulfilled   LineStatus = "fulfilled"
	LineClamped     LineStatus = "clamped"
	LineUnavailable LineStatus = "unavailable"
)

// LineOutcome describes what happened to a single cart line during purchase
// processing.
type LineOutcome struct {
	ProductID int64      `json:"productId"`
	Name      string     `json:"name"`
	Requested int        `json:"requested"`
	Fulfilled int        `json:"fulfilled"`
	Status    LineStatus `json:"status"`
}

// Receipt summarises a purchase run. Totals reflect the cart after any
// oversell clamps.
type Receipt struct {
	InvoiceID  string          `json:"invoiceId"`
	IssuedAt   time.Time       `json:"issuedAt"`
	Lines      []LineOutcome   `json:"lines"`
	TotalNet   decimal.Decimal `json:"totalNet"`
	TotalGross decimal.Decimal `json:"totalGross"`
}

// Config groups Store dependencies.
type Config struct {
	Sink             report.Sink
	Events           *events.Bus
	Logger           zerolog.Logger
	ReorderThreshold int
	Now              func() time.Time
}

// Store owns the inventory and the cumulative per-product sales history. All
// operations serialise on an internal mutex, so a store can back an HTTP
// surface directly; the invariant held across every operation is that no
// product quantity ever goes negative.
type Store struct {
	mu        sync.Mutex
	products  map[int64]*catalog.Product
	order     []int64
	sales     map[int64]int
	sink      report.Sink
	bus       *events.Bus
	log       zerolog.Logger
	threshold int
	now       func() time.Time
}

// New constructs a Store. The reorder threshold defaults to 10 when not set.
func New(cfg Config) *Store {
	threshold := cfg.ReorderThreshold
	if threshold <= 0 {
		threshold = 10
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		products:  make(map[int64]*catalog.Product),
		sales:     make(map[int64]int),
		sink:      cfg.Sink,
		bus:       cfg.Events,
		log:       cfg.Logger,
		threshold: threshold,
		now:       now,
	}
}

// TakeDelivery merges a batch of products into inventory. Quantities add to
// existing entries matched by id; name and price of an existing entry are
// kept. The whole batch is validated before any mutation: a nil product or
// non-positive quantity rejects the call. The delivery is appended to the
// delivery log after the stock has been committed.
func (s *Store) TakeDelivery(ctx context.Context, batch []*catalog.Product) error {
	if len(batch) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidDelivery)
	}
	for _, p := range batch {
		if p == nil {
			return fmt.Errorf("%w: nil product", ErrInvalidDelivery)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: product %d quantity must be positive, got %d", ErrInvalidDelivery, p.ID, p.Quantity)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	arrived := s.now()
	lines := make([]string, 0, len(batch))
	for _, p := range batch {
		if existing, ok := s.products[p.ID]; ok {
			existing.Quantity += p.Quantity
		} else {
			s.products[p.ID] = p
			s.order = append(s.order, p.ID)
		}
		lines = append(lines, fmt.Sprintf("Product ID: %d, Name: %s, Quantity: %d, Date: %s",
			p.ID, p.Name, p.Quantity, arrived.Format(time.RFC3339)))
	}

	obs.DeliveryTotal.Inc()
	s.emit(ctx, events.TopicDeliveryReceived, map[string]any{"products": len(batch)})

	if err := s.sink.Append(ctx, report.DestDelivery, lines); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestDelivery, "error").Inc()
		return &SinkError{Dest: report.DestDelivery, Err: err}
	}
	obs.ReportWriteTotal.WithLabelValues(report.DestDelivery, "ok").Inc()
	return nil
}

// ProcessPurchase reconciles the cart against inventory, line by line in the
// cart's order. Missing products are skipped, oversold lines are clamped to
// the stock that was available (and the cart line is overwritten with that
// amount before sales history is updated), and the three reports fire once
// in fixed order regardless of per-line outcomes. The returned receipt
// reflects the cart after clamping; a report failure comes back as a
// SinkError while all state mutations stay committed.
func (s *Store) ProcessPurchase(ctx context.Context, c *cart.Cart) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes := make([]LineOutcome, 0, c.Len())
	for _, item := range c.Items() {
		requested := item.Quantity
		p, ok := s.products[item.Product.ID]
		if !ok {
			s.log.Warn().
				Int64("product_id", item.Product.ID).
				Str("name", item.Product.Name).
				Msg("cart item not available in inventory")
			obs.PurchaseLineTotal.WithLabelValues(string(LineUnavailable)).Inc()
			outcomes = append(outcomes, LineOutcome{
				ProductID: item.Product.ID,
				Name:      item.Product.Name,
				Requested: requested,
				Status:    LineUnavailable,
			})
			continue
		}

		available := p.Quantity
		p.Quantity -= item.Quantity
		if _, ok := s.sales[p.ID]; !ok {
			s.sales[p.ID] = 0
		}

		status := LineFulfilled
		if p.Quantity <= 0 {
			p.Quantity = 0
			item.Quantity = available
			status = LineClamped
			s.log.Warn().
				Int64("product_id", p.ID).
				Str("name", p.Name).
				Int("requested", requested).
				Int("available", available).
				Msg("insufficient stock, purchase clamped to available amount")
		}
		// Clamp first, then record: history tracks the quantity actually
		// written back to the cart line, not the original request.
		s.sales[p.ID] += item.Quantity

		obs.PurchaseLineTotal.WithLabelValues(string(status)).Inc()
		outcomes = append(outcomes, LineOutcome{
			ProductID: p.ID,
			Name:      p.Name,
			Requested: requested,
			Fulfilled: item.Quantity,
			Status:    status,
		})
	}

	receipt := Receipt{
		InvoiceID:  uuid.NewString(),
		IssuedAt:   s.now(),
		Lines:      outcomes,
		TotalNet:   c.TotalNet(),
		TotalGross: c.TotalGross(),
	}
	obs.PurchaseTotal.Inc()

	var sinkErr error
	if err := s.sink.Write(ctx, report.DestInvoice, s.invoiceLines(c, receipt)); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestInvoice, "error").Inc()
		sinkErr = errors.Join(sinkErr, &SinkError{Dest: report.DestInvoice, Err: err})
	} else {
		obs.ReportWriteTotal.WithLabelValues(report.DestInvoice, "ok").Inc()
	}

	low := s.lowStockLocked()
	if err := s.sink.Write(ctx, report.DestLowStock, lowStockLines(low)); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestLowStock, "error").Inc()
		sinkErr = errors.Join(sinkErr, &SinkError{Dest: report.DestLowStock, Err: err})
	} else {
		obs.ReportWriteTotal.WithLabelValues(report.DestLowStock, "ok").Inc()
	}

	if err := s.sink.Append(ctx, report.DestSalesHistory, s.salesSnapshotLines(receipt.IssuedAt)); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestSalesHistory, "error").Inc()
		sinkErr = errors.Join(sinkErr, &SinkError{Dest: report.DestSalesHistory, Err: err})
	} else {
		obs.ReportWriteTotal.WithLabelValues(report.DestSalesHistory, "ok").Inc()
	}

	s.emit(ctx, events.TopicPurchaseCompleted, map[string]any{
		"invoiceId":  receipt.InvoiceID,
		"lines":      len(receipt.Lines),
		"totalGross": receipt.TotalGross.String(),
	})
	if len(low) > 0 {
		s.emit(ctx, events.TopicStockLow, map[string]any{"products": len(low)})
	}

	return receipt, sinkErr
}

// GenerateLowStockReport writes the reorder listing for every product below
// the threshold and returns the selected products.
func (s *Store) GenerateLowStockReport(ctx context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	low := s.lowStockLocked()
	if err := s.sink.Write(ctx, report.DestLowStock, lowStockLines(low)); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestLowStock, "error").Inc()
		return low, &SinkError{Dest: report.DestLowStock, Err: err}
	}
	obs.ReportWriteTotal.WithLabelValues(report.DestLowStock, "ok").Inc()
	return low, nil
}

// GenerateStockReport writes the full inventory snapshot and returns it.
func (s *Store) GenerateStockReport(ctx context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.snapshotLocked()
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("Product: %s, Quantity: %d, Price per Unit: %s", p.Name, p.Quantity, p.UnitPrice))
	}
	if err := s.sink.Write(ctx, report.DestStockReport, lines); err != nil {
		obs.ReportWriteTotal.WithLabelValues(report.DestStockReport, "error").Inc()
		return products, &SinkError{Dest: report.DestStockReport, Err: err}
	}
	obs.ReportWriteTotal.WithLabelValues(report.DestStockReport, "ok").Inc()
	return products, nil
}

// RankByUnitValue returns the inventory sorted ascending by price per unit
// of stock. Products with zero quantity have no finite density and rank
// last; ties break on ascending id, so the ordering is total and
// deterministic.
func (s *Store) RankByUnitValue() []catalog.Product {
	s.mu.Lock()
	products := s.snapshotLocked()
	s.mu.Unlock()

	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		aZero, bZero := a.Quantity == 0, b.Quantity == 0
		if aZero != bZero {
			return bZero
		}
		if aZero && bZero {
			return a.ID < b.ID
		}
		da := a.UnitPrice.Div(decimal.New(int64(a.Quantity), 0))
		db := b.UnitPrice.Div(decimal.New(int64(b.Quantity), 0))
		if cmp := da.Cmp(db); cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})
	return products
}

// Products returns copies of the inventory entries in delivery order.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Product returns a copy of the inventory entry with the given id.
func (s *Store) Product(id int64) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, false
	}
	return *p, true
}

// Ref returns the live inventory record for the given id. Cart line items
// hold this shared reference so cart and inventory agree on identity.
func (s *Store) Ref(id int64) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ReorderThreshold returns the low-stock threshold in effect.
func (s *Store) ReorderThreshold() int {
	return s.threshold
}

// SalesHistory returns a copy of the cumulative units-sold counters.
func (s *Store) SalesHistory() map[int64]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]int, len(s.sales))
	for id, units := range s.sales {
		out[id] = units
	}
	return out
}

func (s *Store) snapshotLocked() []catalog.Product {
	out := make([]catalog.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *Store) lowStockLocked() []catalog.Product {
	var low []catalog.Product
	for _, id := range s.order {
		if p := s.products[id]; p.Quantity < s.threshold {
			low = append(low, *p)
		}
	}
	return low
}

func lowStockLines(low []catalog.Product) []string {
	lines := make([]string, 0, len(low))
	for _, p := range low {
		lines = append(lines, fmt.Sprintf("Reorder: %s, Current Stock: %d, Product ID: %d", p.Name, p.Quantity, p.ID))
	}
	return lines
}

func (s *Store) invoiceLines(c *cart.Cart, receipt Receipt) []string {
	lines := []string{
		"Invoice",
		fmt.Sprintf("Invoice No: %s", receipt.InvoiceID),
		fmt.Sprintf("Date: %s", receipt.IssuedAt.Format(time.RFC3339)),
		"",
	}
	for _, item := range c.Items() {
		lines = append(lines, fmt.Sprintf("%s - Quantity: %d, Total: %s", item.Product.Name, item.Quantity, item.GrossPrice()))
	}
	lines = append(lines, fmt.Sprintf("Total: %s", receipt.TotalGross))
	return lines
}

func (s *Store) salesSnapshotLines(at time.Time) []string {
	ids := make([]int64, 0, len(s.sales))
	for id := range s.sales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := []string{fmt.Sprintf("Sales Record at %s:", at.Format(time.RFC3339))}
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("Product ID %d: %d units sold", id, s.sales[id]))
	}
	lines = append(lines, "----------------------------")
	return lines
}

func (s *Store) emit(ctx context.Context, topic string, payload any) {
	if s.bus == nil {
		return
	}
	if _, err := s.bus.Emit(ctx, topic, payload); err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("emit domain event")
	}
}
