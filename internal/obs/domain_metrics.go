package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PurchaseTotal counts processed purchases.
	PurchaseTotal prometheus.Counter
	// PurchaseLineTotal counts purchase line outcomes by result.
	PurchaseLineTotal *prometheus.CounterVec
	// DeliveryTotal counts accepted deliveries.
	DeliveryTotal prometheus.Counter
	// ReportWriteTotal tracks report sink writes by destination and outcome.
	ReportWriteTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PurchaseTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Total number of purchase runs processed by the store.",
		})
		PurchaseLineTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_lines_total",
			Help:      "Purchase line items by outcome (fulfilled, clamped, unavailable).",
		}, []string{"outcome"})
		DeliveryTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Total number of deliveries taken into inventory.",
		})
		ReportWriteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_writes_total",
			Help:      "Report sink writes by destination and outcome.",
		}, []string{"destination", "outcome"})
		reg.MustRegister(PurchaseTotal, PurchaseLineTotal, DeliveryTotal, ReportWriteTotal)
	})
}
