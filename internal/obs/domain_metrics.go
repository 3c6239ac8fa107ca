package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts cart write operations by outcome.
	CartMutationsTotal *prometheus.CounterVec
	// OfferAutoAdjustTotal counts quantity bumps granted at a bundle boundary.
	OfferAutoAdjustTotal prometheus.Counter
	// CartReadsTotal counts cart listing and summary reads.
	CartReadsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart write operations by outcome.",
		}, []string{"op", "result"})
		OfferAutoAdjustTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_auto_adjust_total",
			Help:      "Count of promotional free units granted by quantity auto-adjustment.",
		})
		CartReadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_reads_total",
			Help:      "Count of cart read operations.",
		}, []string{"op"})
		reg.MustRegister(CartMutationsTotal, OfferAutoAdjustTotal, CartReadsTotal)
	})
}
