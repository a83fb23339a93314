package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts cart store mutations by operation.
	CartMutationsTotal *prometheus.CounterVec
	// CartPersistFailuresTotal counts failed cart snapshot writes.
	CartPersistFailuresTotal prometheus.Counter
	// OrdersCreatedTotal counts simulated checkout confirmations.
	OrdersCreatedTotal prometheus.Counter
	// CheckoutRejectedTotal counts checkout submissions rejected before
	// processing, labelled by reason.
	CheckoutRejectedTotal *prometheus.CounterVec
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
			Help:      "Count of cart store mutations by operation.",
		}, []string{"op"})
		CartPersistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_persist_failures_total",
			Help:      "Number of cart snapshot writes that failed.",
		})
		OrdersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Number of simulated orders confirmed at checkout.",
		})
		CheckoutRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_rejected_total",
			Help:      "Checkout submissions rejected before processing.",
		}, []string{"reason"})

		CartMutationsTotal = registerCounterVec(reg, CartMutationsTotal)
		CheckoutRejectedTotal = registerCounterVec(reg, CheckoutRejectedTotal)
		registerCollector(reg, CartPersistFailuresTotal)
		registerCollector(reg, OrdersCreatedTotal)
	})
}

// IncCartMutation increments the mutation counter when metrics are enabled.
func IncCartMutation(op string) {
	if CartMutationsTotal != nil {
		CartMutationsTotal.WithLabelValues(op).Inc()
	}
}

// IncCartPersistFailure increments the persist-failure counter when metrics
// are enabled.
func IncCartPersistFailure() {
	if CartPersistFailuresTotal != nil {
		CartPersistFailuresTotal.Inc()
	}
}

// IncOrderCreated increments the order counter when metrics are enabled.
func IncOrderCreated() {
	if OrdersCreatedTotal != nil {
		OrdersCreatedTotal.Inc()
	}
}

// IncCheckoutRejected increments the rejection counter when metrics are
// enabled.
func IncCheckoutRejected(reason string) {
	if CheckoutRejectedTotal != nil {
		CheckoutRejectedTotal.WithLabelValues(reason).Inc()
	}
}
