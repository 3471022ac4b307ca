package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics groups Prometheus collectors for basket pricing.
type CheckoutMetrics struct {
	// ChargesTotal counts pricing attempts by result.
	ChargesTotal *prometheus.CounterVec
	// DiscountsApplied counts promotions that granted a non-zero discount.
	DiscountsApplied *prometheus.CounterVec
	// ChargeAmount records final charges in major currency units.
	ChargeAmount prometheus.Histogram
}

// NewCheckoutMetrics registers and returns checkout collectors. Collectors that are
// already registered on reg are reused.
func NewCheckoutMetrics(namespace string, reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CheckoutMetrics{
		ChargesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charges_total",
			Help:      "Count of basket pricing outcomes.",
		}, []string{"result"}),
		DiscountsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_applied_total",
			Help:      "Count of promotions that reduced a basket charge.",
		}, []string{"rule", "item"}),
		ChargeAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "charge_amount",
			Help:      "Distribution of final basket charges.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100},
		}),
	}

	mustRegisterCollector(reg, m.ChargesTotal, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.ChargesTotal = v
		}
	})
	mustRegisterCollector(reg, m.DiscountsApplied, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.DiscountsApplied = v
		}
	})
	mustRegisterCollector(reg, m.ChargeAmount, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Histogram); ok {
			m.ChargeAmount = v
		}
	})
	return m
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register checkout metric: %w", err))
	}
}
