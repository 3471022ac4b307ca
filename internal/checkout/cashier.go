package checkout

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/basket/internal/cart"
	"github.com/noah-isme/basket/internal/obs"
	"github.com/noah-isme/basket/internal/pricing"
	"github.com/noah-isme/basket/internal/promo"
)

// Cashier prices carts against a price table and a fixed set of promotions.
type Cashier struct {
	Totaller pricing.Totaller
	Rules    []promo.Rule
	Logger   zerolog.Logger
	Metrics  *obs.CheckoutMetrics
}

// Option customises a Cashier.
type Option func(*Cashier)

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cashier) { c.Logger = logger }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *obs.CheckoutMetrics) Option {
	return func(c *Cashier) { c.Metrics = m }
}

// DefaultRules returns the shop promotions: buy one get one free on melons
// and three for the price of two on limes.
func DefaultRules(table *pricing.Table) []promo.Rule {
	return []promo.Rule{
		promo.NewBuyOneGetOneFree("Melon", table),
		promo.NewThreeForTwo("Lime", table),
	}
}

// NewCashier builds a Cashier wired with DefaultRules.
func NewCashier(table *pricing.Table, opts ...Option) *Cashier {
	c := &Cashier{
		Totaller: pricing.NewTotaller(table),
		Rules:    DefaultRules(table),
		Logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Charge returns the amount owed for c after all promotions.
func (s *Cashier) Charge(c *cart.Cart) (pricing.Money, error) {
	summary, err := s.Receipt(c)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Total, nil
}

// Receipt prices c and reports the subtotal and each promotion's contribution.
func (s *Cashier) Receipt(c *cart.Cart) (pricing.Summary, error) {
	summary, err := s.price(c)
	if err != nil {
		s.Logger.Warn().Err(err).
			Str("cart_id", c.ID().String()).
			Int("items", c.Len()).
			Msg("cart_charge_failed")
		s.observe("error", summary)
		return pricing.Summary{}, err
	}

	s.Logger.Debug().
		Str("cart_id", c.ID().String()).
		Int("items", c.Len()).
		Str("subtotal", summary.Subtotal.StringFixed(2)).
		Str("discount", summary.Discount.StringFixed(2)).
		Str("total", summary.Total.StringFixed(2)).
		Msg("cart_charged")
	s.observe("ok", summary)
	return summary, nil
}

func (s *Cashier) price(c *cart.Cart) (pricing.Summary, error) {
	subtotal, err := s.Totaller.Total(c)
	if err != nil {
		return pricing.Summary{}, fmt.Errorf("total cart: %w", err)
	}
	lines := make([]pricing.Line, 0, len(s.Rules))
	for _, rule := range s.Rules {
		discount, err := rule.Discount(c)
		if err != nil {
			return pricing.Summary{}, fmt.Errorf("apply %s on %s: %w", rule.Name(), rule.Target(), err)
		}
		lines = append(lines, pricing.Line{Rule: rule.Name(), Item: rule.Target(), Discount: discount})
	}
	return pricing.Compute(subtotal, lines), nil
}

func (s *Cashier) observe(result string, summary pricing.Summary) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.ChargesTotal.WithLabelValues(result).Inc()
	if result != "ok" {
		return
	}
	for _, l := range summary.Lines {
		if l.Discount.IsPositive() {
			s.Metrics.DiscountsApplied.WithLabelValues(l.Rule, l.Item).Inc()
		}
	}
	s.Metrics.ChargeAmount.Observe(summary.Total.InexactFloat64())
}
