package checkout

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/basket/internal/cart"
	"github.com/noah-isme/basket/internal/obs"
	"github.com/noah-isme/basket/internal/pricing"
	"github.com/noah-isme/basket/internal/promo"
)

func mixedCart() *cart.Cart {
	return cart.New("Apple", "Banana", "Melon", "Melon", "Lime", "Lime", "Lime")
}

func TestChargeAppliesPromotions(t *testing.T) {
	cashier := NewCashier(pricing.DefaultTable())

	total, err := cashier.Charge(mixedCart())
	require.NoError(t, err)
	require.Equal(t, "1.35", total.StringFixed(2))
}

func TestReceiptBreakdown(t *testing.T) {
	cashier := NewCashier(pricing.DefaultTable())

	summary, err := cashier.Receipt(mixedCart())
	require.NoError(t, err)
	require.Equal(t, "2.00", summary.Subtotal.StringFixed(2))
	require.Equal(t, "0.65", summary.Discount.StringFixed(2))
	require.Equal(t, "1.35", summary.Total.StringFixed(2))
	require.Len(t, summary.Lines, 2)
	require.Equal(t, promo.KindBuyOneGetOneFree, summary.Lines[0].Rule)
	require.Equal(t, "Melon", summary.Lines[0].Item)
	require.Equal(t, "0.50", summary.Lines[0].Discount.StringFixed(2))
	require.Equal(t, promo.KindThreeForTwo, summary.Lines[1].Rule)
	require.Equal(t, "0.15", summary.Lines[1].Discount.StringFixed(2))
}

func TestChargeIsRepeatable(t *testing.T) {
	cashier := NewCashier(pricing.DefaultTable())
	c := mixedCart()

	first, err := cashier.Charge(c)
	require.NoError(t, err)
	second, err := cashier.Charge(c)
	require.NoError(t, err)
	require.True(t, first.Equal(second), "expected %s, got %s", first, second)
}

func TestChargeFollowsRemoval(t *testing.T) {
	cashier := NewCashier(pricing.DefaultTable())
	c := mixedCart()
	c.Remove("Melon")
	c.Remove("Lime")

	total, err := cashier.Charge(c)
	require.NoError(t, err)
	// 0.35 + 0.20 + 0.50 + 0.15 + 0.15, no promotion reached.
	require.Equal(t, "1.35", total.StringFixed(2))

	c.Remove("Apple")
	total, err = cashier.Charge(c)
	require.NoError(t, err)
	require.Equal(t, "1.00", total.StringFixed(2))
}

func TestChargeEmptyCart(t *testing.T) {
	total, err := NewCashier(pricing.DefaultTable()).Charge(cart.New())
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestChargeUnknownItem(t *testing.T) {
	var buf bytes.Buffer
	cashier := NewCashier(pricing.DefaultTable(), WithLogger(obs.NewLoggerTo(&buf, "json", "debug")))

	_, err := cashier.Charge(cart.New("Apple", "Durian"))
	require.ErrorIs(t, err, pricing.ErrItemNotFound)
	require.Contains(t, buf.String(), "cart_charge_failed")
}

func TestChargeRecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewCheckoutMetrics("basket", registry)
	cashier := NewCashier(pricing.DefaultTable(), WithMetrics(metrics))

	_, err := cashier.Charge(mixedCart())
	require.NoError(t, err)
	_, err = cashier.Charge(cart.New("Melon"))
	require.NoError(t, err)
	_, err = cashier.Charge(cart.New("Durian"))
	require.Error(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.ChargesTotal.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.ChargesTotal.WithLabelValues("error")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.DiscountsApplied.WithLabelValues(promo.KindBuyOneGetOneFree, "Melon")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.DiscountsApplied.WithLabelValues(promo.KindThreeForTwo, "Lime")))
}

func TestChargeWithOverriddenTable(t *testing.T) {
	table, err := pricing.DefaultTable().WithOverrides(map[string]pricing.Money{
		"Melon": decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	total, err := NewCashier(table).Charge(cart.New("Melon", "Melon", "Melon"))
	require.NoError(t, err)
	require.Equal(t, "2.00", total.StringFixed(2))
}
