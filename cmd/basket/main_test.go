package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/basket/internal/common"
)

func TestRunPricesBasket(t *testing.T) {
	t.Setenv("PRICE_OVERRIDES", "")
	t.Setenv("OBS_LOG_FORMAT", "json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"Apple,Banana", "Melon", "Melon", "Lime,Lime,Lime"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	require.Contains(t, out, "Subtotal")
	require.Contains(t, out, "2.00")
	require.Contains(t, out, "Melon (bogof)")
	require.Contains(t, out, "-0.50")
	require.Contains(t, out, "Lime (three_for_two)")
	require.Contains(t, out, "-0.15")
	require.Contains(t, out, "1.35")
}

func TestRunUnknownItem(t *testing.T) {
	t.Setenv("PRICE_OVERRIDES", "")
	t.Setenv("OBS_LOG_FORMAT", "json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"Apple", "Durian"}, &stdout, &stderr)
	require.Equal(t, common.ExitItemNotFound, code)
	require.Contains(t, stderr.String(), "Durian")
	require.Empty(t, stdout.String())
}

func TestRunListsPrices(t *testing.T) {
	t.Setenv("PRICE_OVERRIDES", "Pear=0.25")
	t.Setenv("OBS_LOG_FORMAT", "json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-prices"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "Pear")
	require.Contains(t, stdout.String(), "0.25")
	require.Contains(t, stdout.String(), "Apple")
}

func TestSplitItems(t *testing.T) {
	require.Equal(t, []string{"Apple", "Lime", "Melon"}, splitItems([]string{" Apple , Lime", "", "Melon,"}))
	require.Nil(t, splitItems(nil))
}
