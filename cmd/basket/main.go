package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/basket/internal/cart"
	"github.com/noah-isme/basket/internal/checkout"
	"github.com/noah-isme/basket/internal/common"
	"github.com/noah-isme/basket/internal/config"
	"github.com/noah-isme/basket/internal/obs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("basket", flag.ContinueOnError)
	fs.SetOutput(stderr)
	listPrices := fs.Bool("prices", false, "list the price table and exit")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return common.ExitInternal
	}
	logger := obs.NewLoggerTo(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	table, err := cfg.PriceTable()
	if err != nil {
		logger.Error().Err(err).Msg("price_table_invalid")
		return common.ExitInternal
	}

	if *listPrices {
		for _, name := range table.Items() {
			price, _ := table.PriceOf(name)
			fmt.Fprintf(stdout, "%-10s %s\n", name, price.StringFixed(2))
		}
		return 0
	}

	metrics := obs.NewCheckoutMetrics(cfg.MetricsNamespace, prometheus.NewRegistry())
	cashier := checkout.NewCashier(table, checkout.WithLogger(logger), checkout.WithMetrics(metrics))

	basket := cart.New(splitItems(fs.Args())...)
	summary, err := cashier.Receipt(basket)
	if err != nil {
		appErr := common.Classify(err)
		logger.Error().Err(err).Str("code", appErr.Code).Msg("basket_pricing_failed")
		fmt.Fprintf(stderr, "%s: %v\n", appErr.Message, err)
		return appErr.ExitCode
	}

	fmt.Fprintf(stdout, "%-24s %s\n", "Subtotal", summary.Subtotal.StringFixed(2))
	for _, line := range summary.Lines {
		if line.Discount.IsZero() {
			continue
		}
		label := fmt.Sprintf("%s (%s)", line.Item, line.Rule)
		fmt.Fprintf(stdout, "%-24s -%s\n", label, line.Discount.StringFixed(2))
	}
	fmt.Fprintf(stdout, "%-24s %s\n", "Total", summary.Total.StringFixed(2))
	return 0
}

// splitItems accepts items as separate arguments or comma-separated lists.
func splitItems(args []string) []string {
	var items []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if name := strings.TrimSpace(part); name != "" {
				items = append(items, name)
			}
		}
	}
	return items
}
