// Command watch follows the signed-in user's orders and prints new orders
// and status changes as they appear.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/apiclient"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/poll"
)

func main() {
	var all bool
	flag.BoolVar(&all, "all", false, "Watch every order (admin token required)")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[watch] ", log.LstdFlags|log.LUTC)

	if cfg.APIToken == "" {
		logger.Fatalf("API_TOKEN is required")
	}
	client := apiclient.New(cfg.APIBaseURL, cfg.APIToken, nil)
	fetch := client.UserOrders
	if all {
		fetch = client.AllOrders
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := poll.NewOrderWatcher()
	poller := poll.New[[]domain.Order](cfg.PollInterval, fetch, logger)
	logger.Printf("polling %s every %s", cfg.APIBaseURL, cfg.PollInterval)

	first := true
	for res := range poller.Run(ctx) {
		if res.Err != nil {
			continue
		}
		changes := watcher.Observe(res.Value)
		if first {
			logger.Printf("tracking %d orders", len(res.Value))
			first = false
		}
		for _, o := range changes.New {
			logger.Printf("new order #%d (%s): %s, %s", o.NumericID, o.ID, o.Status, o.Amount.StringFixed(2))
		}
		for _, c := range changes.Updated {
			logger.Printf("order #%d (%s): %s -> %s", c.NumericID, c.OrderID, c.From, c.To)
		}
	}
	logger.Printf("stopped")
}
