// Command cart edits the signed-in user's cart from the terminal.
//
//	cart add <itemId> <size> [qty]
//	cart set <itemId> <size> <qty>
//	cart show
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"storefront/internal/apiclient"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/mirror"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[cart] ", log.LstdFlags|log.LUTC)

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
	}
	if cfg.APIToken == "" {
		logger.Fatalf("API_TOKEN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := apiclient.New(cfg.APIBaseURL, cfg.APIToken, nil)
	cart := mirror.New(client, logger)

	stored, err := client.GetCart(ctx)
	if err != nil {
		logger.Fatalf("load cart: %v", err)
	}
	cart.Load(stored)

	switch args[0] {
	case "add":
		if len(args) < 3 {
			usage()
		}
		qty := 1
		if len(args) > 3 {
			qty = atoi(logger, args[3])
		}
		cart.Add(args[1], args[2], qty)
	case "set":
		if len(args) < 4 {
			usage()
		}
		cart.Update(args[1], args[2], atoi(logger, args[3]))
	case "show":
	default:
		usage()
	}
	cart.Wait()

	products, err := client.Products(ctx)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	catalog := domain.NewCatalog(products)
	snapshot := cart.Snapshot()
	for _, line := range snapshot.Lines(catalog) {
		fmt.Printf("%-30s %-6s x%-3d %10s\n", line.Name, line.Variant, line.Quantity, line.Total().StringFixed(2))
	}
	fmt.Printf("%d items, subtotal %s\n", cart.Count(), cart.Amount(catalog))
}

func atoi(logger *log.Logger, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		logger.Fatalf("quantity %q: %v", s, err)
	}
	return n
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cart add <itemId> <size> [qty] | cart set <itemId> <size> <qty> | cart show")
	os.Exit(2)
}
