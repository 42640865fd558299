// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/cli"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(cli.ExitFailure)
	}

	log := logger.New(cfg)
	client := gateway.NewFromConfig(cfg, log)

	app, err := cli.New(cfg, client, log, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storefront")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Run(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
