package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"bookstores/internal/config"
	"bookstores/internal/platform/bookstoreapi"
	"bookstores/internal/platform/logger"
	"bookstores/internal/platform/restcountries"
	"bookstores/internal/storefront"
)

type storeView struct {
	storefront.Store
	BestSellers []storefront.Book `json:"bestSellers"`
}

func main() {
	var (
		indent      = flag.Bool("indent", true, "Indent the JSON output")
		bestSellers = flag.Int("best-sellers", storefront.BestSellerCount, "Number of best sellers per store")
	)
	flag.Parse()

	config.LoadEnvFiles()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	// Logs go to stderr so stdout carries only the JSON document.
	log := logger.MustNewLogger(cfg.LogFormat, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := storefront.NewService(
		bookstoreapi.NewClient(bookstoreapi.Config{
			BaseURL: cfg.BookstoreAPIURL,
			Timeout: cfg.UpstreamTimeout,
			RPS:     cfg.UpstreamRPS,
		}),
		restcountries.NewClient(restcountries.Config{
			BaseURL: cfg.CountriesAPIURL,
			Timeout: cfg.UpstreamTimeout,
			RPS:     cfg.UpstreamRPS,
		}),
		nil,
		log,
		storefront.Config{KindPolicy: cfg.KindPolicy, Parallelism: cfg.ResolveParallelism},
	)

	stores, err := svc.Refresh(ctx)
	if err != nil {
		log.Error("refresh failed", zap.Error(err))
		os.Exit(1)
	}
	if err := writeStores(os.Stdout, stores, *bestSellers, *indent); err != nil {
		log.Error("write output", zap.Error(err))
		os.Exit(1)
	}
}

func writeStores(w io.Writer, stores []storefront.Store, bestSellers int, indent bool) error {
	out := make([]storeView, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeView{Store: s, BestSellers: s.BestSellers(bestSellers)})
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
