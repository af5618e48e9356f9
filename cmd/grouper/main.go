package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/prateleira/backend/config"
	"github.com/prateleira/backend/internal/infrastructure/logger"
	"github.com/prateleira/backend/internal/infrastructure/productfile"
	"github.com/prateleira/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Environment, cfg.Grouping.EnableDebugLogging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg.Grouping, log); err != nil {
		log.Error("grouping failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run reads the input file, groups its products and writes the output file
func run(ctx context.Context, cfg config.GroupingConfig, log *zap.Logger) error {
	start := time.Now()

	products, err := productfile.ReadProducts(cfg.InputPath)
	if err != nil {
		return err
	}

	service := usecase.NewGroupingService(nil, log, usecase.GroupingServiceConfig{})
	groups := service.GroupProducts(ctx, products)

	if err := productfile.WriteGroups(cfg.OutputPath, groups); err != nil {
		return err
	}

	log.Info("products grouped",
		zap.String("input", cfg.InputPath),
		zap.String("output", cfg.OutputPath),
		zap.Int("products", len(products)),
		zap.Int("groups", len(groups)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
