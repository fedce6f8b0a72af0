package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kluaihom/banana-market-backend/internal/config"
	"github.com/kluaihom/banana-market-backend/internal/db"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"github.com/kluaihom/banana-market-backend/internal/service"
)

// Run from Cloud Scheduler (or cron). Flips confirmed orders older
// than ORDER_EXPIRY_HOURS to expired and puts the stock back.
func main() {
	if err := run(); err != nil {
		log.Fatalf("expire-orders failed: %v", err)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	productRepo := repository.NewProductRepository(gdb)
	orderRepo := repository.NewOrderRepository(gdb, productRepo)
	farmRepo := repository.NewFarmRepository(gdb)
	orders := service.NewOrderService(orderRepo, productRepo, farmRepo)

	olderThan := time.Duration(cfg.OrderExpiryHours) * time.Hour
	n, err := orders.ExpireStale(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("expire stale orders: %w", err)
	}
	log.Printf("expired %d stale orders (older than %s)", n, olderThan)
	return nil
}
