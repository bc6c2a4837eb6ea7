package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/evenio/ticketing/internal/config"
	"github.com/evenio/ticketing/internal/database"
	"github.com/evenio/ticketing/internal/handler"
	"github.com/evenio/ticketing/internal/queue"
	"github.com/evenio/ticketing/internal/repository"
	"github.com/evenio/ticketing/internal/router"
	"github.com/evenio/ticketing/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	eventService := service.NewEventService(eventRepo)
	orderService := service.NewOrderService(eventRepo, orderRepo)

	// Background consumer that appends issued orders to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewEventHandler(eventService),
		handler.NewOrderHandler(orderService, eventService),
		rdb,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
