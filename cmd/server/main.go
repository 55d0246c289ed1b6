package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tableside/api/internal/cache"
	"github.com/tableside/api/internal/config"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/queue"
	"github.com/tableside/api/internal/router"
	"github.com/tableside/api/internal/service"
	"github.com/tableside/api/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run(ctx)

	// Optional sinks stay untyped nil when unconfigured.
	var tables service.TableCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("WARN: redis unavailable, table cache disabled: %v", err)
		} else {
			defer rdb.Close()
			tables = cache.NewTableCache(rdb, cfg.TableCacheTTL)
			log.Println("Table cache enabled")
		}
	}

	var pub service.Publisher
	if cfg.AMQPURL != "" {
		p, err := queue.NewPublisher(cfg.AMQPURL, cfg.EventsExchange)
		if err != nil {
			log.Printf("WARN: rabbitmq unavailable, event publishing disabled: %v", err)
		} else {
			defer p.Close()
			pub = p
			log.Printf("Publishing session events to exchange %q", cfg.EventsExchange)
		}
	}

	events := service.NewEventRecorder(queries, hub, pub)
	floor := service.NewFloorService(pool, service.DefaultStore, events, tables)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, queries, floor, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
