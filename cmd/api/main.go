package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nanokusa/go-shop-catalog/internal/cart"
	"github.com/nanokusa/go-shop-catalog/internal/catalog"
	"github.com/nanokusa/go-shop-catalog/internal/checkout"
	"github.com/nanokusa/go-shop-catalog/internal/config"
	"github.com/nanokusa/go-shop-catalog/internal/events"
	"github.com/nanokusa/go-shop-catalog/internal/httpx"
	kafkax "github.com/nanokusa/go-shop-catalog/internal/kafka"
	"github.com/nanokusa/go-shop-catalog/internal/logger"
	"github.com/nanokusa/go-shop-catalog/internal/postgres"
	"github.com/nanokusa/go-shop-catalog/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		lg.Fatal("db connect", "err", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	cartProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicCartUpdated, 1024)
	cartProd.Start(ctx)
	checkoutProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicCheckout, 1024)
	checkoutProd.Start(ctx)

	// Services over their stores
	catalogSvc := catalog.NewService(catalog.NewPGStore(db), lg.With("component", "catalog"))
	cartSvc := cart.NewService(cart.NewPGStore(db), lg.With("component", "cart"))
	checkoutSvc := checkout.NewService(checkout.NewPGStore(db), checkout.DefaultFee, lg.With("component", "checkout"))

	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Catalog: catalogSvc, Redis: rdb}).Register(router)
	(&httpx.CartsHandler{Carts: cartSvc, Producer: cartProd, Service: cfg.ServiceName, Log: lg}).Register(router)
	(&httpx.CheckoutsHandler{Checkouts: checkoutSvc, Producer: checkoutProd, Service: cfg.ServiceName}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		lg.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("listen", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	lg.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel() // stop producer loops; they flush what is queued
	cartProd.WaitClosed()
	checkoutProd.WaitClosed()
}
