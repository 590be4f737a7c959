package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockorders/internal/config"
	"stockorders/internal/db"
	"stockorders/internal/httpserver"
	"stockorders/internal/notify"
	addrrepo "stockorders/internal/repository/address"
	customerrepo "stockorders/internal/repository/customer"
	orderrepo "stockorders/internal/repository/order"
	stockrepo "stockorders/internal/repository/stock"
	tokenrepo "stockorders/internal/repository/token"
	customersvc "stockorders/internal/service/customer"
	ordersvc "stockorders/internal/service/order"
	reportsvc "stockorders/internal/service/report"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	addressRepo := addrrepo.NewPostgres(dbpool, logger)
	stockRepo := stockrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	hub := notify.NewHub(logger)
	customerService := customersvc.New(customerRepo, addressRepo, tokenRepo)
	orderService := ordersvc.New(orderRepo, customerRepo, addressRepo, stockRepo, hub)
	reportService := reportsvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc: customerService,
		OrderSvc:    orderService,
		ReportSvc:   reportService,
		Stocks:      stockRepo,
		Hub:         hub,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
