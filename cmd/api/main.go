package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"reseller-portal/internal/config"
	"reseller-portal/internal/db"
	"reseller-portal/internal/httpserver"
	billingrepo "reseller-portal/internal/repository/billing"
	cartslotrepo "reseller-portal/internal/repository/cartslot"
	catalogrepo "reseller-portal/internal/repository/catalog"
	orderrepo "reseller-portal/internal/repository/order"
	subscriberrepo "reseller-portal/internal/repository/subscriber"
	tokenrepo "reseller-portal/internal/repository/token"
	userrepo "reseller-portal/internal/repository/user"
	billingsvc "reseller-portal/internal/service/billing"
	catalogsvc "reseller-portal/internal/service/catalog"
	checkoutsvc "reseller-portal/internal/service/checkout"
	identitysvc "reseller-portal/internal/service/identity"
	ordersvc "reseller-portal/internal/service/order"
	subscribersvc "reseller-portal/internal/service/subscriber"
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

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	identityService := identitysvc.New(userrepo.NewPostgres(dbpool), tokenrepo.NewPostgres(dbpool))
	catalogService := catalogsvc.New(catalogRepo)
	checkoutService := checkoutsvc.New(orderRepo)
	orderService := ordersvc.New(orderRepo)
	subscriberService := subscribersvc.New(subscriberrepo.NewPostgres(dbpool))
	billingService := billingsvc.New(billingrepo.NewPostgres(dbpool))

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Identity:    identityService,
		Catalog:     catalogService,
		Checkout:    checkoutService,
		Orders:      orderService,
		Subscribers: subscriberService,
		Billing:     billingService,
		CartSlots:   cartslotrepo.NewPostgres(dbpool),
	}, cfg.CORSAllowOrigins)

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
