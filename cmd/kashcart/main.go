package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	zlog "github.com/rs/zerolog/log"

	"github.com/tanzeelaayaz69/kashcart/internal/account"
	"github.com/tanzeelaayaz69/kashcart/internal/cart"
	"github.com/tanzeelaayaz69/kashcart/internal/catalog"
	"github.com/tanzeelaayaz69/kashcart/internal/checkout"
	"github.com/tanzeelaayaz69/kashcart/internal/events"
	h "github.com/tanzeelaayaz69/kashcart/internal/http"
	"github.com/tanzeelaayaz69/kashcart/internal/logger"
	"github.com/tanzeelaayaz69/kashcart/internal/order"
	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

func main() {
	log := logger.New(os.Stdout, getEnv("LOG_LEVEL", "info"))
	zlog.Logger = log

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	seed, err := loadSeed(cfg.CatalogSeedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog seed")
	}
	cat, err := catalog.New(seed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build catalog")
	}
	log.Info().Int("products", len(cat.Products())).Int("marts", len(cat.Marts())).Msg("catalog loaded")

	store, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.Storage.Driver).Dur("latency", cfg.Storage.Latency).Msg("storage ready")

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers...)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("publishing events to kafka")
	} else {
		publisher = events.NewLogPublisher(log)
	}
	defer publisher.Close()

	clock := clockwork.NewRealClock()
	sessions := cart.NewSessions(cat, cfg.CartIdleTTL, clock, log)
	defer sessions.Close()

	orders := order.NewService(order.NewStoreRepository(store), cat, clock, log)
	accounts := account.NewService(store, log)
	checkoutSvc := checkout.NewService(orders, checkout.NewSimulatedGateway(cfg.PaymentDeclinePercent), publisher, order.DefaultFees(), log)

	handler := h.NewRouter(h.Deps{
		Catalog:          cat,
		Sessions:         sessions,
		Orders:           orders,
		Accounts:         accounts,
		Checkout:         checkoutSvc,
		Log:              log,
		Clock:            clock,
		RequestTimeout:   cfg.RequestTimeout,
		TrackingInterval: cfg.TrackingInterval,
		RiderInterval:    cfg.RiderInterval,
		RateLimitRPS:     cfg.RateLimitRPS,
	})

	// no WriteTimeout: tracking streams stay open until the last step
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("KashCart API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func loadSeed(path string) (catalog.Seed, error) {
	if path == "" {
		return catalog.DefaultSeed()
	}
	return catalog.LoadSeedFile(path)
}
