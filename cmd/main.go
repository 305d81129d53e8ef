package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"acme_reviews/internal/config"
	"acme_reviews/internal/handlers"
	"acme_reviews/internal/logger"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
	"acme_reviews/internal/repository/db"
	"acme_reviews/internal/server"
	"acme_reviews/internal/service"

	"github.com/gin-gonic/gin"
)

// @title                       Acme Reviews API
// @version                     1.0
// @description                 Product reviews with owner-only edits.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// logger settings come from the config, so this one goes to a default logger
		logger.New(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	log := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.Path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer func() { _ = log.Sync() }()
	log.Infow("config loaded", cfg.LogFields()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open DB and apply migrations
	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	seedCatalog(ctx, services, cfg.Catalog.SeedItems, log)

	gin.SetMode(cfg.GinMode)
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithCORS(cfg.CORS.AllowedOrigins),
		handlers.WithAuthRateLimit(cfg.RateLimit.AuthPerMinute),
		handlers.WithTrustedProxies(cfg.HTTP.TrustedProxies),
	)

	// start HTTP server
	srv := &server.Server{}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Port, apiHandler.InitRoutes(), server.Timeouts{
			ReadHeader: cfg.HTTP.ReadHeaderTimeout,
			Write:      cfg.HTTP.WriteTimeout,
			Idle:       cfg.HTTP.IdleTimeout,
		})
	}()
	log.Infow("server started", "port", cfg.Port)

	// graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("server stopped", "err", err)
		}
		return
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

// seedCatalog fills an empty catalog from config; failures are logged, not fatal.
func seedCatalog(ctx context.Context, services *service.Service, seed []config.SeedItem, log *logger.Logger) {
	if len(seed) == 0 {
		return
	}
	items := make([]models.Item, 0, len(seed))
	for _, s := range seed {
		items = append(items, models.Item{Name: s.Name, Description: s.Description})
	}
	n, err := services.SeedIfEmpty(ctx, items)
	if err != nil {
		log.Errorw("catalog_seed_failed", "err", err)
		return
	}
	if n > 0 {
		log.Infow("catalog seeded", "items", n)
	}
}
