package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/easybody/easybody-backend/api"
	"github.com/easybody/easybody-backend/api/routes"
	"github.com/easybody/easybody-backend/internal/associations"
	"github.com/easybody/easybody-backend/internal/gyms"
	"github.com/easybody/easybody-backend/internal/media"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/internal/ptusers"
	"github.com/easybody/easybody-backend/internal/ratings"
	"github.com/easybody/easybody-backend/internal/reports"
	"github.com/easybody/easybody-backend/internal/users"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/db"
	"github.com/easybody/easybody-backend/pkg/logger"
	"github.com/easybody/easybody-backend/pkg/metrics"
	"github.com/easybody/easybody-backend/pkg/migrate"
	"github.com/easybody/easybody-backend/pkg/redis"
	"github.com/easybody/easybody-backend/pkg/storage/s3"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	s3Client, err := s3.NewClient(cfg.S3)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	gymsRepo := gyms.NewRepository(gormDB)
	ptRepo := ptusers.NewRepository(gormDB)
	offersRepo := offers.NewRepository(gormDB)
	ratingsRepo := ratings.NewRepository(gormDB)
	associationsRepo := associations.NewRepository(gormDB)
	reportsRepo := reports.NewRepository(gormDB)

	gymsService, err := gyms.NewService(gymsRepo, usersRepo, cfg.Search)
	if err != nil {
		logg.Error(context.Background(), "failed to create gyms service", err)
		os.Exit(1)
	}
	ptService, err := ptusers.NewService(ptRepo, usersRepo, cfg.Search)
	if err != nil {
		logg.Error(context.Background(), "failed to create pt users service", err)
		os.Exit(1)
	}
	offersService, err := offers.NewService(offersRepo, gymsRepo, ptRepo, cfg.Search)
	if err != nil {
		logg.Error(context.Background(), "failed to create offers service", err)
		os.Exit(1)
	}
	ratingsService, err := ratings.NewService(ratingsRepo, usersRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create ratings service", err)
		os.Exit(1)
	}
	associationsService, err := associations.NewService(associationsRepo, gymsRepo, ptRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create associations service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(reportsRepo, offersRepo, usersRepo, redisClient, cfg.ReportLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}
	mediaService, err := media.NewService(s3Client, cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	moderationMetrics := metrics.NewModerationMetrics(registry)

	handler := routes.NewRouter(routes.Deps{
		Config:            cfg,
		Logger:            logg,
		Identity:          usersService,
		DBPinger:          dbClient,
		RedisPinger:       redisClient,
		HTTPMetrics:       httpMetrics,
		ModerationMetrics: moderationMetrics,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Gyms:              gymsService,
		PTUsers:           ptService,
		Offers:            offersService,
		Ratings:           ratingsService,
		Associations:      associationsService,
		Reports:           reportsService,
		Media:             mediaService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, handler)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
