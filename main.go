package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watch-storefront/config"
	"watch-storefront/database"
	routes "watch-storefront/internal/app/http"
	"watch-storefront/internal/app/http/middleware"
	"watch-storefront/internal/infra/cache"
	"watch-storefront/internal/infra/cdn"
	"watch-storefront/internal/infra/events"
	"watch-storefront/internal/infra/mailer"
	"watch-storefront/internal/logging"
	"watch-storefront/internal/metrics"
	"watch-storefront/internal/service"
	"watch-storefront/internal/session"
	"watch-storefront/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.Init(logging.Config(cfg.Log))
	if err != nil {
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	st := store.New(db)
	defer st.Close()

	m := metrics.New()
	opts := []service.Option{service.WithLogger(log), service.WithMetrics(m)}

	if cfg.Redis.Addr != "" {
		pc, err := cache.New(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, product cache disabled", "error", err)
		} else {
			defer pc.Close()
			opts = append(opts, service.WithCache(pc))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		pub := events.NewPublisher(cfg.Kafka, log)
		defer pub.Close()
		opts = append(opts, service.WithEvents(pub))
	}

	if cfg.Cloudinary.Enabled() {
		up, err := cdn.New(cfg.Cloudinary)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithUploader(up))
	} else {
		log.Warn("cloudinary is not configured, image uploads will fail")
	}

	mail := mailer.New(cfg.SMTP)
	if !mail.Configured() {
		log.Warn("smtp credentials missing, contact form will return errors")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), m.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(cfg.CORSOrigin),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:        st,
		Catalog:      service.NewCatalogService(st, opts...),
		Sessions:     session.NewManager(cfg.JWTSecret, cfg.SessionTTL),
		Mailer:       mail,
		Metrics:      m,
		CookieSecure: cfg.CookieSecure,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsOrigins(origin string) []string {
	if origin == "" {
		return []string{"http://localhost:3000"}
	}
	return []string{origin}
}
