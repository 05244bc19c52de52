package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"venueops/internal/cache"
	"venueops/internal/config"
	"venueops/internal/database"
	"venueops/internal/middleware"
	"venueops/internal/modules/auth"
	"venueops/internal/modules/live"
	"venueops/internal/modules/schedule"
	jwtsvc "venueops/internal/pkg/jwt"
	"venueops/internal/repository"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("cannot load config: %s", err)
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("db connection failed: %s", err)
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %s", err)
	}

	scheduleRepo := repository.NewScheduleRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	dayCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	hub := live.NewHub()

	authService := auth.NewService(cfg.ManagerLogin, cfg.ManagerPasswordHash, j)
	authHandler := auth.NewHandler(authService)

	var scheduleService *schedule.Service
	if dayCache != nil {
		scheduleService = schedule.NewService(scheduleRepo, resourceRepo, dayCache, hub)
	} else {
		scheduleService = schedule.NewService(scheduleRepo, resourceRepo, nil, hub)
	}
	scheduleHandler := schedule.NewHandler(scheduleService)
	liveHandler := live.NewHandler(hub)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		liveHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))

		scheduleHandler.RegisterRoutes(v1, protected)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server error: %s", err)
		}
	}()
	logrus.WithField("addr", cfg.HTTPAddr).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown error: %s", err)
	}
}
