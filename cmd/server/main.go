package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"listings-service/internal/application/services"
	"listings-service/internal/config"
	"listings-service/internal/delivery/handler"
	"listings-service/internal/delivery/routes"
	"listings-service/internal/infrastructure"
	mongodb "listings-service/internal/infrastructure/db/mongo"
	"listings-service/internal/messaging"
)

func main() {
	// Missing .env is fine in production where the environment is injected.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "listings-service").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()
	logger.Info().Str("database", cfg.MongoDBName).Msg("connected to mongodb")

	db := client.Database(cfg.MongoDBName)
	propertyRepo := mongodb.NewPropertyRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	cache := infrastructure.NewCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	defer cache.Close()

	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.NATSUrl != "" {
		natsPublisher, err := messaging.NewNATSPublisher(cfg.NATSUrl, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, events disabled")
		} else {
			publisher = natsPublisher
		}
	}
	defer publisher.Close()

	credentials, err := infrastructure.NewCredentialService(infrastructure.CredentialConfig{
		JWTSecret:   cfg.JWTSecret,
		JWTIssuer:   cfg.JWTIssuer,
		TokenExpiry: cfg.TokenExpiry,
		BcryptCost:  cfg.BcryptCost,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid credential configuration")
	}

	mailer := infrastructure.NewVerificationService(cfg.SendGridAPIKey, cfg.SenderName, cfg.SenderEmail, logger)
	loginLimiter := infrastructure.NewRateLimiter(cfg.LoginRateWindow, cfg.LoginRateBurst)
	emailLimiter := infrastructure.NewRateLimiter(cfg.EmailRateWindow, cfg.EmailRateBurst)

	authService := services.NewAuthService(userRepo, credentials, mailer, cache, cache, loginLimiter, emailLimiter, logger)
	propertyService := services.NewPropertyService(propertyRepo, userRepo, cache, publisher, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))

	routes.Register(
		e,
		handler.NewAuthHandler(authService, logger),
		handler.NewPropertyHandler(propertyService, logger),
		credentials,
	)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil {
			logger.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
