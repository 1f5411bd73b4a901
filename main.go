// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"flight-booking/cmd"
	"flight-booking/internal/client"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/usecase"
	"flight-booking/internal/wire"
	"flight-booking/pkg/broker"
	"flight-booking/pkg/cache"
	"flight-booking/pkg/database"
	"flight-booking/pkg/mailer"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("mode", config.App.Mode),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.App.Mode == utils.ModeNotifier {
		runNotifier(ctx, config, logger)
		return
	}
	runAPI(ctx, config, logger)
}

func runAPI(ctx context.Context, config *utils.Config, logger *zap.Logger) {
	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	// Seat map cache, Redis when enabled
	var seatCache cache.Cache = cache.NewNoOpCache()
	if config.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, seat map cache disabled", zap.Error(err), zap.String("addr", config.Redis.Addr))
		} else {
			seatCache = redisCache
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}
	defer seatCache.Close()

	// Publisher dials lazily on the first event
	publisher := broker.NewPublisher(config.Broker, broker.AMQPDialer{}, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close publisher", zap.Error(err))
		}
	}()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, usecase.Deps{
		Cache:     seatCache,
		Seats:     client.NewFlightClient(config.FlightService, logger),
		Publisher: publisher,
		Mailer:    mailer.New(config.Email, logger),
	})

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

func runNotifier(ctx context.Context, config *utils.Config, logger *zap.Logger) {
	notifications := usecase.NewNotificationService(mailer.New(config.Email, logger), logger)
	consumer := broker.NewConsumer(config.Broker, broker.AMQPDialer{}, logger)

	if err := cmd.Notifier(ctx, consumer, notifications, logger); err != nil {
		logger.Error("Notifier stopped", zap.Error(err))
	}
}
