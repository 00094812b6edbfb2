// main.go
package main

import (
	"context"
	"log"

	"field-booking/cmd"
	"field-booking/internal/data/repository"
	"field-booking/internal/wire"
	"field-booking/pkg/database"
	"field-booking/pkg/mq"
	"field-booking/pkg/obs"
	"field-booking/pkg/ratelimit"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("env", config.App.Env),
		zap.Bool("debug", config.App.Debug),
	)

	// Tracing
	shutdownTracer, err := obs.InitTracer(ctx, config.App.Name, config.App.Env, config.Tracing.Endpoint)
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer shutdownTracer(context.Background())
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	opts := wire.Options{
		Publisher: connectPublisher(config, logger),
	}
	defer opts.Publisher.Close()

	if config.Redis.Addr != "" {
		client, err := ratelimit.ConnectRedis(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, using in-process rate limiter", zap.Error(err))
		} else {
			defer client.Close()
			opts.AuthLimiter = ratelimit.NewRedis(client, "ratelimit:auth:", config.RateLimit.Limit, config.RateLimit.Window)
		}
	}

	// Wire all dependencies
	app := wire.Wiring(repos, opts, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

func connectPublisher(config *utils.Config, logger *zap.Logger) mq.Publisher {
	if config.Rabbit.URL == "" {
		return mq.NopPublisher{}
	}

	pub, err := mq.NewRabbitPublisher(config.Rabbit.URL, config.Rabbit.Exchange)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, events will not be published", zap.Error(err))
		return mq.NopPublisher{}
	}

	logger.Info("Publishing events", zap.String("exchange", config.Rabbit.Exchange))
	return pub
}
