package main

import (
	"context"
	"log"
	"time"

	"travel-agency/cmd"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/usecase"
	"travel-agency/internal/wire"
	"travel-agency/pkg/broker"
	"travel-agency/pkg/database"
	"travel-agency/pkg/genai"
	"travel-agency/pkg/mailer"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Outbound adapters
	deps := usecase.Deps{
		Mailer: newMailer(config, logger),
		Events: newPublisher(config, logger),
		Chat: genai.NewClient(genai.Config{
			APIKey:  config.GenAI.APIKey,
			Model:   config.GenAI.Model,
			BaseURL: config.GenAI.BaseURL,
		}),
	}
	defer deps.Events.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, db, config, deps, logger)

	// Bootstrap admin account
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
		logger.Error("Failed to ensure admin account", zap.Error(err))
	}
	cancel()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, time.Duration(config.App.ShutdownTimeout)*time.Second, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

func newMailer(config *utils.Config, logger *zap.Logger) mailer.Mailer {
	if config.Email.Host == "" {
		logger.Warn("SMTP not configured, mails are logged only")
		return mailer.NewLogMailer(logger)
	}
	return mailer.NewSMTPMailer(mailer.Config{
		Host:     config.Email.Host,
		Port:     config.Email.Port,
		Username: config.Email.User,
		Password: config.Email.Password,
		From:     config.Email.From,
		FromName: config.App.Name,
	}, logger)
}

func newPublisher(config *utils.Config, logger *zap.Logger) broker.Publisher {
	if config.AMQP.URL == "" {
		logger.Warn("AMQP not configured, reservation events are not published")
		return broker.NewNopPublisher(logger)
	}

	pub, err := broker.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker, events disabled", zap.Error(err))
		return broker.NewNopPublisher(logger)
	}
	return pub
}
