package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/cache"
	graphclient "instagram-gateway/infrastructure/clients/graph"
	"instagram-gateway/infrastructure/configuration"
	"instagram-gateway/infrastructure/logger"
	"instagram-gateway/infrastructure/persistence"
	"instagram-gateway/infrastructure/pubsub"
	"instagram-gateway/infrastructure/servicebus"
	httpHandler "instagram-gateway/interfaces/http"
	"instagram-gateway/interfaces/tools"
	"instagram-gateway/server"
	"instagram-gateway/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	tokenStore := InitiateTokenStore()

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without the media cache")
		redisClient = nil
	} else {
		logger.GetLogger().Info("Redis client initialized successfully.")
	}
	mediaCache := cache.NewMediaCache(redisClient)

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without publish notifications")
		pubSubClient = nil
	}
	azServiceBusClient, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without publish notifications")
		azServiceBusClient = nil
	}

	var notifiers []repository.IPublishNotifier
	if pubSubClient != nil {
		notifiers = append(notifiers, pubsub.NewPublishNotifier(pubSubClient, configuration.C.Pubsub.Topic))
	}
	if azServiceBusClient != nil {
		notifiers = append(notifiers, servicebus.NewPublishNotifier(azServiceBusClient, configuration.C.ServiceBus.Queue))
	}

	graphClient := graphclient.NewGraphClient(tokenStore, nil, notifiers...)

	publishingUsecase := usecase.NewPublishingUsecase(graphClient)
	mediaUsecase := usecase.NewMediaUsecaseWithCache(graphClient, mediaCache)
	commentsUsecase := usecase.NewCommentsUsecase(graphClient)
	insightsUsecase := usecase.NewInsightsUsecase(graphClient)
	accountUsecase := usecase.NewAccountUsecaseWithCache(graphClient, mediaCache)
	messagingUsecase := usecase.NewMessagingUsecase(graphClient)

	registry := tools.NewRegistry(&tools.Deps{
		Publishing: publishingUsecase,
		Media:      mediaUsecase,
		Comments:   commentsUsecase,
		Insights:   insightsUsecase,
		Account:    accountUsecase,
		Messaging:  messagingUsecase,
		Graph:      graphClient,
	})
	logger.GetLogger().WithField("tools", len(registry.Names())).Info("Tool registry initialized")

	toolHandler := httpHandler.NewToolHandler(registry)
	authHandler := httpHandler.NewAuthHandler(graphClient, tokenStore)

	router := server.InitiateRouter(toolHandler, authHandler)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateTokenStore picks PostgreSQL when database.psql is configured and
// reachable, otherwise the JSON file store next to the working directory.
func InitiateTokenStore() repository.ITokenStore {
	cfg := configuration.C.Database.Psql
	if cfg.Host != "" && cfg.Name != "" {
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - falling back to the file token store")
		} else {
			if err := persistence.EnsureTokenSchema(db); err != nil {
				logger.GetLogger().WithField("error", err).Error("failed ensuring token schema")
			}
			logger.GetLogger().Info("PostgreSQL token store initialized")
			return persistence.NewTokenRepositoryPg(db)
		}
	}
	store := configuration.C.TokenStore
	return persistence.NewTokenFileStore(store.Dir, store.File)
}
