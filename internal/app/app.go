package app

import (
	"context"
	"fmt"
	"time"

	_ "github.com/DIMO-Network/messenger-maintenance-bot/docs" // Import Swagger docs
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/clients/graph"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/config"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/controllers/admin"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/controllers/webhook"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/db/migrations"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/broadcaster"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/notifiedstore"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/responder"
	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CreateServers connects the notified store and the Graph API client and
// builds the web app around them.
func CreateServers(ctx context.Context, settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	store, err := createStore(ctx, settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notified store: %w", err)
	}

	graphClient, err := graph.New(settings.GraphAPIURL, settings.PageAccessToken, settings.GraphAPITimeout, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph client: %w", err)
	}
	if !graphClient.HasAccessToken() {
		logger.Warn().Msg("PAGE_ACCESS_TOKEN is not set, replies and broadcasts will not be delivered")
	}

	app, err := CreateFiberApp(logger, settings, store, graphClient, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create fiber app: %w", err)
	}
	return app, nil
}

// CreateFiberApp sets up the webhook and admin routes. The maintenance window
// runs for MaintenanceDuration from startedAt.
func CreateFiberApp(logger zerolog.Logger, settings *config.Settings, store notifiedstore.Store,
	graphClient *graph.Client, startedAt time.Time) (*fiber.App, error) {
	logger.Info().Msg("Starting Messenger maintenance bot...")

	policy, err := responder.ParsePolicy(settings.ReplyPolicy)
	if err != nil {
		return nil, err
	}
	var button *graph.Button
	if settings.ContactURL != "" {
		button = &graph.Button{
			Type:  graph.ButtonTypeWebURL,
			URL:   settings.ContactURL,
			Title: settings.ContactTitle,
		}
	}
	notices := responder.Notices{
		Long:   settings.LongNotice,
		Short:  settings.ShortNotice,
		Prompt: settings.ContactPrompt,
		Button: button,
	}
	resp := responder.New(store, graphClient, policy, notices, logger)
	bcast := broadcaster.New(graphClient, graphClient, store, resp.Announcement, broadcaster.Config{
		PageID:      settings.PageID,
		PageLimit:   settings.BroadcastPageLimit,
		MaxPages:    settings.BroadcastMaxPages,
		Concurrency: settings.BroadcastConcurrency,
		RatePerSec:  settings.BroadcastRatePerSec,
	}, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	webhookController := webhook.NewWebhookController(settings.VerifyToken, resp)
	logger.Info().Msg("Registering routes...")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": "Server is up and running",
		})
	})

	// Messenger webhook
	app.Get("/", webhookController.Verify)
	app.Post("/", webhook.SignatureMiddleware(settings.AppSecret), webhookController.Receive)

	if settings.AdminToken == "" {
		logger.Warn().Msg("ADMIN_TOKEN is not set, status, reset and broadcast routes are disabled")
		return app, nil
	}
	adminController := admin.NewAdminController(store, bcast, admin.Info{
		ReplyPolicy:       string(policy),
		MaintenanceEndsAt: startedAt.Add(settings.MaintenanceDuration),
		PageAccessToken:   settings.PageAccessToken,
		VerifyToken:       settings.VerifyToken,
	})
	adminAuth := admin.TokenMiddleware(settings.AdminToken)
	app.Get("/status", adminAuth, adminController.Status)
	app.Get("/broadcast", adminAuth, adminController.Broadcast)
	app.Get("/reset", adminAuth, adminController.Reset)
	app.Post("/reset", adminAuth, adminController.Reset)

	return app, nil
}

func createStore(ctx context.Context, settings *config.Settings, logger zerolog.Logger) (notifiedstore.Store, error) {
	switch settings.NotifiedStore {
	case config.StorePostgres:
		if err := migrations.RunGoose(ctx, []string{"up"}, settings.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		conn, err := migrations.Open(ctx, settings.DB)
		if err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			_ = conn.Close()
		}()
		logger.Info().Str("host", settings.DB.Host).Msg("Using postgres notified store")
		return notifiedstore.NewPostgresStore(conn), nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		go func() {
			<-ctx.Done()
			_ = client.Close()
		}()
		logger.Info().Str("addr", settings.RedisAddr).Msg("Using redis notified store")
		return notifiedstore.NewRedisStore(client, settings.RedisKey), nil
	default:
		logger.Info().Msg("Using in-memory notified store, state is lost on restart")
		return notifiedstore.NewMemoryStore(), nil
	}
}
