package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jalvarado-dev/memberhub-backend/api/routes"
	"github.com/jalvarado-dev/memberhub-backend/internal/auth"
	"github.com/jalvarado-dev/memberhub-backend/internal/chat"
	"github.com/jalvarado-dev/memberhub-backend/internal/checkin"
	"github.com/jalvarado-dev/memberhub-backend/internal/events"
	"github.com/jalvarado-dev/memberhub-backend/internal/feedback"
	"github.com/jalvarado-dev/memberhub-backend/internal/leaderboard"
	"github.com/jalvarado-dev/memberhub-backend/internal/points"
	"github.com/jalvarado-dev/memberhub-backend/internal/users"
	"github.com/jalvarado-dev/memberhub-backend/pkg/auth/session"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
	"github.com/jalvarado-dev/memberhub-backend/pkg/metrics"
	"github.com/jalvarado-dev/memberhub-backend/pkg/migrate"
	"github.com/jalvarado-dev/memberhub-backend/pkg/openai"
	"github.com/jalvarado-dev/memberhub-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	pointsRepo := points.NewRepository(dbClient.DB())
	eventsRepo := events.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo:   usersRepo,
		Points: pointsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	eventsService, err := events.NewService(events.ServiceParams{
		Repo:          eventsRepo,
		CheckinConfig: cfg.Checkin,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	checkinService, err := checkin.NewService(checkin.ServiceParams{
		Ledger:        checkin.NewRepository(dbClient),
		Events:        eventsRepo,
		CheckinConfig: cfg.Checkin,
		Metrics:       metrics.NewCheckinMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkin service", err)
		os.Exit(1)
	}

	leaderboardService, err := leaderboard.NewService(leaderboard.ServiceParams{
		Repo: leaderboard.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create leaderboard service", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.ServiceParams{
		Repo: feedback.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	chatParams := chat.ServiceParams{
		Logs:       chat.NewRepository(dbClient.DB()),
		Logger:     logg,
		ChatConfig: cfg.Chat,
	}
	if cfg.OpenAI.APIKey != "" {
		completer, err := openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithTimeout(cfg.Chat.UpstreamTimeout),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create openai client", err)
			os.Exit(1)
		}
		chatParams.Completer = completer
	} else {
		logg.Warn(context.Background(), "openai api key not set, assistant runs on canned replies")
	}
	chatService, err := chat.NewService(chatParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			authService,
			usersService,
			eventsService,
			checkinService,
			leaderboardService,
			feedbackService,
			chatService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
