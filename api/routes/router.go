package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jalvarado-dev/memberhub-backend/api/controllers"
	"github.com/jalvarado-dev/memberhub-backend/api/middleware"
	"github.com/jalvarado-dev/memberhub-backend/internal/auth"
	"github.com/jalvarado-dev/memberhub-backend/internal/chat"
	"github.com/jalvarado-dev/memberhub-backend/internal/checkin"
	"github.com/jalvarado-dev/memberhub-backend/internal/events"
	"github.com/jalvarado-dev/memberhub-backend/internal/feedback"
	"github.com/jalvarado-dev/memberhub-backend/internal/leaderboard"
	"github.com/jalvarado-dev/memberhub-backend/internal/users"
	"github.com/jalvarado-dev/memberhub-backend/pkg/auth/session"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
	"github.com/jalvarado-dev/memberhub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	authService auth.Service,
	usersService users.Service,
	eventsService events.Service,
	checkinService checkin.Service,
	leaderboardService leaderboard.Service,
	feedbackService feedback.Service,
	chatService chat.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Post("/chat", controllers.PublicChat(chatService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.Register(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))
		r.Post("/refresh", controllers.Refresh(authService, logg))
		r.Post("/logout", controllers.Logout(authService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.ListEvents(eventsService, logg))
			r.Get("/{eventId}", controllers.GetEvent(eventsService, logg))
			r.Post("/{eventId}/checkin", controllers.CheckIn(checkinService, logg))
		})

		r.Get("/leaderboard", controllers.Leaderboard(leaderboardService, logg))

		r.Route("/members/me", func(r chi.Router) {
			r.Get("/", controllers.Me(usersService, logg))
			r.Patch("/", controllers.UpdateMe(usersService, logg))
			r.Get("/checkins", controllers.MyCheckins(checkinService, logg))
		})

		r.Post("/feedback", controllers.CreateFeedback(feedbackService, logg))
		r.Post("/chat", controllers.Chat(chatService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.ListMembers(usersService, logg))
			r.Patch("/{memberId}", controllers.UpdateMember(usersService, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", controllers.CreateEvent(eventsService, logg))
			r.Get("/{eventId}", controllers.GetAdminEvent(eventsService, logg))
			r.Patch("/{eventId}", controllers.UpdateEvent(eventsService, logg))
			r.Delete("/{eventId}", controllers.DeleteEvent(eventsService, logg))
			r.Post("/{eventId}/code/generate", controllers.GenerateEventCode(eventsService, logg))
			r.Post("/{eventId}/code/expire", controllers.ExpireEventCode(eventsService, logg))
			r.Post("/{eventId}/checkin/manual", controllers.ManualCheckIn(checkinService, logg))
			r.Get("/{eventId}/attendance", controllers.EventAttendance(checkinService, logg))
		})

		r.Get("/feedback", controllers.ListFeedback(feedbackService, logg))
	})

	return r
}
