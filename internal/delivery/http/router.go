package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

// RouterDeps groups what NewRouter needs to build the route table.
type RouterDeps struct {
	Logger         *slog.Logger
	Gate           domain.AdmissionGate
	AllowedOrigins []string

	RSVP   *controllers.RSVPController
	Stats  *controllers.StatsController
	Events *controllers.EventController
	Auth   *controllers.AuthController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and
// wraps it with CORS, request logging and metrics.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	public := middleware.RequireAdmission(d.Gate, domain.Public, d.Logger)
	adminOnly := middleware.RequireAdmission(d.Gate, domain.AdminOnly, d.Logger)

	// RSVP
	mux.HandleFunc("POST /rsvp", public(d.RSVP.CreateRSVP))
	mux.HandleFunc("GET /stats/{eventID}", adminOnly(d.Stats.GetCounts))
	mux.HandleFunc("GET /attendees/{eventID}", adminOnly(d.Stats.ListAttendees))

	// Events catalog
	mux.HandleFunc("POST /events", adminOnly(d.Events.CreateEvent))
	mux.HandleFunc("GET /events", public(d.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", public(d.Events.GetEvent))
	mux.HandleFunc("GET /event/{eventID}", public(d.Events.GetEvent))

	// Auth
	mux.HandleFunc("POST /auth/register", d.Auth.Register)
	mux.HandleFunc("POST /auth/login", d.Auth.Login)

	// Operations
	mux.HandleFunc("GET /healthz", d.Health.Healthz)
	mux.HandleFunc("GET /readyz", d.Health.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(d.AllowedOrigins, middleware.LoggingMiddleware(d.Logger, metrics.HTTPMiddleware(mux)))
}
