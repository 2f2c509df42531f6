package container

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/joshua-takyi/eventhub/internal/config"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/middleware"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
	"github.com/robfig/cron/v3"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Renderer *views.Renderer
	Cookies  *session.Cookies
	Verifier *helpers.TokenVerifier
	Limiter  *middleware.RateLimiter
	// Scheduler runs housekeeping jobs; started and stopped by main.
	Scheduler *cron.Cron

	UserService      *services.UserService
	EventService     *services.EventService
	RSVPService      *services.RSVPService
	DashboardService *services.DashboardService
}

// NewContainer creates a new dependency injection container. jwks may be nil.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	client *http.Client,
	jwks *keyfunc.JWKS,
) (*Container, error) {
	renderer, err := views.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// One repo serves every upstream resource.
	api := models.NewAPIRepo(client, cfg.APIURL)

	limiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRatePerMinute)
	scheduler := cron.New()
	if err := limiter.Schedule(scheduler); err != nil {
		return nil, fmt.Errorf("failed to schedule limiter cleanup: %w", err)
	}

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Renderer:         renderer,
		Cookies:          session.NewCookies(cfg.CookieSecure),
		Verifier:         helpers.NewTokenVerifier(jwks),
		Limiter:          limiter,
		Scheduler:        scheduler,
		UserService:      services.NewUserService(api),
		EventService:     services.NewEventService(api, api),
		RSVPService:      services.NewRSVPService(api, api),
		DashboardService: services.NewDashboardService(api),
	}, nil
}
