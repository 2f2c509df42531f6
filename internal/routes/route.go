package routes

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/eventhub/internal/container"
	"github.com/joshua-takyi/eventhub/internal/handlers"
	"github.com/joshua-takyi/eventhub/internal/middleware"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) (*gin.Engine, error) {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// form bindings use the same closed-set validators as the services
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	ck := container.Cookies
	logger := container.Logger

	r := gin.New()
	r.HTMLRender = container.Renderer
	r.Use(cors.New(corsConfig(container.Config.AllowedOrigins)))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler(logger, ck))
	r.Use(middleware.Recovery(logger, ck))

	r.StaticFS("/static", views.Static())
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessionMW := middleware.Session(container.UserService, container.Verifier, ck, logger)
	limit := middleware.RateLimit(container.Limiter, ck)

	site := r.Group("/")
	site.Use(sessionMW)
	{
		site.GET("/", handlers.Home(container.EventService, ck))
		site.GET("/events", handlers.ListEvents(container.EventService, ck))
		site.GET("/events/:id", handlers.EventDetail(container.EventService, ck))
		site.GET("/events/:id/calendar.ics", handlers.EventCalendar(container.EventService, ck))
		site.GET("/events/:id/qr.png", handlers.EventQR())
		site.POST("/theme", handlers.ToggleTheme(ck))
		site.POST("/logout", handlers.Logout(ck))
	}

	guest := site.Group("/")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("/login", handlers.LoginPage(ck))
		guest.POST("/login", limit, handlers.Login(container.UserService, container.Verifier, ck))
		guest.GET("/register", handlers.RegisterPage(ck))
		guest.POST("/register", limit, handlers.Register(container.UserService, container.Verifier, ck))
	}

	protected := site.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/create-event", handlers.NewEventForm(ck))
		protected.POST("/create-event", handlers.CreateEvent(container.EventService, ck))
		protected.GET("/events/:id/edit", handlers.EditEventForm(container.EventService, ck))
		protected.POST("/events/:id/edit", handlers.UpdateEvent(container.EventService, ck))
		protected.POST("/events/:id/delete", handlers.DeleteEvent(container.EventService, ck))
		protected.POST("/events/:id/rsvp", handlers.ToggleRSVP(container.RSVPService, ck))
		protected.GET("/dashboard", handlers.Dashboard(container.DashboardService, ck))
		protected.GET("/profile", handlers.Profile(ck))
		protected.POST("/profile", handlers.UpdateProfile(container.UserService, ck))
	}

	api := site.Group(middleware.APIPrefix)
	{
		api.GET("/events", handlers.ListEventsJSON(container.EventService))
		api.POST("/password-strength", handlers.PasswordStrength())
		api.POST("/events/:id/rsvp", middleware.RequireAuth(), handlers.ToggleRSVPJSON(container.RSVPService))
		api.DELETE("/events/:id", middleware.RequireAuth(), handlers.DeleteEventJSON(container.EventService))
	}

	r.NoRoute(sessionMW, handlers.NotFound(ck))

	return r, nil
}
