package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/resumeforge/resume-api/internal/api/handler"
	"github.com/resumeforge/resume-api/internal/api/middleware"
	"github.com/resumeforge/resume-api/internal/core/ports"
	"github.com/resumeforge/resume-api/internal/infrastructure/cache"
	"github.com/resumeforge/resume-api/internal/infrastructure/http/handlers"
)

// Services groups the application services the router exposes.
type Services struct {
	Auth         ports.AuthService
	Resumes      ports.ResumeService
	Projects     ports.ProjectService
	Courses      ports.CourseService
	Skills       ports.SkillService
	Achievements ports.AchievementService
}

// Deps is everything NewRouter needs to build the HTTP surface.
type Deps struct {
	Services  Services
	JWTSecret string
	Logger    zerolog.Logger

	Cache             *cache.Cache
	ListTTL           time.Duration
	InvalidateOnWrite bool

	// Limiter guards the public auth routes; nil disables rate limiting.
	Limiter     middleware.Limiter
	LimiterName string

	CORSOrigins []string
	Readiness   *handlers.ReadinessHandler
	// Registerer and Gatherer back the HTTP metrics; nil means the default
	// Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "resume",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireAuth := middleware.Auth(d.JWTSecret)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Services.Auth)
	var limited []echo.MiddlewareFunc
	if d.Limiter != nil {
		limited = append(limited, middleware.RateLimit(d.Limiter, d.LimiterName, d.Logger))
	}
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/google", authHandler.Google, limited...)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	auth.PUT("/change-password", authHandler.ChangePassword, requireAuth)

	listed := func() []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{middleware.ListQuery(), middleware.Cache(d.Cache, d.ListTTL, middleware.UserScopedKey)}
	}
	collection := func(path string) *echo.Group {
		mw := []echo.MiddlewareFunc{requireAuth}
		if d.InvalidateOnWrite {
			mw = append(mw, middleware.InvalidateCache(d.Cache, "/api"+path))
		}
		return api.Group(path, mw...)
	}

	// --- Resumes ---
	resumes := handler.NewResumeHandler(d.Services.Resumes)
	rg := collection("/resumes")
	rg.GET("", resumes.List, listed()...)
	rg.POST("", resumes.Create)
	rg.GET("/:id", resumes.Get)
	rg.PUT("/:id", resumes.Update)
	rg.DELETE("/:id", resumes.Delete)
	rg.POST("/:id/generate-summary", resumes.GenerateSummary)
	rg.POST("/:id/duplicate", resumes.Duplicate)

	// --- Projects ---
	projects := handler.NewProjectHandler(d.Services.Projects)
	pg := collection("/projects")
	pg.GET("", projects.List, listed()...)
	pg.POST("", projects.Create)
	pg.GET("/:id", projects.Get)
	pg.PUT("/:id", projects.Update)
	pg.DELETE("/:id", projects.Delete)

	// --- Courses ---
	courses := handler.NewCourseHandler(d.Services.Courses)
	cg := collection("/courses")
	cg.GET("", courses.List, listed()...)
	cg.POST("", courses.Create)
	cg.GET("/:id", courses.Get)
	cg.PUT("/:id", courses.Update)
	cg.DELETE("/:id", courses.Delete)
	cg.PATCH("/:id/progress", courses.UpdateProgress)

	// --- Skills ---
	skills := handler.NewSkillHandler(d.Services.Skills)
	sg := collection("/skills")
	sg.GET("/grouped", skills.Grouped, middleware.Cache(d.Cache, 0, middleware.UserScopedKey))
	sg.GET("", skills.List, listed()...)
	sg.POST("", skills.Create)
	sg.GET("/:id", skills.Get)
	sg.PUT("/:id", skills.Update)
	sg.DELETE("/:id", skills.Delete)

	// --- Achievements ---
	achievements := handler.NewAchievementHandler(d.Services.Achievements)
	ag := collection("/achievements")
	ag.GET("", achievements.List, listed()...)
	ag.POST("", achievements.Create)
	ag.GET("/:id", achievements.Get)
	ag.PUT("/:id", achievements.Update)
	ag.DELETE("/:id", achievements.Delete)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Str("user_id", middleware.UserID(c)).
				Msg("request")
			return nil
		},
	})
}
