// @title           Resume Builder API
// @version         1.0
// @description     REST API for building resumes from projects, courses, skills and achievements.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/resumeforge/resume-api/docs"
	"github.com/resumeforge/resume-api/internal/api"
	"github.com/resumeforge/resume-api/internal/api/metrics"
	"github.com/resumeforge/resume-api/internal/api/middleware"
	"github.com/resumeforge/resume-api/internal/core/ports"
	"github.com/resumeforge/resume-api/internal/core/service"
	"github.com/resumeforge/resume-api/internal/infrastructure/cache"
	mongodb "github.com/resumeforge/resume-api/internal/infrastructure/db/mongo"
	redisdb "github.com/resumeforge/resume-api/internal/infrastructure/db/redis"
	"github.com/resumeforge/resume-api/internal/infrastructure/http/handlers"
	"github.com/resumeforge/resume-api/internal/infrastructure/oidc"
	"github.com/resumeforge/resume-api/internal/pkg/config"
	"github.com/resumeforge/resume-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "resume-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
		Attempts: cfg.Mongo.Attempts,
	}, logger.Component("mongo"))
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(db)
	resumes := mongodb.NewResumeRepository(db)
	projects := mongodb.NewProjectRepository(db)
	courses := mongodb.NewCourseRepository(db)
	skills := mongodb.NewSkillRepository(db)
	achievements := mongodb.NewAchievementRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, resumes, projects, courses, skills, achievements); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger.Component("redis"))
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var google ports.GoogleVerifier
	if cfg.GoogleClientID != "" {
		v, err := oidc.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			return err
		}
		google = v
	} else {
		log.Info().Msg("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	sanitizer := service.NewTextSanitizer()
	services := api.Services{
		Auth:         service.NewAuthService(users, google, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth")),
		Resumes:      service.NewResumeService(resumes, sanitizer, logger.Component("resumes")),
		Projects:     service.NewProjectService(projects, sanitizer, logger.Component("projects")),
		Courses:      service.NewCourseService(courses, sanitizer, logger.Component("courses")),
		Skills:       service.NewSkillService(skills, sanitizer, logger.Component("skills")),
		Achievements: service.NewAchievementService(achievements, sanitizer, logger.Component("achievements")),
	}

	var responses *cache.Cache
	responses = cache.New(cache.Options{
		DefaultTTL:    cfg.Cache.DefaultTTL,
		SweepInterval: cfg.Cache.SweepInterval,
		Logger:        logger.Component("cache"),
		OnSweep: func(removed int) {
			metrics.CacheEvictionsTotal.WithLabelValues("sweep").Add(float64(removed))
			metrics.CacheEntries.Set(float64(responses.Len()))
		},
	})
	responses.Start(ctx)
	defer responses.Stop()

	limiter, limiterName := newLimiter(cfg, rdb)
	if mem, ok := limiter.(*middleware.MemoryLimiter); ok {
		mem.Start(ctx, cfg.RateLimit.Window, logger.Component("ratelimit"))
		defer mem.Stop()
	}

	e := api.NewRouter(api.Deps{
		Services:          services,
		JWTSecret:         cfg.JWTSecret,
		Logger:            logger.Component("http"),
		Cache:             responses,
		ListTTL:           cfg.Cache.ListTTL,
		InvalidateOnWrite: cfg.Cache.InvalidateOnWrite,
		Limiter:           limiter,
		LimiterName:       limiterName,
		CORSOrigins:       cfg.CORSOrigins,
		Readiness: handlers.NewReadinessHandler(map[string]handlers.Check{
			"mongo": handlers.MongoCheck(db),
			"redis": handlers.RedisCheck(rdb),
		}, responses.Len),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("rate_limiter", limiterName).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLimiter prefers the shared Redis window so limits hold across replicas.
func newLimiter(cfg *config.Config, rdb *redis.Client) (middleware.Limiter, string) {
	if !cfg.RateLimit.Enabled {
		return nil, ""
	}
	if rdb != nil {
		limit := int(cfg.RateLimit.RPS*cfg.RateLimit.Window.Seconds()) + cfg.RateLimit.Burst
		return redisdb.NewFixedWindowLimiter(rdb, limit, cfg.RateLimit.Window), "redis"
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst), "memory"
}
