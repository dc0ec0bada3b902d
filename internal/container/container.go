package container

import (
	"context"
	"fmt"

	"mirage-api/internal/config"
	"mirage-api/internal/middleware"
	"mirage-api/internal/repository"
	"mirage-api/internal/service"
	"mirage-api/pkg/database"
	"mirage-api/pkg/logger"
	"mirage-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client

	Questions repository.QuestionStore
	Teams     repository.TeamStore

	Index   *service.GeoIndex
	Answers *service.AnswerService
	Targets *service.TargetService

	Perf *middleware.PerfMonitor
}

// New creates a new dependency injection container. Postgres is required;
// Redis is optional and its absence only costs the fast path.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	questions := repository.NewQuestionRepository(db)
	teams := repository.NewTeamRepository(db)

	index := service.NewGeoIndex(questions, log)
	cache := service.NewTeamCache(redisClient, log)
	answers := service.NewAnswerService(
		index, teams, questions, cache, log,
		cfg.AnswerRadiusM, cfg.PointDecay, cfg.PointFloor, cfg.HintWindow, cfg.StoreTimeout,
	)
	targets := service.NewTargetService(index, cfg.AnswerRadiusM)

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Questions:   questions,
		Teams:       teams,
		Index:       index,
		Answers:     answers,
		Targets:     targets,
		Perf:        middleware.NewPerfMonitor(),
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// Cleanup releases held connections. Safe to call once during shutdown.
func (c *Container) Cleanup() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
