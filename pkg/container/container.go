package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"authors-api/internal/config"
	"authors-api/internal/infrastructure/database"
	"authors-api/internal/infrastructure/storage"
	"authors-api/pkg/cache"
	"authors-api/pkg/jwt"

	"authors-api/internal/domains/author"
	authorHandler "authors-api/internal/domains/author/handler"
	authorRepo "authors-api/internal/domains/author/repository"
	authorService "authors-api/internal/domains/author/service"
	"authors-api/internal/domains/book"
	bookHandler "authors-api/internal/domains/book/handler"
	bookRepo "authors-api/internal/domains/book/repository"
	bookService "authors-api/internal/domains/book/service"
	uploadHandler "authors-api/internal/domains/upload/handler"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; no module-level mutable state exists
// anywhere else.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    storage.Storage
	JWTManager *jwt.Manager

	AuthorRepo author.Repository
	BookRepo   book.Repository

	AuthorService author.Service
	BookService   book.Service

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UploadHandler *uploadHandler.UploadHandler
}

// NewContainer initializes the dependency graph in order: config,
// infrastructure, repositories, services, handlers. A failure at any
// step aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	c.DB = db

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		c.Cache = redisCache
		log.Info().Str("host", cfg.Redis.Host).Msg("connected to redis")
	} else {
		c.Cache = cache.NewNoopCache()
	}

	c.Storage, err = buildStorage(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.JWTManager, cfg.Auth.BcryptCost)
	c.BookService = bookService.NewBookService(c.BookRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Storage, cfg.Auth.AdminEmail)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.Storage)

	log.Info().Str("environment", cfg.App.Environment).Msg("container initialized")

	return c, nil
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Upload.Driver {
	case "minio":
		return storage.NewMinIOStorage(cfg.MinIO)
	default:
		return storage.NewLocalStorage(cfg.Upload.Dir)
	}
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleaned up")
}
