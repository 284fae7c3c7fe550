package provider

import (
	"time"

	"github.com/ministore-next/internal/cache"
	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/currency"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/repository"
	"github.com/ministore-next/internal/service"
	"github.com/ministore-next/internal/session"
)

// Container wires repositories and services once at startup and hands them to
// the handlers.
type Container struct {
	Config   *config.Config
	Sessions *session.Manager
	Currency currency.Formatter

	// Repositories
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository

	// Services
	ProductService  *service.ProductService
	CartService     *service.CartService
	UserAuthService *service.UserAuthService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:   cfg,
		Currency: currency.New(cfg.Currency.Symbol, cfg.Currency.Code),
	}

	c.initSessions()
	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initSessions() {
	ttl := time.Duration(c.Config.Session.TTLHours) * time.Hour

	// Redis keeps sessions across restarts; the memory store is the
	// single-process fallback.
	var store session.Store
	if cache.Enabled() {
		store = session.NewRedisStore(ttl)
	} else {
		store = session.NewMemoryStore(ttl)
	}
	c.Sessions = session.NewManager(store, c.Config.Session.CookieName, ttl, c.Config.Session.Secure)
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.Sessions, c.ProductService)
	c.UserAuthService = service.NewUserAuthService(c.UserRepo)
}
