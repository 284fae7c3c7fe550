package router

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ministore-next/internal/cache"
	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/constants"
	storehandlers "github.com/ministore-next/internal/http/handlers/store"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes the storefront routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := storehandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts. Try again later.",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SessionMiddleware(c.Sessions))

	// Templates live next to the binary in deployment; tests that exercise
	// individual handlers register their own.
	if matches, err := filepath.Glob("web/templates/*.html"); err == nil && len(matches) > 0 {
		r.LoadHTMLGlob("web/templates/*.html")
	}
	r.Static("/assets", "./web/assets")

	// Storefront pages
	r.GET("/", handler.Index)
	r.GET("/products/:slug", handler.ProductPage)

	// Shopper auth
	r.GET(constants.PathLogin, handler.LoginPage)
	r.POST(constants.PathLogin, RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndFormField("email")), handler.Login)
	r.GET("/logout", handler.Logout)

	// Cart pages and form posts, login required
	cart := r.Group("")
	cart.Use(RequireUser())
	{
		cart.GET(constants.PathCart, handler.CartPage)
		cart.POST("/cart/add", handler.AddToCart)
	}

	// Cart AJAX, login required, JSON errors
	ajax := r.Group("")
	ajax.Use(RequireUserJSON())
	{
		ajax.POST("/cart/update-quantity", handler.UpdateQuantity)
		ajax.GET("/cart/update-quantity", handler.UpdateQuantity) // answers 405
		ajax.POST("/cart/clear", handler.ClearCart)
		ajax.GET("/cart/clear", handler.ClearCart) // answers 405
		ajax.GET("/api/cart", handler.CartJSON)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
