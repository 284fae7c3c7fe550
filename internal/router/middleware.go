package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/constants"
	"github.com/ministore-next/internal/http/response"
	"github.com/ministore-next/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const sessionIDKey = "session_id"
const sessionDataKey = "session_data"

// CORSMiddleware handles cross-origin requests for the AJAX endpoints.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware emits one structured log line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionMiddleware resolves the session cookie, minting a fresh id for
// first-time visitors, and exposes the id and a read-only snapshot of the
// session data on the request context.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessions.CookieName())
		if err != nil || strings.TrimSpace(sid) == "" {
			sid = sessions.NewID()
			maxAge := int(sessions.TTL().Seconds())
			c.SetCookie(sessions.CookieName(), sid, maxAge, "/", "", sessions.Secure(), true)
		}
		c.Set(sessionIDKey, sid)

		var data session.Data
		if err := sessions.View(c.Request.Context(), sid, func(d *session.Data) {
			data = *d
		}); err == nil {
			c.Set(sessionDataKey, data)
		}

		c.Next()
	}
}

func sessionData(c *gin.Context) (session.Data, bool) {
	value, ok := c.Get(sessionDataKey)
	if !ok {
		return session.Data{}, false
	}
	data, ok := value.(session.Data)
	return data, ok
}

// RequireUser gates storefront pages behind login, redirecting browsers to
// the login form.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := sessionData(c)
		if !ok || !data.LoggedIn() {
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUserJSON gates the AJAX endpoints behind login, answering with the
// error envelope instead of a redirect.
func RequireUserJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := sessionData(c)
		if !ok || !data.LoggedIn() {
			response.Unauthorized(c, constants.MsgLoginRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
