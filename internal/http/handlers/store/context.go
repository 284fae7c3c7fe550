package store

import (
	"net/http"

	"github.com/ministore-next/internal/constants"
	"github.com/ministore-next/internal/logger"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is where the session middleware puts the request's session id.
const SessionIDKey = "session_id"

func sessionID(c *gin.Context) (string, bool) {
	value, ok := c.Get(SessionIDKey)
	if !ok {
		return "", false
	}
	sid, ok := value.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

// backURL picks the redirect target after a failed form post: the page the
// shopper came from, or the configured fallback when the referer is absent.
func (h *Handler) backURL(c *gin.Context) string {
	if referer := c.Request.Referer(); referer != "" {
		return referer
	}
	if h.Config.Store.FallbackRedirect != "" {
		return h.Config.Store.FallbackRedirect
	}
	return "/"
}

// flashAndRedirect stores a one-shot message and sends the shopper to target.
func (h *Handler) flashAndRedirect(c *gin.Context, sid, message, target string) {
	if err := h.Sessions.Flash(c.Request.Context(), sid, message); err != nil {
		logger.Errorw("store_flash_failed", "sid", sid, "error", err)
	}
	c.Redirect(http.StatusFound, target)
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, constants.PathLogin)
}
