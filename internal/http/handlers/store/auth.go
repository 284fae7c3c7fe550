package store

import (
	"errors"
	"net/http"

	"github.com/ministore-next/internal/constants"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/service"
	"github.com/ministore-next/internal/session"

	"github.com/gin-gonic/gin"
)

// LoginPage renders the login form with any pending flash message.
func (h *Handler) LoginPage(c *gin.Context) {
	sid, _ := sessionID(c)
	flash := ""
	if sid != "" {
		if message, err := h.Sessions.TakeFlash(c.Request.Context(), sid); err == nil {
			flash = message
		}
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Login",
		"Flash": flash,
	})
}

// Login authenticates the shopper and binds the user to the session. The
// cart accumulated before login survives; only the owner fields change.
func (h *Handler) Login(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		h.redirectToLogin(c)
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")
	user, err := h.UserAuthService.Authenticate(email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logger.Errorw("store_login_failed", "email", email, "error", err)
		}
		h.flashAndRedirect(c, sid, constants.MsgInvalidCredentials, constants.PathLogin)
		return
	}

	err = h.Sessions.Update(c.Request.Context(), sid, func(d *session.Data) error {
		d.UserID = user.ID
		d.UserName = user.Name
		return nil
	})
	if err != nil {
		logger.Errorw("store_login_session_failed", "sid", sid, "error", err)
		h.flashAndRedirect(c, sid, constants.MsgInvalidCredentials, constants.PathLogin)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session, cart included, and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if sid, ok := sessionID(c); ok {
		if err := h.Sessions.Destroy(c.Request.Context(), sid); err != nil {
			logger.Errorw("store_logout_failed", "sid", sid, "error", err)
		}
	}
	c.SetCookie(h.Sessions.CookieName(), "", -1, "/", "", h.Sessions.Secure(), true)
	h.redirectToLogin(c)
}
