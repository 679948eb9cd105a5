package http

import (
	"errors"
	"log/slog"
	"net/http"

	appsession "github.com/astro-web3/volunteer-management/internal/app/session"
	"github.com/astro-web3/volunteer-management/internal/domain/session"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/gin-gonic/gin"
)

// SessionHandler serves login and logout. Identity is established by the client's
// identity provider before it calls Login.
type SessionHandler struct {
	sessions appsession.Service
	cookies  CookiePolicy
}

func NewSessionHandler(sessions appsession.Service, cookies CookiePolicy) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		cookies:  cookies,
	}
}

func (h *SessionHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var claims session.Claims
	if err := c.ShouldBindJSON(&claims); err != nil || len(claims) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "claims payload is required"})
		return
	}

	token, _, err := h.sessions.Login(ctx, claims)
	if err != nil {
		if errors.Is(err, session.ErrEmptyClaims) || errors.Is(err, session.ErrReservedClaim) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		logger.ErrorContext(ctx, "failed to issue session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	h.cookies.Set(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context(), h.cookies.Read(c))
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
