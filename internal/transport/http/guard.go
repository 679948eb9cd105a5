package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	appsession "github.com/astro-web3/volunteer-management/internal/app/session"
	"github.com/astro-web3/volunteer-management/internal/domain/session"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/astro-web3/volunteer-management/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const sessionContextKey = "session"

//nolint:gochecknoglobals // fixed response bodies
var (
	unauthorizedBody = gin.H{"message": "unauthorized access"}
	forbiddenBody    = gin.H{"message": "forbidden access"}
)

// Guard gates protected routes. RequireSession authenticates the cookie credential once per
// request; RequireOwner then authorizes the request against a path parameter.
type Guard struct {
	sessions appsession.Service
	cookies  CookiePolicy
	metrics  *Metrics
}

func NewGuard(sessions appsession.Service, cookies CookiePolicy, metrics *Metrics) *Guard {
	return &Guard{
		sessions: sessions,
		cookies:  cookies,
		metrics:  metrics,
	}
}

// CurrentSession returns the session attached by RequireSession.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// RequireSession rejects requests without a valid session cookie with 401. Missing and
// invalid credentials produce the same response.
func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.Start(c.Request.Context(), "transport.http.RequireSession")
		defer span.End()

		token := g.cookies.Read(c)
		if token == "" {
			span.SetAttributes(attribute.Bool("auth.missing_cookie", true))
			g.unauthenticated(ctx, c, "missing session cookie")
			return
		}

		sess, err := g.sessions.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				// Client went away mid-check; nobody is left to answer.
				c.Abort()
				return
			}
			span.RecordError(err)
			g.unauthenticated(ctx, c, err.Error())
			return
		}

		span.SetAttributes(attribute.String("auth.email", sess.Email))
		g.metrics.observeDecision(outcomeAuthenticated)

		c.Set(sessionContextKey, sess)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		c.Next()
	}
}

// RequireOwner allows the request only when the session identity equals the path parameter
// named param; otherwise it answers 403. It must run after RequireSession.
func (g *Guard) RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sess, ok := CurrentSession(c)
		if !ok {
			g.unauthenticated(ctx, c, "owner check without session")
			return
		}

		owner := c.Param(param)
		if sess.Email == "" || sess.Email != owner {
			g.metrics.observeDecision(outcomeForbidden)
			logger.WarnContext(ctx, "access forbidden",
				slog.String("email", sess.Email),
				slog.String("owner", owner),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, forbiddenBody)
			return
		}

		g.metrics.observeDecision(outcomeAllowed)
		c.Next()
	}
}

// Owned is the handler chain for a route scoped to the owner named by param.
func (g *Guard) Owned(param string, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(handlers)+2)
	chain = append(chain, g.RequireSession(), g.RequireOwner(param))
	return append(chain, handlers...)
}

func (g *Guard) unauthenticated(ctx context.Context, c *gin.Context, reason string) {
	g.metrics.observeDecision(outcomeUnauthenticated)
	logger.DebugContext(ctx, "access unauthenticated", slog.String("reason", reason))
	c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
}
