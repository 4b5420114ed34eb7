package token

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rehablog_backend/internal/feature/auth/domain/entity"
)

// ContextUserKey is the gin context key under which the guard stores the
// authenticated user.
const ContextUserKey = "currentUser"

// LoginPath is where unauthenticated requests are redirected.
const LoginPath = "/login"

// SessionResolver resolves a session ID to its authenticated user.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*entity.User, error)
}

// Parser verifies a signed session token and returns the session ID inside.
type Parser interface {
	Parse(tokenStr string) (string, error)
}

// RequireSession returns a Gin middleware that gates protected routes.
// It reads the session cookie, verifies its signature, resolves the
// referenced session and attaches the user to the request context.
// Any failure short-circuits with a redirect to the login page; the
// wrapped handler never runs unauthenticated.
func RequireSession(tokens Parser, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			redirectToLogin(c)
			return
		}

		sessionID, err := tokens.Parse(cookie)
		if err != nil {
			redirectToLogin(c)
			return
		}

		user, err := sessions.ResolveSession(c.Request.Context(), sessionID)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// redirectToLogin aborts the request and sends the client to the login page.
func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// CurrentUser returns the authenticated user attached by RequireSession.
// It is only valid inside a guarded request scope.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
