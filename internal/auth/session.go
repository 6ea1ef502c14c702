package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/homepro-hq/marketplace-backend/internal/users"
)

const ctxSessionKey = "session"

type sessionCtxKey struct{}

// Session is the resolved caller identity, built once by the middleware and
// threaded through the request context. Handlers and services read it from
// here instead of any package-level state.
type Session struct {
	UserID      string
	FirebaseUID string
	Email       string
}

// WithSession authenticates the request and stores an explicit Session in
// both the gin context and the request's standard context.
//
// With a Firebase client configured, the Bearer token is verified. Without
// one (local development, tests) the identity comes from X-User-Id headers.
// When a user repo is available the caller is upserted into the users table;
// otherwise the firebase UID doubles as the user ID.
func WithSession(authClient *fbauth.Client, userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveIdentity(c, authClient)
		if !ok {
			return
		}

		if userRepo != nil {
			uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
				FirebaseUID: sess.FirebaseUID,
				Email:       sess.Email,
				DisplayName: c.GetHeader("X-User-Name"),
			})
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
				return
			}
			sess.UserID = uid
		} else {
			sess.UserID = sess.FirebaseUID
		}

		c.Set(ctxSessionKey, sess)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), sessionCtxKey{}, sess))
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, authClient *fbauth.Client) (Session, bool) {
	if authClient == nil {
		fuid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if fuid == "" {
			fuid = "demo-user"
		}
		return Session{FirebaseUID: fuid, Email: c.GetHeader("X-User-Email")}, true
	}

	token := extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
		return Session{}, false
	}

	decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return Session{}, false
	}

	sess := Session{FirebaseUID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		sess.Email = email
	}
	return sess, true
}

// SessionFrom returns the session placed by WithSession. The zero Session
// means the middleware did not run.
func SessionFrom(c *gin.Context) Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if sess, ok := v.(Session); ok {
			return sess
		}
	}
	return Session{}
}

// FromContext reads the session from a standard context.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey{}).(Session)
	return sess, ok
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
