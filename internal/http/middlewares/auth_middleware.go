package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

type AuthMiddleware struct {
	jwt    TokenVerifier
	header string
}

// NewAuthMiddleware builds the guard that turns a raw request credential into
// an authenticated subject. With the default "Authorization" header the value
// must use the Bearer scheme; a custom header carries the bare token.
func NewAuthMiddleware(jwt TokenVerifier, header string) *AuthMiddleware {
	if header == "" {
		header = "Authorization"
	}

	return &AuthMiddleware{jwt: jwt, header: header}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := m.extractToken(c)

		if !ok {
			abortUnauthorized(c, "Missing or invalid credentials")
			return
		}

		subject, err := m.jwt.VerifyAccessToken(raw)

		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		// Stash the verified identity on the context
		c.Set(CtxSubject, subject)

		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) (string, bool) {
	value := c.GetHeader(m.header)

	if value == "" {
		return "", false
	}

	if m.header != "Authorization" {
		return value, true
	}

	if !strings.HasPrefix(value, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(value, "Bearer"))

	return raw, raw != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}

// SubjectFromContext returns the authenticated identity set by RequireAuth,
// so handlers don't need to know the magic key.
func SubjectFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxSubject)
	if !ok {
		return "", false
	}
	subject, ok := v.(string)
	return subject, ok && subject != ""
}
