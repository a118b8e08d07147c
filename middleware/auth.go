package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// sessionKey is the gin context key holding the decoded session.
const sessionKey = "session"

// Session is the explicit authentication context for one request: the opaque
// backend-issued bearer token plus the claims decoded from it. It is built
// by the middleware and injected into handlers, never read from ambient
// globals.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsAdmin reports whether the session carries the staff role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// DecodeSession derives a Session from a bearer token by decoding its claims.
// The token is issued and signed by the CRVO backend; this service never
// verifies the signature, it only reads the embedded role/subject/expiry
// claims. Pure function of its inputs.
func DecodeSession(token string, now time.Time) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, &AuthError{Code: "INVALID_TOKEN", Message: "Token could not be decoded"}
	}

	session := Session{Token: token}
	if sub, err := claims.GetSubject(); err == nil {
		session.Username = sub
	}
	if role, ok := claims["role"].(string); ok {
		session.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
		if !now.Before(exp.Time) {
			return Session{}, &AuthError{Code: "TOKEN_EXPIRED", Message: "Session has expired"}
		}
	}

	if session.Role != models.RoleAdmin && session.Role != models.RoleMember {
		return Session{}, &AuthError{Code: "INVALID_ROLE", Message: "Token carries no recognized role"}
	}
	return session, nil
}

// RequireSession is a middleware that decodes the Authorization bearer token
// into a Session and aborts unauthenticated requests.
func RequireSession(clock services.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization bearer token is required",
				},
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		session, err := DecodeSession(token, clock.Now())
		if err != nil {
			code := "INVALID_TOKEN"
			if authErr, ok := err.(*AuthError); ok {
				code = authErr.Code
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAdmin is a middleware that rejects non-staff sessions. It must run
// after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_SESSION",
					"message": "Could not retrieve session",
				},
			})
			c.Abort()
			return
		}

		if !session.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Administrator role is required",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSession extracts the decoded session from the gin context.
func GetSession(c *gin.Context) (Session, error) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return Session{}, &AuthError{Code: "MISSING_SESSION", Message: "Session not found in context"}
	}

	session, ok := value.(Session)
	if !ok {
		return Session{}, &AuthError{Code: "INVALID_SESSION", Message: "Session is not in the expected format"}
	}
	return session, nil
}

// SetSessionForTesting injects a session into the gin context the same way
// RequireSession does (primarily for handler tests).
func SetSessionForTesting(c *gin.Context, session Session) {
	c.Set(sessionKey, session)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
