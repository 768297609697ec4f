package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/token"
)

const (
	IdentityKey = "identity"
)

// Identity is the signed-in member, resolved once per request.
type Identity struct {
	UserID   uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// UserLookup is the part of the user repository session resolution needs.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// SessionMiddleware resolves the identity from a bearer token or the session cookie
// and stores it on the context. Requests without a valid session pass through
// unauthenticated; AccessPolicy decides what they may reach.
func SessionMiddleware(jwtSecret, cookieName string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" && cookieName != "" {
			raw, _ = c.Cookie(cookieName)
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := token.ValidateJWT(raw, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				responses.SendError(c, http.StatusInternalServerError, "Failed to resolve session", nil)
				return
			}
			c.Next()
			return
		}

		SetIdentity(c, Identity{UserID: u.ID, Email: u.Email, FullName: u.FullName})
		c.Next()
	}
}

// SetIdentity stores the identity on the gin context and the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(IdentityKey, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logging.UserIDKey, id.UserID.String()))
}

// CurrentIdentity returns the identity resolved for this request, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.UserID != uuid.Nil
}

// RequireIdentity answers 401 and returns false when there is no session.
func RequireIdentity(c *gin.Context) (Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		responses.Unauthorized(c, "Sign in to continue")
		return Identity{}, false
	}
	return id, true
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
