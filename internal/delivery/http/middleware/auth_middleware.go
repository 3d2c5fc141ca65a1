package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"smarket/config"
	"smarket/internal/delivery/http/response"
	"smarket/internal/domain/entity"
)

// Context keys populated by Authenticate.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		const bearerPrefix = "Bearer "
		if len(authHeader) <= len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}
		tokenString := authHeader[len(bearerPrefix):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(m.cfg.SecretKey.Access), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Failed to parse token claims")
		}

		// Extract user ID
		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "User ID missing from token")
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID format in token")
		}

		// Extract role
		roleStr, _ := claims["role"].(string)
		role := entity.Role(roleStr)
		if !role.IsValid() {
			role = entity.RoleUser
		}

		// Set user info on the context for handlers to use
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller holds at least
// the given role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(minRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "PERMISSION_DENIED", "Permission denied: role information missing")
			}

			if !role.AtLeast(minRole) {
				return response.Forbidden(c, "PERMISSION_DENIED", "Permission denied: require '"+string(minRole)+"' role")
			}

			return next(c)
		}
	}
}

// CurrentUserID reads the authenticated user's ID from the request context.
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextUserID).(uuid.UUID)

	return userID, ok
}

// CurrentRole reads the authenticated user's role from the request context.
func CurrentRole(c echo.Context) entity.Role {
	role, ok := c.Get(ContextRole).(entity.Role)
	if !ok {
		return entity.RoleUser
	}

	return role
}
