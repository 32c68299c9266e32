package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/auth"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// JWTAuth middleware validates JWT access tokens. Missing tokens map to
// NO_TOKEN and invalid or expired ones to TOKEN_EXPIRED so the client knows
// when a refresh attempt makes sense.
func JWTAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, apierr.CodeNoToken, "no token provided")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return unauthorized(c, apierr.CodeNoToken, "invalid authorization header format")
			}

			tokenString := authHeader[7:]
			if tokenString == "" {
				return unauthorized(c, apierr.CodeNoToken, "no token provided")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil || claims.Type != "access" {
				return unauthorized(c, apierr.CodeTokenExpired, "token is invalid or expired")
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, code apierr.Code, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": message,
		"code":  string(code),
	})
}

// RequireRole middleware ensures user has one of the required roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			roleStr := userRole.(string)
			for _, role := range roles {
				if roleStr == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// AdminOnly restricts a route to admins
func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}

// ManagerOrAbove allows managers and admins; viewers are read-only
func ManagerOrAbove() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin, models.RoleManager)
}
