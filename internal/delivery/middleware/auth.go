package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"listings-service/internal/domain/entities"
	"listings-service/internal/infrastructure"
)

const (
	ContextUserID    = "userId"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// TokenVerifier validates a bearer token and returns its identity claims.
type TokenVerifier interface {
	VerifyToken(token string) (*infrastructure.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity on the request context.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, verifier)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": err.Error(),
				})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)

			return next(c)
		}
	}
}

// OptionalAuth stores the caller's identity when a valid bearer token is
// present, but lets anonymous requests through.
func OptionalAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, verifier)
			if err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserEmail, claims.Email)
				c.Set(ContextUserRole, claims.Role)
			}
			return next(c)
		}
	}
}

func claimsFromRequest(c echo.Context, verifier TokenVerifier) (*infrastructure.TokenClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header format")
	}

	claims, err := verifier.VerifyToken(parts[1])
	if err != nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// CurrentUserID returns the authenticated caller's id, or "" for anonymous
// requests.
func CurrentUserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}

func CurrentUserRole(c echo.Context) entities.UserRole {
	role, _ := c.Get(ContextUserRole).(entities.UserRole)
	return role
}
