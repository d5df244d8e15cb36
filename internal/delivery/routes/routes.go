package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listings-service/internal/delivery/handler"
	"listings-service/internal/delivery/middleware"
)

// Register wires every endpoint onto the echo instance.
func Register(
	e *echo.Echo,
	auth *handler.AuthHandler,
	properties *handler.PropertyHandler,
	verifier middleware.TokenVerifier,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/verify/send", auth.SendVerification)
	authGroup.POST("/verify/confirm", auth.ConfirmVerification)

	users := e.Group("/api/users", requireAuth)
	users.GET("/me", auth.Me)
	users.GET("/me/favorites", properties.Favorites)

	props := e.Group("/api/properties")
	props.GET("", properties.List, optionalAuth)
	props.GET("/search", properties.Search, optionalAuth)
	props.GET("/owner/:ownerId", properties.ByOwner, optionalAuth)
	props.GET("/:id", properties.Get, optionalAuth)
	props.POST("", properties.Create, requireAuth)
	props.PUT("/:id", properties.Update, requireAuth)
	props.DELETE("/:id", properties.Delete, requireAuth)
	props.PATCH("/:id/availability", properties.SetAvailability, requireAuth)
	props.POST("/:id/favorite", properties.AddFavorite, requireAuth)
	props.DELETE("/:id/favorite", properties.RemoveFavorite, requireAuth)
}
