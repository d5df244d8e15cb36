package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"listings-service/internal/application/command"
	"listings-service/internal/application/interfaces"
	"listings-service/internal/delivery/middleware"
)

type AuthHandler struct {
	auth   interfaces.AuthService
	logger zerolog.Logger
}

func NewAuthHandler(auth interfaces.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var cmd command.RegisterUserCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.auth.Register(c.Request().Context(), &cmd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusCreated, "user registered", result.Result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cmd command.LoginUserCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.auth.Login(c.Request().Context(), &cmd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) SendVerification(c echo.Context) error {
	var cmd command.SendVerificationCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.auth.SendVerification(c.Request().Context(), &cmd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, result.Message, nil)
}

func (h *AuthHandler) ConfirmVerification(c echo.Context) error {
	var cmd command.VerifyEmailCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Error: "invalid request body"})
	}

	result, err := h.auth.ConfirmVerification(c.Request().Context(), &cmd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "email verified", result.Result)
}

func (h *AuthHandler) Me(c echo.Context) error {
	result, err := h.auth.GetProfile(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, http.StatusOK, "", result.Result)
}
