package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-service/internal/application/common"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", common.NewValidationError("bad input"), http.StatusBadRequest},
		{"not found", common.NewNotFoundError("missing"), http.StatusNotFound},
		{"authorization", common.NewAuthorizationError("nope"), http.StatusForbidden},
		{"conflict", common.NewConflictError("taken"), http.StatusConflict},
		{"invalid credentials", common.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{"inactive account", common.NewAccountInactiveError(), http.StatusForbidden},
		{"rate limited", common.NewRateLimitedError("slow down"), http.StatusTooManyRequests},
		{"internal", common.NewInternalError("boom", errors.New("db down")), http.StatusInternalServerError},
		{"untyped", errors.New("raw"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, respondError(c, zerolog.Nop(), tc.err))
			assert.Equal(t, tc.status, rec.Code)

			var body ApiResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, zerolog.Nop(), common.NewInternalError("failed to load property", errors.New("connection refused"))))

	var body ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
