package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"listings-service/internal/domain/entities"
	"listings-service/internal/infrastructure"
)

func newVerifier(t *testing.T) *infrastructure.CredentialService {
	t.Helper()
	svc, err := infrastructure.NewCredentialService(infrastructure.CredentialConfig{
		JWTSecret:   "test-secret",
		JWTIssuer:   "listings-service",
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})
	require.NoError(t, err)
	return svc
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	verifier := newVerifier(t)
	token, err := verifier.IssueToken("user-1", "owner@example.com", entities.RolePropertyOwner)
	require.NoError(t, err)

	rec, c := run(t, RequireAuth(verifier), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", CurrentUserID(c))
	assert.Equal(t, entities.RolePropertyOwner, CurrentUserRole(c))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := run(t, RequireAuth(newVerifier(t)), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	rec, _ := run(t, RequireAuth(newVerifier(t)), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	rec, _ := run(t, RequireAuth(newVerifier(t)), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	rec, c := run(t, OptionalAuth(newVerifier(t)), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, CurrentUserID(c))
}

func TestOptionalAuthSetsIdentityWhenPresent(t *testing.T) {
	verifier := newVerifier(t)
	token, err := verifier.IssueToken("user-2", "buyer@example.com", entities.RoleBuyerRent)
	require.NoError(t, err)

	rec, c := run(t, OptionalAuth(verifier), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", CurrentUserID(c))
}
