package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmelo/stockboard/internal/utils"
)

const testSecret = "test-secret"

// gatedEcho builds an Echo instance with one protected route that echoes
// back the identity the gate attached.
func gatedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, ok := CallerID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "name": CallerName(c)})
	}, Authenticate(testSecret))
	return e
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	t.Parallel()

	e := gatedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_CorruptedToken(t *testing.T) {
	t.Parallel()

	e := gatedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.value")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, 7, "Ana", -time.Minute)
	require.NoError(t, err)

	e := gatedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, 7, "Ana", time.Hour)
	require.NoError(t, err)

	e := gatedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"name":"Ana"}`, rec.Body.String())
}

func TestCallerID_Unauthenticated(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := CallerID(c)
	assert.False(t, ok)
}
