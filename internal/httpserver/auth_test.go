package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

func newAuthHTTP(t *testing.T) *AuthHTTP {
	t.Helper()
	return &AuthHTTP{Svc: &service.AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
	}}
}

func jsonContext(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestRegisterHandler(t *testing.T) {
	h := newAuthHTTP(t)
	e := echo.New()

	payload := map[string]string{
		"email":    "test@example.com",
		"password": "password",
		"name":     "Test User",
	}
	rec, c := jsonContext(t, e, http.MethodPost, "/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "test@example.com", user.Email)
	require.NotEmpty(t, user.ID)

	// registration establishes a session
	cookies := rec.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck.Value != ""
	}
	require.True(t, names["accessToken"])
	require.True(t, names["refreshToken"])

	rec, c = jsonContext(t, e, http.MethodPost, "/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	h := newAuthHTTP(t)
	e := echo.New()

	payload := map[string]string{
		"email":    "test@example.com",
		"password": "password",
		"name":     "Test User",
	}
	rec, c := jsonContext(t, e, http.MethodPost, "/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = jsonContext(t, e, http.MethodPost, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "password",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["is_admin"]) // first account

	rec, c = jsonContext(t, e, http.MethodPost, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
