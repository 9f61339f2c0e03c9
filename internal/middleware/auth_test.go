package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/token"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	return &TokenService{
		Repo:          &repo.GormRepo{DB: db},
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
	}
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, c, handler(c)
}

func TestRequireAuthWithoutCookies(t *testing.T) {
	ts := newTokenService(t)

	_, _, err := runMiddleware(t, ts.RequireAuth)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthSetsUserContext(t *testing.T) {
	ts := newTokenService(t)

	access, exp, err := token.SignAccess(7, "user", ts.JWTSecret)
	require.NoError(t, err)

	_, c, err := runMiddleware(t, ts.RequireAuth, token.CreateCookie("accessToken", access, "/", exp))
	require.NoError(t, err)
	require.Equal(t, uint(7), c.Get("userID"))
	require.Equal(t, "user", c.Get("role"))
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	ts := newTokenService(t)

	access, exp, err := token.SignAccess(7, "user", ts.JWTSecret)
	require.NoError(t, err)

	_, _, err = runMiddleware(t, ts.RequireAdmin, token.CreateCookie("accessToken", access, "/", exp))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	ts := newTokenService(t)

	access, exp, err := token.SignAccess(1, "admin", ts.JWTSecret)
	require.NoError(t, err)

	rec, _, err := runMiddleware(t, ts.RequireAdmin, token.CreateCookie("accessToken", access, "/", exp))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func expiredAccessToken(t *testing.T, userID uint, role string, secret []byte) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestExpiredAccessRotatesViaRefresh(t *testing.T) {
	ts := newTokenService(t)

	refresh, jti, exp, err := token.SignRefresh(7, "user", ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, ts.Repo.SaveRefresh(context.Background(), refresh, jti, 7, exp.Unix()))

	stale := expiredAccessToken(t, 7, "user", ts.JWTSecret)

	rec, c, err := runMiddleware(t, ts.RequireAuth,
		token.CreateCookie("accessToken", stale, "/", time.Now().Add(time.Minute)),
		token.CreateCookie("refreshToken", refresh, "/", exp),
	)
	require.NoError(t, err)
	require.Equal(t, uint(7), c.Get("userID"))

	// new cookie pair issued, old refresh token revoked
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	stored, err := ts.Repo.FindRefresh(context.Background(), refresh)
	require.NoError(t, err)
	require.True(t, stored.Revoked)
}

func TestRevokedRefreshRejected(t *testing.T) {
	ts := newTokenService(t)

	refresh, jti, exp, err := token.SignRefresh(7, "user", ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, ts.Repo.SaveRefresh(context.Background(), refresh, jti, 7, exp.Unix()))
	require.NoError(t, ts.Repo.RevokeRefresh(context.Background(), refresh))

	_, _, err = runMiddleware(t, ts.RequireAuth, token.CreateCookie("refreshToken", refresh, "/", exp))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
