package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/token"
)

// TokenService authenticates requests from the access/refresh cookie pair,
// rotating the pair when the access token has expired.
type TokenService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (t *TokenService) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return next(c)
	}
}

func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

func (t *TokenService) resolve(c echo.Context) (jwt.MapClaims, error) {
	if asCookie, err := c.Cookie("accessToken"); err == nil {
		claims, err := token.Parse(asCookie.Value, t.JWTSecret)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return nil, err
	}

	newAccess, newRefresh, claims, err := t.rotate(c.Request().Context(), rfCookie.Value)
	if err != nil {
		return nil, err
	}

	c.SetCookie(token.CreateCookie("accessToken", newAccess, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(token.RefreshTTL)))
	return claims, nil
}

func (t *TokenService) rotate(ctx context.Context, raw string) (string, string, jwt.MapClaims, error) {
	claims, err := token.Parse(raw, t.RefreshSecret)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", "", nil, fmt.Errorf("not a refresh token")
	}

	stored, err := t.Repo.FindRefresh(ctx, raw)
	if err != nil {
		return "", "", nil, fmt.Errorf("refresh token not found: %w", err)
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return "", "", nil, fmt.Errorf("refresh token expired or revoked")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return "", "", nil, fmt.Errorf("cannot parse claims")
	}
	userID := uint(sub)
	role, _ := claims["role"].(string)

	newAccess, _, err := token.SignAccess(userID, role, t.JWTSecret)
	if err != nil {
		return "", "", nil, err
	}
	newRefresh, jti, exp, err := token.SignRefresh(userID, role, t.RefreshSecret)
	if err != nil {
		return "", "", nil, err
	}

	if err := t.Repo.SaveRefresh(ctx, newRefresh, jti, userID, exp.Unix()); err != nil {
		return "", "", nil, err
	}
	if err := t.Repo.RevokeRefresh(ctx, raw); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) error {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return fmt.Errorf("cannot parse claims")
	}
	role, _ := claims["role"].(string)

	c.Set("userID", uint(sub))
	c.Set("role", role)
	return nil
}
