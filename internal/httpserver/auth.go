package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/token"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func setSessionCookies(c echo.Context, sess *service.Session) {
	c.SetCookie(token.CreateCookie("accessToken", sess.AccessToken, "/", sess.AccessExp))
	c.SetCookie(token.CreateCookie("refreshToken", sess.RefreshToken, "/", sess.RefreshExp))
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("register_error", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered, log in instead"})
		default:
			l.Error("register_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	// Registration establishes a session right away.
	sess, err := h.Svc.IssueSession(ctx, user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	setSessionCookies(c, sess)

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, sess, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	setSessionCookies(c, sess)

	l.Info("login_successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"is_admin": sess.IsAdmin})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if refreshCookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, refreshCookie.Value); err != nil {
			l.Error("logout_error", "status", 500, "error", err)
		}
	}

	c.SetCookie(token.DeleteCookie("accessToken", "/"))
	c.SetCookie(token.DeleteCookie("refreshToken", "/"))

	l.Info("logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
