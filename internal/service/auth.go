package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/token"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Events        *events.Producer
}

type Session struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

// Register creates an account. The first account ever created becomes the
// administrator.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	role := "user"
	total, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		role = "admin"
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
		}
		return nil, err
	}

	if err := s.Events.Publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("unknown email: %w", ErrInvalidCredentials)
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("wrong password: %w", ErrInvalidCredentials)
	}

	sess, err := s.IssueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Events.Publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return user, sess, nil
}

// IssueSession mints the access/refresh pair and persists the refresh token.
func (s *AuthService) IssueSession(ctx context.Context, user *models.User) (*Session, error) {
	access, accessExp, err := token.SignAccess(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, jti, refreshExp, err := token.SignRefresh(user.ID, user.Role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefresh(ctx, refresh, jti, user.ID, refreshExp.Unix()); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.Role == "admin",
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefresh(ctx, refreshToken)
}
