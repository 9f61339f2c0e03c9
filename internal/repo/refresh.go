package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/token"
)

// SaveRefresh stores the sha-256 of a signed refresh token.
func (r *GormRepo) SaveRefresh(ctx context.Context, raw, jti string, userID uint, expiresAt int64) error {
	record := models.RefreshToken{
		Token:     token.Sha256Hex(raw),
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&record).Error
}

func (r *GormRepo) FindRefresh(ctx context.Context, raw string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token.Sha256Hex(raw)).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, raw string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", token.Sha256Hex(raw)).
		Update("revoked", true).Error
}
