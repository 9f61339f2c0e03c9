package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.User{}, &models.CartItem{}, &models.RefreshToken{}))

	return &repo.GormRepo{DB: db}
}

func seedItem(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Item {
	t.Helper()

	item := models.Item{
		Name:        name,
		Description: "test description",
		Image:       "/static/uploads/test.png",
		Price:       price,
		Quantity:    10,
	}
	require.NoError(t, r.DB.Create(&item).Error)
	return &item
}

func seedUser(t *testing.T, r *repo.GormRepo, email, role string) *models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "test user",
		Role:         role,
	}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}
