package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type GormRepo struct {
	DB *gorm.DB
}
