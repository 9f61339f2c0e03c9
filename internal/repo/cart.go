package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

// CartLine is a cart row joined with its item.
type CartLine struct {
	ItemID   uint
	Name     string
	Price    float64
	Image    string
	Quantity uint
}

func (r *GormRepo) GetCartLines(ctx context.Context, userID uint) ([]CartLine, error) {
	var lines []CartLine
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("items.id AS item_id, items.name, items.price, items.image, cart_items.quantity").
		Joins("JOIN items ON items.id = cart_items.item_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AddToCart adds quantity to the user's existing row for the item, creating
// the row when there is none. At most one row per (user, item) pair.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND item_id = ?", item.UserID, item.ItemID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND item_id = ?", item.UserID, item.ItemID).First(item).Error
		}
		return tx.Create(item).Error
	})
}

// RemoveOneFromCart decrements the matching row by exactly one, deleting it
// when the quantity reaches zero. Returns whether the row was deleted and the
// remaining quantity.
func (r *GormRepo) RemoveOneFromCart(ctx context.Context, userID, itemID uint) (bool, uint, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error
		}
		deleted = true
		return tx.Delete(&item).Error
	})
	if err != nil {
		return false, 0, err
	}
	if deleted {
		return true, 0, nil
	}
	return false, item.Quantity, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
