package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *CartService) AddToCart(ctx context.Context, userID, itemID uint, quantity uint) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}
	if _, err := s.Repo.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		}
		return nil, err
	}

	item := models.CartItem{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_added",
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return &item, nil
}

// ListCart returns the user's cart lines with per-line subtotals and the
// cart-wide total.
func (s *CartService) ListCart(ctx context.Context, userID uint) (*transport.CartResponse, error) {
	lines, err := s.Repo.GetCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &transport.CartResponse{Items: make([]transport.CartLine, 0, len(lines))}
	for _, ln := range lines {
		subtotal := ln.Price * float64(ln.Quantity)
		resp.Items = append(resp.Items, transport.CartLine{
			ID:       ln.ItemID,
			Name:     ln.Name,
			Price:    ln.Price,
			Quantity: ln.Quantity,
			Subtotal: subtotal,
			Image:    ln.Image,
		})
		resp.Total += subtotal
	}
	return resp, nil
}

func (s *CartService) RemoveOne(ctx context.Context, userID, itemID uint) (bool, uint, error) {
	deleted, remaining, err := s.Repo.RemoveOneFromCart(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return false, 0, err
	}
	return deleted, remaining, nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
